package itinerary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/catalog"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	MaxTripDays = 30
	dateLayout  = "2006-01-02"
)

// LandmarkLookup resolves selected landmark ids to names.
type LandmarkLookup interface {
	GetLandmarkRefs(ctx context.Context, ids []int64) ([]types.LandmarkRef, error)
}

// ExtrasProvider loads the country-specific places shown next to a plan.
type ExtrasProvider interface {
	GetCountryExtras(ctx context.Context, countryCode, regionCode string) (types.CountryExtras, error)
}

// ForecastProvider returns a daily forecast for a date range.
type ForecastProvider interface {
	GetForecast(ctx context.Context, lat, lon float64, start, end time.Time) (*types.WeatherForecast, error)
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	CreateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
	GetItinerary(ctx context.Context, id int64) (*types.Itinerary, error)
	ListItineraries(ctx context.Context, filter types.ItineraryFilter) ([]types.Itinerary, error)
	GetReport(ctx context.Context, id int64) (*types.ItineraryReport, error)
	ExportCSV(ctx context.Context, id int64, w io.Writer) error
}

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	planner   *Planner
	landmarks LandmarkLookup
	extras    ExtrasProvider
	forecast  ForecastProvider
	modelName string
}

// NewService wires the pipeline to its stores. forecast may be nil, in which
// case reports carry no weather.
func NewService(repo Repository, planner *Planner, landmarks LandmarkLookup, extras ExtrasProvider,
	forecast ForecastProvider, modelName string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		planner:   planner,
		landmarks: landmarks,
		extras:    extras,
		forecast:  forecast,
		modelName: modelName,
	}
}

// ValidateTripRequest normalises codes in place and checks the request
// against the catalog.
func ValidateTripRequest(req *types.TripRequest) error {
	req.CountryCode = strings.ToUpper(strings.TrimSpace(req.CountryCode))
	req.RegionCode = strings.ToLower(strings.TrimSpace(req.RegionCode))
	req.StartDate = strings.TrimSpace(req.StartDate)

	if req.CountryCode == "" || req.RegionCode == "" {
		return fmt.Errorf("country_code and region_code are required: %w", api.ErrInvalidInput)
	}
	if _, ok := catalog.FindRegion(req.CountryCode, req.RegionCode); !ok {
		return fmt.Errorf("unknown region %s/%s: %w", req.CountryCode, req.RegionCode, api.ErrInvalidInput)
	}
	if req.DayCount < 1 || req.DayCount > MaxTripDays {
		return fmt.Errorf("days must be between 1 and %d: %w", MaxTripDays, api.ErrInvalidInput)
	}
	if req.StartDate != "" {
		if _, err := time.Parse(dateLayout, req.StartDate); err != nil {
			return fmt.Errorf("start_date must be YYYY-MM-DD: %w", api.ErrInvalidInput)
		}
	}
	return nil
}

func (s *ServiceImpl) CreateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "CreateItinerary", trace.WithAttributes(
		attribute.String("trip.country_code", req.CountryCode),
		attribute.String("trip.region_code", req.RegionCode),
		attribute.Int("trip.days", req.DayCount),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "CreateItinerary"))

	if err := ValidateTripRequest(&req); err != nil {
		span.SetStatus(codes.Error, "Invalid trip request")
		return nil, err
	}

	var refs []types.LandmarkRef
	if len(req.SelectedLandmarkIDs) > 0 {
		var err error
		refs, err = s.landmarks.GetLandmarkRefs(ctx, req.SelectedLandmarkIDs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to load selected landmarks")
			return nil, fmt.Errorf("failed to load selected landmarks: %w", err)
		}
		if missing := missingIDs(req.SelectedLandmarkIDs, refs); len(missing) > 0 {
			span.SetStatus(codes.Error, "Unknown landmark ids")
			return nil, fmt.Errorf("unknown landmark ids %s: %w", types.JoinLandmarkIDs(missing), api.ErrInvalidInput)
		}
	}

	res := s.planner.Plan(ctx, req, refs)

	it := types.Itinerary{
		CountryCode:         req.CountryCode,
		RegionCode:          req.RegionCode,
		Days:                req.DayCount,
		StartDate:           req.StartDate,
		Theme:               req.Theme,
		SelectedLandmarkIDs: req.SelectedLandmarkIDs,
		Title:               res.Title,
		AISummary:           res.JSONText,
	}
	interaction := types.LlmInteraction{
		Prompt:            res.Prompt,
		ResponseText:      res.RawResponse,
		ModelUsed:         s.modelName,
		ParseStatus:       res.ParseStatus,
		InsertedLandmarks: res.InsertedLandmarks,
		LatencyMs:         int(res.Latency.Milliseconds()),
	}

	saved, err := s.repo.SaveItinerary(ctx, it, interaction)
	if err != nil {
		l.ErrorContext(ctx, "Failed to persist itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Persist failed")
		return nil, err
	}

	l.InfoContext(ctx, "Itinerary created",
		slog.Int64("itinerary_id", saved.ID),
		slog.String("parse_status", res.ParseStatus))
	span.SetStatus(codes.Ok, "Itinerary created")
	return saved, nil
}

func missingIDs(requested []int64, found []types.LandmarkRef) []int64 {
	known := make(map[int64]struct{}, len(found))
	for _, ref := range found {
		known[ref.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, id int64) (*types.Itinerary, error) {
	return s.repo.GetItinerary(ctx, id)
}

func (s *ServiceImpl) ListItineraries(ctx context.Context, filter types.ItineraryFilter) ([]types.Itinerary, error) {
	filter.CountryCode = strings.ToUpper(strings.TrimSpace(filter.CountryCode))
	filter.RegionCode = strings.ToLower(strings.TrimSpace(filter.RegionCode))
	return s.repo.ListItineraries(ctx, filter)
}

// GetReport re-reads the stored plan and gathers the extras and, when the
// trip has a start date, the forecast. A forecast failure leaves it empty.
func (s *ServiceImpl) GetReport(ctx context.Context, id int64) (*types.ItineraryReport, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetReport", trace.WithAttributes(
		attribute.Int64("app.itinerary.id", id),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetReport"), slog.Int64("itinerary_id", id))

	it, err := s.repo.GetItinerary(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	detail, err := DecodeStoredDetail(it.AISummary)
	if err != nil {
		l.WarnContext(ctx, "Stored itinerary detail unreadable", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Stored detail unreadable")
		return nil, err
	}

	report := &types.ItineraryReport{Itinerary: *it, Detail: detail}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		extras, err := s.extras.GetCountryExtras(gctx, it.CountryCode, it.RegionCode)
		if err != nil {
			return fmt.Errorf("failed to load country extras: %w", err)
		}
		report.Restaurants = extras.Restaurants
		report.Activities = extras.Activities
		report.Museums = extras.Museums
		return nil
	})
	g.Go(func() error {
		report.Forecast = s.tripForecast(gctx, l, it)
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Report assembly failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Report built")
	return report, nil
}

func (s *ServiceImpl) tripForecast(ctx context.Context, l *slog.Logger, it *types.Itinerary) *types.WeatherForecast {
	if s.forecast == nil || it.StartDate == "" {
		return nil
	}
	start, err := time.Parse(dateLayout, it.StartDate)
	if err != nil {
		return nil
	}
	region, ok := catalog.FindRegion(it.CountryCode, it.RegionCode)
	if !ok {
		return nil
	}
	days := it.Days
	if days < 1 {
		days = 1
	}
	end := start.AddDate(0, 0, days-1)

	fc, err := s.forecast.GetForecast(ctx, region.Lat, region.Lon, start, end)
	if err != nil {
		l.WarnContext(ctx, "Forecast unavailable for report", slog.Any("error", err))
		return nil
	}
	return fc
}

func (s *ServiceImpl) ExportCSV(ctx context.Context, id int64, w io.Writer) error {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}
	return WriteReportCSV(w, *report)
}

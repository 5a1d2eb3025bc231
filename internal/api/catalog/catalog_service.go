package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// LandmarkLister lists catalog landmarks of a region.
type LandmarkLister interface {
	ListLandmarks(ctx context.Context, filter types.LandmarkFilter) ([]types.Landmark, error)
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetCountryExtras(ctx context.Context, countryCode, regionCode string) (types.CountryExtras, error)
	GetTravelOverview(ctx context.Context, countryCode, regionCode string) (*types.TravelOverview, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	landmarks LandmarkLister
}

func NewService(repo Repository, landmarks LandmarkLister, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		landmarks: landmarks,
	}
}

// GetCountryExtras loads the one extras list that applies to the country.
// Countries without extras get empty lists.
func (s *ServiceImpl) GetCountryExtras(ctx context.Context, countryCode, regionCode string) (types.CountryExtras, error) {
	extras := types.CountryExtras{
		Restaurants: []types.JapanRestaurant{},
		Activities:  []types.ThailandActivity{},
		Museums:     []types.UKMuseum{},
	}

	var err error
	switch strings.ToUpper(countryCode) {
	case "JP":
		extras.Restaurants, err = s.repo.ListJapanRestaurants(ctx, regionCode)
	case "TH":
		extras.Activities, err = s.repo.ListThailandActivities(ctx, regionCode)
	case "UK":
		extras.Museums, err = s.repo.ListUKMuseums(ctx, regionCode)
	}
	if err != nil {
		return types.CountryExtras{}, err
	}
	return extras, nil
}

func (s *ServiceImpl) GetTravelOverview(ctx context.Context, countryCode, regionCode string) (*types.TravelOverview, error) {
	ctx, span := otel.Tracer("CatalogService").Start(ctx, "GetTravelOverview", trace.WithAttributes(
		attribute.String("trip.country_code", countryCode),
		attribute.String("trip.region_code", regionCode),
	))
	defer span.End()

	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	regionCode = strings.ToLower(strings.TrimSpace(regionCode))
	if _, ok := FindRegion(countryCode, regionCode); !ok {
		span.SetStatus(codes.Error, "Unknown region")
		return nil, fmt.Errorf("unknown region %s/%s: %w", countryCode, regionCode, api.ErrInvalidInput)
	}

	overview := &types.TravelOverview{CountryCode: countryCode, RegionCode: regionCode}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		landmarks, err := s.landmarks.ListLandmarks(gctx, types.LandmarkFilter{CountryCode: countryCode, RegionCode: regionCode})
		if err != nil {
			return err
		}
		overview.Landmarks = landmarks
		return nil
	})
	g.Go(func() error {
		extras, err := s.GetCountryExtras(gctx, countryCode, regionCode)
		if err != nil {
			return err
		}
		overview.CountryExtras = extras
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to build travel overview", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Overview failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Overview built")
	return overview, nil
}

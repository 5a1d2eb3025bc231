package itinerary

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GenerateItinerary(w http.ResponseWriter, r *http.Request)
	ListItineraries(w http.ResponseWriter, r *http.Request)
	GetItinerary(w http.ResponseWriter, r *http.Request)
	GetItineraryReport(w http.ResponseWriter, r *http.Request)
	DownloadItineraryCSV(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:  logger,
		service: service,
	}
}

// GenerateItinerary godoc
// @Summary      Generate itinerary
// @Description  Asks the model for a day-by-day plan that covers every selected landmark, then stores it.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.TripRequest true "Trip conditions"
// @Success      201 {object} types.Itinerary
// @Failure      400 {object} api.ErrorBody "Invalid request"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Router       /itineraries/generate [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Bad request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(
		attribute.String("trip.country_code", req.CountryCode),
		attribute.String("trip.region_code", req.RegionCode),
		attribute.Int("trip.days", req.DayCount),
	)

	it, err := h.service.CreateItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		api.ServiceErrorResponse(w, r, err, "Failed to generate itinerary")
		return
	}

	span.SetAttributes(attribute.Int64("app.itinerary.id", it.ID))
	span.SetStatus(codes.Ok, "Itinerary generated")
	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// ListItineraries godoc
// @Summary      List itineraries
// @Description  Saved itineraries, newest first.
// @Tags         Itineraries
// @Produce      json
// @Param        country_code query string false "Country code"
// @Param        region_code  query string false "Region code"
// @Param        limit        query int    false "Maximum rows"
// @Success      200 {array} types.Itinerary
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Router       /itineraries [get]
func (h *HandlerImpl) ListItineraries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "ListItineraries")
	defer span.End()

	q := r.URL.Query()
	filter := types.ItineraryFilter{
		CountryCode: q.Get("country_code"),
		RegionCode:  q.Get("region_code"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	itineraries, err := h.service.ListItineraries(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		api.ServiceErrorResponse(w, r, err, "Failed to list itineraries")
		return
	}

	span.SetStatus(codes.Ok, "Itineraries listed")
	api.WriteJSONResponse(w, r, http.StatusOK, itineraries)
}

// GetItinerary godoc
// @Summary      Get itinerary
// @Tags         Itineraries
// @Produce      json
// @Param        itineraryID path int true "Itinerary ID"
// @Success      200 {object} types.Itinerary
// @Failure      400 {object} api.ErrorBody "Invalid ID"
// @Failure      404 {object} api.ErrorBody "Not Found"
// @Router       /itineraries/{itineraryID} [get]
func (h *HandlerImpl) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItinerary")
	defer span.End()

	id, err := api.Int64URLParam(r, "itineraryID")
	if err != nil {
		span.SetStatus(codes.Error, "Invalid itinerary ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.Int64("app.itinerary.id", id))

	it, err := h.service.GetItinerary(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Get failed")
		api.ServiceErrorResponse(w, r, err, "Failed to retrieve itinerary")
		return
	}

	span.SetStatus(codes.Ok, "Itinerary retrieved")
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// GetItineraryReport godoc
// @Summary      Itinerary report
// @Description  Stored plan plus country extras and, when a start date is set, the forecast.
// @Tags         Itineraries
// @Produce      json
// @Param        itineraryID path int true "Itinerary ID"
// @Success      200 {object} types.ItineraryReport
// @Failure      404 {object} api.ErrorBody "Not Found"
// @Failure      500 {object} api.ErrorBody "Stored data unreadable"
// @Router       /itineraries/{itineraryID}/report [get]
func (h *HandlerImpl) GetItineraryReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItineraryReport")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetItineraryReport"))

	id, err := api.Int64URLParam(r, "itineraryID")
	if err != nil {
		span.SetStatus(codes.Error, "Invalid itinerary ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.GetReport(ctx, id)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build report", slog.Int64("itinerary_id", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Report failed")
		api.ServiceErrorResponse(w, r, err, "Failed to build itinerary report")
		return
	}

	span.SetStatus(codes.Ok, "Report built")
	api.WriteJSONResponse(w, r, http.StatusOK, report)
}

// DownloadItineraryCSV godoc
// @Summary      Itinerary report as CSV
// @Tags         Itineraries
// @Produce      text/csv
// @Param        itineraryID path int true "Itinerary ID"
// @Success      200 {string} string "CSV file"
// @Failure      404 {object} api.ErrorBody "Not Found"
// @Router       /itineraries/{itineraryID}/csv [get]
func (h *HandlerImpl) DownloadItineraryCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "DownloadItineraryCSV")
	defer span.End()
	l := h.logger.With(slog.String("handler", "DownloadItineraryCSV"))

	id, err := api.Int64URLParam(r, "itineraryID")
	if err != nil {
		span.SetStatus(codes.Error, "Invalid itinerary ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(ctx, id, &buf); err != nil {
		l.ErrorContext(ctx, "Failed to export csv", slog.Int64("itinerary_id", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Export failed")
		api.ServiceErrorResponse(w, r, err, "Failed to export itinerary")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary_report_%d.csv"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		l.ErrorContext(ctx, "Failed to write csv body", slog.Any("error", err))
	}
	span.SetStatus(codes.Ok, "CSV exported")
}

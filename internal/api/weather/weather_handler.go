package weather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Provider is what the handler needs from a weather source.
type Provider interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*types.CurrentWeather, error)
	GetForecast(ctx context.Context, lat, lon float64, start, end time.Time) (*types.WeatherForecast, error)
}

var _ Provider = (*Client)(nil)

type HandlerImpl struct {
	logger   *slog.Logger
	provider Provider
}

func NewHandler(provider Provider, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:   logger,
		provider: provider,
	}
}

func coordinates(r *http.Request) (float64, float64, error) {
	lat, err := api.FloatQueryParam(r, "lat")
	if err != nil {
		return 0, 0, err
	}
	lon, err := api.FloatQueryParam(r, "lon")
	if err != nil {
		return 0, 0, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range: %w", api.ErrInvalidInput)
	}
	return lat, lon, nil
}

// CheckWeather godoc
// @Summary      Current weather
// @Tags         Weather
// @Produce      json
// @Param        lat query number true "Latitude"
// @Param        lon query number true "Longitude"
// @Success      200 {object} types.CurrentWeather
// @Failure      400 {object} api.ErrorBody "Invalid coordinates"
// @Failure      502 {object} api.ErrorBody "Weather service unavailable"
// @Router       /weather/check [get]
func (h *HandlerImpl) CheckWeather(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WeatherHandler").Start(r.Context(), "CheckWeather")
	defer span.End()

	lat, lon, err := coordinates(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cw, err := h.provider.GetCurrentWeather(ctx, lat, lon)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Weather lookup failed")
		api.ServiceErrorResponse(w, r, err, "Failed to fetch weather")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, cw)
}

// GetForecast godoc
// @Summary      Daily forecast
// @Tags         Weather
// @Produce      json
// @Param        lat        query number true "Latitude"
// @Param        lon        query number true "Longitude"
// @Param        start_date query string true "YYYY-MM-DD"
// @Param        end_date   query string true "YYYY-MM-DD, at most 16 days after start"
// @Success      200 {object} types.WeatherForecast
// @Failure      400 {object} api.ErrorBody "Invalid parameters"
// @Failure      502 {object} api.ErrorBody "Weather service unavailable"
// @Router       /weather/forecast [get]
func (h *HandlerImpl) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WeatherHandler").Start(r.Context(), "GetForecast")
	defer span.End()

	lat, lon, err := coordinates(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	start, err := time.Parse(dateLayout, q.Get("start_date"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, q.Get("end_date"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	fc, err := h.provider.GetForecast(ctx, lat, lon, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "Forecast failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Forecast failed")
		api.ServiceErrorResponse(w, r, err, "Failed to fetch forecast")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, fc)
}

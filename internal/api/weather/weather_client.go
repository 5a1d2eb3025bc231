package weather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	// MaxForecastDays is the longest range Open-Meteo forecasts.
	MaxForecastDays = 16

	dateLayout = "2006-01-02"
)

var descriptions = map[types.WeatherCondition]string{
	types.WeatherSunny:  "Clear skies, a great day to be outside.",
	types.WeatherCloudy: "Some clouds, still fine for sightseeing.",
	types.WeatherFoggy:  "Low visibility, take care when travelling.",
	types.WeatherRainy:  "Rain expected, bring an umbrella.",
	types.WeatherSnowy:  "Snow expected, dress warmly.",
	types.WeatherStormy: "Severe weather, indoor plans recommended.",
}

// ConditionForCode buckets a WMO weather code.
func ConditionForCode(code int) types.WeatherCondition {
	switch {
	case code == 0:
		return types.WeatherSunny
	case code >= 1 && code <= 3:
		return types.WeatherCloudy
	case code == 45 || code == 48:
		return types.WeatherFoggy
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return types.WeatherRainy
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return types.WeatherSnowy
	default:
		return types.WeatherStormy
	}
}

// Describe returns the condition and a one-line description for a code.
func Describe(code int) (types.WeatherCondition, string) {
	c := ConditionForCode(code)
	return c, descriptions[c]
}

type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	cache      *cache.Cache
	cacheTTL   time.Duration
	metrics    *metrics.AppMetrics
}

func NewClient(cfg config.UpstreamConfig, m *metrics.AppMetrics, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Client{
		logger:     logger.With(slog.String("component", "WeatherClient")),
		httpClient: api.NewUpstreamHTTPClient(cfg.Timeout),
		baseURL:    baseURL,
		cache:      cache.New(ttl, 2*ttl),
		cacheTTL:   ttl,
		metrics:    m,
	}
}

type currentResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

type dailyResponse struct {
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weathercode"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func (c *Client) GetCurrentWeather(ctx context.Context, lat, lon float64) (*types.CurrentWeather, error) {
	ctx, span := otel.Tracer("WeatherClient").Start(ctx, "GetCurrentWeather", trace.WithAttributes(
		attribute.Float64("geo.lat", lat),
		attribute.Float64("geo.lon", lon),
	))
	defer span.End()

	cacheKey := "current:" + coord(lat) + "," + coord(lon)
	if cached, found := c.cache.Get(cacheKey); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		cw := cached.(types.CurrentWeather)
		return &cw, nil
	}

	q := url.Values{}
	q.Set("latitude", coord(lat))
	q.Set("longitude", coord(lon))
	q.Set("current_weather", "true")

	var resp currentResponse
	if err := api.FetchJSON(ctx, c.httpClient, c.baseURL+"?"+q.Encode(), &resp); err != nil {
		c.upstreamFailed(ctx, span, "current", err)
		return nil, err
	}

	condition, description := Describe(resp.CurrentWeather.WeatherCode)
	cw := types.CurrentWeather{
		Latitude:    lat,
		Longitude:   lon,
		Temperature: resp.CurrentWeather.Temperature,
		WindSpeed:   resp.CurrentWeather.WindSpeed,
		WeatherCode: resp.CurrentWeather.WeatherCode,
		Condition:   condition,
		Description: description,
		ObservedAt:  resp.CurrentWeather.Time,
	}
	c.cache.Set(cacheKey, cw, cache.DefaultExpiration)

	span.SetStatus(codes.Ok, "Current weather fetched")
	return &cw, nil
}

// GetForecast returns daily forecasts from start to end inclusive.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64, start, end time.Time) (*types.WeatherForecast, error) {
	ctx, span := otel.Tracer("WeatherClient").Start(ctx, "GetForecast", trace.WithAttributes(
		attribute.Float64("geo.lat", lat),
		attribute.Float64("geo.lon", lon),
		attribute.String("forecast.start", start.Format(dateLayout)),
		attribute.String("forecast.end", end.Format(dateLayout)),
	))
	defer span.End()

	if err := ValidateRange(start, end); err != nil {
		span.SetStatus(codes.Error, "Invalid range")
		return nil, err
	}

	startStr, endStr := start.Format(dateLayout), end.Format(dateLayout)
	cacheKey := "forecast:" + coord(lat) + "," + coord(lon) + ":" + startStr + ":" + endStr
	if cached, found := c.cache.Get(cacheKey); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		fc := cached.(types.WeatherForecast)
		return &fc, nil
	}

	q := url.Values{}
	q.Set("latitude", coord(lat))
	q.Set("longitude", coord(lon))
	q.Set("timezone", "auto")
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	q.Set("start_date", startStr)
	q.Set("end_date", endStr)

	var resp dailyResponse
	if err := api.FetchJSON(ctx, c.httpClient, c.baseURL+"?"+q.Encode(), &resp); err != nil {
		c.upstreamFailed(ctx, span, "forecast", err)
		return nil, err
	}

	d := resp.Daily
	n := min(len(d.Time), len(d.WeatherCode), len(d.TempMax), len(d.TempMin))
	days := make([]types.DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		condition, description := Describe(d.WeatherCode[i])
		days = append(days, types.DailyForecast{
			Date:        d.Time[i],
			WeatherCode: d.WeatherCode[i],
			Condition:   condition,
			Description: description,
			TempMax:     d.TempMax[i],
			TempMin:     d.TempMin[i],
		})
	}

	fc := types.WeatherForecast{
		Latitude:  lat,
		Longitude: lon,
		StartDate: startStr,
		EndDate:   endStr,
		Days:      days,
	}
	c.cache.Set(cacheKey, fc, cache.DefaultExpiration)

	span.SetAttributes(attribute.Int("forecast.days", n))
	span.SetStatus(codes.Ok, "Forecast fetched")
	return &fc, nil
}

// ValidateRange checks that end is not before start and the range fits the
// forecast horizon.
func ValidateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end_date must not be before start_date: %w", api.ErrInvalidInput)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxForecastDays {
		return fmt.Errorf("forecast range is limited to %d days, got %d: %w", MaxForecastDays, days, api.ErrInvalidInput)
	}
	return nil
}

func (c *Client) upstreamFailed(ctx context.Context, span trace.Span, op string, err error) {
	c.logger.WarnContext(ctx, "Open-Meteo request failed", slog.String("op", op), slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "Upstream failed")
	if c.metrics != nil {
		c.metrics.UpstreamErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("upstream", "open-meteo")))
	}
}

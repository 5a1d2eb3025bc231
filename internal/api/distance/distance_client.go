package distance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
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

const DefaultBaseURL = "http://router.project-osrm.org/route/v1/driving"

type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	cache      *cache.Cache
	metrics    *metrics.AppMetrics
}

func NewClient(cfg config.UpstreamConfig, m *metrics.AppMetrics, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Client{
		logger:     logger.With(slog.String("component", "DistanceClient")),
		httpClient: api.NewUpstreamHTTPClient(cfg.Timeout),
		baseURL:    baseURL,
		cache:      cache.New(ttl, time.Hour),
		metrics:    m,
	}
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // metres
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func lonLat(c types.Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// GetRouteDistance returns the driving distance in km (2 dp) and duration in
// minutes (1 dp) between two points.
func (c *Client) GetRouteDistance(ctx context.Context, from, to types.Coordinate) (*types.RouteDistance, error) {
	ctx, span := otel.Tracer("DistanceClient").Start(ctx, "GetRouteDistance", trace.WithAttributes(
		attribute.Float64("route.from.lat", from.Lat),
		attribute.Float64("route.from.lon", from.Lon),
		attribute.Float64("route.to.lat", to.Lat),
		attribute.Float64("route.to.lon", to.Lon),
	))
	defer span.End()

	path := lonLat(from) + ";" + lonLat(to)
	if cached, found := c.cache.Get(path); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		rd := cached.(types.RouteDistance)
		return &rd, nil
	}

	var resp routeResponse
	if err := api.FetchJSON(ctx, c.httpClient, c.baseURL+"/"+path+"?overview=false", &resp); err != nil {
		c.upstreamFailed(ctx, span, err)
		return nil, err
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		err := fmt.Errorf("%w: osrm answered %q: %s", api.ErrUpstreamUnavailable, resp.Code, resp.Message)
		c.upstreamFailed(ctx, span, err)
		return nil, err
	}

	rd := types.RouteDistance{
		DistanceKm:  round(resp.Routes[0].Distance/1000, 2),
		DurationMin: round(resp.Routes[0].Duration/60, 1),
	}
	c.cache.Set(path, rd, cache.DefaultExpiration)

	span.SetStatus(codes.Ok, "Route computed")
	return &rd, nil
}

func (c *Client) upstreamFailed(ctx context.Context, span trace.Span, err error) {
	c.logger.WarnContext(ctx, "OSRM request failed", slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "Upstream failed")
	if c.metrics != nil {
		c.metrics.UpstreamErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("upstream", "osrm")))
	}
}

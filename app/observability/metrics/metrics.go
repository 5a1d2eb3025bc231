package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryGenerationsTotal metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	RepairedLandmarksTotal    metric.Int64Counter
	UpstreamErrorsTotal       metric.Int64Counter
	DbQueryDurationSeconds    metric.Float64Histogram
	DbQueryErrorsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates every instrument on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ItineraryGenerationsTotal, err = meter.Int64Counter(
		"itinerary_generations_total",
		metric.WithDescription("Itinerary generations by parse outcome"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_generations_total: %w", err)
	}

	m.GenerationDurationSeconds, err = meter.Float64Histogram(
		"itinerary_generation_duration_seconds",
		metric.WithDescription("Duration of the model call behind an itinerary"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_generation_duration_seconds: %w", err)
	}

	m.RepairedLandmarksTotal, err = meter.Int64Counter(
		"itinerary_repaired_landmarks_total",
		metric.WithDescription("Selected landmarks inserted because the model left them out"),
		metric.WithUnit("{landmark}"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_repaired_landmarks_total: %w", err)
	}

	m.UpstreamErrorsTotal, err = meter.Int64Counter(
		"upstream_request_errors_total",
		metric.WithDescription("Failed calls to external APIs"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("upstream_request_errors_total: %w", err)
	}

	m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("db_query_duration_seconds: %w", err)
	}

	m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("db_query_errors_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global instruments once, on the meter of the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("go-trip-planner"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

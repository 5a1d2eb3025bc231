package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNew_RecordsOnProvidedMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.ItineraryGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "ok")))
	m.RepairedLandmarksTotal.Add(ctx, 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			names[md.Name] = true
		}
	}
	assert.True(t, names["itinerary_generations_total"])
	assert.True(t, names["itinerary_repaired_landmarks_total"])
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	if appMetrics != nil {
		t.Skip("metrics already initialized by another test")
	}
	assert.Panics(t, func() { Get() })
}

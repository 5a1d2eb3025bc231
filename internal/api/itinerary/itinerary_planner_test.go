package itinerary

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) string {
	args := m.Called(ctx, prompt)
	return args.String(0)
}

func testMetrics(t *testing.T) *metrics.AppMetrics {
	t.Helper()
	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

func TestPlanner_GenerateItinerary_RepairsFencedOutput(t *testing.T) {
	gen := new(MockGenerator)
	planner := NewPlanner(gen, testMetrics(t), slog.Default())

	req := tokyoRequest(101)
	landmarks := []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}}
	gen.On("Generate", mock.Anything, BuildPrompt(req, landmarks)).
		Return("Sure! Here is your plan:\n```json\n" + tokyoModelOutput + "\n```").Once()

	title, jsonText := planner.GenerateItinerary(context.Background(), req, landmarks)

	assert.Equal(t, "Tokyo in Two Days", title)
	d := decode(t, jsonText)
	assertInvariants(t, d, req)
	assert.Equal(t, "Tokyo Tower", d.DailyPlan[0].Landmarks[2].Name)
	gen.AssertExpectations(t)
}

func TestPlanner_Plan_AuditFields(t *testing.T) {
	gen := new(MockGenerator)
	planner := NewPlanner(gen, testMetrics(t), slog.Default())
	req := tokyoRequest(101)
	gen.On("Generate", mock.Anything, mock.Anything).Return(tokyoModelOutput).Once()

	res := planner.Plan(context.Background(), req, []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}})

	assert.Equal(t, ParseStatusOK, res.ParseStatus)
	assert.Equal(t, 1, res.InsertedLandmarks)
	assert.Equal(t, tokyoModelOutput, res.RawResponse)
	assert.Contains(t, res.Prompt, `- id: 101, name: "Tokyo Tower"`)
}

func TestPlanner_GenerateItinerary_FallsBackOnUnusableOutput(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantText   string
		wantStatus string
	}{
		{name: "prose", raw: "sorry, error", wantText: "sorry, error", wantStatus: string(InvalidJSON)},
		{name: "placeholder", raw: "An error occurred while calling the Gemini API: timeout", wantText: "An error occurred while calling the Gemini API: timeout", wantStatus: string(InvalidJSON)},
		{name: "fenced wrong shape", raw: "```json\n{\"overview\":{}}\n```", wantText: `{"overview":{}}`, wantStatus: string(SchemaMismatch)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			planner := NewPlanner(gen, nil, slog.Default())
			gen.On("Generate", mock.Anything, mock.Anything).Return(tt.raw).Once()

			res := planner.Plan(context.Background(), tokyoRequest(), nil)

			assert.Equal(t, DefaultTitle, res.Title)
			assert.Equal(t, tt.wantText, res.JSONText)
			assert.Equal(t, tt.wantStatus, res.ParseStatus)
			assert.Zero(t, res.InsertedLandmarks)
		})
	}
}

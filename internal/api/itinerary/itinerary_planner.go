package itinerary

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// ParseStatusOK marks a generation whose output was validated and stored canonically.
const ParseStatusOK = "ok"

// TextGenerator turns a prompt into model text. Implementations report
// failures through placeholder text, never through an error.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// GenerationResult is the outcome of one pipeline run plus the data the
// audit log keeps about it.
type GenerationResult struct {
	Title             string
	JSONText          string
	Prompt            string
	RawResponse       string
	ParseStatus       string
	InsertedLandmarks int
	Latency           time.Duration
}

// Planner runs prompt construction, generation, extraction and repair.
// It holds no per-request state.
type Planner struct {
	generator TextGenerator
	metrics   *metrics.AppMetrics
	logger    *slog.Logger
}

func NewPlanner(generator TextGenerator, m *metrics.AppMetrics, logger *slog.Logger) *Planner {
	return &Planner{
		generator: generator,
		metrics:   m,
		logger:    logger.With(slog.String("component", "Planner")),
	}
}

// GenerateItinerary returns a title and the JSON text to store. It never
// fails: unusable model output comes back as DefaultTitle plus the extracted
// text so the caller can still persist something.
func (p *Planner) GenerateItinerary(ctx context.Context, req types.TripRequest, landmarks []types.LandmarkRef) (string, string) {
	res := p.Plan(ctx, req, landmarks)
	return res.Title, res.JSONText
}

// Plan is GenerateItinerary with the audit details kept.
func (p *Planner) Plan(ctx context.Context, req types.TripRequest, landmarks []types.LandmarkRef) GenerationResult {
	ctx, span := otel.Tracer("Planner").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("trip.country_code", req.CountryCode),
		attribute.String("trip.region_code", req.RegionCode),
		attribute.Int("trip.days", req.DayCount),
		attribute.Int("trip.selected_landmarks", len(req.SelectedLandmarkIDs)),
	))
	defer span.End()

	l := p.logger.With(slog.String("country", req.CountryCode), slog.String("region", req.RegionCode))

	prompt := BuildPrompt(req, landmarks)
	start := time.Now()
	raw := p.generator.Generate(ctx, prompt)
	latency := time.Since(start)
	jsonText := ExtractJSONText(raw)

	res := GenerationResult{
		Prompt:      prompt,
		RawResponse: raw,
		Latency:     latency,
	}

	out, err := parseAndRepair(jsonText, req, landmarks)
	if err != nil {
		kind, ok := FailureKind(err)
		status := string(kind)
		if !ok {
			status = "error"
		}
		l.WarnContext(ctx, "Model output unusable, storing extracted text",
			slog.String("parse_status", status),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetAttributes(attribute.String("itinerary.parse_status", status))

		res.Title = DefaultTitle
		res.JSONText = jsonText
		res.ParseStatus = status
		p.record(ctx, res)
		return res
	}

	if out.inserted > 0 {
		l.InfoContext(ctx, "Inserted selected landmarks the model left out", slog.Int("inserted", out.inserted))
	}
	span.SetAttributes(
		attribute.String("itinerary.parse_status", ParseStatusOK),
		attribute.Int("itinerary.inserted_landmarks", out.inserted),
	)

	res.Title = out.title
	res.JSONText = out.canonical
	res.ParseStatus = ParseStatusOK
	res.InsertedLandmarks = out.inserted
	p.record(ctx, res)
	return res
}

func (p *Planner) record(ctx context.Context, res GenerationResult) {
	if p.metrics == nil {
		return
	}
	p.metrics.ItineraryGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", res.ParseStatus)))
	p.metrics.GenerationDurationSeconds.Record(ctx, res.Latency.Seconds())
	if res.InsertedLandmarks > 0 {
		p.metrics.RepairedLandmarksTotal.Add(ctx, int64(res.InsertedLandmarks))
	}
}

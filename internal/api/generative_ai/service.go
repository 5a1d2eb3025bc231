package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/config"
)

const (
	defaultModel   = "gemini-2.5-flash-lite"
	defaultTimeout = 60 * time.Second

	// PlaceholderMissingKey is returned by Generate when no API key is configured.
	PlaceholderMissingKey = "The GOOGLE_API_KEY is not configured on the server, so an AI answer could not be generated."
	placeholderFailure    = "An error occurred while calling the Gemini API: %v"
)

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// contentGenerator is the subset of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type AIClient struct {
	models      contentGenerator
	model       string
	temperature float32
	timeout     time.Duration
	logger      *slog.Logger
}

// NewAIClient builds a Gemini client from explicit configuration. A missing
// API key is not an error: the client is created and answers every call with
// a placeholder.
func NewAIClient(ctx context.Context, cfg config.GenAIConfig, logger *slog.Logger) (*AIClient, error) {
	ai := newAIClient(nil, cfg, logger)
	if cfg.APIKey == "" {
		logger.WarnContext(ctx, "Gemini API key missing, generation will return placeholders")
		return ai, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	ai.models = client.Models
	return ai, nil
}

func newAIClient(models contentGenerator, cfg config.GenAIConfig, logger *slog.Logger) *AIClient {
	ai := &AIClient{
		models:      models,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger.With(slog.String("component", "AIClient")),
	}
	if ai.model == "" {
		ai.model = defaultModel
	}
	if ai.timeout <= 0 {
		ai.timeout = defaultTimeout
	}
	return ai
}

// Model returns the model name used for every call.
func (ai *AIClient) Model() string {
	return ai.model
}

// Generate sends prompt to the model and returns its text. It never fails:
// when the key is missing or the call errors, a human-readable placeholder
// is returned instead of the model output.
func (ai *AIClient) Generate(ctx context.Context, prompt string) string {
	text, err := ai.GenerateContent(ctx, prompt)
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return PlaceholderMissingKey
	case err != nil:
		return fmt.Sprintf(placeholderFailure, err)
	}
	return text
}

// GenerateContent performs a single generation call and reports failures.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("AIClient").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.String("gen_ai.system", "gemini"),
		attribute.String("gen_ai.request.model", ai.model),
		attribute.Int("gen_ai.prompt.length", len(prompt)),
	))
	defer span.End()

	if ai.models == nil {
		span.SetStatus(codes.Error, "API key missing")
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, ai.timeout)
	defer cancel()

	start := time.Now()
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](ai.temperature)}
	result, err := ai.models.GenerateContent(ctx, ai.model, genai.Text(prompt), cfg)
	if err != nil {
		ai.logger.ErrorContext(ctx, "Gemini call failed", slog.Any("error", err), slog.Duration("latency", time.Since(start)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gemini call failed")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if result == nil {
		return "", nil
	}

	text := result.Text()
	ai.logger.DebugContext(ctx, "Gemini call completed",
		slog.Duration("latency", time.Since(start)),
		slog.Int("response_length", len(text)))
	span.SetAttributes(attribute.Int("gen_ai.response.length", len(text)))
	span.SetStatus(codes.Ok, "")
	return text, nil
}

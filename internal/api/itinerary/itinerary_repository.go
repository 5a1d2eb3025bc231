package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists generated itineraries and the audit of their generation.
type Repository interface {
	// SaveItinerary stores the itinerary and its interaction in one transaction.
	SaveItinerary(ctx context.Context, it types.Itinerary, interaction types.LlmInteraction) (*types.Itinerary, error)
	GetItinerary(ctx context.Context, id int64) (*types.Itinerary, error)
	ListItineraries(ctx context.Context, filter types.ItineraryFilter) ([]types.Itinerary, error)
}

type RepositoryImpl struct {
	logger  *slog.Logger
	pgpool  database.DB
	metrics *metrics.AppMetrics
}

func NewRepository(pool database.DB, m *metrics.AppMetrics, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger:  logger,
		pgpool:  pool,
		metrics: m,
	}
}

const itineraryColumns = `id, country_code, region_code, days, start_date, theme,
        selected_landmark_ids, title, ai_summary, created_at`

func (r *RepositoryImpl) SaveItinerary(ctx context.Context, it types.Itinerary, interaction types.LlmInteraction) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryRepository").Start(ctx, "SaveItinerary", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "itineraries, llm_interactions"),
	))
	defer span.End()
	defer r.observe(ctx, "SaveItinerary", time.Now())

	l := r.logger.With(slog.String("method", "SaveItinerary"))

	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		r.failed(ctx, "SaveItinerary")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			l.WarnContext(ctx, "Rollback failed", slog.Any("error", err))
		}
	}()

	query := `
        INSERT INTO itineraries (
            country_code, region_code, days, start_date, theme,
            selected_landmark_ids, title, ai_summary
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`

	saved := it
	err = tx.QueryRow(ctx, query,
		it.CountryCode, it.RegionCode, it.Days, it.StartDate, it.Theme,
		types.JoinLandmarkIDs(it.SelectedLandmarkIDs), it.Title, it.AISummary,
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT itinerary failed")
		r.failed(ctx, "SaveItinerary")
		return nil, fmt.Errorf("database error inserting itinerary: %w", err)
	}

	interactionQuery := `
        INSERT INTO llm_interactions (
            itinerary_id, prompt, response_text, model_used,
            parse_status, inserted_landmarks, latency_ms
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`

	var interactionID uuid.UUID
	err = tx.QueryRow(ctx, interactionQuery,
		saved.ID, interaction.Prompt, interaction.ResponseText, interaction.ModelUsed,
		interaction.ParseStatus, interaction.InsertedLandmarks, interaction.LatencyMs,
	).Scan(&interactionID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert llm interaction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT llm_interactions failed")
		r.failed(ctx, "SaveItinerary")
		return nil, fmt.Errorf("database error inserting llm interaction: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		span.RecordError(err)
		r.failed(ctx, "SaveItinerary")
		return nil, fmt.Errorf("failed to commit itinerary: %w", err)
	}

	l.InfoContext(ctx, "Itinerary saved",
		slog.Int64("itinerary_id", saved.ID),
		slog.String("interaction_id", interactionID.String()))
	span.SetAttributes(attribute.Int64("app.itinerary.id", saved.ID))
	span.SetStatus(codes.Ok, "Itinerary saved")
	return &saved, nil
}

func (r *RepositoryImpl) GetItinerary(ctx context.Context, id int64) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryRepository").Start(ctx, "GetItinerary", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "itineraries"),
		attribute.Int64("app.itinerary.id", id),
	))
	defer span.End()
	defer r.observe(ctx, "GetItinerary", time.Now())

	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = $1`

	it, err := scanItinerary(r.pgpool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "Itinerary not found")
		return nil, fmt.Errorf("itinerary %d: %w", id, api.ErrNotFound)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to fetch itinerary", slog.Int64("id", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		r.failed(ctx, "GetItinerary")
		return nil, fmt.Errorf("database error fetching itinerary: %w", err)
	}

	span.SetStatus(codes.Ok, "Itinerary fetched")
	return it, nil
}

func (r *RepositoryImpl) ListItineraries(ctx context.Context, filter types.ItineraryFilter) ([]types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryRepository").Start(ctx, "ListItineraries", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "itineraries"),
	))
	defer span.End()
	defer r.observe(ctx, "ListItineraries", time.Now())

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
        SELECT ` + itineraryColumns + `
        FROM itineraries
        WHERE ($1 = '' OR country_code = $1)
          AND ($2 = '' OR region_code = $2)
        ORDER BY created_at DESC, id DESC
        LIMIT $3`

	rows, err := r.pgpool.Query(ctx, query, filter.CountryCode, filter.RegionCode, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query itineraries", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		r.failed(ctx, "ListItineraries")
		return nil, fmt.Errorf("database error listing itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := []types.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning itinerary: %w", err)
		}
		itineraries = append(itineraries, *it)
	}
	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading itineraries: %w", err)
	}

	span.SetStatus(codes.Ok, "Itineraries listed")
	return itineraries, nil
}

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var it types.Itinerary
	var selected string
	err := row.Scan(
		&it.ID, &it.CountryCode, &it.RegionCode, &it.Days, &it.StartDate, &it.Theme,
		&selected, &it.Title, &it.AISummary, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.SelectedLandmarkIDs, err = types.ParseLandmarkIDs(selected)
	if err != nil {
		return nil, fmt.Errorf("itinerary %d: %w", it.ID, err)
	}
	return &it, nil
}

func (r *RepositoryImpl) observe(ctx context.Context, op string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("db.operation", op)))
}

func (r *RepositoryImpl) failed(ctx context.Context, op string) {
	if r.metrics == nil {
		return
	}
	r.metrics.DbQueryErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("db.operation", op)))
}

package landmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	ListLandmarks(ctx context.Context, filter types.LandmarkFilter) ([]types.Landmark, error)
	GetLandmark(ctx context.Context, id int64) (*types.Landmark, error)
	CreateLandmark(ctx context.Context, in types.LandmarkCreate) (*types.Landmark, error)
	UpdateLandmark(ctx context.Context, id int64, in types.LandmarkUpdate) (*types.Landmark, error)
	DeleteLandmark(ctx context.Context, id int64) error
	// GetLandmarkRefs returns id and name of every existing id; unknown ids are skipped.
	GetLandmarkRefs(ctx context.Context, ids []int64) ([]types.LandmarkRef, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool database.DB
}

func NewRepository(pool database.DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pool,
	}
}

const landmarkColumns = `id, country_code, region_code, name, description, theme,
        image_url, latitude, longitude, created_at`

func scanLandmark(row pgx.Row) (*types.Landmark, error) {
	var lm types.Landmark
	err := row.Scan(&lm.ID, &lm.CountryCode, &lm.RegionCode, &lm.Name, &lm.Description, &lm.Theme,
		&lm.ImageURL, &lm.Latitude, &lm.Longitude, &lm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &lm, nil
}

func (r *RepositoryImpl) ListLandmarks(ctx context.Context, filter types.LandmarkFilter) ([]types.Landmark, error) {
	ctx, span := otel.Tracer("LandmarkRepository").Start(ctx, "ListLandmarks", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "landmarks"),
		attribute.String("filter.country_code", filter.CountryCode),
		attribute.String("filter.region_code", filter.RegionCode),
	))
	defer span.End()

	query := `
        SELECT ` + landmarkColumns + `
        FROM landmarks
        WHERE ($1 = '' OR country_code = $1)
          AND ($2 = '' OR region_code = $2)
        ORDER BY id`

	rows, err := r.pgpool.Query(ctx, query, filter.CountryCode, filter.RegionCode)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query landmarks", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error listing landmarks: %w", err)
	}
	defer rows.Close()

	landmarks := []types.Landmark{}
	for rows.Next() {
		lm, err := scanLandmark(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning landmark: %w", err)
		}
		landmarks = append(landmarks, *lm)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading landmarks: %w", err)
	}

	span.SetStatus(codes.Ok, "Landmarks listed")
	return landmarks, nil
}

func (r *RepositoryImpl) GetLandmark(ctx context.Context, id int64) (*types.Landmark, error) {
	ctx, span := otel.Tracer("LandmarkRepository").Start(ctx, "GetLandmark", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.Int64("app.landmark.id", id),
	))
	defer span.End()

	lm, err := scanLandmark(r.pgpool.QueryRow(ctx, `SELECT `+landmarkColumns+` FROM landmarks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "Landmark not found")
		return nil, fmt.Errorf("landmark %d: %w", id, api.ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching landmark: %w", err)
	}
	return lm, nil
}

func (r *RepositoryImpl) CreateLandmark(ctx context.Context, in types.LandmarkCreate) (*types.Landmark, error) {
	ctx, span := otel.Tracer("LandmarkRepository").Start(ctx, "CreateLandmark", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
	))
	defer span.End()

	query := `
        INSERT INTO landmarks (country_code, region_code, name, description, theme, image_url, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + landmarkColumns

	lm, err := scanLandmark(r.pgpool.QueryRow(ctx, query,
		in.CountryCode, in.RegionCode, in.Name, in.Description, in.Theme, in.ImageURL, in.Latitude, in.Longitude))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert landmark", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error inserting landmark: %w", err)
	}
	span.SetAttributes(attribute.Int64("app.landmark.id", lm.ID))
	span.SetStatus(codes.Ok, "Landmark created")
	return lm, nil
}

// UpdateLandmark applies the non-nil fields of in. An update with no fields
// returns the landmark unchanged.
func (r *RepositoryImpl) UpdateLandmark(ctx context.Context, id int64, in types.LandmarkUpdate) (*types.Landmark, error) {
	ctx, span := otel.Tracer("LandmarkRepository").Start(ctx, "UpdateLandmark", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.Int64("app.landmark.id", id),
	))
	defer span.End()

	var setClauses []string
	var args []any
	argID := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if in.Name != nil {
		set("name", *in.Name)
	}
	if in.Description != nil {
		set("description", *in.Description)
	}
	if in.Theme != nil {
		set("theme", *in.Theme)
	}
	if in.ImageURL != nil {
		set("image_url", *in.ImageURL)
	}
	if in.Latitude != nil {
		set("latitude", *in.Latitude)
	}
	if in.Longitude != nil {
		set("longitude", *in.Longitude)
	}

	if len(setClauses) == 0 {
		return r.GetLandmark(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE landmarks SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, landmarkColumns)

	lm, err := scanLandmark(r.pgpool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "Landmark not found")
		return nil, fmt.Errorf("landmark %d: %w", id, api.ErrNotFound)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update landmark", slog.Int64("id", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating landmark: %w", err)
	}
	span.SetStatus(codes.Ok, "Landmark updated")
	return lm, nil
}

func (r *RepositoryImpl) DeleteLandmark(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("LandmarkRepository").Start(ctx, "DeleteLandmark", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.Int64("app.landmark.id", id),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx, `DELETE FROM landmarks WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error deleting landmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Landmark not found")
		return fmt.Errorf("landmark %d: %w", id, api.ErrNotFound)
	}
	span.SetStatus(codes.Ok, "Landmark deleted")
	return nil
}

func (r *RepositoryImpl) GetLandmarkRefs(ctx context.Context, ids []int64) ([]types.LandmarkRef, error) {
	ctx, span := otel.Tracer("LandmarkRepository").Start(ctx, "GetLandmarkRefs", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.Int("app.landmark.requested", len(ids)),
	))
	defer span.End()

	refs := []types.LandmarkRef{}
	if len(ids) == 0 {
		return refs, nil
	}

	rows, err := r.pgpool.Query(ctx, `SELECT id, name FROM landmarks WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load landmark refs", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error loading landmark refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref types.LandmarkRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning landmark ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading landmark refs: %w", err)
	}

	span.SetAttributes(attribute.Int("app.landmark.found", len(refs)))
	return refs, nil
}

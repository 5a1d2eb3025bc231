package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository reads and loads the country-specific recommendation tables.
type Repository interface {
	ListJapanRestaurants(ctx context.Context, regionCode string) ([]types.JapanRestaurant, error)
	ListThailandActivities(ctx context.Context, regionCode string) ([]types.ThailandActivity, error)
	ListUKMuseums(ctx context.Context, regionCode string) ([]types.UKMuseum, error)

	InsertJapanRestaurant(ctx context.Context, r types.JapanRestaurant) (int64, error)
	InsertThailandActivity(ctx context.Context, a types.ThailandActivity) (int64, error)
	InsertUKMuseum(ctx context.Context, m types.UKMuseum) (int64, error)
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

func startSpan(ctx context.Context, op, table string) (context.Context, trace.Span) {
	return otel.Tracer("CatalogRepository").Start(ctx, op, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", table),
	))
}

// listRows runs query with regionCode (empty matches every region) and scans
// each row with scan.
func listRows[T any](ctx context.Context, r *RepositoryImpl, op, table, query, regionCode string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	ctx, span := startSpan(ctx, op, table)
	defer span.End()

	rows, err := r.pgpool.Query(ctx, query, regionCode)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query "+table, slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error querying %s: %w", table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning %s: %w", table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading %s: %w", table, err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(out)))
	span.SetStatus(codes.Ok, "Rows listed")
	return out, nil
}

func (r *RepositoryImpl) ListJapanRestaurants(ctx context.Context, regionCode string) ([]types.JapanRestaurant, error) {
	query := `
        SELECT id, region_code, name, rating, latitude, longitude, signature_menu, opening_hours
        FROM japan_restaurants
        WHERE ($1 = '' OR region_code = $1)
        ORDER BY rating DESC, id`
	return listRows(ctx, r, "ListJapanRestaurants", "japan_restaurants", query, regionCode,
		func(rows pgx.Rows) (types.JapanRestaurant, error) {
			var jr types.JapanRestaurant
			err := rows.Scan(&jr.ID, &jr.RegionCode, &jr.Name, &jr.Rating, &jr.Latitude, &jr.Longitude,
				&jr.SignatureMenu, &jr.OpeningHours)
			return jr, err
		})
}

func (r *RepositoryImpl) ListThailandActivities(ctx context.Context, regionCode string) ([]types.ThailandActivity, error) {
	query := `
        SELECT id, region_code, name, description
        FROM thailand_activities
        WHERE ($1 = '' OR region_code = $1)
        ORDER BY id`
	return listRows(ctx, r, "ListThailandActivities", "thailand_activities", query, regionCode,
		func(rows pgx.Rows) (types.ThailandActivity, error) {
			var a types.ThailandActivity
			err := rows.Scan(&a.ID, &a.RegionCode, &a.Name, &a.Description)
			return a, err
		})
}

func (r *RepositoryImpl) ListUKMuseums(ctx context.Context, regionCode string) ([]types.UKMuseum, error) {
	query := `
        SELECT id, region_code, name, opening_info, description
        FROM uk_museums
        WHERE ($1 = '' OR region_code = $1)
        ORDER BY id`
	return listRows(ctx, r, "ListUKMuseums", "uk_museums", query, regionCode,
		func(rows pgx.Rows) (types.UKMuseum, error) {
			var m types.UKMuseum
			err := rows.Scan(&m.ID, &m.RegionCode, &m.Name, &m.OpeningInfo, &m.Description)
			return m, err
		})
}

func (r *RepositoryImpl) insertReturningID(ctx context.Context, op, table, query string, args ...any) (int64, error) {
	ctx, span := startSpan(ctx, op, table)
	defer span.End()

	var id int64
	if err := r.pgpool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert into "+table, slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return 0, fmt.Errorf("database error inserting into %s: %w", table, err)
	}
	span.SetStatus(codes.Ok, "Row inserted")
	return id, nil
}

func (r *RepositoryImpl) InsertJapanRestaurant(ctx context.Context, jr types.JapanRestaurant) (int64, error) {
	query := `
        INSERT INTO japan_restaurants (region_code, name, rating, latitude, longitude, signature_menu, opening_hours)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`
	return r.insertReturningID(ctx, "InsertJapanRestaurant", "japan_restaurants", query,
		jr.RegionCode, jr.Name, jr.Rating, jr.Latitude, jr.Longitude, jr.SignatureMenu, jr.OpeningHours)
}

func (r *RepositoryImpl) InsertThailandActivity(ctx context.Context, a types.ThailandActivity) (int64, error) {
	query := `
        INSERT INTO thailand_activities (region_code, name, description)
        VALUES ($1, $2, $3)
        RETURNING id`
	return r.insertReturningID(ctx, "InsertThailandActivity", "thailand_activities", query,
		a.RegionCode, a.Name, a.Description)
}

func (r *RepositoryImpl) InsertUKMuseum(ctx context.Context, m types.UKMuseum) (int64, error) {
	query := `
        INSERT INTO uk_museums (region_code, name, opening_info, description)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.insertReturningID(ctx, "InsertUKMuseum", "uk_museums", query,
		m.RegionCode, m.Name, m.OpeningInfo, m.Description)
}

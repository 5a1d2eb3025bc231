package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// ImportKind selects the table an import file feeds.
type ImportKind string

const (
	ImportLandmarks          ImportKind = "landmarks"
	ImportJapanRestaurants   ImportKind = "japan_restaurants"
	ImportThailandActivities ImportKind = "thailand_activities"
	ImportUKMuseums          ImportKind = "uk_museums"
)

// LandmarkCreator is the slice of the landmark service the importer needs.
type LandmarkCreator interface {
	CreateLandmark(ctx context.Context, in types.LandmarkCreate) (*types.Landmark, error)
}

// Importer loads header-addressed CSV files through the repositories.
type Importer struct {
	repo      Repository
	landmarks LandmarkCreator
	logger    *slog.Logger
}

func NewImporter(repo Repository, landmarks LandmarkCreator, logger *slog.Logger) *Importer {
	return &Importer{repo: repo, landmarks: landmarks, logger: logger}
}

type csvRow map[string]string

func (r csvRow) float(col string) (float64, error) {
	v := strings.TrimSpace(r[col])
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, api.ErrInvalidInput)
	}
	return f, nil
}

// Import reads every row of src and returns the number of rows stored. The
// first malformed or rejected row stops the import.
func (im *Importer) Import(ctx context.Context, kind ImportKind, src io.Reader) (int, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	count := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(csvRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		if err := im.importRow(ctx, kind, row); err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		count++
	}

	im.logger.InfoContext(ctx, "Catalog import finished", slog.String("kind", string(kind)), slog.Int("rows", count))
	return count, nil
}

func (im *Importer) importRow(ctx context.Context, kind ImportKind, row csvRow) error {
	switch kind {
	case ImportLandmarks:
		lat, err := row.float("lat")
		if err != nil {
			return err
		}
		lng, err := row.float("lng")
		if err != nil {
			return err
		}
		_, err = im.landmarks.CreateLandmark(ctx, types.LandmarkCreate{
			CountryCode: row["country_code"],
			RegionCode:  row["region_code"],
			Name:        row["name"],
			Description: row["description"],
			Theme:       row["theme"],
			ImageURL:    row["image_url"],
			Latitude:    lat,
			Longitude:   lng,
		})
		return err

	case ImportJapanRestaurants:
		rating, err := row.float("rating")
		if err != nil {
			return err
		}
		lat, err := row.float("lat")
		if err != nil {
			return err
		}
		lng, err := row.float("lng")
		if err != nil {
			return err
		}
		_, err = im.repo.InsertJapanRestaurant(ctx, types.JapanRestaurant{
			RegionCode:    strings.ToLower(row["region"]),
			Name:          row["name"],
			Rating:        rating,
			Latitude:      lat,
			Longitude:     lng,
			SignatureMenu: row["signature_menu"],
			OpeningHours:  row["opening_hours"],
		})
		return err

	case ImportThailandActivities:
		_, err := im.repo.InsertThailandActivity(ctx, types.ThailandActivity{
			RegionCode:  strings.ToLower(row["region"]),
			Name:        row["name"],
			Description: row["description"],
		})
		return err

	case ImportUKMuseums:
		_, err := im.repo.InsertUKMuseum(ctx, types.UKMuseum{
			RegionCode:  strings.ToLower(row["region"]),
			Name:        row["name"],
			OpeningInfo: row["opening_info"],
			Description: row["description"],
		})
		return err
	}
	return fmt.Errorf("unknown import kind %q: %w", kind, api.ErrInvalidInput)
}

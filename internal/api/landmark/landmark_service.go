package landmark

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/catalog"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListLandmarks(ctx context.Context, filter types.LandmarkFilter) ([]types.Landmark, error)
	GetLandmark(ctx context.Context, id int64) (*types.Landmark, error)
	CreateLandmark(ctx context.Context, in types.LandmarkCreate) (*types.Landmark, error)
	UpdateLandmark(ctx context.Context, id int64, in types.LandmarkUpdate) (*types.Landmark, error)
	DeleteLandmark(ctx context.Context, id int64) error
	GetLandmarkRefs(ctx context.Context, ids []int64) ([]types.LandmarkRef, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) ListLandmarks(ctx context.Context, filter types.LandmarkFilter) ([]types.Landmark, error) {
	filter.CountryCode = strings.ToUpper(strings.TrimSpace(filter.CountryCode))
	filter.RegionCode = strings.ToLower(strings.TrimSpace(filter.RegionCode))
	return s.repo.ListLandmarks(ctx, filter)
}

func (s *ServiceImpl) GetLandmark(ctx context.Context, id int64) (*types.Landmark, error) {
	return s.repo.GetLandmark(ctx, id)
}

func (s *ServiceImpl) CreateLandmark(ctx context.Context, in types.LandmarkCreate) (*types.Landmark, error) {
	in.CountryCode = strings.ToUpper(strings.TrimSpace(in.CountryCode))
	in.RegionCode = strings.ToLower(strings.TrimSpace(in.RegionCode))
	in.Name = strings.TrimSpace(in.Name)

	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", api.ErrInvalidInput)
	}
	if _, ok := catalog.FindRegion(in.CountryCode, in.RegionCode); !ok {
		return nil, fmt.Errorf("unknown region %s/%s: %w", in.CountryCode, in.RegionCode, api.ErrInvalidInput)
	}
	if err := validateCoordinates(&in.Latitude, &in.Longitude); err != nil {
		return nil, err
	}

	lm, err := s.repo.CreateLandmark(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Landmark created", slog.Int64("landmark_id", lm.ID), slog.String("name", lm.Name))
	return lm, nil
}

func (s *ServiceImpl) UpdateLandmark(ctx context.Context, id int64, in types.LandmarkUpdate) (*types.Landmark, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be blank: %w", api.ErrInvalidInput)
		}
		in.Name = &name
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	return s.repo.UpdateLandmark(ctx, id, in)
}

func (s *ServiceImpl) DeleteLandmark(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLandmark(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Landmark deleted", slog.Int64("landmark_id", id))
	return nil
}

func (s *ServiceImpl) GetLandmarkRefs(ctx context.Context, ids []int64) ([]types.LandmarkRef, error) {
	return s.repo.GetLandmarkRefs(ctx, ids)
}

func validateCoordinates(lat, lon *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("lat must be within [-90, 90]: %w", api.ErrInvalidInput)
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("lng must be within [-180, 180]: %w", api.ErrInvalidInput)
	}
	return nil
}

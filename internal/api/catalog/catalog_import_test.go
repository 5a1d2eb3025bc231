package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockLandmarkCreator struct {
	mock.Mock
}

func (m *MockLandmarkCreator) CreateLandmark(ctx context.Context, in types.LandmarkCreate) (*types.Landmark, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Landmark), args.Error(1)
}

func TestImporter_Landmarks(t *testing.T) {
	creator := new(MockLandmarkCreator)
	im := NewImporter(new(MockRepository), creator, slog.Default())

	src := "name,country_code,region_code,lat,lng,theme\n" +
		"Senso-ji,JP,tokyo,35.7148,139.7967,culture\n" +
		"Wat Arun, TH, bangkok,13.7437,100.4888,\n"

	creator.On("CreateLandmark", mock.Anything, types.LandmarkCreate{
		CountryCode: "JP", RegionCode: "tokyo", Name: "Senso-ji", Theme: "culture",
		Latitude: 35.7148, Longitude: 139.7967,
	}).Return(&types.Landmark{ID: 1}, nil).Once()
	creator.On("CreateLandmark", mock.Anything, types.LandmarkCreate{
		CountryCode: "TH", RegionCode: "bangkok", Name: "Wat Arun",
		Latitude: 13.7437, Longitude: 100.4888,
	}).Return(&types.Landmark{ID: 2}, nil).Once()

	n, err := im.Import(context.Background(), ImportLandmarks, strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	creator.AssertExpectations(t)
}

func TestImporter_JapanRestaurants_LowercasesRegion(t *testing.T) {
	repo := new(MockRepository)
	im := NewImporter(repo, new(MockLandmarkCreator), slog.Default())

	repo.On("InsertJapanRestaurant", mock.Anything, types.JapanRestaurant{
		RegionCode: "osaka", Name: "Kiji", Rating: 4.3, Latitude: 34.70, Longitude: 135.49,
		SignatureMenu: "okonomiyaki",
	}).Return(int64(5), nil).Once()

	n, err := im.Import(context.Background(), ImportJapanRestaurants,
		strings.NewReader("region,name,rating,lat,lng,signature_menu\nOsaka,Kiji,4.3,34.70,135.49,okonomiyaki\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
}

func TestImporter_StopsAtFirstBadRow(t *testing.T) {
	repo := new(MockRepository)
	im := NewImporter(repo, new(MockLandmarkCreator), slog.Default())

	repo.On("InsertUKMuseum", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	repo.On("InsertUKMuseum", mock.Anything, mock.Anything).Return(int64(0), errors.New("duplicate key")).Once()

	n, err := im.Import(context.Background(), ImportUKMuseums,
		strings.NewReader("region,name\nlondon,British Museum\nlondon,British Museum\nedinburgh,National Museum\n"))
	assert.ErrorContains(t, err, "line 3")
	assert.Equal(t, 1, n)
	repo.AssertNumberOfCalls(t, "InsertUKMuseum", 2)
}

func TestImporter_RejectsBadInput(t *testing.T) {
	im := NewImporter(new(MockRepository), new(MockLandmarkCreator), slog.Default())

	_, err := im.Import(context.Background(), ImportJapanRestaurants,
		strings.NewReader("region,name,rating\ntokyo,Sushi Dai,five\n"))
	assert.ErrorIs(t, err, api.ErrInvalidInput)

	_, err = im.Import(context.Background(), ImportKind("hotels"), strings.NewReader("name\nRitz\n"))
	assert.ErrorIs(t, err, api.ErrInvalidInput)

	_, err = im.Import(context.Background(), ImportThailandActivities, strings.NewReader(""))
	assert.Error(t, err)
}

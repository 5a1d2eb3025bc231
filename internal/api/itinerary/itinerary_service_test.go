package itinerary

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveItinerary(ctx context.Context, it types.Itinerary, interaction types.LlmInteraction) (*types.Itinerary, error) {
	args := m.Called(ctx, it, interaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockRepository) GetItinerary(ctx context.Context, id int64) (*types.Itinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockRepository) ListItineraries(ctx context.Context, filter types.ItineraryFilter) ([]types.Itinerary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Itinerary), args.Error(1)
}

type MockLandmarkLookup struct {
	mock.Mock
}

func (m *MockLandmarkLookup) GetLandmarkRefs(ctx context.Context, ids []int64) ([]types.LandmarkRef, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.LandmarkRef), args.Error(1)
}

type MockExtrasProvider struct {
	mock.Mock
}

func (m *MockExtrasProvider) GetCountryExtras(ctx context.Context, countryCode, regionCode string) (types.CountryExtras, error) {
	args := m.Called(ctx, countryCode, regionCode)
	return args.Get(0).(types.CountryExtras), args.Error(1)
}

type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) GetForecast(ctx context.Context, lat, lon float64, start, end time.Time) (*types.WeatherForecast, error) {
	args := m.Called(ctx, lat, lon, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WeatherForecast), args.Error(1)
}

type serviceDeps struct {
	repo      *MockRepository
	gen       *MockGenerator
	landmarks *MockLandmarkLookup
	extras    *MockExtrasProvider
	forecast  *MockForecastProvider
}

func newTestService(t *testing.T) (*ServiceImpl, serviceDeps) {
	t.Helper()
	deps := serviceDeps{
		repo:      new(MockRepository),
		gen:       new(MockGenerator),
		landmarks: new(MockLandmarkLookup),
		extras:    new(MockExtrasProvider),
		forecast:  new(MockForecastProvider),
	}
	planner := NewPlanner(deps.gen, testMetrics(t), slog.Default())
	svc := NewService(deps.repo, planner, deps.landmarks, deps.extras, deps.forecast, "gemini-test", slog.Default())
	return svc, deps
}

func TestValidateTripRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     types.TripRequest
		wantErr bool
	}{
		{name: "valid", req: types.TripRequest{CountryCode: "jp", RegionCode: "Tokyo", DayCount: 3}},
		{name: "valid with date", req: types.TripRequest{CountryCode: "UK", RegionCode: "london", DayCount: 1, StartDate: "2026-05-01"}},
		{name: "missing country", req: types.TripRequest{RegionCode: "tokyo", DayCount: 3}, wantErr: true},
		{name: "unknown region", req: types.TripRequest{CountryCode: "JP", RegionCode: "london", DayCount: 3}, wantErr: true},
		{name: "zero days", req: types.TripRequest{CountryCode: "JP", RegionCode: "tokyo"}, wantErr: true},
		{name: "too many days", req: types.TripRequest{CountryCode: "JP", RegionCode: "tokyo", DayCount: MaxTripDays + 1}, wantErr: true},
		{name: "bad date", req: types.TripRequest{CountryCode: "JP", RegionCode: "tokyo", DayCount: 2, StartDate: "01/05/2026"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := ValidateTripRequest(&req)
			if tt.wantErr {
				assert.ErrorIs(t, err, api.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}

	req := types.TripRequest{CountryCode: " jp ", RegionCode: "TOKYO", DayCount: 1}
	require.NoError(t, ValidateTripRequest(&req))
	assert.Equal(t, "JP", req.CountryCode)
	assert.Equal(t, "tokyo", req.RegionCode)
}

func TestService_CreateItinerary(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()
	req := tokyoRequest(101)
	refs := []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}}

	deps.landmarks.On("GetLandmarkRefs", mock.Anything, []int64{101}).Return(refs, nil).Once()
	deps.gen.On("Generate", mock.Anything, mock.Anything).Return(tokyoModelOutput).Once()

	var saved types.Itinerary
	var audit types.LlmInteraction
	deps.repo.On("SaveItinerary", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(types.Itinerary)
			audit = args.Get(2).(types.LlmInteraction)
		}).
		Return(&types.Itinerary{ID: 7, Title: "Tokyo in Two Days"}, nil).Once()

	it, err := svc.CreateItinerary(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), it.ID)

	assert.Equal(t, "JP", saved.CountryCode)
	assert.Equal(t, 2, saved.Days)
	assert.Equal(t, []int64{101}, saved.SelectedLandmarkIDs)
	assert.Equal(t, "Tokyo in Two Days", saved.Title)
	assertInvariants(t, decode(t, saved.AISummary), req)

	assert.Equal(t, "gemini-test", audit.ModelUsed)
	assert.Equal(t, ParseStatusOK, audit.ParseStatus)
	assert.Equal(t, 1, audit.InsertedLandmarks)
	assert.Equal(t, tokyoModelOutput, audit.ResponseText)
	assert.Contains(t, audit.Prompt, "Tokyo Tower")

	deps.repo.AssertExpectations(t)
	deps.landmarks.AssertExpectations(t)
}

func TestService_CreateItinerary_UnknownLandmark(t *testing.T) {
	svc, deps := newTestService(t)
	deps.landmarks.On("GetLandmarkRefs", mock.Anything, []int64{101, 999}).
		Return([]types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}}, nil).Once()

	_, err := svc.CreateItinerary(context.Background(), tokyoRequest(101, 999))
	assert.ErrorIs(t, err, api.ErrInvalidInput)
	assert.ErrorContains(t, err, "999")
	deps.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	deps.repo.AssertNotCalled(t, "SaveItinerary", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateItinerary_InvalidRequestSkipsPipeline(t *testing.T) {
	svc, deps := newTestService(t)

	_, err := svc.CreateItinerary(context.Background(), types.TripRequest{CountryCode: "JP", RegionCode: "tokyo"})
	assert.ErrorIs(t, err, api.ErrInvalidInput)
	deps.landmarks.AssertNotCalled(t, "GetLandmarkRefs", mock.Anything, mock.Anything)
	deps.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestService_CreateItinerary_StoresFallbackOnBadOutput(t *testing.T) {
	svc, deps := newTestService(t)
	deps.gen.On("Generate", mock.Anything, mock.Anything).Return("not json at all").Once()

	var saved types.Itinerary
	var audit types.LlmInteraction
	deps.repo.On("SaveItinerary", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(types.Itinerary)
			audit = args.Get(2).(types.LlmInteraction)
		}).
		Return(&types.Itinerary{ID: 8}, nil).Once()

	_, err := svc.CreateItinerary(context.Background(), tokyoRequest())
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, saved.Title)
	assert.Equal(t, "not json at all", saved.AISummary)
	assert.Equal(t, string(InvalidJSON), audit.ParseStatus)
}

func TestService_CreateItinerary_RepositoryError(t *testing.T) {
	svc, deps := newTestService(t)
	deps.gen.On("Generate", mock.Anything, mock.Anything).Return(tokyoModelOutput).Once()
	dbErr := errors.New("connection reset")
	deps.repo.On("SaveItinerary", mock.Anything, mock.Anything, mock.Anything).Return(nil, dbErr).Once()

	_, err := svc.CreateItinerary(context.Background(), tokyoRequest())
	assert.ErrorIs(t, err, dbErr)
}

func TestService_ListItineraries_NormalisesFilter(t *testing.T) {
	svc, deps := newTestService(t)
	want := types.ItineraryFilter{CountryCode: "JP", RegionCode: "tokyo"}
	deps.repo.On("ListItineraries", mock.Anything, want).Return([]types.Itinerary{{ID: 1}}, nil).Once()

	got, err := svc.ListItineraries(context.Background(), types.ItineraryFilter{CountryCode: "jp", RegionCode: " Tokyo"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	deps.repo.AssertExpectations(t)
}

func storedItinerary(t *testing.T) *types.Itinerary {
	t.Helper()
	_, canonical, err := ParseAndRepair(tokyoModelOutput, tokyoRequest(), nil)
	require.NoError(t, err)
	return &types.Itinerary{
		ID: 3, CountryCode: "JP", RegionCode: "tokyo", Days: 2,
		StartDate: "2026-04-01", Theme: "culture", Title: "Tokyo in Two Days", AISummary: canonical,
	}
}

func TestService_GetReport(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.repo.On("GetItinerary", mock.Anything, int64(3)).Return(storedItinerary(t), nil).Once()
	deps.extras.On("GetCountryExtras", mock.Anything, "JP", "tokyo").Return(types.CountryExtras{
		Restaurants: []types.JapanRestaurant{{ID: 1, Name: "Sushi Dai", Rating: 4.6}},
	}, nil).Once()

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	forecast := &types.WeatherForecast{StartDate: "2026-04-01", EndDate: "2026-04-02"}
	deps.forecast.On("GetForecast", mock.Anything, 35.6764225, 139.650027, start, end).Return(forecast, nil).Once()

	report, err := svc.GetReport(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo in Two Days", report.Detail.Overview.Title)
	assert.Len(t, report.Detail.DailyPlan, 2)
	assert.Len(t, report.Restaurants, 1)
	assert.Same(t, forecast, report.Forecast)
	deps.forecast.AssertExpectations(t)
}

func TestService_GetReport_ForecastFailureIsTolerated(t *testing.T) {
	svc, deps := newTestService(t)
	deps.repo.On("GetItinerary", mock.Anything, int64(3)).Return(storedItinerary(t), nil).Once()
	deps.extras.On("GetCountryExtras", mock.Anything, "JP", "tokyo").Return(types.CountryExtras{}, nil).Once()
	deps.forecast.On("GetForecast", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, api.ErrUpstreamUnavailable).Once()

	report, err := svc.GetReport(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, report.Forecast)
}

func TestService_GetReport_NoStartDateSkipsForecast(t *testing.T) {
	svc, deps := newTestService(t)
	it := storedItinerary(t)
	it.StartDate = ""
	deps.repo.On("GetItinerary", mock.Anything, int64(3)).Return(it, nil).Once()
	deps.extras.On("GetCountryExtras", mock.Anything, "JP", "tokyo").Return(types.CountryExtras{}, nil).Once()

	report, err := svc.GetReport(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, report.Forecast)
	deps.forecast.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetReport_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, deps := newTestService(t)
		deps.repo.On("GetItinerary", mock.Anything, int64(9)).Return(nil, api.ErrNotFound).Once()
		_, err := svc.GetReport(context.Background(), 9)
		assert.ErrorIs(t, err, api.ErrNotFound)
	})

	t.Run("corrupt detail", func(t *testing.T) {
		svc, deps := newTestService(t)
		it := storedItinerary(t)
		it.AISummary = "{broken"
		deps.repo.On("GetItinerary", mock.Anything, int64(3)).Return(it, nil).Once()
		_, err := svc.GetReport(context.Background(), 3)
		assert.ErrorIs(t, err, api.ErrStoredDetailCorrupt)
	})

	t.Run("extras failure", func(t *testing.T) {
		svc, deps := newTestService(t)
		it := storedItinerary(t)
		it.StartDate = ""
		deps.repo.On("GetItinerary", mock.Anything, int64(3)).Return(it, nil).Once()
		deps.extras.On("GetCountryExtras", mock.Anything, "JP", "tokyo").
			Return(types.CountryExtras{}, errors.New("db down")).Once()
		_, err := svc.GetReport(context.Background(), 3)
		assert.ErrorContains(t, err, "db down")
	})
}

func TestService_ExportCSV(t *testing.T) {
	svc, deps := newTestService(t)
	it := storedItinerary(t)
	it.StartDate = ""
	deps.repo.On("GetItinerary", mock.Anything, int64(3)).Return(it, nil).Once()
	deps.extras.On("GetCountryExtras", mock.Anything, "JP", "tokyo").Return(types.CountryExtras{}, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), 3, &buf))
	assert.Contains(t, buf.String(), "section,sub_section,day,name,type,description,extra")
	assert.Contains(t, buf.String(), "Shibuya Crossing")
}

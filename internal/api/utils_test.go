package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("landmark 3: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("days: %w", ErrInvalidInput), http.StatusBadRequest},
		{ErrMissingDetail, http.StatusBadRequest},
		{fmt.Errorf("osrm: %w", ErrUpstreamUnavailable), http.StatusBadGateway},
		{ErrStoredDetailCorrupt, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForError(tt.err), tt.err.Error())
	}
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	ErrorResponse(rec, req, http.StatusNotFound, "itinerary not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "itinerary not found", body["error"])
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"tokyo"}`))
		var dst payload
		require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), req, &dst))
		assert.Equal(t, "tokyo", dst.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
		var dst payload
		err := DecodeJSONBody(httptest.NewRecorder(), req, &dst)
		assert.ErrorContains(t, err, `unknown key "nope"`)
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var dst payload
		assert.ErrorContains(t, DecodeJSONBody(httptest.NewRecorder(), req, &dst), "must not be empty")
	})

	t.Run("trailing data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		var dst payload
		assert.ErrorContains(t, DecodeJSONBody(httptest.NewRecorder(), req, &dst), "single JSON value")
	})
}

func TestInt64URLParam(t *testing.T) {
	withParam := func(v string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("itineraryID", v)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := Int64URLParam(withParam("42"), "itineraryID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := Int64URLParam(withParam(bad), "itineraryID")
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestFloatQueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lat=35.5&lon=x", nil)

	lat, err := FloatQueryParam(req, "lat")
	require.NoError(t, err)
	assert.InDelta(t, 35.5, lat, 1e-9)

	_, err = FloatQueryParam(req, "lon")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FloatQueryParam(req, "missing")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "client error echoes text", err: fmt.Errorf("days must be positive: %w", ErrInvalidInput), wantStatus: http.StatusBadRequest, wantMsg: "days must be positive: invalid input"},
		{name: "corrupt detail", err: fmt.Errorf("%w: unexpected EOF", ErrStoredDetailCorrupt), wantStatus: http.StatusInternalServerError, wantMsg: "could not parse AI itinerary data"},
		{name: "upstream", err: fmt.Errorf("osrm: %w", ErrUpstreamUnavailable), wantStatus: http.StatusBadGateway, wantMsg: "upstream service unavailable"},
		{name: "internal hides detail", err: errors.New("pq: password leaked"), wantStatus: http.StatusInternalServerError, wantMsg: "Failed to load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			ServiceErrorResponse(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "Failed to load")

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

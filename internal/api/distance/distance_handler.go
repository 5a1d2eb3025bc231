package distance

import (
	"context"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type RouteProvider interface {
	GetRouteDistance(ctx context.Context, from, to types.Coordinate) (*types.RouteDistance, error)
}

var _ RouteProvider = (*Client)(nil)

type HandlerImpl struct {
	provider RouteProvider
}

func NewHandler(provider RouteProvider) *HandlerImpl {
	return &HandlerImpl{provider: provider}
}

func point(r *http.Request, latKey, lonKey string) (types.Coordinate, error) {
	lat, err := api.FloatQueryParam(r, latKey)
	if err != nil {
		return types.Coordinate{}, err
	}
	lon, err := api.FloatQueryParam(r, lonKey)
	if err != nil {
		return types.Coordinate{}, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return types.Coordinate{}, fmt.Errorf("%s/%s out of range: %w", latKey, lonKey, api.ErrInvalidInput)
	}
	return types.Coordinate{Lat: lat, Lon: lon}, nil
}

// GetDistance godoc
// @Summary      Driving distance
// @Tags         Distance
// @Produce      json
// @Param        slat query number true "Start latitude"
// @Param        slon query number true "Start longitude"
// @Param        elat query number true "End latitude"
// @Param        elon query number true "End longitude"
// @Success      200 {object} types.RouteDistance
// @Failure      400 {object} api.ErrorBody "Invalid coordinates"
// @Failure      502 {object} api.ErrorBody "Routing service unavailable"
// @Router       /distance [get]
func (h *HandlerImpl) GetDistance(w http.ResponseWriter, r *http.Request) {
	from, err := point(r, "slat", "slon")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := point(r, "elat", "elon")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rd, err := h.provider.GetRouteDistance(r.Context(), from, to)
	if err != nil {
		api.ServiceErrorResponse(w, r, err, "Failed to compute distance")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, rd)
}

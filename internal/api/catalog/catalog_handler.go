package catalog

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListCountries(w http.ResponseWriter, r *http.Request)
	ListRegions(w http.ResponseWriter, r *http.Request)
	GetChecklist(w http.ResponseWriter, r *http.Request)
	GetTravelOverview(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:  logger,
		service: service,
	}
}

// ListCountries godoc
// @Summary      Supported countries
// @Tags         Catalog
// @Produce      json
// @Success      200 {array} types.Country
// @Router       /countries [get]
func (h *HandlerImpl) ListCountries(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, Countries())
}

// ListRegions godoc
// @Summary      Regions of a country
// @Tags         Catalog
// @Produce      json
// @Param        country_code query string true "Country code"
// @Success      200 {array} types.Region
// @Failure      400 {object} api.ErrorBody "Missing country_code"
// @Failure      404 {object} api.ErrorBody "Unsupported country"
// @Router       /regions [get]
func (h *HandlerImpl) ListRegions(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country_code"))
	if country == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "country_code is required")
		return
	}
	regions, ok := Regions(country)
	if !ok {
		api.ErrorResponse(w, r, http.StatusNotFound, "unsupported country: "+country)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, regions)
}

// GetChecklist godoc
// @Summary      Travel checklist
// @Description  Common items plus the items of the given country; every item when no country is given.
// @Tags         Catalog
// @Produce      json
// @Param        country query string false "Country code"
// @Success      200 {array} types.ChecklistItem
// @Router       /checklist [get]
func (h *HandlerImpl) GetChecklist(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, Checklist(r.URL.Query().Get("country")))
}

// GetTravelOverview godoc
// @Summary      Region overview
// @Description  Landmarks of a region plus its country-specific recommendations.
// @Tags         Catalog
// @Produce      json
// @Param        country_code query string true "Country code"
// @Param        region_code  query string true "Region code"
// @Success      200 {object} types.TravelOverview
// @Failure      400 {object} api.ErrorBody "Unknown region"
// @Router       /travel/overview [get]
func (h *HandlerImpl) GetTravelOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CatalogHandler").Start(r.Context(), "GetTravelOverview")
	defer span.End()

	q := r.URL.Query()
	overview, err := h.service.GetTravelOverview(ctx, q.Get("country_code"), q.Get("region_code"))
	if err != nil {
		h.logger.WarnContext(ctx, "Travel overview failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Overview failed")
		api.ServiceErrorResponse(w, r, err, "Failed to load travel overview")
		return
	}

	span.SetStatus(codes.Ok, "Overview served")
	api.WriteJSONResponse(w, r, http.StatusOK, overview)
}

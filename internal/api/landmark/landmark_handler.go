package landmark

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListLandmarks(w http.ResponseWriter, r *http.Request)
	GetLandmark(w http.ResponseWriter, r *http.Request)
	CreateLandmark(w http.ResponseWriter, r *http.Request)
	UpdateLandmark(w http.ResponseWriter, r *http.Request)
	DeleteLandmark(w http.ResponseWriter, r *http.Request)
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

// ListLandmarks godoc
// @Summary      List landmarks
// @Tags         Landmarks
// @Produce      json
// @Param        country_code query string false "Country code"
// @Param        region_code  query string false "Region code"
// @Success      200 {array} types.Landmark
// @Router       /landmarks [get]
func (h *HandlerImpl) ListLandmarks(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LandmarkHandler").Start(r.Context(), "ListLandmarks")
	defer span.End()

	q := r.URL.Query()
	landmarks, err := h.service.ListLandmarks(ctx, types.LandmarkFilter{
		CountryCode: q.Get("country_code"),
		RegionCode:  q.Get("region_code"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list landmarks", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		api.ServiceErrorResponse(w, r, err, "Failed to list landmarks")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, landmarks)
}

// GetLandmark godoc
// @Summary      Get landmark
// @Tags         Landmarks
// @Produce      json
// @Param        landmarkID path int true "Landmark ID"
// @Success      200 {object} types.Landmark
// @Failure      404 {object} api.ErrorBody "Not Found"
// @Router       /landmarks/{landmarkID} [get]
func (h *HandlerImpl) GetLandmark(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LandmarkHandler").Start(r.Context(), "GetLandmark")
	defer span.End()

	id, err := api.Int64URLParam(r, "landmarkID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.Int64("app.landmark.id", id))

	lm, err := h.service.GetLandmark(ctx, id)
	if err != nil {
		span.RecordError(err)
		api.ServiceErrorResponse(w, r, err, "Failed to retrieve landmark")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, lm)
}

// CreateLandmark godoc
// @Summary      Create landmark
// @Tags         Landmarks
// @Accept       json
// @Produce      json
// @Param        landmark body types.LandmarkCreate true "Landmark"
// @Success      201 {object} types.Landmark
// @Failure      400 {object} api.ErrorBody "Invalid request"
// @Failure      401 {object} api.ErrorBody "Unauthorized"
// @Security     BearerAuth
// @Router       /landmarks [post]
func (h *HandlerImpl) CreateLandmark(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LandmarkHandler").Start(r.Context(), "CreateLandmark")
	defer span.End()
	l := h.logger.With(slog.String("handler", "CreateLandmark"))

	var in types.LandmarkCreate
	if err := api.DecodeJSONBody(w, r, &in); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	lm, err := h.service.CreateLandmark(ctx, in)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create landmark", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Create failed")
		api.ServiceErrorResponse(w, r, err, "Failed to create landmark")
		return
	}
	span.SetStatus(codes.Ok, "Landmark created")
	api.WriteJSONResponse(w, r, http.StatusCreated, lm)
}

// UpdateLandmark godoc
// @Summary      Update landmark
// @Description  Partial update; omitted fields keep their value.
// @Tags         Landmarks
// @Accept       json
// @Produce      json
// @Param        landmarkID path int true "Landmark ID"
// @Param        landmark body types.LandmarkUpdate true "Fields to change"
// @Success      200 {object} types.Landmark
// @Failure      404 {object} api.ErrorBody "Not Found"
// @Security     BearerAuth
// @Router       /landmarks/{landmarkID} [put]
func (h *HandlerImpl) UpdateLandmark(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LandmarkHandler").Start(r.Context(), "UpdateLandmark")
	defer span.End()

	id, err := api.Int64URLParam(r, "landmarkID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var in types.LandmarkUpdate
	if err := api.DecodeJSONBody(w, r, &in); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	lm, err := h.service.UpdateLandmark(ctx, id, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to update landmark", slog.Int64("landmark_id", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update failed")
		api.ServiceErrorResponse(w, r, err, "Failed to update landmark")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, lm)
}

// DeleteLandmark godoc
// @Summary      Delete landmark
// @Tags         Landmarks
// @Param        landmarkID path int true "Landmark ID"
// @Success      204
// @Failure      404 {object} api.ErrorBody "Not Found"
// @Security     BearerAuth
// @Router       /landmarks/{landmarkID} [delete]
func (h *HandlerImpl) DeleteLandmark(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LandmarkHandler").Start(r.Context(), "DeleteLandmark")
	defer span.End()

	id, err := api.Int64URLParam(r, "landmarkID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteLandmark(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		api.ServiceErrorResponse(w, r, err, "Failed to delete landmark")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

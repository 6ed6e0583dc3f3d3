package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/api/middleware"
	"github.com/dkoru/webgis-api/internal/api/shared"
	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/service/points"
)

// PointHandler handles the ownership-scoped point endpoints.
type PointHandler struct {
	pointService points.Service
	validator    *validator.Validate
}

// NewPointHandler creates a new PointHandler with the given dependencies.
func NewPointHandler(pointService points.Service) *PointHandler {
	return &PointHandler{
		pointService: pointService,
		validator:    validator.New(),
	}
}

// callerIdentity extracts the caller identity placed in the context by the
// authentication middleware, writing a 401 if it is missing.
func callerIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization required")
		return auth.Identity{}, false
	}
	return identity, true
}

// pathPointID parses the {id} path parameter, writing a 400 on failure.
func pathPointID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "Invalid point id")
		return uuid.Nil, false
	}
	return id, true
}

// ListPoints handles GET /api/layer/points.
// Admins see every point; everyone else only their own.
func (h *PointHandler) ListPoints(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	pts, err := h.pointService.List(r.Context(), caller)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list points")
		return
	}

	payload := make([]PointPayload, 0, len(pts))
	for i := range pts {
		payload = append(payload, NewPointPayload(&pts[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, payload)
}

// CreatePoint handles POST /api/layer/points.
func (h *PointHandler) CreatePoint(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req CreatePointRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	point, err := h.pointService.Create(
		r.Context(),
		caller,
		req.Name,
		req.Description,
		req.Latitude,
		req.Longitude,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewPointPayload(point))
}

// UpdatePoint handles PUT /api/layer/points/{id}.
// Only name and description are mutable, and only by the owner.
func (h *PointHandler) UpdatePoint(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	pointID, ok := pathPointID(w, r)
	if !ok {
		return
	}

	var req UpdatePointRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	point, err := h.pointService.Update(r.Context(), caller, pointID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPointPayload(point))
}

// DeletePoint handles DELETE /api/layer/points/{id}.
func (h *PointHandler) DeletePoint(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	pointID, ok := pathPointID(w, r)
	if !ok {
		return
	}

	if err := h.pointService.Delete(r.Context(), caller, pointID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{Msg: "Deleted"})
}

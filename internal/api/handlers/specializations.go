package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// SpecializationServiceInterface defines the specialization service methods
type SpecializationServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateSpecializationRequest) (*domain.Specialization, error)
	List(ctx context.Context) ([]*domain.Specialization, error)
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Specialization, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSpecializationRequest) (*domain.Specialization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpecializationHandler handles worker skill HTTP requests
type SpecializationHandler struct {
	specializations SpecializationServiceInterface
}

// NewSpecializationHandler creates a new SpecializationHandler
func NewSpecializationHandler(specializations SpecializationServiceInterface) *SpecializationHandler {
	return &SpecializationHandler{
		specializations: specializations,
	}
}

// Create handles POST /api/v1/specializations
func (h *SpecializationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSpecializationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	spec, err := h.specializations.Create(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusCreated, spec)
}

// List handles GET /api/v1/specializations
func (h *SpecializationHandler) List(w http.ResponseWriter, r *http.Request) {
	specs, err := h.specializations.List(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, specs)
}

// ListByWorkerID handles GET /api/v1/specializations/worker/{workerId}
func (h *SpecializationHandler) ListByWorkerID(w http.ResponseWriter, r *http.Request) {
	workerID, err := PathUUID(r, "workerId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	specs, err := h.specializations.ListByWorkerID(r.Context(), workerID)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, specs)
}

// Update handles PUT /api/v1/specializations/{id}
func (h *SpecializationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid specialization ID")
		return
	}

	var req domain.UpdateSpecializationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	spec, err := h.specializations.Update(r.Context(), id, &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, spec)
}

// Delete handles DELETE /api/v1/specializations/{id}
func (h *SpecializationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid specialization ID")
		return
	}

	if err := h.specializations.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

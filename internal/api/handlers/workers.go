package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// WorkerServiceInterface defines the worker service methods
type WorkerServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateWorkerRequest) (*domain.Worker, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateWorkerRequest) (*domain.Worker, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkerHandler handles worker-related HTTP requests
type WorkerHandler struct {
	workers WorkerServiceInterface
}

// NewWorkerHandler creates a new WorkerHandler
func NewWorkerHandler(workers WorkerServiceInterface) *WorkerHandler {
	return &WorkerHandler{
		workers: workers,
	}
}

// Create handles POST /api/v1/workers
func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	worker, err := h.workers.Create(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusCreated, worker)
}

// List handles GET /api/v1/workers
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workers.List(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, workers)
}

// GetByID handles GET /api/v1/workers/{id}
func (h *WorkerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	worker, err := h.workers.GetByID(r.Context(), id)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, worker)
}

// Update handles PUT /api/v1/workers/{id}
func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	var req domain.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	worker, err := h.workers.Update(r.Context(), id, &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, worker)
}

// Delete handles DELETE /api/v1/workers/{id}
func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	if err := h.workers.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// LiveLocationServiceInterface defines the live location service methods
type LiveLocationServiceInterface interface {
	Create(ctx context.Context, req *domain.UpsertLocationRequest) (*domain.LiveLocation, error)
	Upsert(ctx context.Context, req *domain.UpsertLocationRequest) (*domain.LiveLocation, error)
	List(ctx context.Context) ([]*domain.LiveLocation, error)
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.LiveLocation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PruneStale(ctx context.Context) (int, error)
}

// LiveLocationHandler handles worker location HTTP requests
type LiveLocationHandler struct {
	locations LiveLocationServiceInterface
}

// NewLiveLocationHandler creates a new LiveLocationHandler
func NewLiveLocationHandler(locations LiveLocationServiceInterface) *LiveLocationHandler {
	return &LiveLocationHandler{
		locations: locations,
	}
}

// Create handles POST /api/v1/locations
func (h *LiveLocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	loc, err := h.locations.Create(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusCreated, loc)
}

// Upsert handles PUT /api/v1/locations - inserts or refreshes the
// latest position for a worker
func (h *LiveLocationHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	loc, err := h.locations.Upsert(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, loc)
}

// UpsertByWorker handles PUT /api/v1/locations/worker/{workerId}. The
// worker ID comes from the path and overrides any value in the body.
func (h *LiveLocationHandler) UpsertByWorker(w http.ResponseWriter, r *http.Request) {
	workerID, err := PathUUID(r, "workerId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	var req domain.UpsertLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.WorkerID = workerID

	loc, err := h.locations.Upsert(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, loc)
}

// List handles GET /api/v1/locations
func (h *LiveLocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.locations.List(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, locs)
}

// ListByWorkerID handles GET /api/v1/locations/worker/{workerId}
func (h *LiveLocationHandler) ListByWorkerID(w http.ResponseWriter, r *http.Request) {
	workerID, err := PathUUID(r, "workerId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	locs, err := h.locations.ListByWorkerID(r.Context(), workerID)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, locs)
}

// Delete handles DELETE /api/v1/locations/{id}
func (h *LiveLocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid location ID")
		return
	}

	if err := h.locations.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PruneStale handles POST /api/v1/locations/prune - removes location
// records older than the staleness cutoff
func (h *LiveLocationHandler) PruneStale(w http.ResponseWriter, r *http.Request) {
	pruned, err := h.locations.PruneStale(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]int{"pruned": pruned})
}

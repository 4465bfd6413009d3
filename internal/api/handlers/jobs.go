package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// JobServiceInterface defines the job service methods
type JobServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateJobRequest) (*domain.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) (*domain.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetStats(ctx context.Context) (*domain.JobStats, error)
	NearbyWorkers(ctx context.Context, search domain.NearbySearch) ([]*domain.NearbyWorker, error)
}

// JobHandler handles booking-related HTTP requests
type JobHandler struct {
	jobs JobServiceInterface
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobs JobServiceInterface) *JobHandler {
	return &JobHandler{
		jobs: jobs,
	}
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status domain.JobStatus `json:"status"`
}

// Create handles POST /api/v1/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.jobs.Create(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusCreated, job)
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, jobs)
}

// GetByID handles GET /api/v1/jobs/{id}
func (h *JobHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := h.jobs.GetByID(r.Context(), id)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, job)
}

// UpdateStatus handles PATCH /api/v1/jobs/{id}/status
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.jobs.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, job)
}

// Delete handles DELETE /api/v1/jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetStats handles GET /api/v1/jobs/stats
func (h *JobHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.jobs.GetStats(r.Context())
	if err != nil {
		RenderError(w, http.StatusInternalServerError, "Failed to get job stats: "+err.Error())
		return
	}

	RenderJSON(w, http.StatusOK, stats)
}

// NearbyWorkers handles GET /api/v1/jobs/nearby
func (h *JobHandler) NearbyWorkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		RenderError(w, http.StatusBadRequest, "lat is required")
		return
	}

	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		RenderError(w, http.StatusBadRequest, "lng is required")
		return
	}

	radius, _ := strconv.ParseFloat(q.Get("radius"), 64)
	limit, _ := strconv.Atoi(q.Get("limit"))

	workers, err := h.jobs.NearbyWorkers(r.Context(), domain.NearbySearch{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Category: q.Get("category"),
		Limit:    limit,
	})
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, workers)
}

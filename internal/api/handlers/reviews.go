package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// ReviewServiceInterface defines the review service methods
type ReviewServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateReviewRequest) (*domain.Review, error)
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	reviews ReviewServiceInterface
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
	}
}

// Create handles POST /api/v1/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviews.Create(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusCreated, review)
}

// ListByWorkerID handles GET /api/v1/reviews/worker/{workerId}
func (h *ReviewHandler) ListByWorkerID(w http.ResponseWriter, r *http.Request) {
	workerID, err := PathUUID(r, "workerId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	reviews, err := h.reviews.ListByWorkerID(r.Context(), workerID)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, reviews)
}

// Delete handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating for a completed job
type Review struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	WorkerID  uuid.UUID `json:"worker_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewRequest is the request body for posting a review
type CreateReviewRequest struct {
	JobID    uuid.UUID `json:"job_id"`
	WorkerID uuid.UUID `json:"worker_id"`
	UserID   uuid.UUID `json:"user_id"`
	Rating   int       `json:"rating"`
	Comment  *string   `json:"comment"`
}

// Validate checks required fields and rating range
func (r *CreateReviewRequest) Validate() error {
	if r.JobID == uuid.Nil {
		return ErrValidation("job_id is required")
	}
	if r.WorkerID == uuid.Nil {
		return ErrValidation("worker_id is required")
	}
	if r.UserID == uuid.Nil {
		return ErrValidation("user_id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrValidation("rating must be between 1 and 5")
	}
	return nil
}

// ToReview converts the request to a Review
func (r *CreateReviewRequest) ToReview() *Review {
	return &Review{
		ID:        uuid.New(),
		JobID:     r.JobID,
		WorkerID:  r.WorkerID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: time.Now().UTC(),
	}
}

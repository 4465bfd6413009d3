package domain

import (
	"time"

	"github.com/google/uuid"
)

// Specialization is a service category offered by a worker
type Specialization struct {
	ID          uuid.UUID `json:"id"`
	WorkerID    uuid.UUID `json:"worker_id"`
	Category    string    `json:"category"`
	SubCategory *string   `json:"sub_category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSpecializationRequest is the request body for adding a specialization
type CreateSpecializationRequest struct {
	WorkerID    uuid.UUID `json:"worker_id"`
	Category    string    `json:"category"`
	SubCategory *string   `json:"sub_category"`
}

// Validate checks required fields
func (r *CreateSpecializationRequest) Validate() error {
	if r.WorkerID == uuid.Nil {
		return ErrValidation("worker_id is required")
	}
	if r.Category == "" {
		return ErrValidation("category is required")
	}
	return nil
}

// ToSpecialization converts the request to a Specialization
func (r *CreateSpecializationRequest) ToSpecialization() *Specialization {
	return &Specialization{
		ID:          uuid.New(),
		WorkerID:    r.WorkerID,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		CreatedAt:   time.Now().UTC(),
	}
}

// UpdateSpecializationRequest is the request body for updating a specialization
type UpdateSpecializationRequest struct {
	Category    *string `json:"category"`
	SubCategory *string `json:"sub_category"`
}

// Apply merges the request into an existing specialization
func (r *UpdateSpecializationRequest) Apply(s *Specialization) error {
	if r.Category != nil {
		if *r.Category == "" {
			return ErrValidation("category cannot be empty")
		}
		s.Category = *r.Category
	}
	if r.SubCategory != nil {
		s.SubCategory = r.SubCategory
	}
	return nil
}

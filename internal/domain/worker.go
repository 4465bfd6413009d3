package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender of a worker
type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderNotSpecified Gender = "not_specified"
)

// IsValid returns true if the gender value is one of the known values
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNotSpecified:
		return true
	}
	return false
}

// Worker represents a service provider on the platform
type Worker struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	MiddleName      *string   `json:"middle_name,omitempty"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number"`
	Address         *string   `json:"address,omitempty"`
	Description     *string   `json:"description,omitempty"`
	DateOfBirth     string    `json:"date_of_birth"` // YYYY-MM-DD
	Gender          Gender    `json:"gender"`
	ExperienceYears int       `json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
}

// FullName returns the display name of the worker
func (w *Worker) FullName() string {
	if w.MiddleName != nil && *w.MiddleName != "" {
		return w.FirstName + " " + *w.MiddleName + " " + w.LastName
	}
	return w.FirstName + " " + w.LastName
}

// CreateWorkerRequest is the request body for creating a worker
type CreateWorkerRequest struct {
	FirstName       string  `json:"first_name"`
	MiddleName      *string `json:"middle_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phone_number"`
	Address         *string `json:"address"`
	Description     *string `json:"description"`
	DateOfBirth     string  `json:"date_of_birth"`
	Gender          Gender  `json:"gender"`
	ExperienceYears int     `json:"experience_years"`
}

// Validate checks required fields and value ranges
func (r *CreateWorkerRequest) Validate() error {
	if r.FirstName == "" {
		return ErrValidation("first_name is required")
	}
	if r.LastName == "" {
		return ErrValidation("last_name is required")
	}
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if r.PhoneNumber == "" {
		return ErrValidation("phone_number is required")
	}
	if r.DateOfBirth == "" {
		return ErrValidation("date_of_birth is required")
	}
	if _, err := time.Parse("2006-01-02", r.DateOfBirth); err != nil {
		return ErrValidation("date_of_birth must be YYYY-MM-DD")
	}
	if r.Gender == "" {
		r.Gender = GenderNotSpecified
	}
	if !r.Gender.IsValid() {
		return ErrValidation("invalid gender")
	}
	if r.ExperienceYears < 0 {
		return ErrValidation("experience_years must be >= 0")
	}
	return nil
}

// ToWorker converts the request to a Worker
func (r *CreateWorkerRequest) ToWorker() *Worker {
	return &Worker{
		ID:              uuid.New(),
		FirstName:       r.FirstName,
		MiddleName:      r.MiddleName,
		LastName:        r.LastName,
		Email:           r.Email,
		PhoneNumber:     r.PhoneNumber,
		Address:         r.Address,
		Description:     r.Description,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		ExperienceYears: r.ExperienceYears,
		CreatedAt:       time.Now().UTC(),
	}
}

// UpdateWorkerRequest is the request body for updating a worker.
// Nil fields are left unchanged.
type UpdateWorkerRequest struct {
	FirstName       *string `json:"first_name"`
	MiddleName      *string `json:"middle_name"`
	LastName        *string `json:"last_name"`
	Email           *string `json:"email"`
	PhoneNumber     *string `json:"phone_number"`
	Address         *string `json:"address"`
	Description     *string `json:"description"`
	DateOfBirth     *string `json:"date_of_birth"`
	Gender          *Gender `json:"gender"`
	ExperienceYears *int    `json:"experience_years"`
}

// Apply merges the request into an existing worker
func (r *UpdateWorkerRequest) Apply(w *Worker) error {
	if r.FirstName != nil {
		w.FirstName = *r.FirstName
	}
	if r.MiddleName != nil {
		w.MiddleName = r.MiddleName
	}
	if r.LastName != nil {
		w.LastName = *r.LastName
	}
	if r.Email != nil {
		w.Email = *r.Email
	}
	if r.PhoneNumber != nil {
		w.PhoneNumber = *r.PhoneNumber
	}
	if r.Address != nil {
		w.Address = r.Address
	}
	if r.Description != nil {
		w.Description = r.Description
	}
	if r.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *r.DateOfBirth); err != nil {
			return ErrValidation("date_of_birth must be YYYY-MM-DD")
		}
		w.DateOfBirth = *r.DateOfBirth
	}
	if r.Gender != nil {
		if !r.Gender.IsValid() {
			return ErrValidation("invalid gender")
		}
		w.Gender = *r.Gender
	}
	if r.ExperienceYears != nil {
		if *r.ExperienceYears < 0 {
			return ErrValidation("experience_years must be >= 0")
		}
		w.ExperienceYears = *r.ExperienceYears
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle status of a booking
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusConfirmed  JobStatus = "confirmed"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsValid returns true if the status is one of the known values
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusConfirmed, JobStatusInProgress,
		JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving to the target status is a
// legal lifecycle step
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusConfirmed || target == JobStatusCancelled
	case JobStatusConfirmed:
		return target == JobStatusInProgress || target == JobStatusCancelled
	case JobStatusInProgress:
		return target == JobStatusCompleted || target == JobStatusCancelled
	}
	// completed and cancelled are terminal
	return false
}

// Job represents a booked unit of work
type Job struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	WorkerID        *uuid.UUID `json:"worker_id,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Lat             float64    `json:"lat"`
	Lng             float64    `json:"lng"`
	Status          JobStatus  `json:"status"`
	BookedFor       *time.Time `json:"booked_for,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateJobRequest is the request body for creating a job
type CreateJobRequest struct {
	UserID          uuid.UUID  `json:"user_id"`
	WorkerID        *uuid.UUID `json:"worker_id"`
	Description     *string    `json:"description"`
	Address         *string    `json:"address"`
	Lat             *float64   `json:"lat"`
	Lng             *float64   `json:"lng"`
	BookedFor       *time.Time `json:"booked_for"`
	DurationMinutes *int       `json:"duration_minutes"`
}

// Validate checks required fields and coordinate ranges
func (r *CreateJobRequest) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrValidation("user_id is required")
	}
	if r.Lat == nil || r.Lng == nil {
		return ErrValidation("lat and lng are required")
	}
	if *r.Lat < -90 || *r.Lat > 90 {
		return ErrValidation("lat must be between -90 and 90")
	}
	if *r.Lng < -180 || *r.Lng > 180 {
		return ErrValidation("lng must be between -180 and 180")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		return ErrValidation("duration_minutes must be > 0")
	}
	return nil
}

// ToJob converts the request to a Job
func (r *CreateJobRequest) ToJob() *Job {
	return &Job{
		ID:              uuid.New(),
		UserID:          r.UserID,
		WorkerID:        r.WorkerID,
		Description:     r.Description,
		Address:         r.Address,
		Lat:             *r.Lat,
		Lng:             *r.Lng,
		Status:          JobStatusPending,
		BookedFor:       r.BookedFor,
		DurationMinutes: r.DurationMinutes,
		CreatedAt:       time.Now().UTC(),
	}
}

// JobStats contains job counts grouped by status
type JobStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Running   int `json:"in_progress"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// NearbyWorker is a worker matched by the geo search
type NearbyWorker struct {
	WorkerID        uuid.UUID `json:"worker_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	PhoneNumber     string    `json:"phone_number"`
	ExperienceYears int       `json:"experience_years"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	DistanceKm      float64   `json:"distance_km"`
}

// NearbySearch are parameters for the nearby worker search
type NearbySearch struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
	Category string // optional specialization filter
	Limit    int
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// LiveLocation is the last reported position of a worker
type LiveLocation struct {
	ID        uuid.UUID `json:"id"`
	WorkerID  uuid.UUID `json:"worker_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertLocationRequest is the request body for reporting a location
type UpsertLocationRequest struct {
	WorkerID uuid.UUID `json:"worker_id"`
	Lat      *float64  `json:"lat"`
	Lng      *float64  `json:"lng"`
}

// Validate checks required fields and coordinate ranges
func (r *UpsertLocationRequest) Validate() error {
	if r.WorkerID == uuid.Nil {
		return ErrValidation("worker_id is required")
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
	return nil
}

// ToLiveLocation converts the request to a LiveLocation
func (r *UpsertLocationRequest) ToLiveLocation() *LiveLocation {
	return &LiveLocation{
		ID:        uuid.New(),
		WorkerID:  r.WorkerID,
		Lat:       *r.Lat,
		Lng:       *r.Lng,
		CreatedAt: time.Now().UTC(),
	}
}

// StaleLocationMaxAge is the age after which a live location no longer
// counts as a broadcast candidate and may be pruned.
const StaleLocationMaxAge = 24 * time.Hour

package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{"pending to confirmed", JobStatusPending, JobStatusConfirmed, true},
		{"pending to cancelled", JobStatusPending, JobStatusCancelled, true},
		{"pending to in_progress skips confirmation", JobStatusPending, JobStatusInProgress, false},
		{"pending to completed skips the whole flow", JobStatusPending, JobStatusCompleted, false},
		{"confirmed to in_progress", JobStatusConfirmed, JobStatusInProgress, true},
		{"confirmed to cancelled", JobStatusConfirmed, JobStatusCancelled, true},
		{"confirmed back to pending", JobStatusConfirmed, JobStatusPending, false},
		{"in_progress to completed", JobStatusInProgress, JobStatusCompleted, true},
		{"in_progress to cancelled", JobStatusInProgress, JobStatusCancelled, true},
		{"completed is terminal", JobStatusCompleted, JobStatusCancelled, false},
		{"cancelled is terminal", JobStatusCancelled, JobStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCreateJobRequestValidation(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }
	valid := func() *CreateJobRequest {
		desc := "leaking tap"
		return &CreateJobRequest{
			UserID:      uuid.New(),
			Description: &desc,
			Lat:         ptr(12.9716),
			Lng:         ptr(77.5946),
		}
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing user", func(t *testing.T) {
		req := valid()
		req.UserID = uuid.Nil
		assert.Error(t, req.Validate())
	})

	t.Run("missing coordinates", func(t *testing.T) {
		req := valid()
		req.Lat = nil
		assert.Error(t, req.Validate())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		req := valid()
		req.Lat = ptr(91)
		assert.Error(t, req.Validate())
	})

	t.Run("longitude out of range", func(t *testing.T) {
		req := valid()
		req.Lng = ptr(-181)
		assert.Error(t, req.Validate())
	})

	t.Run("non positive duration", func(t *testing.T) {
		req := valid()
		zero := 0
		req.DurationMinutes = &zero
		assert.Error(t, req.Validate())
	})
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/broadcast"
	"github.com/urbanserve/urbanserve/internal/cache"
	"github.com/urbanserve/urbanserve/internal/domain"
)

// Common errors
var (
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// JobService handles booking business logic
type JobService struct {
	jobs      domain.JobRepository
	users     domain.UserRepository
	workers   domain.WorkerRepository
	locations domain.LiveLocationRepository
	publisher broadcast.Publisher
	cache     cache.Cache
}

// NewJobService creates a new JobService
func NewJobService(
	jobs domain.JobRepository,
	users domain.UserRepository,
	workers domain.WorkerRepository,
	locations domain.LiveLocationRepository,
	publisher broadcast.Publisher,
	c cache.Cache,
) *JobService {
	if publisher == nil {
		publisher = broadcast.NoOpPublisher{}
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &JobService{
		jobs:      jobs,
		users:     users,
		workers:   workers,
		locations: locations,
		publisher: publisher,
		cache:     c,
	}
}

// Create creates a new job and offers it to nearby workers. Broadcast
// failure is logged, never fatal: the booking is already persisted.
func (s *JobService) Create(ctx context.Context, req *domain.CreateJobRequest) (*domain.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.WorkerID != nil {
		worker, err := s.workers.GetByID(ctx, *req.WorkerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get worker: %w", err)
		}
		if worker == nil {
			return nil, ErrWorkerNotFound
		}
	}

	job := req.ToJob()
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := s.publisher.PublishJob(ctx, job); err != nil {
		log.Printf("[JobService] WARNING: failed to broadcast job %s: %v", job.ID, err)
	}

	invalidateDashboard(ctx, s.cache)
	return job, nil
}

// GetByID retrieves a job by ID
func (s *JobService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	return job, nil
}

// List retrieves all jobs
func (s *JobService) List(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// UpdateStatus moves a job along its lifecycle
func (s *JobService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) (*domain.Job, error) {
	if !status.IsValid() {
		return nil, domain.ErrValidation("invalid job status")
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if !job.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.jobs.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}

	job.Status = status
	invalidateDashboard(ctx, s.cache)
	return job, nil
}

// Delete deletes a job
func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}

	invalidateDashboard(ctx, s.cache)
	return nil
}

// GetStats retrieves job counts grouped by status, briefly cached
func (s *JobService) GetStats(ctx context.Context) (*domain.JobStats, error) {
	if cached, err := s.cache.Get(ctx, cache.KeyPrefixJobStats); err == nil {
		var stats domain.JobStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.jobs.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get job stats: %w", err)
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cache.KeyPrefixJobStats, data, cache.TTLJobStats); err != nil {
			log.Printf("[JobService] cache write failed: %v", err)
		}
	}

	return stats, nil
}

// NearbyWorkers searches live locations around a coordinate
func (s *JobService) NearbyWorkers(ctx context.Context, search domain.NearbySearch) ([]*domain.NearbyWorker, error) {
	if search.Lat < -90 || search.Lat > 90 {
		return nil, domain.ErrValidation("lat must be between -90 and 90")
	}
	if search.Lng < -180 || search.Lng > 180 {
		return nil, domain.ErrValidation("lng must be between -180 and 180")
	}
	if search.RadiusKm <= 0 {
		search.RadiusKm = broadcast.RadiusSteps[0]
	}

	workers, err := s.locations.Nearby(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby workers: %w", err)
	}

	return workers, nil
}

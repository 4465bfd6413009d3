package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/cache"
	"github.com/urbanserve/urbanserve/internal/domain"
)

// Common errors
var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// WorkerService handles worker business logic
type WorkerService struct {
	workers domain.WorkerRepository
	cache   cache.Cache
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workers domain.WorkerRepository, c cache.Cache) *WorkerService {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &WorkerService{workers: workers, cache: c}
}

// Create creates a new worker
func (s *WorkerService) Create(ctx context.Context, req *domain.CreateWorkerRequest) (*domain.Worker, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	worker := req.ToWorker()
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	invalidateDashboard(ctx, s.cache)
	return worker, nil
}

// GetByID retrieves a worker by ID
func (s *WorkerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}

	return worker, nil
}

// List retrieves all workers
func (s *WorkerService) List(ctx context.Context) ([]*domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	return workers, nil
}

// Update applies a partial update to a worker
func (s *WorkerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateWorkerRequest) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}

	if err := req.Apply(worker); err != nil {
		return nil, err
	}

	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	invalidateDashboard(ctx, s.cache)
	return worker, nil
}

// Delete deletes a worker
func (s *WorkerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	invalidateDashboard(ctx, s.cache)
	return nil
}

// invalidateDashboard drops cached dashboard aggregates after a write
// that changes the underlying counts or sums
func invalidateDashboard(ctx context.Context, c cache.Cache) {
	if err := c.DeleteByPattern(ctx, "cache:dashboard:*"); err != nil {
		log.Printf("[Service] dashboard cache invalidation failed: %v", err)
	}
}

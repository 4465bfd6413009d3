package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// Common errors
var (
	ErrLocationNotFound = errors.New("location not found")
)

// LiveLocationService handles worker position reporting
type LiveLocationService struct {
	locations domain.LiveLocationRepository
	workers   domain.WorkerRepository
}

// NewLiveLocationService creates a new LiveLocationService
func NewLiveLocationService(locations domain.LiveLocationRepository, workers domain.WorkerRepository) *LiveLocationService {
	return &LiveLocationService{
		locations: locations,
		workers:   workers,
	}
}

// Create records a position report for an existing worker
func (s *LiveLocationService) Create(ctx context.Context, req *domain.UpsertLocationRequest) (*domain.LiveLocation, error) {
	loc, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}

// Upsert replaces the worker's latest position
func (s *LiveLocationService) Upsert(ctx context.Context, req *domain.UpsertLocationRequest) (*domain.LiveLocation, error) {
	loc, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.locations.UpsertByWorkerID(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to upsert location: %w", err)
	}

	return loc, nil
}

func (s *LiveLocationService) validate(ctx context.Context, req *domain.UpsertLocationRequest) (*domain.LiveLocation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	worker, err := s.workers.GetByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}

	return req.ToLiveLocation(), nil
}

// List retrieves all live locations
func (s *LiveLocationService) List(ctx context.Context) ([]*domain.LiveLocation, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return locations, nil
}

// ListByWorkerID retrieves a worker's live locations
func (s *LiveLocationService) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.LiveLocation, error) {
	locations, err := s.locations.ListByWorkerID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return locations, nil
}

// Delete deletes a live location
func (s *LiveLocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}

// PruneStale removes positions older than domain.StaleLocationMaxAge
func (s *LiveLocationService) PruneStale(ctx context.Context) (int, error) {
	count, err := s.locations.DeleteStale(ctx, int(domain.StaleLocationMaxAge.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("failed to prune stale locations: %w", err)
	}

	return count, nil
}

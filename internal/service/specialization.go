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
	ErrSpecializationNotFound = errors.New("specialization not found")
)

// SpecializationService handles worker skill catalog logic
type SpecializationService struct {
	specializations domain.SpecializationRepository
	workers         domain.WorkerRepository
}

// NewSpecializationService creates a new SpecializationService
func NewSpecializationService(specializations domain.SpecializationRepository, workers domain.WorkerRepository) *SpecializationService {
	return &SpecializationService{
		specializations: specializations,
		workers:         workers,
	}
}

// Create adds a specialization to an existing worker
func (s *SpecializationService) Create(ctx context.Context, req *domain.CreateSpecializationRequest) (*domain.Specialization, error) {
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

	spec := req.ToSpecialization()
	if err := s.specializations.Create(ctx, spec); err != nil {
		return nil, fmt.Errorf("failed to create specialization: %w", err)
	}

	return spec, nil
}

// List retrieves all specializations
func (s *SpecializationService) List(ctx context.Context) ([]*domain.Specialization, error) {
	specs, err := s.specializations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}

	return specs, nil
}

// ListByWorkerID retrieves a worker's specializations
func (s *SpecializationService) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Specialization, error) {
	specs, err := s.specializations.ListByWorkerID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}

	return specs, nil
}

// Update applies a partial update to a specialization
func (s *SpecializationService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSpecializationRequest) (*domain.Specialization, error) {
	spec, err := s.specializations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get specialization: %w", err)
	}
	if spec == nil {
		return nil, ErrSpecializationNotFound
	}

	if err := req.Apply(spec); err != nil {
		return nil, err
	}

	if err := s.specializations.Update(ctx, spec); err != nil {
		return nil, fmt.Errorf("failed to update specialization: %w", err)
	}

	return spec, nil
}

// Delete deletes a specialization
func (s *SpecializationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.specializations.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrSpecializationNotFound
		}
		return fmt.Errorf("failed to delete specialization: %w", err)
	}

	return nil
}

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
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewService handles customer rating logic
type ReviewService struct {
	reviews domain.ReviewRepository
	jobs    domain.JobRepository
	workers domain.WorkerRepository
	users   domain.UserRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviews domain.ReviewRepository,
	jobs domain.JobRepository,
	workers domain.WorkerRepository,
	users domain.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		jobs:    jobs,
		workers: workers,
		users:   users,
	}
}

// Create posts a review against an existing job, worker and user
func (s *ReviewService) Create(ctx context.Context, req *domain.CreateReviewRequest) (*domain.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	worker, err := s.workers.GetByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	review := req.ToReview()
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// ListByWorkerID retrieves reviews for a worker
func (s *ReviewService) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.reviews.ListByWorkerID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// Delete deletes a review
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

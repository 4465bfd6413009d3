package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/cache"
	"github.com/urbanserve/urbanserve/internal/domain"
)

// Common errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionService handles payment record business logic
type TransactionService struct {
	transactions domain.TransactionRepository
	jobs         domain.JobRepository
	workers      domain.WorkerRepository
	cache        cache.Cache
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactions domain.TransactionRepository,
	jobs domain.JobRepository,
	workers domain.WorkerRepository,
	c cache.Cache,
) *TransactionService {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &TransactionService{
		transactions: transactions,
		jobs:         jobs,
		workers:      workers,
		cache:        c,
	}
}

// Create records a payment against an existing job
func (s *TransactionService) Create(ctx context.Context, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
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

	if req.WorkerID != nil {
		worker, err := s.workers.GetByID(ctx, *req.WorkerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get worker: %w", err)
		}
		if worker == nil {
			return nil, ErrWorkerNotFound
		}
	}

	tx := req.ToTransaction()
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateDashboard(ctx, s.cache)
	return tx, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}

	return tx, nil
}

// List retrieves all transactions
func (s *TransactionService) List(ctx context.Context) ([]*domain.Transaction, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// ListByJobID retrieves transactions for a job
func (s *TransactionService) ListByJobID(ctx context.Context, jobID uuid.UUID) ([]*domain.Transaction, error) {
	txs, err := s.transactions.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// ListByUserID retrieves transactions for all of a user's jobs
func (s *TransactionService) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	txs, err := s.transactions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// Delete deletes a transaction
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	invalidateDashboard(ctx, s.cache)
	return nil
}

package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkerRepository defines the interface for worker persistence
type WorkerRepository interface {
	Create(ctx context.Context, worker *Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*Worker, error)
	List(ctx context.Context) ([]*Worker, error)
	Update(ctx context.Context, worker *Worker) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobRepository defines the interface for job persistence
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context) ([]*Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status JobStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetStats retrieves job counts grouped by status
	GetStats(ctx context.Context) (*JobStats, error)
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context) ([]*Transaction, error)
	ListByJobID(ctx context.Context, jobID uuid.UUID) ([]*Transaction, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpecializationRepository defines the interface for specialization persistence
type SpecializationRepository interface {
	Create(ctx context.Context, spec *Specialization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Specialization, error)
	List(ctx context.Context) ([]*Specialization, error)
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*Specialization, error)
	Update(ctx context.Context, spec *Specialization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LiveLocationRepository defines the interface for live location persistence
type LiveLocationRepository interface {
	Create(ctx context.Context, loc *LiveLocation) error
	List(ctx context.Context) ([]*LiveLocation, error)
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*LiveLocation, error)

	// UpsertByWorkerID replaces the worker's latest position
	UpsertByWorkerID(ctx context.Context, loc *LiveLocation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Nearby finds workers with a live location inside the search radius,
	// closest first
	Nearby(ctx context.Context, search NearbySearch) ([]*NearbyWorker, error)

	// DeleteStale removes locations older than maxAge, returning the count
	DeleteStale(ctx context.Context, maxAgeSeconds int) (int, error)
}

// StatsRepository is the read-only store contract for the dashboard
// aggregator. Sum and avg return exact zero when no transactions exist.
type StatsRepository interface {
	CountWorkers(ctx context.Context) (int, error)
	SumTransactionAmounts(ctx context.Context) (decimal.Decimal, error)
	AvgTransactionAmount(ctx context.Context) (decimal.Decimal, error)

	// SumTransactionAmountsByWorker groups attributed transactions by
	// worker and sums amounts per group. Unattributed transactions
	// (null worker_id) are excluded.
	SumTransactionAmountsByWorker(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)
	CountJobs(ctx context.Context) (int, error)

	// TopWorkersByIncome returns up to limit workers ordered by summed
	// transaction income descending, worker id ascending on ties.
	// Workers without transactions have zero income and still compete.
	TopWorkersByIncome(ctx context.Context, limit int) ([]TopWorkerEntry, error)
}

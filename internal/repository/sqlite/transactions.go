package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository for SQLite
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Amounts live in TEXT columns so they round-trip as exact decimal strings.
const transactionColumns = `
	id, job_id, worker_id, amount, currency, status, method, created_at
`

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.JobID, tx.WorkerID, tx.Amount.String(),
		tx.Currency, tx.Status, tx.Method, formatTime(tx.CreatedAt))
	return err
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// List retrieves all transactions, newest first
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query)
}

// ListByJobID retrieves transactions for a job
func (r *TransactionRepository) ListByJobID(ctx context.Context, jobID uuid.UUID) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE job_id = ? ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query, jobID)
}

// ListByUserID retrieves transactions for all of a user's jobs
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE job_id IN (SELECT id FROM jobs WHERE user_id = ?)
		ORDER BY created_at DESC
	`
	return r.queryTransactions(ctx, query, userID)
}

// Delete deletes a transaction by ID
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	var workerID uuid.NullUUID
	var amount string
	var createdAt string

	err := row.Scan(
		&tx.ID, &tx.JobID, &workerID, &amount,
		&tx.Currency, &tx.Status, &tx.Method, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	tx.WorkerID = nullableUUID(workerID)

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	tx.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

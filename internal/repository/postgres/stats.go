package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// StatsRepository implements domain.StatsRepository for PostgreSQL.
// All monetary aggregates are computed in NUMERIC and shipped to Go as
// text, so no float precision is lost on the way.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountWorkers returns the total number of workers
func (r *StatsRepository) CountWorkers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workers`).Scan(&count)
	return count, err
}

// CountJobs returns the total number of jobs
func (r *StatsRepository) CountJobs(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

// SumTransactionAmounts returns the sum over all transaction amounts,
// zero when the table is empty
func (r *StatsRepository) SumTransactionAmounts(ctx context.Context) (decimal.Decimal, error) {
	return r.queryDecimal(ctx, `SELECT COALESCE(SUM(amount), 0)::text FROM transactions`)
}

// AvgTransactionAmount returns the average transaction amount, zero when
// the table is empty
func (r *StatsRepository) AvgTransactionAmount(ctx context.Context) (decimal.Decimal, error) {
	return r.queryDecimal(ctx, `SELECT COALESCE(AVG(amount), 0)::text FROM transactions`)
}

// SumTransactionAmountsByWorker groups attributed transactions by worker
// and sums amounts per group. Unattributed rows are excluded.
func (r *StatsRepository) SumTransactionAmountsByWorker(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT worker_id, SUM(amount)::text
		FROM transactions
		WHERE worker_id IS NOT NULL
		GROUP BY worker_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[uuid.UUID]decimal.Decimal)
	for rows.Next() {
		var workerID uuid.UUID
		var amount string
		if err := rows.Scan(&workerID, &amount); err != nil {
			return nil, err
		}

		sum, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse worker sum %q: %w", amount, err)
		}
		sums[workerID] = sum
	}

	return sums, rows.Err()
}

// TopWorkersByIncome returns up to limit workers ordered by summed
// transaction income descending, worker id ascending on ties. Incomes
// and orders are pre-aggregated per worker before joining so multiple
// transactions cannot fan out the job count.
func (r *StatsRepository) TopWorkersByIncome(ctx context.Context, limit int) ([]domain.TopWorkerEntry, error) {
	query := `
		SELECT
			w.id,
			w.first_name,
			COALESCE(t.income, 0)::text AS income,
			COALESCE(j.orders, 0) AS orders
		FROM workers w
		LEFT JOIN (
			SELECT worker_id, SUM(amount) AS income
			FROM transactions
			WHERE worker_id IS NOT NULL
			GROUP BY worker_id
		) t ON t.worker_id = w.id
		LEFT JOIN (
			SELECT worker_id, COUNT(*) AS orders
			FROM jobs
			WHERE worker_id IS NOT NULL
			GROUP BY worker_id
		) j ON j.worker_id = w.id
		ORDER BY COALESCE(t.income, 0) DESC, w.id ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TopWorkerEntry
	for rows.Next() {
		var entry domain.TopWorkerEntry
		var income string

		if err := rows.Scan(&entry.WorkerID, &entry.Name, &income, &entry.Orders); err != nil {
			return nil, err
		}

		entry.Income, err = decimal.NewFromString(income)
		if err != nil {
			return nil, fmt.Errorf("parse top worker income %q: %w", income, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *StatsRepository) queryDecimal(ctx context.Context, query string) (decimal.Decimal, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse aggregate %q: %w", value, err)
	}
	return d, nil
}

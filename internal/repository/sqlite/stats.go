package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// StatsRepository implements domain.StatsRepository for SQLite.
// Amounts live in TEXT columns, and SQLite's SUM would coerce them to
// floats, so all monetary folding happens here with decimals instead of
// in SQL.
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
	sum, _, err := r.foldAmounts(ctx)
	return sum, err
}

// AvgTransactionAmount returns the average transaction amount, zero when
// the table is empty
func (r *StatsRepository) AvgTransactionAmount(ctx context.Context) (decimal.Decimal, error) {
	sum, count, err := r.foldAmounts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(count)), nil
}

// SumTransactionAmountsByWorker groups attributed transactions by worker
// and sums amounts per group. Unattributed rows are excluded.
func (r *StatsRepository) SumTransactionAmountsByWorker(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	query := `SELECT worker_id, amount FROM transactions WHERE worker_id IS NOT NULL`

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

		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		sums[workerID] = sums[workerID].Add(d)
	}

	return sums, rows.Err()
}

// TopWorkersByIncome returns up to limit workers ordered by summed
// transaction income descending, worker id ascending on ties. Per-worker
// incomes and job counts are gathered first and joined here, so multiple
// transactions cannot fan out the job count.
func (r *StatsRepository) TopWorkersByIncome(ctx context.Context, limit int) ([]domain.TopWorkerEntry, error) {
	incomes, err := r.SumTransactionAmountsByWorker(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := r.countJobsByWorker(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, first_name FROM workers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TopWorkerEntry
	for rows.Next() {
		var entry domain.TopWorkerEntry
		if err := rows.Scan(&entry.WorkerID, &entry.Name); err != nil {
			return nil, err
		}

		entry.Income = incomes[entry.WorkerID]
		entry.Orders = orders[entry.WorkerID]
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Income.Equal(entries[j].Income) {
			return entries[i].Income.GreaterThan(entries[j].Income)
		}
		return entries[i].WorkerID.String() < entries[j].WorkerID.String()
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func (r *StatsRepository) countJobsByWorker(ctx context.Context) (map[uuid.UUID]int, error) {
	query := `SELECT worker_id, COUNT(*) FROM jobs WHERE worker_id IS NOT NULL GROUP BY worker_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var workerID uuid.UUID
		var count int
		if err := rows.Scan(&workerID, &count); err != nil {
			return nil, err
		}
		counts[workerID] = count
	}

	return counts, rows.Err()
}

func (r *StatsRepository) foldAmounts(ctx context.Context) (decimal.Decimal, int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount FROM transactions`)
	if err != nil {
		return decimal.Zero, 0, err
	}
	defer rows.Close()

	sum := decimal.Zero
	var count int64
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, 0, err
		}

		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, 0, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		sum = sum.Add(d)
		count++
	}

	return sum, count, rows.Err()
}

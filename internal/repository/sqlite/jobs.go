package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// JobRepository implements domain.JobRepository for SQLite
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `
	id, user_id, worker_id, description, address, lat, lng,
	status, booked_for, duration_minutes, created_at
`

// Create inserts a new job
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.UserID, job.WorkerID, job.Description, job.Address,
		job.Lat, job.Lng, job.Status, formatNullableTime(job.BookedFor),
		job.DurationMinutes, formatTime(job.CreatedAt))
	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// List retrieves all jobs, newest first
func (r *JobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// UpdateStatus updates only the status of a job
func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// Delete deletes a job by ID
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// GetStats retrieves job counts grouped by status
func (r *JobRepository) GetStats(ctx context.Context) (*domain.JobStats, error) {
	query := `
		SELECT
			COUNT(*),
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END)
		FROM jobs
	`

	stats := &domain.JobStats{}
	var pending, confirmed, running, completed, cancelled sql.NullInt64

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total, &pending, &confirmed, &running, &completed, &cancelled,
	)
	if err != nil {
		return nil, err
	}

	stats.Pending = int(pending.Int64)
	stats.Confirmed = int(confirmed.Int64)
	stats.Running = int(running.Int64)
	stats.Completed = int(completed.Int64)
	stats.Cancelled = int(cancelled.Int64)

	return stats, nil
}

func scanJob(row rowScanner) (*domain.Job, error) {
	job := &domain.Job{}
	var workerID uuid.NullUUID
	var bookedFor *string
	var createdAt string

	err := row.Scan(
		&job.ID, &job.UserID, &workerID, &job.Description, &job.Address,
		&job.Lat, &job.Lng, &job.Status, &bookedFor, &job.DurationMinutes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	job.WorkerID = nullableUUID(workerID)

	job.BookedFor, err = parseNullableTime(bookedFor)
	if err != nil {
		return nil, err
	}

	job.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

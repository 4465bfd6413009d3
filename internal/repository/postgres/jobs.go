package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// JobRepository implements domain.JobRepository for PostgreSQL
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
		INSERT INTO jobs (id, user_id, worker_id, description, address, lat, lng,
			status, booked_for, duration_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.UserID, job.WorkerID, job.Description, job.Address,
		job.Lat, job.Lng, job.Status, job.BookedFor, job.DurationMinutes, job.CreatedAt)
	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

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
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete deletes a job by ID
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetStats retrieves job counts grouped by status
func (r *JobRepository) GetStats(ctx context.Context) (*domain.JobStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
		FROM jobs
	`

	stats := &domain.JobStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Pending, &stats.Confirmed,
		&stats.Running, &stats.Completed, &stats.Cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("job stats query: %w", err)
	}

	return stats, nil
}

func scanJob(row rowScanner) (*domain.Job, error) {
	job := &domain.Job{}
	err := row.Scan(
		&job.ID, &job.UserID, &job.WorkerID, &job.Description, &job.Address,
		&job.Lat, &job.Lng, &job.Status, &job.BookedFor, &job.DurationMinutes,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// WorkerRepository implements domain.WorkerRepository for SQLite
type WorkerRepository struct {
	db *sql.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *sql.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerColumns = `
	id, first_name, middle_name, last_name, email, phone_number,
	address, description, date_of_birth, gender, experience_years, created_at
`

// Create inserts a new worker
func (r *WorkerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		worker.ID, worker.FirstName, worker.MiddleName, worker.LastName,
		worker.Email, worker.PhoneNumber, worker.Address, worker.Description,
		worker.DateOfBirth, worker.Gender, worker.ExperienceYears, formatTime(worker.CreatedAt))
	return err
}

// GetByID retrieves a worker by ID
func (r *WorkerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = ?`

	worker, err := scanWorker(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// List retrieves all workers, newest first
func (r *WorkerRepository) List(ctx context.Context) ([]*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*domain.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	return workers, rows.Err()
}

// Update updates a worker
func (r *WorkerRepository) Update(ctx context.Context, worker *domain.Worker) error {
	query := `
		UPDATE workers SET
			first_name = ?, middle_name = ?, last_name = ?, email = ?,
			phone_number = ?, address = ?, description = ?,
			date_of_birth = ?, gender = ?, experience_years = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		worker.FirstName, worker.MiddleName, worker.LastName, worker.Email,
		worker.PhoneNumber, worker.Address, worker.Description,
		worker.DateOfBirth, worker.Gender, worker.ExperienceYears, worker.ID)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// Delete deletes a worker by ID
func (r *WorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	worker := &domain.Worker{}
	var createdAt string

	err := row.Scan(
		&worker.ID, &worker.FirstName, &worker.MiddleName, &worker.LastName,
		&worker.Email, &worker.PhoneNumber, &worker.Address, &worker.Description,
		&worker.DateOfBirth, &worker.Gender, &worker.ExperienceYears, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	worker.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return worker, nil
}

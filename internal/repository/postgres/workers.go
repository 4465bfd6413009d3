package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// WorkerRepository implements domain.WorkerRepository for PostgreSQL
type WorkerRepository struct {
	db *sql.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *sql.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerColumns = `
	id, first_name, middle_name, last_name, email, phone_number,
	address, description, to_char(date_of_birth, 'YYYY-MM-DD'),
	gender, experience_years, created_at
`

// Create inserts a new worker
func (r *WorkerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	query := `
		INSERT INTO workers (
			id, first_name, middle_name, last_name, email, phone_number,
			address, description, date_of_birth, gender, experience_years, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		worker.ID, worker.FirstName, worker.MiddleName, worker.LastName,
		worker.Email, worker.PhoneNumber, worker.Address, worker.Description,
		worker.DateOfBirth, worker.Gender, worker.ExperienceYears, worker.CreatedAt)
	return err
}

// GetByID retrieves a worker by ID
func (r *WorkerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`

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
			first_name = $2, middle_name = $3, last_name = $4, email = $5,
			phone_number = $6, address = $7, description = $8,
			date_of_birth = $9, gender = $10, experience_years = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		worker.ID, worker.FirstName, worker.MiddleName, worker.LastName,
		worker.Email, worker.PhoneNumber, worker.Address, worker.Description,
		worker.DateOfBirth, worker.Gender, worker.ExperienceYears)
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

// Delete deletes a worker by ID
func (r *WorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = $1`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	worker := &domain.Worker{}
	err := row.Scan(
		&worker.ID, &worker.FirstName, &worker.MiddleName, &worker.LastName,
		&worker.Email, &worker.PhoneNumber, &worker.Address, &worker.Description,
		&worker.DateOfBirth, &worker.Gender, &worker.ExperienceYears, &worker.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return worker, nil
}

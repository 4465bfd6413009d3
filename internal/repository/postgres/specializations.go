package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// SpecializationRepository implements domain.SpecializationRepository for PostgreSQL
type SpecializationRepository struct {
	db *sql.DB
}

// NewSpecializationRepository creates a new SpecializationRepository
func NewSpecializationRepository(db *sql.DB) *SpecializationRepository {
	return &SpecializationRepository{db: db}
}

const specializationColumns = `id, worker_id, category, sub_category, created_at`

// Create inserts a new specialization
func (r *SpecializationRepository) Create(ctx context.Context, spec *domain.Specialization) error {
	query := `
		INSERT INTO specializations (id, worker_id, category, sub_category, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		spec.ID, spec.WorkerID, spec.Category, spec.SubCategory, spec.CreatedAt)
	return err
}

// GetByID retrieves a specialization by ID
func (r *SpecializationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Specialization, error) {
	query := `SELECT ` + specializationColumns + ` FROM specializations WHERE id = $1`

	spec, err := scanSpecialization(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// List retrieves all specializations
func (r *SpecializationRepository) List(ctx context.Context) ([]*domain.Specialization, error) {
	query := `SELECT ` + specializationColumns + ` FROM specializations ORDER BY created_at DESC`
	return r.querySpecializations(ctx, query)
}

// ListByWorkerID retrieves specializations for a worker
func (r *SpecializationRepository) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Specialization, error) {
	query := `SELECT ` + specializationColumns + ` FROM specializations WHERE worker_id = $1 ORDER BY created_at DESC`
	return r.querySpecializations(ctx, query, workerID)
}

// Update updates a specialization
func (r *SpecializationRepository) Update(ctx context.Context, spec *domain.Specialization) error {
	query := `UPDATE specializations SET category = $2, sub_category = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, spec.ID, spec.Category, spec.SubCategory)
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

// Delete deletes a specialization by ID
func (r *SpecializationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM specializations WHERE id = $1`, id)
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

func (r *SpecializationRepository) querySpecializations(ctx context.Context, query string, args ...any) ([]*domain.Specialization, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []*domain.Specialization
	for rows.Next() {
		spec, err := scanSpecialization(rows)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, rows.Err()
}

func scanSpecialization(row rowScanner) (*domain.Specialization, error) {
	spec := &domain.Specialization{}
	err := row.Scan(&spec.ID, &spec.WorkerID, &spec.Category, &spec.SubCategory, &spec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

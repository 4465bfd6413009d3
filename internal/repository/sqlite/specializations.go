package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// SpecializationRepository implements domain.SpecializationRepository for SQLite
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
		INSERT INTO specializations (` + specializationColumns + `)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		spec.ID, spec.WorkerID, spec.Category, spec.SubCategory, formatTime(spec.CreatedAt))
	return err
}

// GetByID retrieves a specialization by ID
func (r *SpecializationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Specialization, error) {
	query := `SELECT ` + specializationColumns + ` FROM specializations WHERE id = ?`

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
	query := `SELECT ` + specializationColumns + ` FROM specializations WHERE worker_id = ? ORDER BY created_at DESC`
	return r.querySpecializations(ctx, query, workerID)
}

// Update updates a specialization
func (r *SpecializationRepository) Update(ctx context.Context, spec *domain.Specialization) error {
	query := `UPDATE specializations SET category = ?, sub_category = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, spec.Category, spec.SubCategory, spec.ID)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// Delete deletes a specialization by ID
func (r *SpecializationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM specializations WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
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
	var createdAt string

	err := row.Scan(&spec.ID, &spec.WorkerID, &spec.Category, &spec.SubCategory, &createdAt)
	if err != nil {
		return nil, err
	}

	spec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, job_id, worker_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.JobID, review.WorkerID, review.UserID,
		review.Rating, review.Comment, review.CreatedAt)
	return err
}

// ListByWorkerID retrieves reviews for a worker, newest first
func (r *ReviewRepository) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT id, job_id, worker_id, user_id, rating, comment, created_at
		FROM reviews WHERE worker_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID, &review.JobID, &review.WorkerID, &review.UserID,
			&review.Rating, &review.Comment, &review.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// Delete deletes a review by ID
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
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

package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository for SQLite
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.JobID, review.WorkerID, review.UserID,
		review.Rating, review.Comment, formatTime(review.CreatedAt))
	return err
}

// ListByWorkerID retrieves reviews for a worker, newest first
func (r *ReviewRepository) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT id, job_id, worker_id, user_id, rating, comment, created_at
		FROM reviews WHERE worker_id = ? ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review := &domain.Review{}
		var createdAt string

		err := rows.Scan(
			&review.ID, &review.JobID, &review.WorkerID, &review.UserID,
			&review.Rating, &review.Comment, &createdAt,
		)
		if err != nil {
			return nil, err
		}

		review.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// Delete deletes a review by ID
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

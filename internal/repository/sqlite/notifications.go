package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// NotificationRepository implements domain.NotificationRepository for SQLite
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Message, n.Type, formatTime(n.CreatedAt))
	return err
}

// ListByUserID retrieves notifications for a user, newest first
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n := &domain.Notification{}
		var createdAt string

		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &createdAt)
		if err != nil {
			return nil, err
		}

		n.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// Delete deletes a notification by ID
func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

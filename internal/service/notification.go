package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
	"github.com/urbanserve/urbanserve/internal/mq"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationEnqueuer hands a notification to the Redis delivery queue
type NotificationEnqueuer interface {
	Enqueue(ctx context.Context, n *domain.Notification) error
}

// NotificationService handles notification business logic. Delivery is
// asynchronous: Send enqueues, the notifier run mode persists. RabbitMQ
// is preferred when configured, then the Redis queue, then a direct
// write for queueless deployments. Recipients are users or workers, so
// user_id is deliberately not checked against the users table.
type NotificationService struct {
	notifications domain.NotificationRepository
	enqueuer      NotificationEnqueuer
	mqPub         mq.Publisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications domain.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// WithQueue sets the Redis delivery queue
func (s *NotificationService) WithQueue(enqueuer NotificationEnqueuer) *NotificationService {
	s.enqueuer = enqueuer
	return s
}

// WithMQ sets the RabbitMQ publisher, preferred over the Redis queue
func (s *NotificationService) WithMQ(pub mq.Publisher) *NotificationService {
	s.mqPub = pub
	return s
}

// Send validates and dispatches a notification for delivery
func (s *NotificationService) Send(ctx context.Context, req *domain.CreateNotificationRequest) (*domain.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := req.ToNotification()
	if err := s.Enqueue(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Enqueue hands a built notification to the configured transport. The
// job broadcast subscriber calls this directly for worker offers.
func (s *NotificationService) Enqueue(ctx context.Context, n *domain.Notification) error {
	if s.mqPub != nil {
		msg := &mq.NotificationMessage{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Title:          n.Title,
			Message:        n.Message,
			Type:           n.Type,
		}
		if err := s.mqPub.Publish(ctx, msg); err != nil {
			return fmt.Errorf("failed to publish notification: %w", err)
		}
		log.Printf("[NotificationService] notification %s published to RabbitMQ", n.ID)
		return nil
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.Enqueue(ctx, n); err != nil {
			return fmt.Errorf("failed to enqueue notification: %w", err)
		}
		return nil
	}

	// No queue configured, persist directly
	return s.Deliver(ctx, n)
}

// Deliver persists a notification to the user's inbox. The queue worker
// and the RabbitMQ consumer both land here.
func (s *NotificationService) Deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	log.Printf("[NotificationService] delivered %s notification %s to user %s", n.Type, n.ID, n.UserID)
	return nil
}

// ListByUserID retrieves a user's notifications
func (s *NotificationService) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	notifications, err := s.notifications.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// Delete deletes a notification
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes notifications for the client UI
type NotificationType string

const (
	NotificationTypeGeneral           NotificationType = "general"
	NotificationTypeSuccess           NotificationType = "success"
	NotificationTypeWarning           NotificationType = "warning"
	NotificationTypeError             NotificationType = "error"
	NotificationTypeInfo              NotificationType = "info"
	NotificationTypeTransaction       NotificationType = "transaction"
	NotificationTypeOrderStatusUpdate NotificationType = "order_status_update"
	NotificationTypeJobRequest        NotificationType = "job_request"
)

// IsValid returns true if the type is one of the known values
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeGeneral, NotificationTypeSuccess, NotificationTypeWarning,
		NotificationTypeError, NotificationTypeInfo, NotificationTypeTransaction,
		NotificationTypeOrderStatusUpdate, NotificationTypeJobRequest:
		return true
	}
	return false
}

// Notification is a message delivered to a user or worker inbox
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}

// CreateNotificationRequest is the request body for sending a notification
type CreateNotificationRequest struct {
	UserID  uuid.UUID        `json:"user_id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// Validate checks required fields
func (r *CreateNotificationRequest) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrValidation("user_id is required")
	}
	if r.Title == "" {
		return ErrValidation("title is required")
	}
	if r.Message == "" {
		return ErrValidation("message is required")
	}
	if r.Type == "" {
		r.Type = NotificationTypeGeneral
	}
	if !r.Type.IsValid() {
		return ErrValidation("invalid notification type")
	}
	return nil
}

// ToNotification converts the request to a Notification
func (r *CreateNotificationRequest) ToNotification() *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    r.UserID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      r.Type,
		CreatedAt: time.Now().UTC(),
	}
}

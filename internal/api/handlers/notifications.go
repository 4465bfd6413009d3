package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// NotificationServiceInterface defines the notification service methods
type NotificationServiceInterface interface {
	Send(ctx context.Context, req *domain.CreateNotificationRequest) (*domain.Notification, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notifications NotificationServiceInterface
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
	}
}

// Send handles POST /api/v1/notifications
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	n, err := h.notifications.Send(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusAccepted, n)
}

// ListByUserID handles GET /api/v1/notifications/user/{userId}
func (h *NotificationHandler) ListByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := PathUUID(r, "userId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	notifications, err := h.notifications.ListByUserID(r.Context(), userID)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, notifications)
}

// Delete handles DELETE /api/v1/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.notifications.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanserve/urbanserve/internal/domain"
	"github.com/urbanserve/urbanserve/internal/mq"
)

type fakeNotificationRepo struct {
	stored []*domain.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	f.stored = append(f.stored, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.stored {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, n := range f.stored {
		if n.ID == id {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeEnqueuer struct {
	enqueued []*domain.Notification
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, n *domain.Notification) error {
	f.enqueued = append(f.enqueued, n)
	return nil
}

type fakeMQPublisher struct {
	published []*mq.NotificationMessage
}

func (f *fakeMQPublisher) Publish(_ context.Context, msg *mq.NotificationMessage) error {
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeMQPublisher) Close() error { return nil }

func sendRequest() *domain.CreateNotificationRequest {
	return &domain.CreateNotificationRequest{
		UserID:  uuid.New(),
		Title:   "Booking confirmed",
		Message: "Your plumber arrives at 10:00",
		Type:    domain.NotificationTypeOrderStatusUpdate,
	}
}

func TestNotificationSendWithoutQueuePersistsDirectly(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	n, err := svc.Send(context.Background(), sendRequest())
	require.NoError(t, err)

	require.Len(t, repo.stored, 1)
	assert.Equal(t, n.ID, repo.stored[0].ID)
}

func TestNotificationSendPrefersRabbitMQ(t *testing.T) {
	repo := &fakeNotificationRepo{}
	enq := &fakeEnqueuer{}
	pub := &fakeMQPublisher{}
	svc := NewNotificationService(repo).WithQueue(enq).WithMQ(pub)

	n, err := svc.Send(context.Background(), sendRequest())
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Equal(t, n.ID, pub.published[0].NotificationID)
	assert.Empty(t, enq.enqueued)
	assert.Empty(t, repo.stored)
}

func TestNotificationSendFallsBackToRedisQueue(t *testing.T) {
	repo := &fakeNotificationRepo{}
	enq := &fakeEnqueuer{}
	svc := NewNotificationService(repo).WithQueue(enq)

	n, err := svc.Send(context.Background(), sendRequest())
	require.NoError(t, err)

	require.Len(t, enq.enqueued, 1)
	assert.Equal(t, n.ID, enq.enqueued[0].ID)
	assert.Empty(t, repo.stored)
}

func TestNotificationSendRejectsInvalidRequest(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{})

	req := sendRequest()
	req.Title = ""
	_, err := svc.Send(context.Background(), req)
	assert.True(t, domain.IsValidation(err))
}

func TestNotificationDeliverPersists(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	n := sendRequest().ToNotification()
	require.NoError(t, svc.Deliver(context.Background(), n))

	got, err := svc.ListByUserID(context.Background(), n.UserID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Booking confirmed", got[0].Title)
}

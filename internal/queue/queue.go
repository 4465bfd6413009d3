// Package queue provides a Redis-based notification delivery queue using Asynq
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/urbanserve/urbanserve/internal/domain"
)

const (
	// Task types
	TypeNotificationDeliver = "notification:deliver"

	// Queue names
	QueueDefault = "default"
	QueueHigh    = "high"
)

// NotificationPayload is the payload for a notification delivery task
type NotificationPayload struct {
	NotificationID uuid.UUID               `json:"notification_id"`
	UserID         uuid.UUID               `json:"user_id"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Type           domain.NotificationType `json:"type"`
	EnqueuedAt     time.Time               `json:"enqueued_at"`
}

// Config holds Redis queue configuration
type Config struct {
	RedisURL  string
	RedisAddr string
	Password  string
	DB        int
}

// Queue enqueues notification delivery tasks onto Redis
type Queue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	redisOpt  asynq.RedisConnOpt
}

// New creates a new Queue
func New(cfg *Config) (*Queue, error) {
	redisOpt, err := connOpt(cfg.RedisURL, cfg.RedisAddr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, err
	}

	return &Queue{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		redisOpt:  redisOpt,
	}, nil
}

// Enqueue adds a notification to the delivery queue. Job requests go to
// the high priority queue so worker offers arrive before the booking
// goes stale.
func (q *Queue) Enqueue(ctx context.Context, n *domain.Notification) error {
	payload := NotificationPayload{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		EnqueuedAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeNotificationDeliver, data)

	queueName := QueueDefault
	if n.Type == domain.NotificationTypeJobRequest {
		queueName = QueueHigh
	}

	opts := []asynq.Option{
		asynq.Queue(queueName),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Retention(24 * time.Hour),
	}

	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Printf("queue: enqueued notification %s to queue %s (task_id: %s)", n.ID, queueName, info.ID)
	return nil
}

// GetRedisOpt returns the Redis client options for creating a server
func (q *Queue) GetRedisOpt() asynq.RedisConnOpt {
	return q.redisOpt
}

// GetQueueStats returns queue statistics
func (q *Queue) GetQueueStats(ctx context.Context) (map[string]*asynq.QueueInfo, error) {
	queues := []string{QueueDefault, QueueHigh}
	stats := make(map[string]*asynq.QueueInfo)

	for _, queue := range queues {
		info, err := q.inspector.GetQueueInfo(queue)
		if err != nil {
			// Queue might not exist yet
			continue
		}
		stats[queue] = info
	}

	return stats, nil
}

// Close closes the queue client
func (q *Queue) Close() error {
	if q.client != nil {
		return q.client.Close()
	}
	return nil
}

// ParsePayload parses a notification payload from task data
func ParsePayload(data []byte) (*NotificationPayload, error) {
	var payload NotificationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}

func connOpt(redisURL, redisAddr, password string, db int) (asynq.RedisConnOpt, error) {
	if redisURL != "" {
		opt, err := asynq.ParseRedisURI(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		return opt, nil
	}
	if redisAddr != "" {
		return asynq.RedisClientOpt{
			Addr:         redisAddr,
			Password:     password,
			DB:           db,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}, nil
	}
	return nil, fmt.Errorf("redis URL or address is required")
}

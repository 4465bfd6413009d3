package notifierrunner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
	"github.com/urbanserve/urbanserve/internal/mq"
	"github.com/urbanserve/urbanserve/internal/queue"
	"github.com/urbanserve/urbanserve/internal/service"
	"github.com/urbanserve/urbanserve/runner"
)

var errNoTransport = errors.New("notifier requires -rabbitmq-url or a Redis queue (-redis-addr / -redis-url)")

// NotifierRunner drains the notification delivery queue and persists
// each message to the recipient's inbox. RabbitMQ is preferred when
// configured, otherwise the Redis queue is consumed.
type NotifierRunner struct {
	cfg      *runner.Config
	db       *sql.DB
	svc      *service.NotificationService
	consumer mq.Consumer
	worker   *queue.Worker
}

// New creates a new NotifierRunner
func New(cfg *runner.Config) (runner.Runner, error) {
	db, repos, err := runner.OpenStorage(cfg.Dsn)
	if err != nil {
		return nil, err
	}

	n := &NotifierRunner{
		cfg: cfg,
		db:  db,
		svc: service.NewNotificationService(repos.Notifications),
	}

	switch {
	case cfg.RabbitMQURL != "":
		consumerID := cfg.ConsumerID
		if consumerID == "" {
			consumerID = "notifier-" + uuid.New().String()[:8]
		}

		consumer, err := mq.NewConsumer(mq.ConsumerConfig{
			URL:        cfg.RabbitMQURL,
			ConsumerID: consumerID,
		})
		if err != nil {
			db.Close()
			return nil, err
		}
		n.consumer = consumer

	case cfg.RedisAddr != "" || cfg.RedisURL != "":
		worker, err := queue.NewWorker(&queue.WorkerConfig{
			RedisURL:    cfg.RedisURL,
			RedisAddr:   cfg.RedisAddr,
			Password:    cfg.RedisPass,
			DB:          cfg.RedisDB,
			Concurrency: cfg.Concurrency,
		}, n.deliverPayload)
		if err != nil {
			db.Close()
			return nil, err
		}
		n.worker = worker

	default:
		db.Close()
		return nil, errNoTransport
	}

	return n, nil
}

// Run consumes notifications until ctx is cancelled
func (n *NotifierRunner) Run(ctx context.Context) error {
	if n.consumer != nil {
		log.Printf("[Notifier] consuming from RabbitMQ")
		return n.consumer.Consume(ctx, n.deliverMessage)
	}

	log.Printf("[Notifier] consuming from Redis queue with concurrency %d", n.cfg.Concurrency)
	return n.worker.Run(ctx)
}

// Close cleans up resources
func (n *NotifierRunner) Close(_ context.Context) error {
	if n.consumer != nil {
		if err := n.consumer.Close(); err != nil {
			log.Printf("[Notifier] error closing consumer: %v", err)
		}
	}

	if n.worker != nil {
		n.worker.Shutdown()
	}

	if n.db != nil {
		return n.db.Close()
	}
	return nil
}

func (n *NotifierRunner) deliverMessage(ctx context.Context, msg *mq.NotificationMessage) error {
	return n.deliver(ctx, &domain.Notification{
		ID:        msg.NotificationID,
		UserID:    msg.UserID,
		Title:     msg.Title,
		Message:   msg.Message,
		Type:      msg.Type,
		CreatedAt: time.Now().UTC(),
	})
}

func (n *NotifierRunner) deliverPayload(ctx context.Context, payload *queue.NotificationPayload) error {
	return n.deliver(ctx, &domain.Notification{
		ID:        payload.NotificationID,
		UserID:    payload.UserID,
		Title:     payload.Title,
		Message:   payload.Message,
		Type:      payload.Type,
		CreatedAt: time.Now().UTC(),
	})
}

func (n *NotifierRunner) deliver(ctx context.Context, notification *domain.Notification) error {
	if err := n.svc.Deliver(ctx, notification); err != nil {
		return fmt.Errorf("delivery of notification %s failed: %w", notification.ID, err)
	}
	return nil
}

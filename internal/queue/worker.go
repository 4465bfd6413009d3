package queue

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// DeliveryHandler is a function that delivers a queued notification
type DeliveryHandler func(ctx context.Context, payload *NotificationPayload) error

// Worker processes notification delivery tasks from the Redis queue
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	handler DeliveryHandler
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	RedisURL    string
	RedisAddr   string
	Password    string
	DB          int
	Concurrency int
	Queues      map[string]int // queue name -> priority
}

// NewWorker creates a new queue worker
func NewWorker(cfg *WorkerConfig, handler DeliveryHandler) (*Worker, error) {
	redisOpt, err := connOpt(cfg.RedisURL, cfg.RedisAddr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	queues := cfg.Queues
	if queues == nil {
		queues = map[string]int{
			QueueHigh:    3,
			QueueDefault: 1,
		}
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues:      queues,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("queue worker error: task=%s, error=%v", task.Type(), err)
			}),
			Logger: &asynqLogger{},
		},
	)

	w := &Worker{
		server:  server,
		mux:     asynq.NewServeMux(),
		handler: handler,
	}

	w.mux.HandleFunc(TypeNotificationDeliver, w.handleDeliver)

	return w, nil
}

// handleDeliver processes a notification delivery task
func (w *Worker) handleDeliver(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePayload(task.Payload())
	if err != nil {
		return fmt.Errorf("failed to parse payload: %w", err)
	}

	log.Printf("queue worker: delivering notification %s", payload.NotificationID)

	if err := w.handler(ctx, payload); err != nil {
		log.Printf("queue worker: notification %s failed: %v", payload.NotificationID, err)
		return err
	}

	log.Printf("queue worker: notification %s delivered", payload.NotificationID)
	return nil
}

// Run starts the worker and blocks until ctx is cancelled
func (w *Worker) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- w.server.Run(w.mux)
	}()

	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the worker
func (w *Worker) Shutdown() {
	if w.server != nil {
		w.server.Shutdown()
	}
}

// asynqLogger adapts asynq logging to standard log
type asynqLogger struct{}

func (l *asynqLogger) Debug(args ...interface{}) {
	// Suppress debug logs
}

func (l *asynqLogger) Info(args ...interface{}) {
	log.Println(args...)
}

func (l *asynqLogger) Warn(args ...interface{}) {
	log.Println("[WARN]", fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	log.Println("[ERROR]", fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	log.Fatalln("[FATAL]", fmt.Sprint(args...))
}

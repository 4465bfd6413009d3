// Package broadcast fans newly created jobs out to nearby workers over
// Redis pub/sub.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// ChannelNewJobs is the Redis channel new jobs are published on
const ChannelNewJobs = "jobs:new"

// JobEvent is the wire payload published for a new job
type JobEvent struct {
	JobID     uuid.UUID `json:"job_id"`
	UserID    uuid.UUID `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher publishes new job events
type Publisher interface {
	PublishJob(ctx context.Context, job *domain.Job) error
	Close() error
}

// RedisPublisher implements Publisher on a Redis channel
type RedisPublisher struct {
	client  *redis.Client
	metrics *Metrics
}

// NewRedisPublisher creates a publisher on an existing Redis client.
// The client is shared with the cache, so Close is a no-op here.
func NewRedisPublisher(client *redis.Client, metrics *Metrics) *RedisPublisher {
	return &RedisPublisher{client: client, metrics: metrics}
}

// PublishJob publishes a new job event to the jobs:new channel
func (p *RedisPublisher) PublishJob(ctx context.Context, job *domain.Job) error {
	event := JobEvent{
		JobID:     job.ID,
		UserID:    job.UserID,
		Lat:       job.Lat,
		Lng:       job.Lng,
		CreatedAt: job.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	if err := p.client.Publish(ctx, ChannelNewJobs, data).Err(); err != nil {
		p.metrics.RecordPublishFailure()
		return fmt.Errorf("publish job event: %w", err)
	}

	p.metrics.RecordPublished()
	return nil
}

// Close implements Publisher. The underlying client is owned by the
// cache layer.
func (p *RedisPublisher) Close() error {
	return nil
}

// NoOpPublisher is used when Redis is not configured
type NoOpPublisher struct{}

func (NoOpPublisher) PublishJob(_ context.Context, _ *domain.Job) error { return nil }
func (NoOpPublisher) Close() error                                      { return nil }

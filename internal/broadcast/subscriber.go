package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// RadiusSteps are the search radii tried in order when matching workers
// to a new job. The first radius that yields any workers wins.
var RadiusSteps = []float64{10, 15, 20}

// MatchLimit caps how many workers a single job is offered to
const MatchLimit = 20

// Enqueuer hands matched notifications to the delivery queue
type Enqueuer interface {
	Enqueue(ctx context.Context, n *domain.Notification) error
}

// Subscriber consumes jobs:new events and offers each job to workers
// with a live location near the booking.
type Subscriber struct {
	client    *redis.Client
	locations domain.LiveLocationRepository
	enqueuer  Enqueuer
	metrics   *Metrics
}

// NewSubscriber creates a new Subscriber
func NewSubscriber(client *redis.Client, locations domain.LiveLocationRepository, enqueuer Enqueuer, metrics *Metrics) *Subscriber {
	return &Subscriber{
		client:    client,
		locations: locations,
		enqueuer:  enqueuer,
		metrics:   metrics,
	}
}

// Run subscribes to the jobs:new channel and blocks until ctx is
// cancelled. Handler errors are logged and counted, never fatal.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, ChannelNewJobs)
	defer pubsub.Close()

	// Fail fast if the subscription never establishes
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", ChannelNewJobs, err)
	}

	log.Printf("[Broadcast] subscribed to %s", ChannelNewJobs)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Println("[Broadcast] subscriber stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription channel closed")
			}

			var event JobEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[Broadcast] malformed job event: %v", err)
				s.metrics.RecordBroadcastFailure()
				continue
			}

			if err := s.handleJob(ctx, &event); err != nil {
				log.Printf("[Broadcast] job %s failed: %v", event.JobID, err)
				s.metrics.RecordBroadcastFailure()
			}
		}
	}
}

// handleJob matches workers for one job event and enqueues the offers
func (s *Subscriber) handleJob(ctx context.Context, event *JobEvent) error {
	workers, radius, err := s.matchWorkers(ctx, event.Lat, event.Lng)
	if err != nil {
		return err
	}

	if len(workers) == 0 {
		log.Printf("[Broadcast] job %s: no workers within %.0f km", event.JobID, RadiusSteps[len(RadiusSteps)-1])
		s.metrics.RecordNoWorkers()

		return s.enqueuer.Enqueue(ctx, &domain.Notification{
			ID:        uuid.New(),
			UserID:    event.UserID,
			Title:     "No workers nearby",
			Message:   "No workers are currently available near your location. Please try again later.",
			Type:      domain.NotificationTypeWarning,
			CreatedAt: time.Now().UTC(),
		})
	}

	log.Printf("[Broadcast] job %s: matched %d workers at %.0f km", event.JobID, len(workers), radius)

	for _, w := range workers {
		n := &domain.Notification{
			ID:        uuid.New(),
			UserID:    w.WorkerID,
			Title:     "New job request",
			Message:   fmt.Sprintf("A new job %.1f km away is waiting for your confirmation.", w.DistanceKm),
			Type:      domain.NotificationTypeJobRequest,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.enqueuer.Enqueue(ctx, n); err != nil {
			return fmt.Errorf("enqueue offer for worker %s: %w", w.WorkerID, err)
		}
	}

	s.metrics.RecordBroadcast(len(workers))
	return nil
}

// matchWorkers widens the search through RadiusSteps until workers are
// found or the steps are exhausted
func (s *Subscriber) matchWorkers(ctx context.Context, lat, lng float64) ([]*domain.NearbyWorker, float64, error) {
	for _, radius := range RadiusSteps {
		workers, err := s.locations.Nearby(ctx, domain.NearbySearch{
			Lat:      lat,
			Lng:      lng,
			RadiusKm: radius,
			Limit:    MatchLimit,
		})
		if err != nil {
			return nil, radius, fmt.Errorf("nearby search at %.0f km: %w", radius, err)
		}
		if len(workers) > 0 {
			return workers, radius, nil
		}
	}

	return nil, RadiusSteps[len(RadiusSteps)-1], nil
}

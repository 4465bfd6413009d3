package broadcast

import (
	"context"
	"log"
	"sync"
	"time"
)

// Metrics tracks broadcast activity in memory. Counters survive until
// process restart or an explicit Reset.
type Metrics struct {
	mu sync.Mutex

	published        int
	publishFailures  int
	broadcasts       int
	broadcastFailed  int
	noWorkersFound   int
	workersNotified  int
	lastBroadcastAt  time.Time
	lastMatchedCount int
}

// NewMetrics creates empty broadcast metrics
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordPublished counts a successfully published job event
func (m *Metrics) RecordPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published++
}

// RecordPublishFailure counts a failed publish attempt
func (m *Metrics) RecordPublishFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishFailures++
}

// RecordBroadcast counts one completed fan-out and the workers it reached
func (m *Metrics) RecordBroadcast(workers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts++
	m.workersNotified += workers
	m.lastMatchedCount = workers
	m.lastBroadcastAt = time.Now().UTC()
}

// RecordBroadcastFailure counts a fan-out that errored
func (m *Metrics) RecordBroadcastFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcastFailed++
}

// RecordNoWorkers counts a job with no workers in any radius step
func (m *Metrics) RecordNoWorkers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noWorkersFound++
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Published        int        `json:"published"`
	PublishFailures  int        `json:"publish_failures"`
	Broadcasts       int        `json:"broadcasts"`
	BroadcastFailed  int        `json:"broadcast_failures"`
	NoWorkersFound   int        `json:"no_workers_found"`
	WorkersNotified  int        `json:"workers_notified"`
	LastMatchedCount int        `json:"last_matched_count"`
	LastBroadcastAt  *time.Time `json:"last_broadcast_at,omitempty"`
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Published:        m.published,
		PublishFailures:  m.publishFailures,
		Broadcasts:       m.broadcasts,
		BroadcastFailed:  m.broadcastFailed,
		NoWorkersFound:   m.noWorkersFound,
		WorkersNotified:  m.workersNotified,
		LastMatchedCount: m.lastMatchedCount,
	}
	if !m.lastBroadcastAt.IsZero() {
		t := m.lastBroadcastAt
		s.LastBroadcastAt = &t
	}
	return s
}

// Reset zeroes all counters
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.published = 0
	m.publishFailures = 0
	m.broadcasts = 0
	m.broadcastFailed = 0
	m.noWorkersFound = 0
	m.workersNotified = 0
	m.lastMatchedCount = 0
	m.lastBroadcastAt = time.Time{}
}

// Monitor periodically logs a broadcast activity summary
type Monitor struct {
	metrics  *Metrics
	interval time.Duration
}

// DefaultMonitorInterval is how often the summary is logged
const DefaultMonitorInterval = time.Minute

// NewMonitor creates a new broadcast monitor
func NewMonitor(metrics *Metrics, interval time.Duration) *Monitor {
	if interval == 0 {
		interval = DefaultMonitorInterval
	}

	return &Monitor{
		metrics:  metrics,
		interval: interval,
	}
}

// Run starts the monitor loop
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Printf("broadcast monitor started (interval: %s)", m.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("broadcast monitor stopped")
			return nil
		case <-ticker.C:
			s := m.metrics.Snapshot()
			if s.Published == 0 && s.Broadcasts == 0 && s.BroadcastFailed == 0 {
				continue
			}
			log.Printf("broadcast summary: published=%d broadcasts=%d workers_notified=%d no_workers=%d failures=%d",
				s.Published, s.Broadcasts, s.WorkersNotified, s.NoWorkersFound, s.PublishFailures+s.BroadcastFailed)
		}
	}
}

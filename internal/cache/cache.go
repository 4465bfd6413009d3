package cache

import (
	"context"
	"time"
)

// Cache interface for caching operations
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// DeleteByPattern removes all values matching a pattern (e.g., "cache:dashboard:*")
	DeleteByPattern(ctx context.Context, pattern string) error

	// Close closes the cache connection
	Close() error
}

// Key prefixes for dashboard caching
const (
	// KeyPrefixDashboardStats is the prefix for dashboard statistics
	KeyPrefixDashboardStats = "cache:dashboard:stats"

	// KeyPrefixJobStats is the prefix for job status counts
	KeyPrefixJobStats = "cache:dashboard:jobstats"

	// KeyPrefixWorkers is the prefix for worker listings
	KeyPrefixWorkers = "cache:dashboard:workers"
)

// TTL configurations for different cache types
const (
	// TTLStats is the TTL for dashboard statistics (30 seconds)
	TTLStats = 30 * time.Second

	// TTLJobStats is the TTL for job status counts (30 seconds)
	TTLJobStats = 30 * time.Second

	// TTLWorkersList is the TTL for worker listings (60 seconds)
	TTLWorkersList = 60 * time.Second
)

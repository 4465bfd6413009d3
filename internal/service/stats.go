package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/urbanserve/urbanserve/internal/cache"
	"github.com/urbanserve/urbanserve/internal/domain"
)

// TopWorkersLimit is how many rows the dashboard leaderboard shows
const TopWorkersLimit = 5

// StatsService computes the admin dashboard aggregate
type StatsService struct {
	stats domain.StatsRepository
	cache cache.Cache
}

// NewStatsService creates a new StatsService
func NewStatsService(stats domain.StatsRepository, c cache.Cache) *StatsService {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &StatsService{stats: stats, cache: c}
}

// GetDashboardStats computes the dashboard read-model. The six reads
// are independent and run concurrently; the first store error cancels
// the rest. Results are cached briefly since the dashboard polls.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached, err := s.cache.Get(ctx, cache.KeyPrefixDashboardStats); err == nil {
		var stats domain.DashboardStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("[StatsService] cache read failed: %v", err)
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cache.KeyPrefixDashboardStats, data, cache.TTLStats); err != nil {
			log.Printf("[StatsService] cache write failed: %v", err)
		}
	}

	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		totalWorkers  int
		totalRevenue  decimal.Decimal
		avgIncome     decimal.Decimal
		workerSums    map[uuid.UUID]decimal.Decimal
		monthlyOrders int
		topWorkers    []domain.TopWorkerEntry
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if totalWorkers, err = s.stats.CountWorkers(ctx); err != nil {
			return fmt.Errorf("failed to count workers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if totalRevenue, err = s.stats.SumTransactionAmounts(ctx); err != nil {
			return fmt.Errorf("failed to sum revenue: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if avgIncome, err = s.stats.AvgTransactionAmount(ctx); err != nil {
			return fmt.Errorf("failed to average income: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if workerSums, err = s.stats.SumTransactionAmountsByWorker(ctx); err != nil {
			return fmt.Errorf("failed to sum income per worker: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if monthlyOrders, err = s.stats.CountJobs(ctx); err != nil {
			return fmt.Errorf("failed to count orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if topWorkers, err = s.stats.TopWorkersByIncome(ctx, TopWorkersLimit); err != nil {
			return fmt.Errorf("failed to rank top workers: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// An empty leaderboard serializes as [] rather than null
	if topWorkers == nil {
		topWorkers = []domain.TopWorkerEntry{}
	}

	return &domain.DashboardStats{
		TotalWorkers:  totalWorkers,
		TotalRevenue:  totalRevenue,
		AvgIncome:     avgIncome,
		HighestIncome: highestIncome(workerSums),
		MonthlyOrders: monthlyOrders,
		TopWorkers:    topWorkers,
	}, nil
}

// highestIncome is the largest per-worker sum, zero when no worker has
// an attributed transaction
func highestIncome(sums map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	max := decimal.Zero
	for _, sum := range sums {
		if sum.GreaterThan(max) {
			max = sum
		}
	}
	return max
}

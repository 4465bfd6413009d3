package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanserve/urbanserve/internal/cache"
	"github.com/urbanserve/urbanserve/internal/domain"
)

type fakeStatsRepo struct {
	workers    int
	revenue    decimal.Decimal
	avg        decimal.Decimal
	workerSums map[uuid.UUID]decimal.Decimal
	jobs       int
	top        []domain.TopWorkerEntry

	failWith error
	calls    int
}

func (f *fakeStatsRepo) CountWorkers(_ context.Context) (int, error) {
	f.calls++
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.workers, nil
}

func (f *fakeStatsRepo) SumTransactionAmounts(_ context.Context) (decimal.Decimal, error) {
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}
	return f.revenue, nil
}

func (f *fakeStatsRepo) AvgTransactionAmount(_ context.Context) (decimal.Decimal, error) {
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}
	return f.avg, nil
}

func (f *fakeStatsRepo) SumTransactionAmountsByWorker(_ context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.workerSums, nil
}

func (f *fakeStatsRepo) CountJobs(_ context.Context) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.jobs, nil
}

func (f *fakeStatsRepo) TopWorkersByIncome(_ context.Context, limit int) ([]domain.TopWorkerEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGetDashboardStatsEmpty(t *testing.T) {
	repo := &fakeStatsRepo{
		revenue:    decimal.Zero,
		avg:        decimal.Zero,
		workerSums: map[uuid.UUID]decimal.Decimal{},
	}
	svc := NewStatsService(repo, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalWorkers)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.AvgIncome.IsZero())
	assert.True(t, stats.HighestIncome.IsZero())
	assert.Equal(t, 0, stats.MonthlyOrders)

	// Nil from the store is normalized so the wire shape stays []
	assert.NotNil(t, stats.TopWorkers)
	assert.Empty(t, stats.TopWorkers)
}

func TestGetDashboardStatsPopulated(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	repo := &fakeStatsRepo{
		workers: 12,
		revenue: dec("4500.75"),
		avg:     dec("375.0625"),
		workerSums: map[uuid.UUID]decimal.Decimal{
			alice: dec("3000.50"),
			bob:   dec("1500.25"),
		},
		jobs: 40,
		top: []domain.TopWorkerEntry{
			{WorkerID: alice, Name: "Asha", Income: dec("3000.50"), Orders: 25},
			{WorkerID: bob, Name: "Ravi", Income: dec("1500.25"), Orders: 15},
		},
	}
	svc := NewStatsService(repo, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalWorkers)
	assert.True(t, stats.TotalRevenue.Equal(dec("4500.75")))
	assert.True(t, stats.AvgIncome.Equal(dec("375.0625")))
	assert.True(t, stats.HighestIncome.Equal(dec("3000.50")))
	assert.Equal(t, 40, stats.MonthlyOrders)
	require.Len(t, stats.TopWorkers, 2)
	assert.Equal(t, "Asha", stats.TopWorkers[0].Name)
	assert.True(t, stats.TopWorkers[0].Income.GreaterThanOrEqual(stats.TopWorkers[1].Income))
}

func TestGetDashboardStatsLeaderboardCapped(t *testing.T) {
	repo := &fakeStatsRepo{
		revenue:    decimal.Zero,
		avg:        decimal.Zero,
		workerSums: map[uuid.UUID]decimal.Decimal{},
	}
	for i := 0; i < 8; i++ {
		repo.top = append(repo.top, domain.TopWorkerEntry{
			WorkerID: uuid.New(),
			Name:     "worker",
			Income:   decimal.NewFromInt(int64(100 - i)),
			Orders:   1,
		})
	}
	svc := NewStatsService(repo, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.TopWorkers, TopWorkersLimit)
}

func TestGetDashboardStatsError(t *testing.T) {
	repo := &fakeStatsRepo{failWith: errors.New("connection refused")}
	svc := NewStatsService(repo, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestGetDashboardStatsCached(t *testing.T) {
	repo := &fakeStatsRepo{
		workers:    3,
		revenue:    dec("100"),
		avg:        dec("50"),
		workerSums: map[uuid.UUID]decimal.Decimal{},
		jobs:       2,
	}
	svc := NewStatsService(repo, cache.NewMemoryCache())

	first, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	second, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	// Second read is served from cache, the store is not touched again
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first.TotalWorkers, second.TotalWorkers)
	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue))
}

// memStatsStore derives every aggregate from raw rows the way the SQL
// backends do, so the tests below exercise the documented semantics
// instead of canned answers.
type memStatsStore struct {
	workers      []*domain.Worker
	transactions []*domain.Transaction
	jobs         int
	jobsByWorker map[uuid.UUID]int
}

func (m *memStatsStore) CountWorkers(_ context.Context) (int, error) {
	return len(m.workers), nil
}

func (m *memStatsStore) SumTransactionAmounts(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range m.transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum, nil
}

func (m *memStatsStore) AvgTransactionAmount(_ context.Context) (decimal.Decimal, error) {
	if len(m.transactions) == 0 {
		return decimal.Zero, nil
	}
	sum, _ := m.SumTransactionAmounts(context.Background())
	return sum.Div(decimal.NewFromInt(int64(len(m.transactions)))), nil
}

func (m *memStatsStore) SumTransactionAmountsByWorker(_ context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, tx := range m.transactions {
		if tx.WorkerID == nil {
			continue
		}
		sums[*tx.WorkerID] = sums[*tx.WorkerID].Add(tx.Amount)
	}
	return sums, nil
}

func (m *memStatsStore) CountJobs(_ context.Context) (int, error) {
	return m.jobs, nil
}

func (m *memStatsStore) TopWorkersByIncome(_ context.Context, limit int) ([]domain.TopWorkerEntry, error) {
	sums, _ := m.SumTransactionAmountsByWorker(context.Background())

	entries := make([]domain.TopWorkerEntry, 0, len(m.workers))
	for _, w := range m.workers {
		entries = append(entries, domain.TopWorkerEntry{
			WorkerID: w.ID,
			Name:     w.FirstName,
			Income:   sums[w.ID],
			Orders:   m.jobsByWorker[w.ID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Income.Equal(entries[j].Income) {
			return entries[i].Income.GreaterThan(entries[j].Income)
		}
		return entries[i].WorkerID.String() < entries[j].WorkerID.String()
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func namedWorker(name string) *domain.Worker {
	return &domain.Worker{ID: uuid.New(), FirstName: name}
}

func attributed(workerID uuid.UUID, amount string) *domain.Transaction {
	return &domain.Transaction{ID: uuid.New(), WorkerID: &workerID, Amount: dec(amount)}
}

func TestDashboardEmptyStore(t *testing.T) {
	svc := NewStatsService(&memStatsStore{}, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalWorkers)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.AvgIncome.IsZero())
	assert.True(t, stats.HighestIncome.IsZero())
	assert.Equal(t, 0, stats.MonthlyOrders)
	assert.NotNil(t, stats.TopWorkers)
	assert.Empty(t, stats.TopWorkers)
}

func TestDashboardSingleWorker(t *testing.T) {
	w1 := namedWorker("Asha")
	store := &memStatsStore{
		workers:      []*domain.Worker{w1},
		transactions: []*domain.Transaction{attributed(w1.ID, "100")},
		jobs:         1,
		jobsByWorker: map[uuid.UUID]int{w1.ID: 1},
	}
	svc := NewStatsService(store, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalWorkers)
	assert.True(t, stats.TotalRevenue.Equal(dec("100")))
	assert.True(t, stats.AvgIncome.Equal(dec("100")))
	assert.True(t, stats.HighestIncome.Equal(dec("100")))
	assert.Equal(t, 1, stats.MonthlyOrders)
	require.Len(t, stats.TopWorkers, 1)
	assert.Equal(t, "Asha", stats.TopWorkers[0].Name)
	assert.True(t, stats.TopWorkers[0].Income.Equal(dec("100")))
	assert.Equal(t, 1, stats.TopWorkers[0].Orders)
}

func TestDashboardTopFiveOfSix(t *testing.T) {
	store := &memStatsStore{jobsByWorker: map[uuid.UUID]int{}}
	for i := 1; i <= 6; i++ {
		w := namedWorker("worker")
		store.workers = append(store.workers, w)
		store.transactions = append(store.transactions, attributed(w.ID, dec("10").Mul(decimal.NewFromInt(int64(i))).String()))
	}
	svc := NewStatsService(store, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	// The five highest earners, descending; the 10-amount worker is out
	require.Len(t, stats.TopWorkers, 5)
	expected := []string{"60", "50", "40", "30", "20"}
	for i, e := range expected {
		assert.True(t, stats.TopWorkers[i].Income.Equal(dec(e)), "rank %d: got %s", i, stats.TopWorkers[i].Income)
	}
}

func TestDashboardUnattributedRevenue(t *testing.T) {
	w1 := namedWorker("Asha")
	store := &memStatsStore{
		workers: []*domain.Worker{w1},
		transactions: []*domain.Transaction{
			attributed(w1.ID, "100"),
			{ID: uuid.New(), Amount: dec("500")},
		},
		jobsByWorker: map[uuid.UUID]int{w1.ID: 1},
	}
	svc := NewStatsService(store, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	// Unattributed revenue counts globally but never per worker
	assert.True(t, stats.TotalRevenue.Equal(dec("600")))
	assert.True(t, stats.AvgIncome.Equal(dec("300")))
	assert.True(t, stats.HighestIncome.Equal(dec("100")))
	require.Len(t, stats.TopWorkers, 1)
	assert.True(t, stats.TopWorkers[0].Income.Equal(dec("100")))
}

func TestDashboardTieBreakByWorkerID(t *testing.T) {
	a, b := namedWorker("A"), namedWorker("B")
	store := &memStatsStore{
		workers: []*domain.Worker{a, b},
		transactions: []*domain.Transaction{
			attributed(a.ID, "250"),
			attributed(b.ID, "250"),
		},
		jobsByWorker: map[uuid.UUID]int{},
	}
	svc := NewStatsService(store, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.TopWorkers, 2)
	assert.True(t, stats.TopWorkers[0].WorkerID.String() < stats.TopWorkers[1].WorkerID.String())
}

func TestDashboardIdempotent(t *testing.T) {
	w1 := namedWorker("Asha")
	store := &memStatsStore{
		workers:      []*domain.Worker{w1},
		transactions: []*domain.Transaction{attributed(w1.ID, "42.42")},
		jobs:         3,
		jobsByWorker: map[uuid.UUID]int{w1.ID: 3},
	}
	svc := NewStatsService(store, nil)

	first, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	second, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.TotalWorkers, second.TotalWorkers)
	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue))
	assert.True(t, first.AvgIncome.Equal(second.AvgIncome))
	assert.True(t, first.HighestIncome.Equal(second.HighestIncome))
	assert.Equal(t, first.MonthlyOrders, second.MonthlyOrders)
	assert.Equal(t, len(first.TopWorkers), len(second.TopWorkers))
}

func TestHighestIncome(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		sums     map[uuid.UUID]decimal.Decimal
		expected string
	}{
		{
			name:     "no attributed transactions",
			sums:     map[uuid.UUID]decimal.Decimal{},
			expected: "0",
		},
		{
			name: "single worker",
			sums: map[uuid.UUID]decimal.Decimal{
				a: dec("123.45"),
			},
			expected: "123.45",
		},
		{
			name: "picks the maximum",
			sums: map[uuid.UUID]decimal.Decimal{
				a: dec("999.99"),
				b: dec("1000.00"),
			},
			expected: "1000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := highestIncome(tt.sums)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s", got)
		})
	}
}

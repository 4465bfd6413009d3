package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanserve/urbanserve/internal/domain"
)

type stubStatsService struct {
	stats *domain.DashboardStats
	err   error
}

func (s *stubStatsService) GetDashboardStats(_ context.Context) (*domain.DashboardStats, error) {
	return s.stats, s.err
}

func TestGetDashboardStats(t *testing.T) {
	income := decimal.RequireFromString("3200.50")
	svc := &stubStatsService{
		stats: &domain.DashboardStats{
			TotalWorkers:  7,
			TotalRevenue:  decimal.RequireFromString("5400.25"),
			AvgIncome:     decimal.RequireFromString("771.464285714285714286"),
			HighestIncome: income,
			MonthlyOrders: 18,
			TopWorkers: []domain.TopWorkerEntry{
				{WorkerID: uuid.New(), Name: "Asha", Income: income, Orders: 9},
			},
		},
	}
	h := NewStatsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	h.GetDashboardStats(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	for _, key := range []string{"totalWorkers", "totalRevenue", "avgIncome", "highestIncome", "monthlyOrders", "topWorkers"} {
		assert.Contains(t, body, key)
	}

	// Amounts are emitted as JSON numbers, not strings
	assert.Equal(t, "5400.25", string(body["totalRevenue"]))

	var top []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["topWorkers"], &top))
	require.Len(t, top, 1)
	assert.NotContains(t, top[0], "WorkerID")
}

func TestGetDashboardStatsEmptyLeaderboard(t *testing.T) {
	svc := &stubStatsService{
		stats: &domain.DashboardStats{TopWorkers: []domain.TopWorkerEntry{}},
	}
	h := NewStatsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	h.GetDashboardStats(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The leaderboard is always an array on the wire, never null
	assert.NotContains(t, w.Body.String(), `"topWorkers":null`)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "[]", strings.TrimSpace(string(body["topWorkers"])))
}

func TestGetDashboardStatsError(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{err: errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	h.GetDashboardStats(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Store connection detail stays out of the response body
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.NotContains(t, w.Body.String(), "connection refused")

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to compute dashboard stats", body["error"])
}

func TestGetDashboardStatsMethodNotAllowed(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	h.GetDashboardStats(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

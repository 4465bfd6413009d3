package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Dashboard consumers expect money fields as JSON numbers. Arithmetic
	// stays exact in decimal; only the wire representation is numeric.
	decimal.MarshalJSONWithoutQuotes = true
}

// DashboardStats is the derived read-model for the admin dashboard.
// It is recomputed on every request and never persisted.
type DashboardStats struct {
	TotalWorkers int `json:"totalWorkers"`
	// TotalRevenue is the sum over all transactions, attributed or not.
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	// AvgIncome is the global average transaction amount, not a
	// per-worker figure. The name is kept for dashboard compatibility.
	AvgIncome decimal.Decimal `json:"avgIncome"`
	// HighestIncome is the largest per-worker transaction sum.
	// Unattributed transactions are excluded.
	HighestIncome decimal.Decimal `json:"highestIncome"`
	// MonthlyOrders counts all jobs, not just the current month's.
	MonthlyOrders int              `json:"monthlyOrders"`
	TopWorkers    []TopWorkerEntry `json:"topWorkers"`
}

// TopWorkerEntry is one row of the top-earners list
type TopWorkerEntry struct {
	WorkerID uuid.UUID       `json:"-"`
	Name     string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	Orders   int             `json:"orders"`
}

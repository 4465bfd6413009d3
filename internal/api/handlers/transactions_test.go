package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanserve/urbanserve/internal/domain"
)

type stubTransactionService struct {
	txs []*domain.Transaction
}

func (s *stubTransactionService) Create(_ context.Context, _ *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionService) GetByID(_ context.Context, _ uuid.UUID) (*domain.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionService) List(_ context.Context) ([]*domain.Transaction, error) {
	return s.txs, nil
}

func (s *stubTransactionService) ListByJobID(_ context.Context, _ uuid.UUID) ([]*domain.Transaction, error) {
	return s.txs, nil
}

func (s *stubTransactionService) ListByUserID(_ context.Context, _ uuid.UUID) ([]*domain.Transaction, error) {
	return s.txs, nil
}

func (s *stubTransactionService) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func exportFixture() []*domain.Transaction {
	workerID := uuid.New()
	return []*domain.Transaction{
		{
			ID:        uuid.New(),
			JobID:     uuid.New(),
			WorkerID:  &workerID,
			Amount:    decimal.RequireFromString("1250.50"),
			Currency:  "INR",
			Status:    domain.PaymentStatusCaptured,
			Method:    domain.PaymentMethodUPI,
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			JobID:     uuid.New(),
			Amount:    decimal.RequireFromString("300"),
			Currency:  "INR",
			Status:    domain.PaymentStatusCreated,
			Method:    domain.PaymentMethodCard,
			CreatedAt: time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC),
		},
	}
}

func TestTransactionExportCSV(t *testing.T) {
	h := NewTransactionHandler(&stubTransactionService{txs: exportFixture()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?format=csv", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactions.csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, "1250.50", records[1][3])
	// Unattributed transactions export an empty worker column
	assert.Equal(t, "", records[2][2])
}

func TestTransactionExportDefaultsToCSV(t *testing.T) {
	h := NewTransactionHandler(&stubTransactionService{txs: exportFixture()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestTransactionExportXLSX(t *testing.T) {
	h := NewTransactionHandler(&stubTransactionService{txs: exportFixture()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?format=xlsx", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestTransactionExportInvalidFormat(t *testing.T) {
	h := NewTransactionHandler(&stubTransactionService{txs: exportFixture()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?format=pdf", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Invalid format"))
}

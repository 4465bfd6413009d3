package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentStatusCreated    PaymentStatus = "created"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusCaptured   PaymentStatus = "captured"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// IsValid returns true if the payment status is one of the known values
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusCreated, PaymentStatusAuthorized, PaymentStatusCaptured, PaymentStatusFailed:
		return true
	}
	return false
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

// IsValid returns true if the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodWallet:
		return true
	}
	return false
}

// Transaction is a monetary record for a job. WorkerID is nullable:
// platform fees and refund adjustments are recorded without attribution.
// Amounts are exact decimals; they never pass through binary floats.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	JobID     uuid.UUID       `json:"job_id"`
	WorkerID  *uuid.UUID      `json:"worker_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    PaymentStatus   `json:"status"`
	Method    PaymentMethod   `json:"method"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateTransactionRequest is the request body for recording a transaction
type CreateTransactionRequest struct {
	JobID    uuid.UUID       `json:"job_id"`
	WorkerID *uuid.UUID      `json:"worker_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   PaymentStatus   `json:"status"`
	Method   PaymentMethod   `json:"method"`
}

// Validate checks required fields and value ranges
func (r *CreateTransactionRequest) Validate() error {
	if r.JobID == uuid.Nil {
		return ErrValidation("job_id is required")
	}
	if r.Amount.IsNegative() {
		return ErrValidation("amount must be >= 0")
	}
	if r.Currency == "" {
		r.Currency = "INR"
	}
	if r.Status == "" {
		r.Status = PaymentStatusCreated
	}
	if !r.Status.IsValid() {
		return ErrValidation("invalid payment status")
	}
	if r.Method == "" {
		r.Method = PaymentMethodCard
	}
	if !r.Method.IsValid() {
		return ErrValidation("invalid payment method")
	}
	return nil
}

// ToTransaction converts the request to a Transaction
func (r *CreateTransactionRequest) ToTransaction() *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		JobID:     r.JobID,
		WorkerID:  r.WorkerID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Status:    r.Status,
		Method:    r.Method,
		CreatedAt: time.Now().UTC(),
	}
}

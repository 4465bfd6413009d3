package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// TransactionServiceInterface defines the transaction service methods
type TransactionServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateTransactionRequest) (*domain.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context) ([]*domain.Transaction, error)
	ListByJobID(ctx context.Context, jobID uuid.UUID) ([]*domain.Transaction, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionHandler handles payment record HTTP requests
type TransactionHandler struct {
	transactions TransactionServiceInterface
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactions TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
	}
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.transactions.Create(r.Context(), &req)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusCreated, tx)
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactions.List(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, txs)
}

// GetByID handles GET /api/v1/transactions/{id}
func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	tx, err := h.transactions.GetByID(r.Context(), id)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, tx)
}

// ListByJobID handles GET /api/v1/transactions/job/{jobId}
func (h *TransactionHandler) ListByJobID(w http.ResponseWriter, r *http.Request) {
	jobID, err := PathUUID(r, "jobId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	txs, err := h.transactions.ListByJobID(r.Context(), jobID)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, txs)
}

// ListByUserID handles GET /api/v1/transactions/user/{userId}
func (h *TransactionHandler) ListByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := PathUUID(r, "userId")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	txs, err := h.transactions.ListByUserID(r.Context(), userID)
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, txs)
}

// Delete handles DELETE /api/v1/transactions/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.transactions.Delete(r.Context(), id); err != nil {
		RenderServiceError(w, err)
		return
	}

	RenderJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Export handles GET /api/v1/transactions/export - exports all
// transactions as csv or xlsx
func (h *TransactionHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	txs, err := h.transactions.List(r.Context())
	if err != nil {
		RenderServiceError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		h.exportCSV(w, txs)
	case "xlsx":
		h.exportXLSX(w, txs)
	default:
		RenderError(w, http.StatusBadRequest, "Invalid format. Use 'csv' or 'xlsx'")
	}
}

var exportColumns = []string{"ID", "Job ID", "Worker ID", "Amount", "Currency", "Status", "Method", "Created At"}

func exportRecord(tx *domain.Transaction) []string {
	workerID := ""
	if tx.WorkerID != nil {
		workerID = tx.WorkerID.String()
	}

	return []string{
		tx.ID.String(),
		tx.JobID.String(),
		workerID,
		tx.Amount.String(),
		tx.Currency,
		string(tx.Status),
		string(tx.Method),
		tx.CreatedAt.Format(time.RFC3339),
	}
}

func (h *TransactionHandler) exportCSV(w http.ResponseWriter, txs []*domain.Transaction) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(exportColumns); err != nil {
		return
	}

	for _, tx := range txs {
		writer.Write(exportRecord(tx))
	}
}

func (h *TransactionHandler) exportXLSX(w http.ResponseWriter, txs []*domain.Transaction) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	// Write header row
	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	// Style the header
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	lastCol, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", lastCol, headerStyle)

	for rowNum, tx := range txs {
		for i, value := range exportRecord(tx) {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 15)
	}

	if err := f.Write(w); err != nil {
		log.Printf("error writing XLSX to response: %v", err)
	}
}

package handlers

import (
	"net/http"

	"github.com/urbanserve/urbanserve/internal/broadcast"
)

// BroadcastHandler exposes job broadcast counters
type BroadcastHandler struct {
	metrics *broadcast.Metrics
}

// NewBroadcastHandler creates a new BroadcastHandler
func NewBroadcastHandler(metrics *broadcast.Metrics) *BroadcastHandler {
	return &BroadcastHandler{
		metrics: metrics,
	}
}

// GetMetrics handles GET /api/v1/broadcast/metrics
func (h *BroadcastHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, http.StatusOK, h.metrics.Snapshot())
}

// ResetMetrics handles POST /api/v1/broadcast/metrics/reset
func (h *BroadcastHandler) ResetMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.Reset()
	RenderJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

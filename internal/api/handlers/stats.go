package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// StatsServiceInterface defines the stats service methods
type StatsServiceInterface interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	stats StatsServiceInterface
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats StatsServiceInterface) *StatsHandler {
	return &StatsHandler{
		stats: stats,
	}
}

// GetDashboardStats handles GET /api/v1/dashboard/stats
func (h *StatsHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.stats.GetDashboardStats(r.Context())
	if err != nil {
		// Store errors carry connection detail, so only the log sees them
		log.Printf("[StatsHandler] failed to get dashboard stats: %v", err)
		RenderJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to compute dashboard stats",
		})
		return
	}

	RenderJSON(w, http.StatusOK, stats)
}

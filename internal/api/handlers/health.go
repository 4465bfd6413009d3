package handlers

import (
	"context"
	"net/http"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness of the API and its dependencies
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new HealthHandler. Either dependency may
// be nil and is then skipped.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			status["database"] = "unreachable"
			healthy = false
		} else {
			status["database"] = "ok"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			status["cache"] = "unreachable"
			healthy = false
		} else {
			status["cache"] = "ok"
		}
	}

	if !healthy {
		status["status"] = "degraded"
		RenderJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	RenderJSON(w, http.StatusOK, status)
}

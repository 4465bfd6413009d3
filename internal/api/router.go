package api

import (
	"net/http"

	"github.com/urbanserve/urbanserve/internal/api/handlers"
)

// Router sets up all API routes
type Router struct {
	mux             *http.ServeMux
	stats           *handlers.StatsHandler
	workers         *handlers.WorkerHandler
	users           *handlers.UserHandler
	jobs            *handlers.JobHandler
	transactions    *handlers.TransactionHandler
	specializations *handlers.SpecializationHandler
	reviews         *handlers.ReviewHandler
	notifications   *handlers.NotificationHandler
	locations       *handlers.LiveLocationHandler
	broadcast       *handlers.BroadcastHandler
	health          *handlers.HealthHandler
}

// NewRouter creates a new Router
func NewRouter(
	stats *handlers.StatsHandler,
	workers *handlers.WorkerHandler,
	users *handlers.UserHandler,
	jobs *handlers.JobHandler,
	transactions *handlers.TransactionHandler,
	specializations *handlers.SpecializationHandler,
	reviews *handlers.ReviewHandler,
	notifications *handlers.NotificationHandler,
	locations *handlers.LiveLocationHandler,
	broadcast *handlers.BroadcastHandler,
	health *handlers.HealthHandler,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		stats:           stats,
		workers:         workers,
		users:           users,
		jobs:            jobs,
		transactions:    transactions,
		specializations: specializations,
		reviews:         reviews,
		notifications:   notifications,
		locations:       locations,
		broadcast:       broadcast,
		health:          health,
	}
}

// Setup configures all routes
func (r *Router) Setup(token string) http.Handler {
	// Health endpoint, probed without credentials
	r.mux.HandleFunc("/health", r.health.Check)
	r.mux.HandleFunc("/api/v1/health", r.health.Check)

	// Dashboard endpoint
	r.mux.HandleFunc("/api/v1/dashboard/stats", r.stats.GetDashboardStats)

	// Worker endpoints
	r.mux.HandleFunc("/api/v1/workers", r.handleWorkers)
	r.mux.HandleFunc("/api/v1/workers/{id}", r.handleWorker)

	// User endpoints
	r.mux.HandleFunc("/api/v1/users", r.handleUsers)
	r.mux.HandleFunc("/api/v1/users/{id}", r.handleUser)

	// Job endpoints
	r.mux.HandleFunc("/api/v1/jobs", r.handleJobs)
	r.mux.HandleFunc("/api/v1/jobs/stats", r.jobs.GetStats)
	r.mux.HandleFunc("/api/v1/jobs/nearby-workers", r.jobs.NearbyWorkers)
	r.mux.HandleFunc("/api/v1/jobs/{id}", r.handleJob)
	r.mux.HandleFunc("/api/v1/jobs/{id}/status", r.jobs.UpdateStatus)

	// Transaction endpoints
	r.mux.HandleFunc("/api/v1/transactions", r.handleTransactions)
	r.mux.HandleFunc("/api/v1/transactions/export", r.transactions.Export)
	r.mux.HandleFunc("/api/v1/transactions/job/{jobId}", r.transactions.ListByJobID)
	r.mux.HandleFunc("/api/v1/transactions/user/{userId}", r.transactions.ListByUserID)
	r.mux.HandleFunc("/api/v1/transactions/{id}", r.handleTransaction)

	// Specialization endpoints
	r.mux.HandleFunc("/api/v1/specializations", r.handleSpecializations)
	r.mux.HandleFunc("/api/v1/specializations/worker/{workerId}", r.specializations.ListByWorkerID)
	r.mux.HandleFunc("/api/v1/specializations/{id}", r.handleSpecialization)

	// Review endpoints
	r.mux.HandleFunc("/api/v1/reviews", r.handleReviews)
	r.mux.HandleFunc("/api/v1/reviews/worker/{workerId}", r.reviews.ListByWorkerID)
	r.mux.HandleFunc("/api/v1/reviews/{id}", r.handleReview)

	// Notification endpoints
	r.mux.HandleFunc("/api/v1/notifications", r.handleNotifications)
	r.mux.HandleFunc("/api/v1/notifications/user/{userId}", r.notifications.ListByUserID)
	r.mux.HandleFunc("/api/v1/notifications/{id}", r.handleNotification)

	// Live location endpoints
	r.mux.HandleFunc("/api/v1/locations", r.handleLocations)
	r.mux.HandleFunc("/api/v1/locations/prune", r.locations.PruneStale)
	r.mux.HandleFunc("/api/v1/locations/worker/{workerId}", r.handleLocationWorker)
	r.mux.HandleFunc("/api/v1/locations/{id}", r.handleLocation)

	// Broadcast metrics endpoints
	r.mux.HandleFunc("/api/v1/broadcast/metrics", r.broadcast.GetMetrics)
	r.mux.HandleFunc("/api/v1/broadcast/metrics/reset", r.broadcast.ResetMetrics)

	// Apply middleware
	return Chain(r.mux,
		Recovery,
		Logger,
		CORS,
		SecurityHeaders,
		Auth(token),
	)
}

// handleWorkers routes requests for /api/v1/workers
func (r *Router) handleWorkers(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.workers.List(w, req)
	case http.MethodPost:
		r.workers.Create(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleWorker routes requests for /api/v1/workers/{id}
func (r *Router) handleWorker(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.workers.GetByID(w, req)
	case http.MethodPut:
		r.workers.Update(w, req)
	case http.MethodDelete:
		r.workers.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleUsers routes requests for /api/v1/users
func (r *Router) handleUsers(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.users.List(w, req)
	case http.MethodPost:
		r.users.Create(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleUser routes requests for /api/v1/users/{id}
func (r *Router) handleUser(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.users.GetByID(w, req)
	case http.MethodPut:
		r.users.Update(w, req)
	case http.MethodDelete:
		r.users.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleJobs routes requests for /api/v1/jobs
func (r *Router) handleJobs(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.jobs.List(w, req)
	case http.MethodPost:
		r.jobs.Create(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleJob routes requests for /api/v1/jobs/{id}
func (r *Router) handleJob(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.jobs.GetByID(w, req)
	case http.MethodDelete:
		r.jobs.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleTransactions routes requests for /api/v1/transactions
func (r *Router) handleTransactions(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.transactions.List(w, req)
	case http.MethodPost:
		r.transactions.Create(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleTransaction routes requests for /api/v1/transactions/{id}
func (r *Router) handleTransaction(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.transactions.GetByID(w, req)
	case http.MethodDelete:
		r.transactions.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSpecializations routes requests for /api/v1/specializations
func (r *Router) handleSpecializations(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.specializations.List(w, req)
	case http.MethodPost:
		r.specializations.Create(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSpecialization routes requests for /api/v1/specializations/{id}
func (r *Router) handleSpecialization(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPut:
		r.specializations.Update(w, req)
	case http.MethodDelete:
		r.specializations.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleReviews routes requests for /api/v1/reviews
func (r *Router) handleReviews(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		r.reviews.Create(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleReview routes requests for /api/v1/reviews/{id}
func (r *Router) handleReview(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodDelete:
		r.reviews.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleNotifications routes requests for /api/v1/notifications
func (r *Router) handleNotifications(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		r.notifications.Send(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleNotification routes requests for /api/v1/notifications/{id}
func (r *Router) handleNotification(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodDelete:
		r.notifications.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleLocations routes requests for /api/v1/locations
func (r *Router) handleLocations(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.locations.List(w, req)
	case http.MethodPost:
		r.locations.Create(w, req)
	case http.MethodPut:
		r.locations.Upsert(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleLocationWorker routes requests for /api/v1/locations/worker/{workerId}
func (r *Router) handleLocationWorker(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.locations.ListByWorkerID(w, req)
	case http.MethodPut:
		r.locations.UpsertByWorker(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleLocation routes requests for /api/v1/locations/{id}
func (r *Router) handleLocation(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodDelete:
		r.locations.Delete(w, req)
	default:
		handlers.RenderError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
	"github.com/urbanserve/urbanserve/internal/geo"
)

// LiveLocationRepository implements domain.LiveLocationRepository for SQLite
type LiveLocationRepository struct {
	db *sql.DB
}

// NewLiveLocationRepository creates a new LiveLocationRepository
func NewLiveLocationRepository(db *sql.DB) *LiveLocationRepository {
	return &LiveLocationRepository{db: db}
}

// Create inserts a new live location
func (r *LiveLocationRepository) Create(ctx context.Context, loc *domain.LiveLocation) error {
	query := `
		INSERT INTO live_locations (id, worker_id, lat, lng, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		loc.ID, loc.WorkerID, loc.Lat, loc.Lng, formatTime(loc.CreatedAt))
	return err
}

// UpsertByWorkerID replaces the worker's latest position
func (r *LiveLocationRepository) UpsertByWorkerID(ctx context.Context, loc *domain.LiveLocation) error {
	query := `
		INSERT INTO live_locations (id, worker_id, lat, lng, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (worker_id) DO UPDATE SET
			lat = excluded.lat,
			lng = excluded.lng,
			created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		loc.ID, loc.WorkerID, loc.Lat, loc.Lng, formatTime(loc.CreatedAt))
	return err
}

// List retrieves all live locations
func (r *LiveLocationRepository) List(ctx context.Context) ([]*domain.LiveLocation, error) {
	query := `SELECT id, worker_id, lat, lng, created_at FROM live_locations ORDER BY created_at DESC`
	return r.queryLocations(ctx, query)
}

// ListByWorkerID retrieves live locations for a worker
func (r *LiveLocationRepository) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.LiveLocation, error) {
	query := `SELECT id, worker_id, lat, lng, created_at FROM live_locations WHERE worker_id = ?`
	return r.queryLocations(ctx, query, workerID)
}

// Delete deletes a live location by ID
func (r *LiveLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM live_locations WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// Nearby finds workers with a live location inside the search radius,
// closest first. SQLite lacks the trig functions the Postgres query
// leans on, so candidates are pulled out and the haversine distance is
// computed here.
func (r *LiveLocationRepository) Nearby(ctx context.Context, search domain.NearbySearch) ([]*domain.NearbyWorker, error) {
	limit := search.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT DISTINCT
			w.id, w.first_name, w.last_name, w.phone_number, w.experience_years,
			ll.lat, ll.lng
		FROM workers w
		INNER JOIN live_locations ll ON w.id = ll.worker_id
	`

	var args []any
	if search.Category != "" {
		query += `
		INNER JOIN specializations s ON w.id = s.worker_id
		WHERE s.category LIKE ? OR s.sub_category LIKE ?
		`
		pattern := "%" + search.Category + "%"
		args = append(args, pattern, pattern)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*domain.NearbyWorker
	for rows.Next() {
		nw := &domain.NearbyWorker{}
		err := rows.Scan(
			&nw.WorkerID, &nw.FirstName, &nw.LastName, &nw.PhoneNumber,
			&nw.ExperienceYears, &nw.Lat, &nw.Lng,
		)
		if err != nil {
			return nil, err
		}

		nw.DistanceKm = geo.DistanceKm(search.Lat, search.Lng, nw.Lat, nw.Lng)
		if nw.DistanceKm < search.RadiusKm {
			workers = append(workers, nw)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(workers, func(i, j int) bool {
		return workers[i].DistanceKm < workers[j].DistanceKm
	})
	if len(workers) > limit {
		workers = workers[:limit]
	}

	return workers, nil
}

// DeleteStale removes locations older than maxAge, returning the count
func (r *LiveLocationRepository) DeleteStale(ctx context.Context, maxAgeSeconds int) (int, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(maxAgeSeconds) * time.Second)

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM live_locations WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	return int(rows), err
}

func (r *LiveLocationRepository) queryLocations(ctx context.Context, query string, args ...any) ([]*domain.LiveLocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*domain.LiveLocation
	for rows.Next() {
		loc := &domain.LiveLocation{}
		var createdAt string

		err := rows.Scan(&loc.ID, &loc.WorkerID, &loc.Lat, &loc.Lng, &createdAt)
		if err != nil {
			return nil, err
		}

		loc.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

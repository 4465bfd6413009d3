package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// LiveLocationRepository implements domain.LiveLocationRepository for PostgreSQL
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
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, loc.ID, loc.WorkerID, loc.Lat, loc.Lng, loc.CreatedAt)
	return err
}

// UpsertByWorkerID replaces the worker's latest position
func (r *LiveLocationRepository) UpsertByWorkerID(ctx context.Context, loc *domain.LiveLocation) error {
	query := `
		INSERT INTO live_locations (id, worker_id, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (worker_id) DO UPDATE SET
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			created_at = EXCLUDED.created_at
	`

	_, err := r.db.ExecContext(ctx, query, loc.ID, loc.WorkerID, loc.Lat, loc.Lng, loc.CreatedAt)
	return err
}

// List retrieves all live locations
func (r *LiveLocationRepository) List(ctx context.Context) ([]*domain.LiveLocation, error) {
	query := `SELECT id, worker_id, lat, lng, created_at FROM live_locations ORDER BY created_at DESC`
	return r.queryLocations(ctx, query)
}

// ListByWorkerID retrieves live locations for a worker
func (r *LiveLocationRepository) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*domain.LiveLocation, error) {
	query := `SELECT id, worker_id, lat, lng, created_at FROM live_locations WHERE worker_id = $1`
	return r.queryLocations(ctx, query, workerID)
}

// Delete deletes a live location by ID
func (r *LiveLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM live_locations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Nearby finds workers with a live location inside the search radius,
// closest first. Haversine with Earth radius 6371 km, matching the
// broadcast matcher.
func (r *LiveLocationRepository) Nearby(ctx context.Context, search domain.NearbySearch) ([]*domain.NearbyWorker, error) {
	limit := search.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT DISTINCT
			w.id, w.first_name, w.last_name, w.phone_number, w.experience_years,
			ll.lat, ll.lng,
			(
				6371 * acos(
					cos(radians($1)) * cos(radians(ll.lat)) *
					cos(radians(ll.lng) - radians($2)) +
					sin(radians($1)) * sin(radians(ll.lat))
				)
			) AS distance
		FROM workers w
		INNER JOIN live_locations ll ON w.id = ll.worker_id
	`

	args := []any{search.Lat, search.Lng, search.RadiusKm}

	if search.Category != "" {
		query += `
		INNER JOIN specializations s ON w.id = s.worker_id
		WHERE (
			6371 * acos(
				cos(radians($1)) * cos(radians(ll.lat)) *
				cos(radians(ll.lng) - radians($2)) +
				sin(radians($1)) * sin(radians(ll.lat))
			)
		) < $3
		AND (s.category ILIKE $4 OR s.sub_category ILIKE $4)
		`
		args = append(args, "%"+search.Category+"%")
	} else {
		query += `
		WHERE (
			6371 * acos(
				cos(radians($1)) * cos(radians(ll.lat)) *
				cos(radians(ll.lng) - radians($2)) +
				sin(radians($1)) * sin(radians(ll.lat))
			)
		) < $3
		`
	}

	query += ` ORDER BY distance ASC LIMIT ` + placeholder(len(args)+1)
	args = append(args, limit)

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
			&nw.ExperienceYears, &nw.Lat, &nw.Lng, &nw.DistanceKm,
		)
		if err != nil {
			return nil, err
		}
		workers = append(workers, nw)
	}

	return workers, rows.Err()
}

// DeleteStale removes locations older than maxAge, returning the count
func (r *LiveLocationRepository) DeleteStale(ctx context.Context, maxAgeSeconds int) (int, error) {
	query := `DELETE FROM live_locations WHERE created_at < NOW() - INTERVAL '1 second' * $1`

	result, err := r.db.ExecContext(ctx, query, maxAgeSeconds)
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
		err := rows.Scan(&loc.ID, &loc.WorkerID, &loc.Lat, &loc.Lng, &loc.CreatedAt)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

package runner

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/urbanserve/urbanserve/internal/domain"
	"github.com/urbanserve/urbanserve/internal/repository/postgres"
	"github.com/urbanserve/urbanserve/internal/repository/sqlite"
)

// Repositories bundles every store behind its domain interface so the
// run modes never see which backend is active.
type Repositories struct {
	Users           domain.UserRepository
	Workers         domain.WorkerRepository
	Jobs            domain.JobRepository
	Transactions    domain.TransactionRepository
	Specializations domain.SpecializationRepository
	Reviews         domain.ReviewRepository
	Notifications   domain.NotificationRepository
	Locations       domain.LiveLocationRepository
	Stats           domain.StatsRepository
}

// OpenStorage connects to the database named by the DSN and runs
// migrations. A postgres:// or postgresql:// prefix selects Postgres,
// anything else is treated as a SQLite file path.
func OpenStorage(dsn string) (*sql.DB, *Repositories, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := postgres.OpenConnection(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}

		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		r := postgres.NewRepositories(db)

		return db, &Repositories{
			Users:           r.Users,
			Workers:         r.Workers,
			Jobs:            r.Jobs,
			Transactions:    r.Transactions,
			Specializations: r.Specializations,
			Reviews:         r.Reviews,
			Notifications:   r.Notifications,
			Locations:       r.Locations,
			Stats:           r.Stats,
		}, nil
	}

	db, err := sqlite.OpenConnection(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := sqlite.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r := sqlite.NewRepositories(db)

	return db, &Repositories{
		Users:           r.Users,
		Workers:         r.Workers,
		Jobs:            r.Jobs,
		Transactions:    r.Transactions,
		Specializations: r.Specializations,
		Reviews:         r.Reviews,
		Notifications:   r.Notifications,
		Locations:       r.Locations,
		Stats:           r.Stats,
	}, nil
}

package migraterunner

import (
	"context"
	"database/sql"
	"log"

	"github.com/urbanserve/urbanserve/runner"
)

// MigrateRunner applies pending database migrations and exits
type MigrateRunner struct {
	db *sql.DB
}

// New creates a new MigrateRunner
func New(cfg *runner.Config) (runner.Runner, error) {
	db, _, err := runner.OpenStorage(cfg.Dsn)
	if err != nil {
		return nil, err
	}

	return &MigrateRunner{db: db}, nil
}

// Run reports completion. OpenStorage already applied the migrations.
func (m *MigrateRunner) Run(_ context.Context) error {
	log.Println("migrations applied")
	return nil
}

// Close cleans up resources
func (m *MigrateRunner) Close(_ context.Context) error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

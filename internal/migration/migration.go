package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"flexknot/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createEvaluationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create evaluations table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createEvaluationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS evaluations (
			id UUID PRIMARY KEY,
			sweep_id UUID,
			engine_hash VARCHAR(64) NOT NULL,
			params JSONB NOT NULL,
			log_likelihood DOUBLE PRECISION NOT NULL,
			elapsed_us BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_evaluations_log_likelihood ON evaluations(log_likelihood DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_sweep_id ON evaluations(sweep_id) WHERE sweep_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_engine_hash ON evaluations(engine_hash)`,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return err
		}
	}
	return nil
}

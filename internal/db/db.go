// Package db provides optional PostgreSQL persistence for run history.
// The pipeline works without it; connection failures degrade to a warning.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and ensures the schema exists.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// ensureSchema creates the run-history tables if they do not exist.
// A single-user local tool has no migration story to speak of.
func (db *DB) ensureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id UUID PRIMARY KEY,
			company TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			package_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS attempts (
			run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			number INT NOT NULL,
			verdict TEXT NOT NULL,
			reasons TEXT[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, kind, number)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CreateRun records the start of a pipeline run.
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, company, title string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO runs (id, company, title, status) VALUES ($1, $2, $3, 'running')`,
		runID, company, title,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// SaveAttempt records one generation attempt for a run.
func (db *DB) SaveAttempt(ctx context.Context, runID uuid.UUID, kind string, number int, verdict string, reasons []string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO attempts (run_id, kind, number, verdict, reasons) VALUES ($1, $2, $3, $4, $5)`,
		runID, kind, number, verdict, reasons,
	)
	if err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

// CompleteRun marks a run as finished with the given status and, for
// successful runs, the package identifier it produced.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status, packageID string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE runs SET status = $1, package_id = NULLIF($2, ''), completed_at = NOW() WHERE id = $3`,
		status, packageID, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

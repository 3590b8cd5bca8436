package db

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
	`CREATE TABLE IF NOT EXISTS batch_runs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id TEXT NOT NULL,
		total INTEGER NOT NULL DEFAULT 0,
		successful INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'running',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS evaluations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_id TEXT NOT NULL,
		job_id TEXT NOT NULL,
		overall_score DOUBLE PRECISION NOT NULL,
		verdict TEXT NOT NULL,
		result JSONB NOT NULL,
		batch_run_id UUID REFERENCES batch_runs(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_job_score ON evaluations (job_id, overall_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_batch ON evaluations (batch_run_id)`,
}

// EnsureSchema creates the archive tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

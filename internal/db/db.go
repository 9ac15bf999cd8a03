// Package db provides PostgreSQL storage for course graph snapshots and the
// study-materials cache.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks connectivity, for health checks.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates the tables used by this package when they are missing.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id               TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		title            TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		subject          TEXT NOT NULL,
		catalog_number   TEXT NOT NULL DEFAULT '',
		difficulty_score DOUBLE PRECISION NOT NULL DEFAULT 5.0,
		enjoyment_score  DOUBLE PRECISION NOT NULL DEFAULT 5.0,
		comment_count    INTEGER NOT NULL DEFAULT 0,
		confidence       TEXT,
		in_degree        INTEGER NOT NULL DEFAULT 0,
		out_degree       INTEGER NOT NULL DEFAULT 0,
		centrality       DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS course_edges (
		source   TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		target   TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		PRIMARY KEY (source, target)
	)`,
	`CREATE TABLE IF NOT EXISTS study_materials (
		course_code  TEXT PRIMARY KEY,
		course_title TEXT NOT NULL,
		materials    JSONB NOT NULL,
		generated    BOOLEAN NOT NULL DEFAULT TRUE,
		fetched_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

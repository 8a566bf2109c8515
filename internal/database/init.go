// Package database manages the PostgreSQL connection pool and schema used for
// lead storage.
package database

import (
	"context"
	"fmt"

	"github.com/yourusername/bad-bets/internal/config"
)

// schema is idempotent and applied on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id         UUID PRIMARY KEY,
		email      TEXT NOT NULL,
		source     TEXT NOT NULL,
		sport      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS leads_email_key ON leads (email)`,
	`CREATE INDEX IF NOT EXISTS leads_created_at_idx ON leads (created_at DESC)`,
}

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the tables and indexes the service needs
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

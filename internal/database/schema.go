package database

import (
	"context"
	"fmt"
)

// schema holds the service's DDL. Every statement is idempotent so
// EnsureSchema can run on each startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS components (
		id             TEXT PRIMARY KEY,
		category       TEXT NOT NULL,
		brand          TEXT NOT NULL DEFAULT '',
		model          TEXT NOT NULL,
		power_w        DOUBLE PRECISION NOT NULL DEFAULT 0,
		material       TEXT NOT NULL DEFAULT '',
		coating        TEXT NOT NULL DEFAULT '',
		specs          JSONB NOT NULL DEFAULT '{}'::jsonb,
		cost           NUMERIC(14,2) NOT NULL DEFAULT 0,
		profit         NUMERIC(14,2) NOT NULL DEFAULT 0,
		warranty_years INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_components_category ON components (category)`,
	`CREATE INDEX IF NOT EXISTS idx_components_brand ON components (category, brand)`,

	`CREATE TABLE IF NOT EXISTS inventory_entries (
		user_id    TEXT NOT NULL,
		category   TEXT NOT NULL,
		model      TEXT NOT NULL,
		brand      TEXT NOT NULL DEFAULT '',
		quantity   INTEGER NOT NULL DEFAULT 0,
		rate       NUMERIC(14,2) NOT NULL DEFAULT 0,
		profit     NUMERIC(14,2) NOT NULL DEFAULT 0,
		power_w    DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, category, model)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory_entries (user_id)`,

	`CREATE TABLE IF NOT EXISTS quotation_batches (
		id              TEXT PRIMARY KEY,
		user_id         TEXT,
		results         JSONB NOT NULL,
		quotation_count INTEGER NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_user ON quotation_batches (user_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		token      TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens (user_id)`,

	`CREATE TABLE IF NOT EXISTS revoked_tokens (
		token_id   TEXT PRIMARY KEY,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates all tables and indexes the service needs.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	s.logger.Debug().Int("statements", len(schema)).Msg("schema ensured")
	return nil
}

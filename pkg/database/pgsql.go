package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, databaseURL string, pingOnStart bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if pingOnStart {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	log.Println("Successfully connected to PostgreSQL database.")
	return pool, nil
}

// schemaDDL is the idempotent schema bootstrap. The text_pattern_ops index
// on cost_centers.path is what makes the subtree prefix scans indexable;
// without it every balance sheet would be a sequential scan.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS cost_centers (
		cost_center_id  BIGSERIAL PRIMARY KEY,
		name            VARCHAR(64) NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		parent_id       BIGINT REFERENCES cost_centers(cost_center_id),
		path            VARCHAR(128) NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		last_updated_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_cost_centers_path ON cost_centers (path text_pattern_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_cost_centers_parent ON cost_centers (parent_id);`,
	`CREATE TABLE IF NOT EXISTS item_kinds (
		item_kind_id BIGSERIAL PRIMARY KEY,
		name         VARCHAR(64) NOT NULL UNIQUE,
		description  TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS purchases (
		purchase_id     BIGSERIAL PRIMARY KEY,
		purchase_date   TIMESTAMPTZ NOT NULL,
		comment         TEXT NOT NULL DEFAULT '',
		item_kind_id    BIGINT NOT NULL REFERENCES item_kinds(item_kind_id) ON DELETE RESTRICT,
		quantity        NUMERIC NOT NULL,
		total_price     NUMERIC NOT NULL,
		supplier        TEXT NOT NULL DEFAULT '',
		cost_center_id  BIGINT NOT NULL REFERENCES cost_centers(cost_center_id) ON DELETE RESTRICT,
		purchaser       VARCHAR(64) NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		last_updated_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_cost_center ON purchases (cost_center_id);`,
	`CREATE TABLE IF NOT EXISTS fundings (
		funding_id      BIGSERIAL PRIMARY KEY,
		name            VARCHAR(64) NOT NULL,
		cost_center_id  BIGINT NOT NULL REFERENCES cost_centers(cost_center_id) ON DELETE RESTRICT,
		funding_date    TIMESTAMPTZ NOT NULL,
		credit          NUMERIC NOT NULL,
		comment         TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		last_updated_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fundings_cost_center ON fundings (cost_center_id);`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaDDL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		log.Println("PostgreSQL connection pool closed.")
	}
}

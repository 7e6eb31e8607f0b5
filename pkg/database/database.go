package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// NewDatabase opens a Postgres connection pool and verifies connectivity.
func NewDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS app_advs (
		id          BIGSERIAL PRIMARY KEY,
		header      VARCHAR(100) NOT NULL,
		description VARCHAR(1000) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		owner       VARCHAR(100) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_app_advs_header ON app_advs (header)`,
	`CREATE INDEX IF NOT EXISTS ix_app_advs_owner ON app_advs (owner)`,
}

// EnsureSchema creates the advertisements table and its indexes if they do
// not exist yet. Statements are idempotent, so running this on every start
// is safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to provision schema: %w", err)
		}
	}
	return nil
}

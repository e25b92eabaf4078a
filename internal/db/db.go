// Package db provides PostgreSQL implementations of the session, passkey and reviewer repositories.
package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

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

// Migrate creates any missing tables. It is safe to run on every start.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Sessions returns the session repository.
func (db *DB) Sessions() *SessionRepo {
	return &SessionRepo{pool: db.pool}
}

// Passkeys returns the passkey repository.
func (db *DB) Passkeys() *PasskeyRepo {
	return &PasskeyRepo{pool: db.pool}
}

// Reviewers returns the reviewer credential repository.
func (db *DB) Reviewers() *ReviewerRepo {
	return &ReviewerRepo{pool: db.pool}
}

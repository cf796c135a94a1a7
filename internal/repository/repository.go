// Package repository provides the PostgreSQL record store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/healthwallet/healthwallet/migrations"
)

// Errors shared by the store implementations. ErrUnavailable covers I/O
// failures and bounded-timeout expiry; the domain sentinels cover normal
// absence and uniqueness outcomes.
var (
	ErrUnavailable    = errors.New("storage unavailable")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrReportNotFound = errors.New("report not found")
	ErrShareNotFound  = errors.New("share grant not found")
)

// defaultTimeout bounds every store operation when the caller does not
// configure one.
const defaultTimeout = 3 * time.Second

// Repository provides database access methods over a pgx pool.
type Repository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// New creates a Repository with a connection pool and runs pending
// migrations.
func New(ctx context.Context, databaseURL string, timeout time.Duration) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, config); err != nil {
		pool.Close()
		return nil, err
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Repository{pool: pool, timeout: timeout}, nil
}

// runMigrations applies the embedded goose migrations through the pgx
// database/sql adapter.
func runMigrations(ctx context.Context, config *pgxpool.Config) error {
	db := stdlib.OpenDB(*config.ConnConfig)
	defer db.Close()

	goose.SetBaseFS(migrations.Files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// opContext bounds a store operation. Expiry surfaces as ErrUnavailable
// through the wrap helpers below.
func (r *Repository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// unavailable tags an I/O failure so callers can match ErrUnavailable
// while keeping the underlying cause in the chain.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	// PostgreSQL error code 23505 is unique_violation
	return err != nil && (contains(err.Error(), "23505") || contains(err.Error(), "unique"))
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

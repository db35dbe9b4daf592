package storage

import (
	"context"
	"fmt"

	"github.com/project-budget/go-budget-backend/config"
)

// Querier is the uniform query surface shared by an Engine and an open Tx.
// Query text uses ? placeholders; each backend adapts them as needed.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// Engine is one bound storage backend for the process lifetime.
type Engine interface {
	Querier

	Begin(ctx context.Context) (Tx, error)

	// HealthCheck writes the current timestamp into the health_check table
	// and returns the written value.
	HealthCheck(ctx context.Context) (string, error)

	Close()
}

// Tx is a single transaction against an Engine.
type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Rows is the minimal read cursor shared by both backends.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Error wraps any backend failure, carrying the original message.
type Error struct {
	err error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return &Error{err: err}
}

// Open binds exactly one engine based on the configured environment.
// Unset or "test" selects the embedded in-memory engine; "development"
// and "production" select the Postgres pool, which is probed eagerly so
// an unreachable backend fails startup.
func Open(ctx context.Context, cfg *config.Config) (Engine, error) {
	switch cfg.App.Environment {
	case "", "test":
		return OpenSQLite(ctx, ":memory:")
	case "development", "production":
		return OpenPostgres(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unrecognized APP_ENV %q", cfg.App.Environment)
	}
}

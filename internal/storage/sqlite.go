package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is the embedded single-connection engine. A single open
// connection keeps the in-memory database alive and naturally
// serializes writes.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &sqlRows{rows: rows}, nil
}

func (s *SQLite) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(err)
	}
	return affected, nil
}

func (s *SQLite) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &sqlTx{tx: tx}, nil
}

func (s *SQLite) HealthCheck(ctx context.Context) (string, error) {
	if _, err := s.Exec(ctx, createHealthCheckTable); err != nil {
		return "", err
	}
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if _, err := s.Exec(ctx, insertHealthCheck, now); err != nil {
		return "", err
	}
	return now, nil
}

func (s *SQLite) Close() {
	if s != nil && s.db != nil {
		s.db.Close()
	}
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &sqlRows{rows: rows}, nil
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(err)
	}
	return affected, nil
}

func (t *sqlTx) Commit(ctx context.Context) error   { return wrapErr(t.tx.Commit()) }
func (t *sqlTx) Rollback(ctx context.Context) error { return wrapErr(t.tx.Rollback()) }

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool { return r.rows.Next() }

func (r *sqlRows) Scan(dest ...any) error {
	return wrapErr(r.rows.Scan(dest...))
}

func (r *sqlRows) Err() error { return wrapErr(r.rows.Err()) }
func (r *sqlRows) Close()     { _ = r.rows.Close() }

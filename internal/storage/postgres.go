package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/project-budget/go-budget-backend/config"
)

// Postgres is the networked engine backed by a bounded pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dc config.DatabaseConfig) (*Postgres, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		dc.User, dc.Password, dc.Host, dc.Port, dc.Name)

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = int32(dc.MaxConns)
	cfg.MinConns = int32(dc.MinConns)
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	// Fail fast
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := p.pool.Query(ctx, rebind(query), args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &pgxRows{rows: rows}, nil
}

func (p *Postgres) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ct, err := p.pool.Exec(ctx, rebind(query), args...)
	if err != nil {
		return 0, wrapErr(err)
	}
	return ct.RowsAffected(), nil
}

func (p *Postgres) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &pgxTx{tx: tx}, nil
}

func (p *Postgres) HealthCheck(ctx context.Context) (string, error) {
	if _, err := p.Exec(ctx, createHealthCheckTable); err != nil {
		return "", err
	}
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if _, err := p.Exec(ctx, insertHealthCheck, now); err != nil {
		return "", err
	}
	return now, nil
}

func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := t.tx.Query(ctx, rebind(query), args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &pgxRows{rows: rows}, nil
}

func (t *pgxTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ct, err := t.tx.Exec(ctx, rebind(query), args...)
	if err != nil {
		return 0, wrapErr(err)
	}
	return ct.RowsAffected(), nil
}

func (t *pgxTx) Commit(ctx context.Context) error   { return wrapErr(t.tx.Commit(ctx)) }
func (t *pgxTx) Rollback(ctx context.Context) error { return wrapErr(t.tx.Rollback(ctx)) }

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool { return r.rows.Next() }

func (r *pgxRows) Scan(dest ...any) error {
	return wrapErr(r.rows.Scan(dest...))
}

func (r *pgxRows) Err() error { return wrapErr(r.rows.Err()) }
func (r *pgxRows) Close()     { r.rows.Close() }

// rebind rewrites ? placeholders to the $n form pgx expects. Query text
// in this codebase never contains a literal question mark.
func rebind(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

package storage

import "context"

const createProjectTable = `
CREATE TABLE IF NOT EXISTS project (
	project_id BIGINT PRIMARY KEY,
	project_name TEXT NOT NULL,
	year INT NOT NULL,
	currency VARCHAR(3) NOT NULL,
	initial_budget_local DECIMAL(12, 2) NOT NULL,
	budget_usd DECIMAL(12, 2) NOT NULL,
	initial_schedule_estimate_months INT NOT NULL,
	adjusted_schedule_estimate_months INT NOT NULL,
	contingency_rate DECIMAL(5, 2) NOT NULL,
	escalation_rate DECIMAL(5, 2) NOT NULL,
	final_budget_usd DECIMAL(12, 2) NOT NULL
)`

const (
	createHealthCheckTable = `CREATE TABLE IF NOT EXISTS health_check (value TEXT)`
	insertHealthCheck      = `INSERT INTO health_check (value) VALUES (?)`
)

// EnsureSchema creates the project table if it does not exist yet. The
// DDL is written in the dialect subset both engines accept.
func EnsureSchema(ctx context.Context, eng Engine) error {
	_, err := eng.Exec(ctx, createProjectTable)
	return err
}

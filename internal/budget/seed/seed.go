// Package seed loads the project fixture CSV into the bound storage
// engine. Test-environment setup only; a production deployment never
// touches it.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/project-budget/go-budget-backend/internal/storage"
)

type colKind int

const (
	colInt colKind = iota
	colText
	colMoney
	colRate
)

// seedColumns declares each column's type explicitly so a malformed
// value fails its own column instead of being silently reclassified.
var seedColumns = []struct {
	name string
	kind colKind
}{
	{"project_id", colInt},
	{"project_name", colText},
	{"year", colInt},
	{"currency", colText},
	{"initial_budget_local", colMoney},
	{"budget_usd", colMoney},
	{"initial_schedule_estimate_months", colInt},
	{"adjusted_schedule_estimate_months", colInt},
	{"contingency_rate", colRate},
	{"escalation_rate", colRate},
	{"final_budget_usd", colMoney},
}

const insertSeedRow = `
INSERT INTO project (project_id, project_name, year, currency, initial_budget_local,
	budget_usd, initial_schedule_estimate_months, adjusted_schedule_estimate_months,
	contingency_rate, escalation_rate, final_budget_usd)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// LoadCSV inserts every well-formed fixture row and returns the count.
// The first line is a header and is skipped; rows with fewer than
// eleven fields or a value that fails its declared column type are
// skipped without failing the load. Insert errors are logged per row.
func LoadCSV(ctx context.Context, eng storage.Engine, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	loaded := 0
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, fmt.Errorf("read seed file: %w", err)
		}

		line++
		if line == 1 {
			continue // header
		}
		if len(record) < len(seedColumns) {
			continue
		}

		args, err := parseRow(record)
		if err != nil {
			log.Printf("skipping seed line %d: %v", line, err)
			continue
		}

		if _, err := eng.Exec(ctx, insertSeedRow, args...); err != nil {
			log.Printf("error inserting seed project %s: %v", record[0], err)
		} else {
			loaded++
		}
	}

	return loaded, nil
}

// Reset truncates the project table and reloads the fixture.
func Reset(ctx context.Context, eng storage.Engine, path string) (int, error) {
	if _, err := eng.Exec(ctx, `DELETE FROM project`); err != nil {
		return 0, err
	}
	return LoadCSV(ctx, eng, path)
}

func parseRow(record []string) ([]any, error) {
	args := make([]any, len(seedColumns))
	for i, col := range seedColumns {
		raw := record[i]
		if raw == "NULL" {
			args[i] = nil
			continue
		}

		switch col.kind {
		case colText:
			args[i] = raw
		case colInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %q is not an integer", col.name, raw)
			}
			args[i] = v
		case colMoney, colRate:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %q is not a number", col.name, raw)
			}
			args[i] = v
		}
	}
	return args, nil
}

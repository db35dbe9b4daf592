package repository

import (
	"context"

	"github.com/project-budget/go-budget-backend/internal/budget/domain"
	"github.com/project-budget/go-budget-backend/internal/storage"
)

// ProjectRepo owns all SQL for project records. Every value reaches the
// engine as a bound parameter, never interpolated into query text.
type ProjectRepo struct {
	db storage.Engine
}

func New(db storage.Engine) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `project_id, project_name, year, currency, initial_budget_local,
	budget_usd, initial_schedule_estimate_months, adjusted_schedule_estimate_months,
	contingency_rate, escalation_rate, final_budget_usd`

const selectByID = `
SELECT ` + projectColumns + `
FROM project
WHERE project_id = ?`

const selectByNameAndYear = `
SELECT ` + projectColumns + `
FROM project
WHERE project_name = ? AND year = ?`

const insertProject = `
INSERT INTO project (` + projectColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const updateProject = `
UPDATE project SET
	project_name = ?, year = ?, currency = ?, initial_budget_local = ?,
	budget_usd = ?, initial_schedule_estimate_months = ?, adjusted_schedule_estimate_months = ?,
	contingency_rate = ?, escalation_rate = ?, final_budget_usd = ?
WHERE project_id = ?`

const deleteProject = `DELETE FROM project WHERE project_id = ?`

// FindByID returns the project or nil when absent.
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	return findByID(ctx, r.db, id)
}

func (r *ProjectRepo) FindByNameAndYear(ctx context.Context, name string, year int) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx, selectByNameAndYear, name, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 4)
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Insert creates the project. The existence check and the insert run in
// one transaction so two concurrent creates of the same id cannot both
// pass the check.
func (r *ProjectRepo) Insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := findByID(ctx, tx, p.ProjectID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if existing != nil {
		_ = tx.Rollback(ctx)
		return nil, domain.E(domain.KindConflict, "Project with this ID already exists")
	}

	_, err = tx.Exec(ctx, insertProject,
		p.ProjectID, p.ProjectName, p.Year, p.Currency, p.InitialBudgetLocal,
		p.BudgetUsd, p.InitialScheduleEstimateMonths, p.AdjustedScheduleEstimateMonths,
		p.ContingencyRate, p.EscalationRate, p.FinalBudgetUsd)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Re-read so the caller sees exactly what was persisted.
	return r.FindByID(ctx, p.ProjectID)
}

// Update replaces all mutable fields of an existing project.
func (r *ProjectRepo) Update(ctx context.Context, id int64, p *domain.Project) (*domain.Project, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.E(domain.KindNotFound, "Project not found")
	}

	_, err = r.db.Exec(ctx, updateProject,
		p.ProjectName, p.Year, p.Currency, p.InitialBudgetLocal,
		p.BudgetUsd, p.InitialScheduleEstimateMonths, p.AdjustedScheduleEstimateMonths,
		p.ContingencyRate, p.EscalationRate, p.FinalBudgetUsd,
		id)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.E(domain.KindNotFound, "Project not found")
	}

	_, err = r.db.Exec(ctx, deleteProject, id)
	return err
}

// DeleteAll truncates the project table. Seed/test setup only.
func (r *ProjectRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project`)
	return err
}

// findByID runs against either the engine or an open transaction so the
// insert path can check existence inside its own transaction.
func findByID(ctx context.Context, q storage.Querier, id int64) (*domain.Project, error) {
	rows, err := q.Query(ctx, selectByID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var p domain.Project
	if err := scanProject(rows, &p); err != nil {
		return nil, err
	}
	return &p, rows.Err()
}

func scanProject(rows storage.Rows, p *domain.Project) error {
	return rows.Scan(
		&p.ProjectID, &p.ProjectName, &p.Year, &p.Currency, &p.InitialBudgetLocal,
		&p.BudgetUsd, &p.InitialScheduleEstimateMonths, &p.AdjustedScheduleEstimateMonths,
		&p.ContingencyRate, &p.EscalationRate, &p.FinalBudgetUsd)
}

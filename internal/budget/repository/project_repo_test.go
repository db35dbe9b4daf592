package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-budget/go-budget-backend/internal/budget/domain"
	"github.com/project-budget/go-budget-backend/internal/storage"
)

func setupRepo(t *testing.T) *ProjectRepo {
	t.Helper()

	eng, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(eng.Close)

	require.NoError(t, storage.EnsureSchema(context.Background(), eng))
	return New(eng)
}

func sampleProject(id int64) *domain.Project {
	return &domain.Project{
		ProjectID:                      id,
		ProjectName:                    "Acme Bridge",
		Year:                           2019,
		Currency:                       "GBP",
		InitialBudgetLocal:             500000,
		BudgetUsd:                      610000,
		InitialScheduleEstimateMonths:  18,
		AdjustedScheduleEstimateMonths: 20,
		ContingencyRate:                2.5,
		EscalationRate:                 1.8,
		FinalBudgetUsd:                 635000,
	}
}

func TestProjectRepo_InsertAndFindByID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	want := sampleProject(321)
	created, err := repo.Insert(ctx, want)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, *want, *created)

	got, err := repo.FindByID(ctx, 321)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
}

func TestProjectRepo_FindByID_Absent(t *testing.T) {
	repo := setupRepo(t)

	got, err := repo.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectRepo_Insert_Conflict(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, sampleProject(321))
	require.NoError(t, err)

	other := sampleProject(321)
	other.ProjectName = "Different Name"
	_, err = repo.Insert(ctx, other)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	// No silent overwrite
	got, err := repo.FindByID(ctx, 321)
	require.NoError(t, err)
	assert.Equal(t, "Acme Bridge", got.ProjectName)
}

func TestProjectRepo_FindByNameAndYear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := sampleProject(1)
	second := sampleProject(2)
	second.BudgetUsd = 700000
	third := sampleProject(3)
	third.Year = 2021

	for _, p := range []*domain.Project{first, second, third} {
		_, err := repo.Insert(ctx, p)
		require.NoError(t, err)
	}

	got, err := repo.FindByNameAndYear(ctx, "Acme Bridge", 2019)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByNameAndYear(ctx, "Acme Bridge", 1995)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProjectRepo_Update_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, sampleProject(321))
	require.NoError(t, err)

	before, err := repo.FindByID(ctx, 321)
	require.NoError(t, err)

	updated := &domain.Project{
		ProjectName:                    "Acme Tunnel",
		Year:                           2020,
		Currency:                       "EUR",
		InitialBudgetLocal:             620000,
		BudgetUsd:                      680000,
		InitialScheduleEstimateMonths:  22,
		AdjustedScheduleEstimateMonths: 25,
		ContingencyRate:                3.1,
		EscalationRate:                 2.2,
		FinalBudgetUsd:                 710000,
	}

	got, err := repo.Update(ctx, 321, updated)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Every mutable field changed and persisted
	assert.Equal(t, int64(321), got.ProjectID)
	assert.NotEqual(t, before.ProjectName, got.ProjectName)
	assert.NotEqual(t, before.Year, got.Year)
	assert.NotEqual(t, before.Currency, got.Currency)
	assert.NotEqual(t, before.InitialBudgetLocal, got.InitialBudgetLocal)
	assert.NotEqual(t, before.BudgetUsd, got.BudgetUsd)
	assert.NotEqual(t, before.InitialScheduleEstimateMonths, got.InitialScheduleEstimateMonths)
	assert.NotEqual(t, before.AdjustedScheduleEstimateMonths, got.AdjustedScheduleEstimateMonths)
	assert.NotEqual(t, before.ContingencyRate, got.ContingencyRate)
	assert.NotEqual(t, before.EscalationRate, got.EscalationRate)
	assert.NotEqual(t, before.FinalBudgetUsd, got.FinalBudgetUsd)

	reread, err := repo.FindByID(ctx, 321)
	require.NoError(t, err)
	assert.Equal(t, *got, *reread)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Update(context.Background(), 999, sampleProject(999))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestProjectRepo_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, sampleProject(321))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 321))

	got, err := repo.FindByID(ctx, 321)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.Delete(ctx, 321)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/project-budget/go-budget-backend/internal/budget/domain"
	"github.com/project-budget/go-budget-backend/internal/budget/repository"
)

// SecondaryCurrency is the only target currency that triggers
// enrichment; any other value skips the rate lookup entirely.
const SecondaryCurrency = "TTD"

// Converter is the rate-client surface the service depends on.
type Converter interface {
	ConvertToTTD(ctx context.Context, amount float64, fromCurrency string, year, month, day int) (*domain.Conversion, error)
}

// Result is the uniform envelope every operation returns. The HTTP
// layer maps StatusCode 1:1 onto the response status.
type Result struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	StatusCode int    `json:"-"`
	Message    string `json:"message,omitempty"`
}

// BudgetService orchestrates repository calls and currency enrichment.
type BudgetService struct {
	repo      *repository.ProjectRepo
	converter Converter
}

func New(repo *repository.ProjectRepo, converter Converter) *BudgetService {
	return &BudgetService{repo: repo, converter: converter}
}

func (s *BudgetService) GetByID(ctx context.Context, id int64) Result {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errResult(err)
	}
	if p == nil {
		return Result{StatusCode: http.StatusNotFound, Message: "Project not found"}
	}
	return Result{Success: true, Data: p, StatusCode: http.StatusOK}
}

// GetByNameYearWithCurrency returns every matching project, valued in
// TTD when that is the requested currency. A failed conversion is
// logged and leaves the enrichment field null; the budget data itself
// is never withheld because a rate lookup failed.
func (s *BudgetService) GetByNameYearWithCurrency(ctx context.Context, projectName string, year int, targetCurrency string) Result {
	projects, err := s.repo.FindByNameAndYear(ctx, projectName, year)
	if err != nil {
		// This operation always carries a list payload, even on failure.
		res := errResult(err)
		res.Data = []domain.EnrichedProject{}
		return res
	}
	if len(projects) == 0 {
		return Result{
			Data:       []domain.EnrichedProject{},
			StatusCode: http.StatusNotFound,
			Message:    "No projects found with specified name and year",
		}
	}

	results := make([]domain.EnrichedProject, 0, len(projects))
	for _, p := range projects {
		enriched := domain.EnrichedProject{Project: p}

		if targetCurrency == SecondaryCurrency && s.converter != nil {
			now := time.Now()
			conv, err := s.converter.ConvertToTTD(ctx, p.FinalBudgetUsd, "USD",
				now.Year(), int(now.Month()), now.Day())
			if err != nil {
				log.Printf("currency conversion failed for %s: %v", p.String(), err)
			} else {
				enriched.FinalBudgetTtd = &conv.ConvertedAmount
			}
		}

		results = append(results, enriched)
	}

	return Result{Success: true, Data: results, StatusCode: http.StatusOK}
}

func (s *BudgetService) Create(ctx context.Context, payload *domain.ProjectPayload) Result {
	p, err := payload.Project(true)
	if err != nil {
		return errResult(err)
	}
	if err := p.Validate(); err != nil {
		return errResult(err)
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return errResult(err)
	}
	return Result{Success: true, Data: created, StatusCode: http.StatusCreated}
}

func (s *BudgetService) Update(ctx context.Context, id int64, payload *domain.ProjectPayload) Result {
	p, err := payload.Project(false)
	if err != nil {
		return errResult(err)
	}
	p.ProjectID = id
	if err := p.ValidateUpdate(); err != nil {
		return errResult(err)
	}

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return errResult(err)
	}
	return Result{Success: true, Data: updated, StatusCode: http.StatusOK}
}

func (s *BudgetService) Delete(ctx context.Context, id int64) Result {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errResult(err)
	}
	return Result{
		Success:    true,
		Data:       map[string]int64{"projectId": id},
		StatusCode: http.StatusOK,
		Message:    "Project deleted successfully",
	}
}

func errResult(err error) Result {
	var derr *domain.Error
	if errors.As(err, &derr) {
		switch derr.Kind {
		case domain.KindInvalidInput:
			return Result{StatusCode: http.StatusBadRequest, Message: derr.Message}
		case domain.KindNotFound:
			return Result{StatusCode: http.StatusNotFound, Message: derr.Message}
		case domain.KindConflict:
			return Result{StatusCode: http.StatusConflict, Message: derr.Message}
		}
	}
	return Result{StatusCode: http.StatusInternalServerError, Message: err.Error()}
}

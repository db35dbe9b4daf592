package domain

import "fmt"

// Project is one capital-budget record per (project, reporting year).
type Project struct {
	ProjectID                      int64   `json:"projectId"`
	ProjectName                    string  `json:"projectName"`
	Year                           int     `json:"year"`
	Currency                       string  `json:"currency"`
	InitialBudgetLocal             float64 `json:"initialBudgetLocal"`
	BudgetUsd                      float64 `json:"budgetUsd"`
	InitialScheduleEstimateMonths  int     `json:"initialScheduleEstimateMonths"`
	AdjustedScheduleEstimateMonths int     `json:"adjustedScheduleEstimateMonths"`
	ContingencyRate                float64 `json:"contingencyRate"`
	EscalationRate                 float64 `json:"escalationRate"`
	FinalBudgetUsd                 float64 `json:"finalBudgetUsd"`
}

// EnrichedProject is a Project plus the optional TTD valuation of its
// final USD budget. The pointer stays nil when enrichment was skipped
// or failed, which serializes as null.
type EnrichedProject struct {
	Project
	FinalBudgetTtd *float64 `json:"finalBudgetTtd"`
}

// Conversion is the ephemeral result of one dated currency lookup.
// Never persisted, never cached.
type Conversion struct {
	OriginalAmount   float64 `json:"originalAmount"`
	OriginalCurrency string  `json:"originalCurrency"`
	ConvertedAmount  float64 `json:"convertedAmount"`
	TargetCurrency   string  `json:"targetCurrency"`
	ConversionRate   float64 `json:"conversionRate"`
	Date             string  `json:"date"`
}

// ProjectPayload is an inbound create/update body. Pointer fields keep
// an absent field distinguishable from an explicit zero, so presence is
// checked before any range validation.
type ProjectPayload struct {
	ProjectID                      *int64   `json:"projectId"`
	ProjectName                    *string  `json:"projectName"`
	Year                           *int     `json:"year"`
	Currency                       *string  `json:"currency"`
	InitialBudgetLocal             *float64 `json:"initialBudgetLocal"`
	BudgetUsd                      *float64 `json:"budgetUsd"`
	InitialScheduleEstimateMonths  *int     `json:"initialScheduleEstimateMonths"`
	AdjustedScheduleEstimateMonths *int     `json:"adjustedScheduleEstimateMonths"`
	ContingencyRate                *float64 `json:"contingencyRate"`
	EscalationRate                 *float64 `json:"escalationRate"`
	FinalBudgetUsd                 *float64 `json:"finalBudgetUsd"`
}

// Project materializes the payload once every required field is
// present. requireID is false for updates, which take the id from the
// request path rather than the body.
func (p *ProjectPayload) Project(requireID bool) (*Project, error) {
	if requireID && p.ProjectID == nil {
		return nil, E(KindInvalidInput, "Missing required field: projectId")
	}

	required := []struct {
		name    string
		present bool
	}{
		{"projectName", p.ProjectName != nil},
		{"year", p.Year != nil},
		{"currency", p.Currency != nil},
		{"initialBudgetLocal", p.InitialBudgetLocal != nil},
		{"budgetUsd", p.BudgetUsd != nil},
		{"initialScheduleEstimateMonths", p.InitialScheduleEstimateMonths != nil},
		{"adjustedScheduleEstimateMonths", p.AdjustedScheduleEstimateMonths != nil},
		{"contingencyRate", p.ContingencyRate != nil},
		{"escalationRate", p.EscalationRate != nil},
		{"finalBudgetUsd", p.FinalBudgetUsd != nil},
	}
	for _, f := range required {
		if !f.present {
			return nil, E(KindInvalidInput, "Missing required field: "+f.name)
		}
	}

	proj := &Project{
		ProjectName:                    *p.ProjectName,
		Year:                           *p.Year,
		Currency:                       *p.Currency,
		InitialBudgetLocal:             *p.InitialBudgetLocal,
		BudgetUsd:                      *p.BudgetUsd,
		InitialScheduleEstimateMonths:  *p.InitialScheduleEstimateMonths,
		AdjustedScheduleEstimateMonths: *p.AdjustedScheduleEstimateMonths,
		ContingencyRate:                *p.ContingencyRate,
		EscalationRate:                 *p.EscalationRate,
		FinalBudgetUsd:                 *p.FinalBudgetUsd,
	}
	if p.ProjectID != nil {
		proj.ProjectID = *p.ProjectID
	}
	return proj, nil
}

// Validate checks the full payload before a create touches storage.
func (p *Project) Validate() error {
	if p.ProjectID <= 0 {
		return E(KindInvalidInput, "invalid projectId: must be a positive number")
	}
	return p.validateMutable()
}

// ValidateUpdate checks everything except the id, which an update takes
// from the request path rather than the payload.
func (p *Project) ValidateUpdate() error {
	return p.validateMutable()
}

func (p *Project) validateMutable() error {
	if p.ProjectName == "" {
		return E(KindInvalidInput, "invalid projectName: must not be empty")
	}
	if p.Currency == "" {
		return E(KindInvalidInput, "invalid currency: must not be empty")
	}
	if p.Year < 1900 || p.Year > 2100 {
		return E(KindInvalidInput, "invalid year: must be between 1900 and 2100")
	}
	if p.InitialBudgetLocal < 0 {
		return E(KindInvalidInput, "invalid initialBudgetLocal: must be a non-negative number")
	}
	if p.BudgetUsd < 0 {
		return E(KindInvalidInput, "invalid budgetUsd: must be a non-negative number")
	}
	if p.FinalBudgetUsd < 0 {
		return E(KindInvalidInput, "invalid finalBudgetUsd: must be a non-negative number")
	}
	if p.InitialScheduleEstimateMonths < 0 {
		return E(KindInvalidInput, "invalid initialScheduleEstimateMonths: must be a non-negative number")
	}
	if p.AdjustedScheduleEstimateMonths < 0 {
		return E(KindInvalidInput, "invalid adjustedScheduleEstimateMonths: must be a non-negative number")
	}
	return nil
}

func (p *Project) String() string {
	return fmt.Sprintf("project %d (%s, %d)", p.ProjectID, p.ProjectName, p.Year)
}

package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a calculation did not produce a value.
type FailureKind string

const (
	FailureNone            FailureKind = ""
	FailureInvalidInput    FailureKind = "invalid_input"
	FailureMissingCategory FailureKind = "missing_category"
	FailureInfeasible      FailureKind = "infeasible"
	FailureInternal        FailureKind = "internal"
)

// Sentinel errors matching each FailureKind, for errors.Is checks.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingCategory = errors.New("missing or invalid category")
	ErrInfeasible      = errors.New("infeasible goal")
	ErrInternal        = errors.New("calculation error")
)

// ResultDetails is the summary attached to a successful calculation.
type ResultDetails struct {
	TotalYears            int          `json:"total_years"`
	TotalMonths           int          `json:"total_months"`
	TotalContributions    float64      `json:"total_contributions"`
	MonthlyContribution   float64      `json:"monthly_contribution"`
	FinalAmount           float64      `json:"final_amount"`
	RetirementBalance     float64      `json:"retirement_balance,omitempty"`
	LifeExpectancy        float64      `json:"life_expectancy,omitempty"`
	RetirementPeriodYears float64      `json:"retirement_period_years"`
	Inputs                PersonInputs `json:"inputs"`
	Goal                  Goal         `json:"goal"`
}

// CalculationResult is either a success carrying Value and Details, or a
// failure carrying a human-readable Reason.
type CalculationResult struct {
	Success bool           `json:"success"`
	Value   float64        `json:"value"`
	Reason  string         `json:"error,omitempty"`
	Kind    FailureKind    `json:"kind,omitempty"`
	Details *ResultDetails `json:"details,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded(value float64, details ResultDetails) CalculationResult {
	return CalculationResult{Success: true, Value: value, Details: &details}
}

// Failed builds a failed result.
func Failed(kind FailureKind, reason string) CalculationResult {
	return CalculationResult{Kind: kind, Reason: reason}
}

// SolveError exposes a failed CalculationResult as an error.
type SolveError struct {
	Kind   FailureKind
	Reason string
}

func (e *SolveError) Error() string { return e.Reason }

// Unwrap maps the failure kind onto its sentinel error.
func (e *SolveError) Unwrap() error {
	switch e.Kind {
	case FailureInvalidInput:
		return ErrInvalidInput
	case FailureMissingCategory:
		return ErrMissingCategory
	case FailureInfeasible:
		return ErrInfeasible
	default:
		return ErrInternal
	}
}

// Err returns nil for a success and a *SolveError otherwise.
func (r CalculationResult) Err() error {
	if r.Success {
		return nil
	}
	return &SolveError{Kind: r.Kind, Reason: r.Reason}
}

// String renders a short one-line description.
func (r CalculationResult) String() string {
	if !r.Success {
		return fmt.Sprintf("failure(%s): %s", r.Kind, r.Reason)
	}
	return fmt.Sprintf("success: %.2f", r.Value)
}

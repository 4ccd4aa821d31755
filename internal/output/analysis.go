package output

import (
	"fmt"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/pkg/decimal"
)

// Analysis holds the headline figures shared by the text and HTML formatters.
type Analysis struct {
	Headline            string
	MonthlyContribution float64
	BalanceAtRetirement float64
	MonthlyIncome       float64
	TotalContributions  float64
	InterestEarned      float64
	RetirementYears     float64
	RetirementEndAge    float64
}

// AnalyzeReport derives the headline figures from a report.
// Extracted from the formatters for testability.
func AnalyzeReport(r *domain.Report) Analysis {
	res := r.Result
	if !res.Success || res.Details == nil {
		return Analysis{Headline: "Calculation failed: " + res.Reason}
	}
	d := res.Details

	a := Analysis{
		MonthlyContribution: d.MonthlyContribution,
		TotalContributions:  d.TotalContributions,
		RetirementYears:     d.RetirementPeriodYears,
	}
	switch r.Scenario() {
	case domain.ScenarioTargetAmount:
		a.BalanceAtRetirement = d.FinalAmount
	case domain.ScenarioMonthlyContribution:
		a.BalanceAtRetirement = res.Value
	case domain.ScenarioRetirementIncome:
		a.BalanceAtRetirement = d.RetirementBalance
		a.MonthlyIncome = r.Goal.Amount
	}
	a.InterestEarned = interestEarned(a.BalanceAtRetirement, r.Inputs.InitialInvestment, a.TotalContributions)

	for _, p := range r.Trajectory {
		if p.Phase == domain.PhaseRetirement {
			a.MonthlyIncome = -p.MonthlyFlow
			break
		}
	}
	if r.Summary != nil {
		a.RetirementEndAge = r.Summary.FinalAge
	}

	retireAt := r.Inputs.RetirementAge
	switch r.Scenario() {
	case domain.ScenarioTargetAmount:
		a.Headline = fmt.Sprintf("Contribute %s per month to reach %s at age %d",
			FormatCurrency(a.MonthlyContribution), FormatCurrency(a.BalanceAtRetirement), retireAt)
	case domain.ScenarioMonthlyContribution:
		a.Headline = fmt.Sprintf("Contributing %s per month builds %s by age %d",
			FormatCurrency(a.MonthlyContribution), FormatCurrency(a.BalanceAtRetirement), retireAt)
	case domain.ScenarioRetirementIncome:
		a.Headline = fmt.Sprintf("Contribute %s per month to receive %s per month from age %d for %.1f years",
			FormatCurrency(a.MonthlyContribution), FormatCurrency(r.Goal.Amount), retireAt, a.RetirementYears)
	}
	return a
}

// interestEarned is the part of the balance not paid in. It is negative
// when the assumed return is.
func interestEarned(balance, initial, contributions float64) float64 {
	paidIn := decimal.NewMoney(initial).Add(decimal.NewMoney(contributions))
	return decimal.NewMoney(balance).Sub(paidIn).Float64()
}

// Package calculation holds the annuity math, the three scenario solvers, the
// month-by-month wealth projector and the chart sampler.
package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/mortality"
)

const internalFailureReason = "calculation error occurred"

// Calculator solves scenarios against one set of financial assumptions and
// one mortality table. Both are read-only after construction, so a single
// Calculator may serve concurrent callers.
type Calculator struct {
	assumptions domain.Assumptions
	table       *mortality.Table
	Logger      Logger
}

// NewCalculator validates the assumptions and builds a calculator. A nil
// table selects the embedded default.
func NewCalculator(assumptions domain.Assumptions, table *mortality.Table) (*Calculator, error) {
	if err := assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	if table == nil {
		table = mortality.Default()
	}
	return &Calculator{
		assumptions: assumptions,
		table:       table,
		Logger:      NopLogger{},
	}, nil
}

// NewDefaultCalculator uses DefaultAssumptions and the embedded table.
func NewDefaultCalculator() *Calculator {
	c, err := NewCalculator(domain.DefaultAssumptions(), nil)
	if err != nil {
		panic(err)
	}
	return c
}

// SetLogger sets the logger for the calculator. If nil is provided, a no-op logger is used.
func (c *Calculator) SetLogger(l Logger) {
	c.Logger = orNop(l)
}

// Assumptions returns the financial constants in use.
func (c *Calculator) Assumptions() domain.Assumptions { return c.assumptions }

// Table returns the mortality table in use.
func (c *Calculator) Table() *mortality.Table { return c.table }

// With returns a calculator sharing the logger but using other assumptions
// and table. A nil table keeps the current one.
func (c *Calculator) With(assumptions domain.Assumptions, table *mortality.Table) (*Calculator, error) {
	if table == nil {
		table = c.table
	}
	out, err := NewCalculator(assumptions, table)
	if err != nil {
		return nil, err
	}
	out.Logger = orNop(c.Logger)
	return out, nil
}

// Solve dispatches on the goal's scenario tag.
func (c *Calculator) Solve(in domain.PersonInputs, goal domain.Goal) domain.CalculationResult {
	switch goal.Scenario {
	case domain.ScenarioTargetAmount:
		return c.SolveTargetAmount(in, goal.Amount)
	case domain.ScenarioMonthlyContribution:
		return c.SolveMonthlyContribution(in, goal.Amount)
	case domain.ScenarioRetirementIncome:
		return c.SolveRetirementIncome(in, goal.Amount)
	default:
		return domain.Failed(domain.FailureInvalidInput, fmt.Sprintf("unknown scenario %q", goal.Scenario))
	}
}

// SolveTargetAmount returns the monthly contribution needed to hold
// desiredFinalAmount at retirement.
func (c *Calculator) SolveTargetAmount(in domain.PersonInputs, desiredFinalAmount float64) domain.CalculationResult {
	goal := domain.TargetFinalAmount(desiredFinalAmount)
	return c.guard(goal, func() (domain.CalculationResult, error) {
		if err := c.validate(in, goal); err != nil {
			return domain.CalculationResult{}, err
		}
		months := c.accumulationMonths(in)
		r := c.assumptions.MonthlyRate()

		contribution := RequiredPayment(desiredFinalAmount, in.InitialInvestment, r, months)
		if contribution < 0 {
			return domain.CalculationResult{}, infeasible("target amount is too low for the given initial investment and time period")
		}
		lifeExpectancy, period, err := c.horizon(in, false)
		if err != nil {
			return domain.CalculationResult{}, err
		}

		return domain.Succeeded(contribution, domain.ResultDetails{
			TotalYears:            in.AccumulationYears(),
			TotalMonths:           months,
			TotalContributions:    contribution * float64(months),
			MonthlyContribution:   contribution,
			FinalAmount:           desiredFinalAmount,
			LifeExpectancy:        lifeExpectancy,
			RetirementPeriodYears: period,
			Inputs:                in,
			Goal:                  goal,
		}), nil
	})
}

// SolveMonthlyContribution returns the balance reached at retirement when
// monthlyContribution is invested every month.
func (c *Calculator) SolveMonthlyContribution(in domain.PersonInputs, monthlyContribution float64) domain.CalculationResult {
	goal := domain.MonthlyContribution(monthlyContribution)
	return c.guard(goal, func() (domain.CalculationResult, error) {
		if err := c.validate(in, goal); err != nil {
			return domain.CalculationResult{}, err
		}
		months := c.accumulationMonths(in)
		r := c.assumptions.MonthlyRate()

		finalAmount := FutureValue(in.InitialInvestment, monthlyContribution, r, months)
		lifeExpectancy, period, err := c.horizon(in, false)
		if err != nil {
			return domain.CalculationResult{}, err
		}

		return domain.Succeeded(finalAmount, domain.ResultDetails{
			TotalYears:            in.AccumulationYears(),
			TotalMonths:           months,
			TotalContributions:    monthlyContribution * float64(months),
			MonthlyContribution:   monthlyContribution,
			FinalAmount:           finalAmount,
			LifeExpectancy:        lifeExpectancy,
			RetirementPeriodYears: period,
			Inputs:                in,
			Goal:                  goal,
		}), nil
	})
}

// SolveRetirementIncome converts desiredMonthlyIncome into the balance that
// funds it until life expectancy, then returns the monthly contribution
// needed to reach that balance.
func (c *Calculator) SolveRetirementIncome(in domain.PersonInputs, desiredMonthlyIncome float64) domain.CalculationResult {
	goal := domain.DesiredMonthlyIncome(desiredMonthlyIncome)
	return c.guard(goal, func() (domain.CalculationResult, error) {
		if err := c.validate(in, goal); err != nil {
			return domain.CalculationResult{}, err
		}
		lifeExpectancy, period, err := c.horizon(in, true)
		if err != nil {
			return domain.CalculationResult{}, err
		}
		months := c.accumulationMonths(in)
		r := c.assumptions.MonthlyRate()

		balance := AnnuityPresentValue(desiredMonthlyIncome, r, c.retirementMonths(period))
		contribution := RequiredPayment(balance, in.InitialInvestment, r, months)
		if contribution < 0 {
			return domain.CalculationResult{}, infeasible("initial investment is sufficient for the desired retirement income")
		}

		return domain.Succeeded(contribution, domain.ResultDetails{
			TotalYears:            in.AccumulationYears(),
			TotalMonths:           months,
			TotalContributions:    contribution * float64(months),
			MonthlyContribution:   contribution,
			RetirementBalance:     balance,
			LifeExpectancy:        lifeExpectancy,
			RetirementPeriodYears: period,
			Inputs:                in,
			Goal:                  goal,
		}), nil
	})
}

// guard runs a solver body and turns its error, a non-finite result or a
// panic into a failed result.
func (c *Calculator) guard(goal domain.Goal, body func() (domain.CalculationResult, error)) (result domain.CalculationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			c.Logger.Errorf("%s: recovered from panic: %v", goal.Scenario, rec)
			result = domain.Failed(domain.FailureInternal, internalFailureReason)
		}
	}()

	result, err := body()
	if err != nil {
		var se *domain.SolveError
		if errors.As(err, &se) {
			c.Logger.Debugf("%s rejected: %s", goal.Scenario, se.Reason)
			return domain.Failed(se.Kind, se.Reason)
		}
		c.Logger.Errorf("%s: %v", goal.Scenario, err)
		return domain.Failed(domain.FailureInternal, internalFailureReason)
	}
	if !resultFinite(result) {
		c.Logger.Errorf("%s: non-finite result for goal %.2f", goal.Scenario, goal.Amount)
		return domain.Failed(domain.FailureInternal, internalFailureReason)
	}
	c.Logger.Debugf("%s solved: %.2f", goal.Scenario, result.Value)
	return result
}

// validate applies the person checks followed by the goal checks. The first
// violation wins.
func (c *Calculator) validate(in domain.PersonInputs, goal domain.Goal) error {
	if in.CurrentAge < domain.MinCurrentAge || in.CurrentAge > domain.MaxCurrentAge {
		return invalid("current age must be between %d and %d", domain.MinCurrentAge, domain.MaxCurrentAge)
	}
	if in.RetirementAge < domain.MinRetirementAge || in.RetirementAge > domain.MaxRetirementAge {
		return invalid("retirement age must be between %d and %d", domain.MinRetirementAge, domain.MaxRetirementAge)
	}
	if in.RetirementAge <= in.CurrentAge {
		return invalid("retirement age must exceed current age")
	}
	if math.IsNaN(in.InitialInvestment) || math.IsInf(in.InitialInvestment, 0) {
		return invalid("initial investment must be a finite number")
	}
	if in.InitialInvestment < 0 {
		return invalid("initial investment cannot be negative")
	}
	if goal.Scenario.NeedsLifeExpectancy() || in.Sex != domain.SexUnspecified {
		if err := mortality.ValidateLifeExpectancyInputs(in.RetirementAge, in.Sex); err != nil {
			return horizonError(err)
		}
	}

	amount := goal.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalid("%s must be a finite number", goalLabel(goal.Scenario))
	}
	switch goal.Scenario {
	case domain.ScenarioTargetAmount:
		if amount <= 0 {
			return invalid("desired final amount must be positive")
		}
		if amount <= in.InitialInvestment {
			return infeasible("desired final amount must be greater than initial investment")
		}
	case domain.ScenarioMonthlyContribution:
		if amount < 0 {
			return invalid("monthly contribution cannot be negative")
		}
	case domain.ScenarioRetirementIncome:
		if amount <= 0 {
			return invalid("desired monthly income must be positive")
		}
	default:
		return invalid("unknown scenario %q", goal.Scenario)
	}
	return nil
}

// horizon returns the life expectancy at retirement and the retirement
// period in years. Without a sex and when not required, life expectancy is
// zero and the period falls back to the configured default.
func (c *Calculator) horizon(in domain.PersonInputs, required bool) (float64, float64, error) {
	if in.Sex == domain.SexUnspecified && !required {
		return 0, c.assumptions.RetirementPeriodYears, nil
	}
	if err := mortality.ValidateLifeExpectancyInputs(in.RetirementAge, in.Sex); err != nil {
		return 0, 0, horizonError(err)
	}
	years, err := c.table.RemainingYears(float64(in.RetirementAge), in.Sex)
	if err != nil {
		return 0, 0, horizonError(err)
	}
	return years, years, nil
}

func (c *Calculator) accumulationMonths(in domain.PersonInputs) int {
	return in.AccumulationYears() * c.assumptions.MonthsPerYear
}

// retirementMonths converts a retirement period into whole months, never
// fewer than one.
func (c *Calculator) retirementMonths(periodYears float64) int {
	months := int(math.Floor(periodYears * float64(c.assumptions.MonthsPerYear)))
	if months < 1 {
		return 1
	}
	return months
}

func invalid(format string, args ...any) error {
	return &domain.SolveError{Kind: domain.FailureInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

func infeasible(reason string) error {
	return &domain.SolveError{Kind: domain.FailureInfeasible, Reason: reason}
}

func horizonError(err error) error {
	switch {
	case errors.Is(err, mortality.ErrMissingSex), errors.Is(err, mortality.ErrInvalidSex):
		return &domain.SolveError{Kind: domain.FailureMissingCategory, Reason: err.Error()}
	case errors.Is(err, mortality.ErrInvalidAge):
		return &domain.SolveError{Kind: domain.FailureInvalidInput, Reason: err.Error()}
	default:
		return err
	}
}

func goalLabel(s domain.Scenario) string {
	if opt, ok := s.Option(); ok {
		return opt.GoalLabel
	}
	return "goal amount"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func resultFinite(r domain.CalculationResult) bool {
	if !finite(r.Value) {
		return false
	}
	if d := r.Details; d != nil {
		for _, v := range []float64{d.TotalContributions, d.MonthlyContribution, d.FinalAmount, d.RetirementBalance, d.LifeExpectancy} {
			if !finite(v) {
				return false
			}
		}
	}
	return true
}

package calculation

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/mortality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	warnings []string
	errors   []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func person(current, retirement int, initial float64, sex domain.Sex) domain.PersonInputs {
	return domain.PersonInputs{
		CurrentAge:        current,
		RetirementAge:     retirement,
		InitialInvestment: initial,
		Sex:               sex,
	}
}

func TestNewCalculatorRejectsInvalidAssumptions(t *testing.T) {
	_, err := NewCalculator(domain.Assumptions{AnnualReturnRate: 0.08}, nil)
	assert.Error(t, err)

	calc, err := NewCalculator(domain.DefaultAssumptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, "br-2022", calc.Table().Name())
	assert.Equal(t, 0.08, calc.Assumptions().AnnualReturnRate)
}

func TestSolveTargetAmount(t *testing.T) {
	calc := NewDefaultCalculator()

	result := calc.SolveTargetAmount(person(30, 65, 0, domain.SexUnspecified), 1_000_000)
	require.True(t, result.Success, result.Reason)
	assert.InDelta(t, 435.94212287944964, result.Value, 1e-9)

	d := result.Details
	require.NotNil(t, d)
	assert.Equal(t, 35, d.TotalYears)
	assert.Equal(t, 420, d.TotalMonths)
	assert.InDelta(t, result.Value*420, d.TotalContributions, 1e-9)
	assert.Equal(t, 1_000_000.0, d.FinalAmount)
	assert.Zero(t, d.LifeExpectancy)
	assert.Equal(t, 15.0, d.RetirementPeriodYears)
	assert.Equal(t, domain.TargetFinalAmount(1_000_000), d.Goal)

	// Feeding the solved contribution back reproduces the target.
	r := calc.Assumptions().MonthlyRate()
	assert.InDelta(t, 1_000_000, FutureValue(0, result.Value, r, d.TotalMonths), 1e-6)
}

func TestSolveTargetAmountCarriesLifeExpectancyWhenSexGiven(t *testing.T) {
	result := NewDefaultCalculator().SolveTargetAmount(person(30, 65, 10_000, domain.Female), 1_000_000)
	require.True(t, result.Success, result.Reason)
	assert.Equal(t, 19.9, result.Details.LifeExpectancy)
	assert.Equal(t, 19.9, result.Details.RetirementPeriodYears)
}

func TestSolveTargetAmountRoundTrip(t *testing.T) {
	calc := NewDefaultCalculator()
	r := calc.Assumptions().MonthlyRate()
	for _, current := range []int{18, 25, 40, 55} {
		for _, initial := range []float64{0, 5_000, 75_000} {
			for _, target := range []float64{100_000, 1_000_000, 9_999_999} {
				in := person(current, 65, initial, domain.Male)
				result := calc.SolveTargetAmount(in, target)
				if !result.Success {
					assert.Equal(t, domain.FailureInfeasible, result.Kind)
					continue
				}
				got := FutureValue(initial, result.Value, r, result.Details.TotalMonths)
				assert.InDelta(t, target, got, target*1e-10, "current=%d initial=%v", current, initial)
			}
		}
	}
}

func TestSolveMonthlyContribution(t *testing.T) {
	calc := NewDefaultCalculator()

	result := calc.SolveMonthlyContribution(person(30, 65, 10_000, domain.Male), 500)
	require.True(t, result.Success, result.Reason)
	assert.InDelta(t, 1309866.741309066, result.Value, 1e-6)
	assert.Equal(t, result.Value, result.Details.FinalAmount)
	assert.InDelta(t, 500.0*420, result.Details.TotalContributions, 1e-9)
	assert.Equal(t, 16.6, result.Details.LifeExpectancy)
}

func TestSolveMonthlyContributionZero(t *testing.T) {
	result := NewDefaultCalculator().SolveMonthlyContribution(person(30, 65, 0, domain.SexUnspecified), 0)
	require.True(t, result.Success, result.Reason)
	assert.Zero(t, result.Value)
	assert.Zero(t, result.Details.FinalAmount)
	assert.Zero(t, result.Details.TotalContributions)
}

func TestSolveRetirementIncome(t *testing.T) {
	calc := NewDefaultCalculator()

	result := calc.SolveRetirementIncome(person(30, 65, 0, domain.Male), 5000)
	require.True(t, result.Success, result.Reason)
	// 16.6 years at 65 gives 199 whole months of income.
	assert.InDelta(t, 550101.6063881528, result.Details.RetirementBalance, 1e-6)
	assert.InDelta(t, 239.81246208824675, result.Value, 1e-9)
	assert.Equal(t, 16.6, result.Details.LifeExpectancy)
	assert.Equal(t, 16.6, result.Details.RetirementPeriodYears)

	female := calc.SolveRetirementIncome(person(30, 65, 10_000, domain.Female), 5000)
	require.True(t, female.Success, female.Reason)
	assert.InDelta(t, 595734.9789124144, female.Details.RetirementBalance, 1e-6)
	assert.InDelta(t, 188.67988348516093, female.Value, 1e-9)
}

func TestSolverFailures(t *testing.T) {
	calc := NewDefaultCalculator()

	tests := []struct {
		name   string
		in     domain.PersonInputs
		goal   domain.Goal
		kind   domain.FailureKind
		reason string
	}{
		{"current age too low", person(17, 65, 0, domain.Male), domain.TargetFinalAmount(1e6), domain.FailureInvalidInput, "current age must be between 18 and 100"},
		{"current age too high", person(101, 65, 0, domain.Male), domain.TargetFinalAmount(1e6), domain.FailureInvalidInput, "current age must be between 18 and 100"},
		{"retirement age too low", person(30, 49, 0, domain.Male), domain.TargetFinalAmount(1e6), domain.FailureInvalidInput, "retirement age must be between 50 and 100"},
		{"retirement before current", person(65, 64, 0, domain.Male), domain.TargetFinalAmount(1e6), domain.FailureInvalidInput, "retirement age must exceed current age"},
		{"retirement equals current", person(65, 65, 0, domain.Male), domain.MonthlyContribution(100), domain.FailureInvalidInput, "retirement age must exceed current age"},
		{"negative initial", person(30, 65, -1, domain.Male), domain.TargetFinalAmount(1e6), domain.FailureInvalidInput, "initial investment cannot be negative"},
		{"missing sex for income", person(30, 65, 0, domain.SexUnspecified), domain.DesiredMonthlyIncome(5000), domain.FailureMissingCategory, "sex is required to estimate life expectancy"},
		{"unknown sex", person(30, 65, 0, domain.Sex("x")), domain.TargetFinalAmount(1e6), domain.FailureMissingCategory, `sex must be male or female: got "x"`},
		{"zero target", person(30, 65, 0, domain.Male), domain.TargetFinalAmount(0), domain.FailureInvalidInput, "desired final amount must be positive"},
		{"target below initial", person(30, 65, 5000, domain.Male), domain.TargetFinalAmount(1000), domain.FailureInfeasible, "desired final amount must be greater than initial investment"},
		{"target reached by growth", person(30, 60, 100_000, domain.Male), domain.TargetFinalAmount(150_000), domain.FailureInfeasible, "target amount is too low for the given initial investment and time period"},
		{"negative contribution", person(30, 65, 0, domain.Male), domain.MonthlyContribution(-1), domain.FailureInvalidInput, "monthly contribution cannot be negative"},
		{"zero income", person(30, 65, 0, domain.Male), domain.DesiredMonthlyIncome(0), domain.FailureInvalidInput, "desired monthly income must be positive"},
		{"income already funded", person(30, 65, 5_000_000, domain.Male), domain.DesiredMonthlyIncome(1000), domain.FailureInfeasible, "initial investment is sufficient for the desired retirement income"},
		{"non-finite goal", person(30, 65, 0, domain.Male), domain.TargetFinalAmount(math.Inf(1)), domain.FailureInvalidInput, "desired final amount must be a finite number"},
		{"unknown scenario", person(30, 65, 0, domain.Male), domain.Goal{Scenario: "lottery", Amount: 1}, domain.FailureInvalidInput, `unknown scenario "lottery"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Solve(tt.in, tt.goal)
			assert.False(t, result.Success)
			assert.Equal(t, tt.kind, result.Kind)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Nil(t, result.Details)
		})
	}
}

func TestSolveFailureConvertsToError(t *testing.T) {
	result := NewDefaultCalculator().SolveRetirementIncome(person(30, 65, 0, domain.SexUnspecified), 5000)
	err := result.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingCategory))

	ok := NewDefaultCalculator().SolveMonthlyContribution(person(30, 65, 0, domain.Male), 100)
	assert.NoError(t, ok.Err())
}

func TestSolveNonFiniteResultBecomesInternalFailure(t *testing.T) {
	// Zero months per year makes the monthly rate NaN.
	calc := &Calculator{table: mortality.Default(), Logger: NopLogger{}}
	logger := &recordingLogger{}
	calc.SetLogger(logger)

	result := calc.SolveTargetAmount(person(30, 65, 0, domain.SexUnspecified), 1_000_000)
	assert.False(t, result.Success)
	assert.Equal(t, domain.FailureInternal, result.Kind)
	assert.Equal(t, "calculation error occurred", result.Reason)
	assert.NotEmpty(t, logger.errors)
}

func TestSolveRecoversFromPanic(t *testing.T) {
	calc := &Calculator{assumptions: domain.DefaultAssumptions(), Logger: NopLogger{}}
	logger := &recordingLogger{}
	calc.SetLogger(logger)

	result := calc.SolveRetirementIncome(person(30, 65, 0, domain.Male), 5000)
	assert.False(t, result.Success)
	assert.Equal(t, domain.FailureInternal, result.Kind)
	assert.Equal(t, "calculation error occurred", result.Reason)
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "recovered from panic")
}

func TestSolveWithZeroReturnRate(t *testing.T) {
	assumptions := domain.DefaultAssumptions()
	assumptions.AnnualReturnRate = 0
	calc, err := NewCalculator(assumptions, nil)
	require.NoError(t, err)

	result := calc.SolveTargetAmount(person(40, 50, 20_000, domain.SexUnspecified), 140_000)
	require.True(t, result.Success, result.Reason)
	assert.InDelta(t, 1000.0, result.Value, 1e-9)

	fv := calc.SolveMonthlyContribution(person(40, 50, 20_000, domain.SexUnspecified), 1000)
	assert.InDelta(t, 140_000.0, fv.Value, 1e-9)
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	calc := NewDefaultCalculator()
	calc.SetLogger(nil)
	assert.Equal(t, NopLogger{}, calc.Logger)
}

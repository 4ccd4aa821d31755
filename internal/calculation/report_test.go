package calculation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func TestRunPlanExample(t *testing.T) {
	calc := NewDefaultCalculator()
	report, err := calc.RunPlan(domain.ExamplePlan(), reportNow)
	require.NoError(t, err)

	assert.Equal(t, "Example retirement plan", report.Name)
	assert.Equal(t, domain.ScenarioRetirementIncome, report.Scenario())
	assert.Equal(t, "br-2022", report.MortalityTable)
	require.True(t, report.Result.Success, report.Result.Reason)
	assert.InDelta(t, 188.67988348516093, report.Result.Value, 1e-9)

	assert.Equal(t, 420+238+1, report.TrajectoryLength)
	require.NotNil(t, report.Summary)
	assert.Equal(t, report.TrajectoryLength, report.Summary.Points)
	assert.LessOrEqual(t, len(report.Trajectory), report.TrajectoryLength)
	assert.Equal(t, 30.0, report.Trajectory[0].Age)
	assert.Equal(t, domain.PhaseRetirement, report.Trajectory[len(report.Trajectory)-1].Phase)
	assert.Nil(t, report.StartDate)
	assert.Equal(t, 150, report.Chart.MaxPoints)
}

func TestRunPlanFailureCarriesResult(t *testing.T) {
	plan := domain.ExamplePlan()
	plan.Person.Sex = domain.SexUnspecified

	report, err := NewDefaultCalculator().RunPlan(plan, reportNow)
	require.NoError(t, err)
	assert.False(t, report.Result.Success)
	assert.Equal(t, domain.FailureMissingCategory, report.Result.Kind)
	assert.Empty(t, report.Trajectory)
	assert.Nil(t, report.Summary)
}

func TestRunPlanWithBirthDateAndOverrides(t *testing.T) {
	birth := time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC)
	rate := 0.06
	plan := &domain.Plan{
		Name: "birth date plan",
		Person: domain.PlanPerson{
			BirthDate:         &birth,
			RetirementAge:     60,
			InitialInvestment: decimal.NewFromInt(50_000),
		},
		Scenario:    domain.ScenarioMonthlyContribution,
		Goal:        decimal.NewFromInt(1_000),
		Assumptions: &domain.AssumptionOverrides{AnnualReturnRate: &rate},
		Chart:       domain.ChartOptions{MaxPoints: 50, IncludeRetirement: true},
	}

	report, err := NewDefaultCalculator().RunPlan(plan, reportNow)
	require.NoError(t, err)
	assert.Equal(t, 39, report.Inputs.CurrentAge)
	assert.Equal(t, 0.06, report.Assumptions.AnnualReturnRate)
	require.True(t, report.Result.Success)
	assert.InDelta(t, FutureValue(50_000, 1_000, 0.005, 21*12), report.Result.Value, 1e-6)

	require.NotNil(t, report.StartDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *report.StartDate)
	// Without a sex the 15 year fallback sets the horizon.
	assert.Equal(t, 21*12+180+1, report.TrajectoryLength)
	last := report.Trajectory[len(report.Trajectory)-1]
	assert.InDelta(t, 75.0, last.Age, 1e-9)
}

func TestRunPlanCustomTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.yaml")
	table := "name: flat\nmin_age: 50\nmax_age: 100\nbeyond_max_years: 0.1\nremaining_years:\n  male: {50: 10, 100: 10}\n  female: {50: 10, 100: 10}\n"
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))

	plan := domain.ExamplePlan()
	plan.MortalityTable = path
	report, err := NewDefaultCalculator().RunPlan(plan, reportNow)
	require.NoError(t, err)
	assert.Equal(t, "flat", report.MortalityTable)
	assert.Equal(t, 10.0, report.Result.Details.LifeExpectancy)
	assert.Equal(t, 420+120+1, report.TrajectoryLength)
}

func TestRunPlanErrors(t *testing.T) {
	calc := NewDefaultCalculator()

	_, err := calc.RunPlan(nil, reportNow)
	assert.Error(t, err)

	plan := domain.ExamplePlan()
	plan.Scenario = "guess"
	_, err = calc.RunPlan(plan, reportNow)
	assert.Error(t, err)

	plan = domain.ExamplePlan()
	future := reportNow.AddDate(1, 0, 0)
	plan.Person.BirthDate = &future
	_, err = calc.RunPlan(plan, reportNow)
	assert.Error(t, err)

	plan = domain.ExamplePlan()
	months := 0
	plan.Assumptions = &domain.AssumptionOverrides{MonthsPerYear: &months}
	_, err = calc.RunPlan(plan, reportNow)
	assert.Error(t, err)

	plan = domain.ExamplePlan()
	plan.MortalityTable = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = calc.RunPlan(plan, reportNow)
	assert.Error(t, err)
}

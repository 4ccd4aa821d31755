package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/mortality"
)

// RunPlan solves a plan and, on success, attaches the sampled trajectory and
// its summary. A solver failure is carried in the report; the error return is
// reserved for plans that cannot be evaluated at all.
func (c *Calculator) RunPlan(plan *domain.Plan, now time.Time) (*domain.Report, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is nil")
	}
	if !plan.Scenario.Valid() {
		return nil, fmt.Errorf("unknown scenario %q", plan.Scenario)
	}

	inputs, err := plan.ResolveInputs(now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve person: %w", err)
	}

	var table *mortality.Table
	if plan.MortalityTable != "" {
		table, err = mortality.Load(plan.MortalityTable)
		if err != nil {
			return nil, err
		}
	}
	calc, err := c.With(plan.ApplyAssumptions(c.assumptions), table)
	if err != nil {
		return nil, err
	}

	goal := plan.GoalValue()
	c.Logger.Infof("running plan %q: %s with goal %.2f", plan.Name, goal.Scenario, goal.Amount)

	report := &domain.Report{
		Name:           plan.Name,
		GeneratedAt:    now,
		Goal:           goal,
		Inputs:         inputs,
		Assumptions:    calc.assumptions,
		MortalityTable: calc.table.Name(),
		Result:         calc.Solve(inputs, goal),
		StartDate:      plan.StartDate(now),
		Chart:          plan.Chart,
	}
	if report.Chart.MaxPoints <= 0 {
		report.Chart.MaxPoints = DefaultChartPoints
	}
	if !report.Result.Success {
		c.Logger.Warnf("plan %q failed: %s", plan.Name, report.Result.Reason)
		return report, nil
	}

	full := calc.ProjectWealth(inputs, goal)
	summary := SummarizeTrajectory(full)
	report.Summary = &summary
	report.TrajectoryLength = len(full)
	report.Trajectory = SampleForChart(full, report.Chart.MaxPoints, SampleOptions{
		IncludeRetirement: report.Chart.IncludeRetirement,
	})
	return report, nil
}

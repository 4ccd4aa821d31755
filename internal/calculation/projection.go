package calculation

import (
	"fmt"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// cashFlowPlan is everything the projector needs, derived from raw inputs.
type cashFlowPlan struct {
	contribution       float64
	withdrawal         float64
	retirementStart    float64
	accumulationMonths int
	retirementMonths   int
}

// ProjectWealth simulates the balance month by month from the current age
// until the end of the retirement horizon. The contribution and withdrawal
// are derived from the inputs on every call; no solver output is reused.
//
// The retirement phase starts from the goal balance (target, future value or
// required balance), not from the last accumulated point. The simulation adds
// each contribution at the start of the month while the solvers use the
// end-of-month closed form, so the last accumulated point is FutureValueDue
// and sits a factor of (1 + r) on the contributions above the goal.
//
// Invalid inputs yield an empty slice and a logged warning.
func (c *Calculator) ProjectWealth(in domain.PersonInputs, goal domain.Goal) (points []domain.WealthDataPoint) {
	defer func() {
		if rec := recover(); rec != nil {
			c.Logger.Errorf("wealth projection for %s failed: %v", goal.Scenario, rec)
			points = []domain.WealthDataPoint{}
		}
	}()

	plan, err := c.planCashFlows(in, goal)
	if err != nil {
		c.Logger.Warnf("wealth projection for %s skipped: %v", goal.Scenario, err)
		return []domain.WealthDataPoint{}
	}

	r := c.assumptions.MonthlyRate()
	perYear := float64(c.assumptions.MonthsPerYear)
	points = make([]domain.WealthDataPoint, 0, plan.accumulationMonths+plan.retirementMonths+1)

	wealth := in.InitialInvestment
	points = append(points, domain.WealthDataPoint{
		Age:         float64(in.CurrentAge),
		Wealth:      wealth,
		Phase:       domain.PhaseAccumulation,
		MonthlyFlow: plan.contribution,
	})
	for month := 1; month <= plan.accumulationMonths; month++ {
		wealth += plan.contribution
		wealth *= 1 + r
		points = append(points, domain.WealthDataPoint{
			Age:         float64(in.CurrentAge) + float64(month)/perYear,
			Wealth:      wealth,
			Phase:       domain.PhaseAccumulation,
			MonthlyFlow: plan.contribution,
		})
	}

	wealth = plan.retirementStart
	for month := 1; month <= plan.retirementMonths; month++ {
		wealth *= 1 + r
		wealth -= plan.withdrawal
		if wealth < 0 {
			wealth = 0
		}
		points = append(points, domain.WealthDataPoint{
			Age:         float64(in.RetirementAge) + float64(month)/perYear,
			Wealth:      wealth,
			Phase:       domain.PhaseRetirement,
			MonthlyFlow: -plan.withdrawal,
		})
	}

	c.Logger.Debugf("projected %d points for %s (%d accumulation, %d retirement months)",
		len(points), goal.Scenario, plan.accumulationMonths, plan.retirementMonths)
	return points
}

// ProjectWealthForScenario is ProjectWealth with the goal given as a
// scenario and its amount.
func (c *Calculator) ProjectWealthForScenario(in domain.PersonInputs, scenario domain.Scenario, value float64) []domain.WealthDataPoint {
	return c.ProjectWealth(in, domain.Goal{Scenario: scenario, Amount: value})
}

func (c *Calculator) planCashFlows(in domain.PersonInputs, goal domain.Goal) (cashFlowPlan, error) {
	if err := c.validate(in, goal); err != nil {
		return cashFlowPlan{}, err
	}
	_, period, err := c.horizon(in, goal.Scenario.NeedsLifeExpectancy())
	if err != nil {
		return cashFlowPlan{}, err
	}

	r := c.assumptions.MonthlyRate()
	plan := cashFlowPlan{
		accumulationMonths: c.accumulationMonths(in),
		retirementMonths:   c.retirementMonths(period),
	}

	switch goal.Scenario {
	case domain.ScenarioTargetAmount:
		plan.contribution = RequiredPayment(goal.Amount, in.InitialInvestment, r, plan.accumulationMonths)
		plan.retirementStart = goal.Amount
		plan.withdrawal = LevelWithdrawal(goal.Amount, r, plan.retirementMonths)
	case domain.ScenarioMonthlyContribution:
		plan.contribution = goal.Amount
		plan.retirementStart = FutureValue(in.InitialInvestment, goal.Amount, r, plan.accumulationMonths)
		plan.withdrawal = LevelWithdrawal(plan.retirementStart, r, plan.retirementMonths)
	case domain.ScenarioRetirementIncome:
		plan.retirementStart = AnnuityPresentValue(goal.Amount, r, plan.retirementMonths)
		plan.contribution = RequiredPayment(plan.retirementStart, in.InitialInvestment, r, plan.accumulationMonths)
		plan.withdrawal = goal.Amount
	}

	if plan.contribution < 0 {
		return cashFlowPlan{}, infeasible(fmt.Sprintf("required contribution %.2f is negative", plan.contribution))
	}
	if !finite(plan.contribution) || !finite(plan.withdrawal) || !finite(plan.retirementStart) {
		return cashFlowPlan{}, fmt.Errorf("non-finite cash flows for %s", goal.Scenario)
	}
	return plan, nil
}

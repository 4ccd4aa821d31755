package main

import (
	"fmt"
	"os"
	"time"

	calc "github.com/rpgo/annuity-planner/internal/calculation"
	"github.com/rpgo/annuity-planner/internal/config"
	"github.com/rpgo/annuity-planner/internal/domain"
)

// Prints the months around the retirement boundary of a plan, where the
// accumulated balance hands over to the goal balance.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_plan <plan-file> [months]")
		return
	}
	plan, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Println("load error:", err)
		os.Exit(1)
	}
	window := 3
	if len(os.Args) > 2 {
		fmt.Sscanf(os.Args[2], "%d", &window)
	}

	c := calc.NewDefaultCalculator()
	inputs, err := plan.ResolveInputs(time.Now())
	if err != nil {
		fmt.Println("resolve error:", err)
		os.Exit(1)
	}
	goal := plan.GoalValue()
	result := c.Solve(inputs, goal)
	fmt.Println("result:", result)
	if !result.Success {
		return
	}

	points := c.ProjectWealth(inputs, goal)
	boundary := 0
	for i, p := range points {
		if p.Phase == domain.PhaseRetirement {
			boundary = i
			break
		}
	}
	for i := boundary - window; i < boundary+window; i++ {
		if i < 0 || i >= len(points) {
			continue
		}
		p := points[i]
		fmt.Printf("%4d age=%.4f phase=%-12s wealth=%.6f flow=%.2f\n", i, p.Age, p.Phase, p.Wealth, p.MonthlyFlow)
	}
	if boundary > 0 {
		r := c.Assumptions().MonthlyRate()
		accumulated := points[boundary-1]
		due := calc.FutureValueDue(inputs.InitialInvestment, accumulated.MonthlyFlow, r, boundary-1)
		fmt.Printf("accumulated balance: %.6f (start-of-month closed form %.6f)\n", accumulated.Wealth, due)
		goalBalance := (points[boundary].Wealth - points[boundary].MonthlyFlow) / (1 + r)
		fmt.Printf("goal balance:        %.6f\n", goalBalance)
		fmt.Printf("boundary gap:        %.6f\n", accumulated.Wealth-goalBalance)
	}
}

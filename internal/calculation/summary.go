package calculation

import (
	"github.com/rpgo/annuity-planner/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// SummarizeTrajectory condenses a full (unsampled) projection. Withdrawals
// are the scheduled amounts, including months after the balance hit zero.
func SummarizeTrajectory(points []domain.WealthDataPoint) domain.TrajectorySummary {
	var s domain.TrajectorySummary
	if len(points) == 0 {
		return s
	}

	wealth := make([]float64, len(points))
	var contributions, withdrawals []float64
	for i, p := range points {
		wealth[i] = p.Wealth
		switch p.Phase {
		case domain.PhaseAccumulation:
			if i > 0 {
				contributions = append(contributions, p.MonthlyFlow)
				s.AccumulationMonths++
			}
			s.WealthAtRetirement = p.Wealth
		case domain.PhaseRetirement:
			withdrawals = append(withdrawals, -p.MonthlyFlow)
			s.RetirementMonths++
			if p.Wealth == 0 && s.DepletionAge == nil {
				age := p.Age
				s.DepletionAge = &age
			}
		}
	}

	peak := floats.MaxIdx(wealth)
	final := points[len(points)-1]

	s.Points = len(points)
	s.PeakWealth = wealth[peak]
	s.PeakAge = points[peak].Age
	s.FinalWealth = final.Wealth
	s.FinalAge = final.Age
	s.TotalContributed = floats.Sum(contributions)
	s.TotalWithdrawn = floats.Sum(withdrawals)
	return s
}

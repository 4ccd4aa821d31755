package domain

import "time"

// Report bundles everything produced for one plan: the solved result, the
// display trajectory and its summary.
type Report struct {
	Name             string             `json:"name,omitempty"`
	GeneratedAt      time.Time          `json:"generated_at"`
	Goal             Goal               `json:"goal"`
	Inputs           PersonInputs       `json:"inputs"`
	Assumptions      Assumptions        `json:"assumptions"`
	MortalityTable   string             `json:"mortality_table"`
	Result           CalculationResult  `json:"result"`
	Trajectory       []WealthDataPoint  `json:"trajectory,omitempty"` // sampled for display
	TrajectoryLength int                `json:"trajectory_length"`    // points before sampling
	Summary          *TrajectorySummary `json:"summary,omitempty"`
	StartDate        *time.Time         `json:"start_date,omitempty"`
	Chart            ChartOptions       `json:"chart"`
}

// Scenario is the scenario the report was built for.
func (r *Report) Scenario() Scenario {
	return r.Goal.Scenario
}

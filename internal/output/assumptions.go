package output

import (
	"fmt"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// ReportAssumptions lists the modelling assumptions rendered in detailed outputs.
func ReportAssumptions(r *domain.Report) []string {
	lines := r.Assumptions.Describe()
	if r.Result.Details != nil && r.Result.Details.LifeExpectancy > 0 {
		lines = append(lines, fmt.Sprintf("Retirement horizon from mortality table %s: %.1f years at age %d (%s)",
			r.MortalityTable, r.Result.Details.LifeExpectancy, r.Inputs.RetirementAge, r.Inputs.Sex))
	} else {
		lines = append(lines, fmt.Sprintf("Retirement horizon: %.1f year default (no sex given for a mortality estimate)",
			r.Assumptions.RetirementPeriodYears))
	}
	lines = append(lines, "Contributions are simulated at the start of each month but solved at the end of each month; "+
		"the chart's accumulated balance therefore exceeds the goal by one month of interest on the contributions, and retirement starts from the goal balance")
	return lines
}

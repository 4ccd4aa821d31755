package domain

import "fmt"

// Assumptions are the financial constants shared by every calculation. A
// value is built once at startup and passed explicitly to the calculator.
type Assumptions struct {
	AnnualReturnRate      float64 `yaml:"annual_return_rate" json:"annual_return_rate"`
	MonthsPerYear         int     `yaml:"months_per_year" json:"months_per_year"`
	RetirementPeriodYears float64 `yaml:"retirement_period_years" json:"retirement_period_years"` // used only without a life expectancy
}

// DefaultAssumptions returns an 8% nominal return, monthly compounding and a
// 15 year fallback retirement period.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		AnnualReturnRate:      0.08,
		MonthsPerYear:         12,
		RetirementPeriodYears: 15,
	}
}

// MonthlyRate is the nominal annual rate divided evenly across the months.
func (a Assumptions) MonthlyRate() float64 {
	return a.AnnualReturnRate / float64(a.MonthsPerYear)
}

// Validate rejects constants that would break the closed-form math.
func (a Assumptions) Validate() error {
	if a.MonthsPerYear <= 0 {
		return fmt.Errorf("months per year must be positive, got %d", a.MonthsPerYear)
	}
	if a.AnnualReturnRate <= -1 || a.AnnualReturnRate > 1 {
		return fmt.Errorf("annual return rate must be greater than -100%% and at most 100%%, got %.4f", a.AnnualReturnRate)
	}
	if a.RetirementPeriodYears <= 0 {
		return fmt.Errorf("retirement period years must be positive, got %.2f", a.RetirementPeriodYears)
	}
	return nil
}

// Describe lists the assumptions for report footers.
func (a Assumptions) Describe() []string {
	return []string{
		fmt.Sprintf("Nominal annual return: %.2f%% (fixed for the whole horizon)", a.AnnualReturnRate*100),
		fmt.Sprintf("Compounding periods per year: %d", a.MonthsPerYear),
		fmt.Sprintf("Retirement period when life expectancy is unavailable: %.1f years", a.RetirementPeriodYears),
		"No taxes, inflation adjustment or return variability are modelled",
	}
}

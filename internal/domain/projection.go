package domain

// Phase marks which side of the retirement date a data point belongs to.
type Phase string

const (
	PhaseAccumulation Phase = "accumulation"
	PhaseRetirement   Phase = "retirement"
)

// WealthDataPoint is the balance at a given (fractional) age.
type WealthDataPoint struct {
	Age         float64 `json:"age"`
	Wealth      float64 `json:"wealth"`
	Phase       Phase   `json:"phase"`
	MonthlyFlow float64 `json:"monthly_flow"` // positive for contributions, negative for withdrawals
}

// TrajectorySummary condenses a full month-by-month projection
type TrajectorySummary struct {
	Points             int      `json:"points"`
	AccumulationMonths int      `json:"accumulation_months"`
	RetirementMonths   int      `json:"retirement_months"`
	PeakWealth         float64  `json:"peak_wealth"`
	PeakAge            float64  `json:"peak_age"`
	WealthAtRetirement float64  `json:"wealth_at_retirement"`
	FinalWealth        float64  `json:"final_wealth"`
	FinalAge           float64  `json:"final_age"`
	DepletionAge       *float64 `json:"depletion_age,omitempty"` // first retirement month at zero
	TotalContributed   float64  `json:"total_contributed"`
	TotalWithdrawn     float64  `json:"total_withdrawn"`
}

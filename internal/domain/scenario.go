package domain

import (
	"fmt"
	"strings"
)

// Scenario identifies which quantity a request solves for.
type Scenario string

const (
	// ScenarioTargetAmount solves the monthly contribution needed to reach a target balance.
	ScenarioTargetAmount Scenario = "target-amount"
	// ScenarioMonthlyContribution solves the balance reached with a fixed contribution.
	ScenarioMonthlyContribution Scenario = "monthly-contribution"
	// ScenarioRetirementIncome solves the contribution that funds a desired monthly income.
	ScenarioRetirementIncome Scenario = "retirement-income"
)

// ScenarioOption describes a scenario for help text and API discovery.
type ScenarioOption struct {
	ID          Scenario `json:"id"`
	Title       string   `json:"title"`
	Question    string   `json:"question"`
	Description string   `json:"description"`
	GoalLabel   string   `json:"goal_label"`
}

var scenarioOptions = []ScenarioOption{
	{
		ID:          ScenarioTargetAmount,
		Title:       "Balance at retirement",
		Question:    "How much do I want to have saved when I retire?",
		Description: "Monthly contribution required to reach a target balance at retirement",
		GoalLabel:   "desired final amount",
	},
	{
		ID:          ScenarioMonthlyContribution,
		Title:       "Monthly contribution",
		Question:    "How much do I plan to contribute each month?",
		Description: "Balance accumulated at retirement with a fixed monthly contribution",
		GoalLabel:   "monthly contribution",
	},
	{
		ID:          ScenarioRetirementIncome,
		Title:       "Retirement income",
		Question:    "How much do I want to receive each month after retiring?",
		Description: "Monthly contribution required to fund a desired income until life expectancy",
		GoalLabel:   "desired monthly income",
	},
}

// Scenarios returns the supported scenarios in display order.
func Scenarios() []ScenarioOption {
	out := make([]ScenarioOption, len(scenarioOptions))
	copy(out, scenarioOptions)
	return out
}

// Valid reports whether s is a known scenario.
func (s Scenario) Valid() bool {
	for _, opt := range scenarioOptions {
		if opt.ID == s {
			return true
		}
	}
	return false
}

// Option returns the catalogue entry for s.
func (s Scenario) Option() (ScenarioOption, bool) {
	for _, opt := range scenarioOptions {
		if opt.ID == s {
			return opt, true
		}
	}
	return ScenarioOption{}, false
}

// ParseScenario normalises user input such as "Target_Amount" into a Scenario.
func ParseScenario(value string) (Scenario, error) {
	s := Scenario(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-"))
	if !s.Valid() {
		return "", fmt.Errorf("unknown scenario %q", value)
	}
	return s, nil
}

// Goal is the single known quantity that accompanies PersonInputs. The
// scenario tag decides how Amount is interpreted.
type Goal struct {
	Scenario Scenario `yaml:"scenario" json:"scenario"`
	Amount   float64  `yaml:"amount" json:"amount"`
}

// TargetFinalAmount builds a goal for the target-amount scenario.
func TargetFinalAmount(amount float64) Goal {
	return Goal{Scenario: ScenarioTargetAmount, Amount: amount}
}

// MonthlyContribution builds a goal for the monthly-contribution scenario.
func MonthlyContribution(amount float64) Goal {
	return Goal{Scenario: ScenarioMonthlyContribution, Amount: amount}
}

// DesiredMonthlyIncome builds a goal for the retirement-income scenario.
func DesiredMonthlyIncome(amount float64) Goal {
	return Goal{Scenario: ScenarioRetirementIncome, Amount: amount}
}

// NeedsLifeExpectancy reports whether solving the scenario requires a
// mortality-derived horizon.
func (s Scenario) NeedsLifeExpectancy() bool {
	return s == ScenarioRetirementIncome
}

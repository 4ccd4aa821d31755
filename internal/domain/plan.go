package domain

import (
	"fmt"
	"time"

	"github.com/rpgo/annuity-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PlanPerson is the person section of a plan file. Either CurrentAge or
// BirthDate must be provided; BirthDate wins when both are set.
type PlanPerson struct {
	CurrentAge        int             `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	BirthDate         *time.Time      `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	RetirementAge     int             `yaml:"retirement_age" json:"retirement_age"`
	InitialInvestment decimal.Decimal `yaml:"initial_investment" json:"initial_investment"`
	Sex               Sex             `yaml:"sex,omitempty" json:"sex,omitempty"`
}

// AssumptionOverrides replaces individual financial constants for one plan.
type AssumptionOverrides struct {
	AnnualReturnRate      *float64 `yaml:"annual_return_rate,omitempty" json:"annual_return_rate,omitempty"`
	MonthsPerYear         *int     `yaml:"months_per_year,omitempty" json:"months_per_year,omitempty"`
	RetirementPeriodYears *float64 `yaml:"retirement_period_years,omitempty" json:"retirement_period_years,omitempty"`
}

// ChartOptions controls trajectory downsampling for display.
type ChartOptions struct {
	MaxPoints         int  `yaml:"max_points,omitempty" json:"max_points,omitempty"`
	IncludeRetirement bool `yaml:"include_retirement,omitempty" json:"include_retirement,omitempty"`
}

// Plan is a complete request as stored in a YAML plan file.
type Plan struct {
	Name           string               `yaml:"name,omitempty" json:"name,omitempty"`
	Person         PlanPerson           `yaml:"person" json:"person"`
	Scenario       Scenario             `yaml:"scenario" json:"scenario"`
	Goal           decimal.Decimal      `yaml:"goal" json:"goal"`
	AsOf           *time.Time           `yaml:"as_of,omitempty" json:"as_of,omitempty"`
	Assumptions    *AssumptionOverrides `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
	Chart          ChartOptions         `yaml:"chart,omitempty" json:"chart,omitempty"`
	MortalityTable string               `yaml:"mortality_table,omitempty" json:"mortality_table,omitempty"`
}

// ReferenceDate is the date ages are measured at: AsOf when set, otherwise now.
func (p *Plan) ReferenceDate(now time.Time) time.Time {
	if p.AsOf != nil {
		return *p.AsOf
	}
	return now
}

// ResolveInputs converts the plan person into solver inputs.
func (p *Plan) ResolveInputs(now time.Time) (PersonInputs, error) {
	age := p.Person.CurrentAge
	if p.Person.BirthDate != nil {
		ref := p.ReferenceDate(now)
		if p.Person.BirthDate.After(ref) {
			return PersonInputs{}, fmt.Errorf("birth date %s is after reference date %s",
				p.Person.BirthDate.Format("2006-01-02"), ref.Format("2006-01-02"))
		}
		age = dateutil.Age(*p.Person.BirthDate, ref)
	}
	return PersonInputs{
		CurrentAge:        age,
		RetirementAge:     p.Person.RetirementAge,
		InitialInvestment: p.Person.InitialInvestment.InexactFloat64(),
		Sex:               p.Person.Sex,
	}, nil
}

// GoalValue returns the tagged goal described by the plan.
func (p *Plan) GoalValue() Goal {
	return Goal{Scenario: p.Scenario, Amount: p.Goal.InexactFloat64()}
}

// ApplyAssumptions layers the plan overrides on top of base.
func (p *Plan) ApplyAssumptions(base Assumptions) Assumptions {
	if p.Assumptions == nil {
		return base
	}
	out := base
	if p.Assumptions.AnnualReturnRate != nil {
		out.AnnualReturnRate = *p.Assumptions.AnnualReturnRate
	}
	if p.Assumptions.MonthsPerYear != nil {
		out.MonthsPerYear = *p.Assumptions.MonthsPerYear
	}
	if p.Assumptions.RetirementPeriodYears != nil {
		out.RetirementPeriodYears = *p.Assumptions.RetirementPeriodYears
	}
	return out
}

// StartDate is the calendar month of the first projected point, available
// only when the plan pins ages to a birth date.
func (p *Plan) StartDate(now time.Time) *time.Time {
	if p.Person.BirthDate == nil {
		return nil
	}
	ref := p.ReferenceDate(now)
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &start
}

// ExamplePlan is written by `annuity init`.
func ExamplePlan() *Plan {
	return &Plan{
		Name: "Example retirement plan",
		Person: PlanPerson{
			CurrentAge:        30,
			RetirementAge:     65,
			InitialInvestment: decimal.NewFromInt(10000),
			Sex:               Female,
		},
		Scenario: ScenarioRetirementIncome,
		Goal:     decimal.NewFromInt(5000),
		Chart:    ChartOptions{MaxPoints: 150},
	}
}

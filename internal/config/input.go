package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/pkg/decimal"
	"gopkg.in/yaml.v3"
)

// maxChartPoints keeps chart sampling budgets sane.
const maxChartPoints = 5000

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML or JSON file. A relative
// mortality_table path is resolved against the plan's directory.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if plan.MortalityTable != "" && !filepath.IsAbs(plan.MortalityTable) {
		plan.MortalityTable = filepath.Join(filepath.Dir(filename), plan.MortalityTable)
	}
	return plan, nil
}

// Parse decodes and validates a plan.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan checks a plan and normalises its scenario and sex spellings.
// Range rules that depend on the scenario (age bounds, goal feasibility)
// are left to the calculator, which reports them as results.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	scenario, err := domain.ParseScenario(string(plan.Scenario))
	if err != nil {
		return err
	}
	plan.Scenario = scenario

	if err := ip.validatePerson(&plan.Person); err != nil {
		return fmt.Errorf("person validation failed: %w", err)
	}

	if err := validateAmount("goal", decimal.NewMoneyFromDecimal(plan.Goal)); err != nil {
		return err
	}

	if plan.Assumptions != nil {
		if err := plan.ApplyAssumptions(domain.DefaultAssumptions()).Validate(); err != nil {
			return fmt.Errorf("assumptions validation failed: %w", err)
		}
	}

	if plan.Chart.MaxPoints < 0 || plan.Chart.MaxPoints > maxChartPoints {
		return fmt.Errorf("chart max_points must be between 0 and %d", maxChartPoints)
	}

	return nil
}

func (ip *InputParser) validatePerson(person *domain.PlanPerson) error {
	if person.BirthDate == nil && person.CurrentAge == 0 {
		return fmt.Errorf("either current_age or birth_date is required")
	}
	if person.BirthDate != nil && person.BirthDate.IsZero() {
		return fmt.Errorf("birth date cannot be empty")
	}
	if person.RetirementAge == 0 {
		return fmt.Errorf("retirement_age is required")
	}

	sex, err := domain.ParseSex(string(person.Sex))
	if err != nil {
		return err
	}
	person.Sex = sex

	return validateAmount("initial investment", decimal.NewMoneyFromDecimal(person.InitialInvestment))
}

func validateAmount(name string, amount decimal.Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("%s cannot be negative", name)
	}
	if amount.GreaterThan(decimal.NewMoney(domain.MaxAmount)) {
		return fmt.Errorf("%s cannot exceed %s", name, decimal.NewMoney(domain.MaxAmount).Format())
	}
	return nil
}

// SavePlan writes a plan as YAML.
func (ip *InputParser) SavePlan(plan *domain.Plan, filename string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExamplePlan returns the plan written by `annuity init`.
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	return domain.ExamplePlan()
}

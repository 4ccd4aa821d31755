package domain

import (
	"fmt"
	"strings"
)

// Sex selects the mortality curve used for the retirement horizon.
type Sex string

const (
	SexUnspecified Sex = ""
	Male           Sex = "male"
	Female         Sex = "female"
)

// Valid reports whether s is one of the two supported values.
func (s Sex) Valid() bool {
	return s == Male || s == Female
}

// ParseSex accepts the canonical names plus single-letter and Portuguese
// spellings. Empty input yields SexUnspecified.
func ParseSex(value string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return SexUnspecified, nil
	case "male", "m", "masculino":
		return Male, nil
	case "female", "f", "feminino":
		return Female, nil
	default:
		return SexUnspecified, fmt.Errorf("unsupported sex %q: must be male or female", value)
	}
}

// Input bounds enforced by the solvers.
const (
	MinCurrentAge    = 18
	MaxCurrentAge    = 100
	MinRetirementAge = 50
	MaxRetirementAge = 100

	// MaxAmount caps monetary inputs accepted from plan files and the HTTP API.
	MaxAmount = 10_000_000
)

// PersonInputs holds the personal data shared by every scenario.
type PersonInputs struct {
	CurrentAge        int     `yaml:"current_age" json:"current_age"`
	RetirementAge     int     `yaml:"retirement_age" json:"retirement_age"`
	InitialInvestment float64 `yaml:"initial_investment" json:"initial_investment"`
	Sex               Sex     `yaml:"sex,omitempty" json:"sex,omitempty"`
}

// AccumulationYears is the whole number of years until retirement.
func (p PersonInputs) AccumulationYears() int {
	return p.RetirementAge - p.CurrentAge
}

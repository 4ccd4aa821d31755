// Package mortality converts an age and sex into expected remaining years of
// life using an immutable period life table.
package mortality

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/rpgo/annuity-planner/internal/domain"
	"gonum.org/v1/gonum/interp"
	"gopkg.in/yaml.v3"
)

//go:embed data/br_2022.yaml
var defaultTableSource []byte

// MaxSupportedRetirementAge bounds ages accepted for life expectancy estimates.
const MaxSupportedRetirementAge = 120

var (
	ErrMissingSex   = errors.New("sex is required to estimate life expectancy")
	ErrInvalidSex   = errors.New("sex must be male or female")
	ErrInvalidAge   = errors.New("invalid age")
	ErrInvalidTable = errors.New("invalid mortality table")
)

// tableFile is the on-disk YAML layout.
type tableFile struct {
	Name           string                         `yaml:"name"`
	MinAge         int                            `yaml:"min_age"`
	MaxAge         int                            `yaml:"max_age"`
	BeyondMaxYears float64                        `yaml:"beyond_max_years"`
	RemainingYears map[domain.Sex]map[int]float64 `yaml:"remaining_years"`
}

type curve struct {
	values map[int]float64
	ages   []int
	linear *interp.PiecewiseLinear // nil with fewer than two ages
}

// Table maps (sex, integer age) to expected remaining years. It is read-only
// after construction and safe for concurrent use.
type Table struct {
	name      string
	minAge    int
	maxAge    int
	beyondMax float64
	curves    map[domain.Sex]*curve
}

// Default returns the embedded Brazilian 2022 table.
func Default() *Table {
	t, err := Parse(defaultTableSource)
	if err != nil {
		panic(fmt.Sprintf("embedded mortality table: %v", err))
	}
	return t
}

// Load reads a YAML table from disk.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mortality table %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("mortality table %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a table from its YAML form.
func Parse(data []byte) (*Table, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if tf.MinAge > tf.MaxAge {
		return nil, fmt.Errorf("%w: min_age %d exceeds max_age %d", ErrInvalidTable, tf.MinAge, tf.MaxAge)
	}
	if !(tf.BeyondMaxYears > 0) {
		return nil, fmt.Errorf("%w: beyond_max_years must be positive", ErrInvalidTable)
	}

	t := &Table{
		name:      tf.Name,
		minAge:    tf.MinAge,
		maxAge:    tf.MaxAge,
		beyondMax: tf.BeyondMaxYears,
		curves:    make(map[domain.Sex]*curve, 2),
	}
	for _, sex := range []domain.Sex{domain.Male, domain.Female} {
		values := tf.RemainingYears[sex]
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: no entries for %s", ErrInvalidTable, sex)
		}
		c, err := newCurve(values, tf.MinAge, tf.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, sex, err)
		}
		t.curves[sex] = c
	}
	for sex := range tf.RemainingYears {
		if !sex.Valid() {
			return nil, fmt.Errorf("%w: unsupported sex %q", ErrInvalidTable, sex)
		}
	}
	return t, nil
}

func newCurve(values map[int]float64, minAge, maxAge int) (*curve, error) {
	c := &curve{values: make(map[int]float64, len(values))}
	for age, years := range values {
		if age < minAge || age > maxAge {
			return nil, fmt.Errorf("age %d outside [%d, %d]", age, minAge, maxAge)
		}
		if !(years > 0) || math.IsInf(years, 0) {
			return nil, fmt.Errorf("age %d: remaining years must be positive, got %v", age, years)
		}
		c.values[age] = years
		c.ages = append(c.ages, age)
	}
	sort.Ints(c.ages)

	if len(c.ages) >= 2 {
		xs := make([]float64, len(c.ages))
		ys := make([]float64, len(c.ages))
		for i, age := range c.ages {
			xs[i] = float64(age)
			ys[i] = c.values[age]
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			return nil, err
		}
		c.linear = &pl
	}
	return c, nil
}

// nearest returns the value at the tabulated age closest to age; ties go to
// the younger age.
func (c *curve) nearest(age float64) float64 {
	best := c.ages[0]
	for _, a := range c.ages[1:] {
		if math.Abs(float64(a)-age) < math.Abs(float64(best)-age) {
			best = a
		}
	}
	return c.values[best]
}

func (t *Table) curve(sex domain.Sex) (*curve, error) {
	if sex == domain.SexUnspecified {
		return nil, ErrMissingSex
	}
	c, ok := t.curves[sex]
	if !ok {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSex, sex)
	}
	return c, nil
}

// Name identifies the table in reports.
func (t *Table) Name() string { return t.name }

// MinAge is the youngest tabulated age; younger ages are clamped to it.
func (t *Table) MinAge() int { return t.minAge }

// MaxAge is the oldest tabulated age.
func (t *Table) MaxAge() int { return t.maxAge }

// BeyondMaxYears is returned for ages past MaxAge.
func (t *Table) BeyondMaxYears() float64 { return t.beyondMax }

// Lookup returns the tabulated value for an exact integer age.
func (t *Table) Lookup(age int, sex domain.Sex) (float64, bool) {
	c, err := t.curve(sex)
	if err != nil {
		return 0, false
	}
	v, ok := c.values[age]
	return v, ok
}

// Ages lists the tabulated ages for sex in ascending order.
func (t *Table) Ages(sex domain.Sex) []int {
	c, err := t.curve(sex)
	if err != nil {
		return nil
	}
	out := make([]int, len(c.ages))
	copy(out, c.ages)
	return out
}

// RemainingYears returns the expected remaining years of life at age.
// Ages below the table clamp to MinAge, ages above it yield BeyondMaxYears,
// fractional ages interpolate linearly between the surrounding whole ages and
// gaps in a sparse table fall back to the nearest tabulated age.
func (t *Table) RemainingYears(age float64, sex domain.Sex) (float64, error) {
	c, err := t.curve(sex)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(age) {
		return 0, fmt.Errorf("%w: NaN", ErrInvalidAge)
	}

	if age < float64(t.minAge) {
		if v, ok := c.values[t.minAge]; ok {
			return v, nil
		}
		return c.nearest(float64(t.minAge)), nil
	}
	if age > float64(t.maxAge) {
		return t.beyondMax, nil
	}

	lower, upper := math.Floor(age), math.Ceil(age)
	lv, lok := c.values[int(lower)]
	_, uok := c.values[int(upper)]
	switch {
	case lower == upper && lok:
		return lv, nil
	case lok && uok:
		return c.linear.Predict(age), nil
	default:
		return c.nearest(age), nil
	}
}

// Describe renders the estimate as a short sentence.
func (t *Table) Describe(age float64, sex domain.Sex) (string, error) {
	years, err := t.RemainingYears(age, sex)
	if err != nil {
		return "", err
	}
	return DescribeYears(years, age, sex), nil
}

// DescribeYears renders an estimate already looked up.
func DescribeYears(years, age float64, sex domain.Sex) string {
	return fmt.Sprintf("%.1f years (%s aged %g)", years, sex, age)
}

// ValidateLifeExpectancyInputs checks the inputs a horizon-dependent
// scenario needs before any lookup happens.
func ValidateLifeExpectancyInputs(retirementAge int, sex domain.Sex) error {
	if sex == domain.SexUnspecified {
		return ErrMissingSex
	}
	if !sex.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidSex, sex)
	}
	if retirementAge > MaxSupportedRetirementAge {
		return fmt.Errorf("%w: retirement age %d is too high to estimate life expectancy", ErrInvalidAge, retirementAge)
	}
	return nil
}

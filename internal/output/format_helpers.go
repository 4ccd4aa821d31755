package output

import (
	"fmt"
	"strconv"

	"github.com/rpgo/annuity-planner/pkg/decimal"
)

// FormatCurrency formats an amount in reais with two decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string { return decimal.NewMoney(amount).Round().Format() }

// FormatPercentage formats a rate (0.08) as a percentage with 2 decimals.
func FormatPercentage(rate float64) string { return fmt.Sprintf("%.2f%%", rate*100) }

// FormatAge renders a fractional age as whole years and months.
func FormatAge(age float64) string {
	years := int(age)
	months := int((age-float64(years))*12 + 0.5)
	if months == 12 {
		years, months = years+1, 0
	}
	if months == 0 {
		return fmt.Sprintf("%d", years)
	}
	return fmt.Sprintf("%dy%dm", years, months)
}

func intToString(i int) string { return strconv.Itoa(i) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

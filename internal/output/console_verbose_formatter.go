package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "RETIREMENT ANNUITY PLAN")
	fmt.Fprintln(&buf, rule)
	if r.Name != "" {
		fmt.Fprintf(&buf, "Plan: %s\n", r.Name)
	}
	if opt, ok := r.Scenario().Option(); ok {
		fmt.Fprintf(&buf, "Scenario: %s (%s)\n", opt.Title, opt.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUTS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Current age:         %d\n", r.Inputs.CurrentAge)
	fmt.Fprintf(&buf, "  Retirement age:      %d\n", r.Inputs.RetirementAge)
	fmt.Fprintf(&buf, "  Initial investment:  %s\n", FormatCurrency(r.Inputs.InitialInvestment))
	if r.Inputs.Sex != domain.SexUnspecified {
		fmt.Fprintf(&buf, "  Sex:                 %s\n", r.Inputs.Sex)
	}
	if opt, ok := r.Scenario().Option(); ok {
		fmt.Fprintf(&buf, "  %-20s %s\n", capitalize(opt.GoalLabel)+":", FormatCurrency(r.Goal.Amount))
	}
	fmt.Fprintln(&buf)

	if !r.Result.Success {
		fmt.Fprintln(&buf, "RESULT")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintf(&buf, "  Calculation failed (%s): %s\n", r.Result.Kind, r.Result.Reason)
		return buf.Bytes(), nil
	}

	a := AnalyzeReport(r)
	d := r.Result.Details
	fmt.Fprintln(&buf, "RESULT")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  %s\n\n", a.Headline)
	fmt.Fprintf(&buf, "  Accumulation period:     %d years (%d months)\n", d.TotalYears, d.TotalMonths)
	fmt.Fprintf(&buf, "  Monthly contribution:    %s\n", FormatCurrency(a.MonthlyContribution))
	fmt.Fprintf(&buf, "  Total contributions:     %s\n", FormatCurrency(a.TotalContributions))
	fmt.Fprintf(&buf, "  Interest earned:         %s\n", FormatCurrency(a.InterestEarned))
	fmt.Fprintf(&buf, "  Balance at retirement:   %s\n", FormatCurrency(a.BalanceAtRetirement))
	fmt.Fprintf(&buf, "  Retirement period:       %.1f years\n", a.RetirementYears)
	if a.MonthlyIncome > 0 {
		fmt.Fprintf(&buf, "  Monthly retirement income: %s\n", FormatCurrency(a.MonthlyIncome))
	}
	fmt.Fprintln(&buf)

	if s := r.Summary; s != nil {
		fmt.Fprintln(&buf, "TRAJECTORY")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintf(&buf, "  Months simulated:  %d accumulation, %d retirement\n", s.AccumulationMonths, s.RetirementMonths)
		fmt.Fprintf(&buf, "  Peak balance:      %s at age %s\n", FormatCurrency(s.PeakWealth), FormatAge(s.PeakAge))
		fmt.Fprintf(&buf, "  Final balance:     %s at age %s\n", FormatCurrency(s.FinalWealth), FormatAge(s.FinalAge))
		if s.DepletionAge != nil {
			fmt.Fprintf(&buf, "  Funds exhausted at age %s\n", FormatAge(*s.DepletionAge))
		}
		fmt.Fprintf(&buf, "  Chart points:      %d of %d\n", len(r.Trajectory), r.TrajectoryLength)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, line := range ReportAssumptions(r) {
		fmt.Fprintf(&buf, "• %s\n", line)
	}
	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

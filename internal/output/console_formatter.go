package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT ANNUITY SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if !r.Result.Success {
		fmt.Fprintf(&buf, "%s: failed: %s\n", r.Scenario(), r.Result.Reason)
		return buf.Bytes(), nil
	}
	a := AnalyzeReport(r)
	fmt.Fprintf(&buf, "%s: %s\n", r.Scenario(), FormatCurrency(r.Result.Value))
	fmt.Fprintln(&buf, a.Headline)
	fmt.Fprintf(&buf, "Contributions=%s Interest=%s Balance=%s\n",
		FormatCurrency(a.TotalContributions), FormatCurrency(a.InterestEarned), FormatCurrency(a.BalanceAtRetirement))
	if s := r.Summary; s != nil {
		fmt.Fprintf(&buf, "Peak=%s FinalAge=%s\n", FormatCurrency(s.PeakWealth), FormatAge(s.FinalAge))
	}
	return buf.Bytes(), nil
}

package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// CSVSummarizer implements the one-row summary CSV output.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Goal", "CurrentAge", "RetirementAge", "InitialInvestment", "Sex", "Success", "Value", "Error",
		"TotalMonths", "TotalContributions", "BalanceAtRetirement", "LifeExpectancy", "RetirementPeriodYears", "PeakWealth", "FinalWealth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	a := AnalyzeReport(r)
	row := []string{
		string(r.Scenario()),
		floatToString(r.Goal.Amount),
		intToString(r.Inputs.CurrentAge),
		intToString(r.Inputs.RetirementAge),
		floatToString(r.Inputs.InitialInvestment),
		string(r.Inputs.Sex),
		boolToString(r.Result.Success),
		floatToString(r.Result.Value),
		r.Result.Reason,
		"", "", "", "", "", "", "",
	}
	if d := r.Result.Details; d != nil {
		row[9] = intToString(d.TotalMonths)
		row[10] = floatToString(d.TotalContributions)
		row[11] = floatToString(a.BalanceAtRetirement)
		row[12] = floatToString(d.LifeExpectancy)
		row[13] = floatToString(d.RetirementPeriodYears)
	}
	if s := r.Summary; s != nil {
		row[14] = floatToString(s.PeakWealth)
		row[15] = floatToString(s.FinalWealth)
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

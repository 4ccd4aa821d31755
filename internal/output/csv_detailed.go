package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/pkg/dateutil"
)

// CSVDetailedExporter writes the sampled trajectory, one row per point.
// A Month column is added when the plan is pinned to a calendar date.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(r *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "Phase", "Wealth", "MonthlyFlow"}
	if r.StartDate != nil {
		header = append([]string{"Month"}, header...)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	perYear := float64(r.Assumptions.MonthsPerYear)
	for _, p := range r.Trajectory {
		row := []string{
			strconv.FormatFloat(p.Age, 'f', 4, 64),
			string(p.Phase),
			floatToString(p.Wealth),
			floatToString(p.MonthlyFlow),
		}
		if r.StartDate != nil {
			month := int((p.Age-float64(r.Inputs.CurrentAge))*perYear + 0.5)
			row = append([]string{dateutil.MonthLabel(*r.StartDate, month)}, row...)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

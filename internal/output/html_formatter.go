package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an embedded chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"age":  FormatAge,
	"deref": func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	},
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	option, _ := r.Scenario().Option()
	ages := make([]float64, len(r.Trajectory))
	wealth := make([]float64, len(r.Trajectory))
	for i, p := range r.Trajectory {
		ages[i] = p.Age
		wealth[i] = p.Wealth
	}

	data := struct {
		*domain.Report
		Option      domain.ScenarioOption
		Analysis    Analysis
		Assumptions []string
		ChartAges   []float64
		ChartWealth []float64
	}{r, option, AnalyzeReport(r), ReportAssumptions(r), ages, wealth}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package output

import (
	"encoding/json"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *domain.Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/annuity-planner/internal/output"
)

func TestOutputGeneration(t *testing.T) {
	report := runPlan(t, "retirement_income.yaml")
	dir := t.TempDir()

	for _, format := range output.AvailableFormatterNames() {
		t.Run(format, func(t *testing.T) {
			path, err := output.GenerateReport(report, format, dir)
			require.NoError(t, err)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Equal(t, "."+output.Extension(format), filepath.Ext(path))
			// Avoid name collisions between formats sharing an extension.
			require.NoError(t, os.Remove(path))
		})
	}
}

func TestDetailedCSVUsesCalendarMonths(t *testing.T) {
	report := runPlan(t, "retirement_income.yaml")

	var sb strings.Builder
	require.NoError(t, output.WriteTo(&sb, report, "detailed-csv"))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")

	assert.Equal(t, "Month,Age,Phase,Wealth,MonthlyFlow", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-03,39.0000,accumulation,10000.00,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "2071-01,"), lines[len(lines)-1])
}

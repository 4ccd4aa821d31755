package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/annuity-planner/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "annuity", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"calculate", "validate", "init", "solve", "project", "life-expectancy", "serve", "version"}
	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "command %s not registered", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "annuity dev (commit none, built unknown)")
}

func TestSolveCommand(t *testing.T) {
	out, err := run(t, "solve", "target-amount", "--current-age", "30", "--retirement-age", "65", "--amount", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Required monthly contribution: R$ 435,94")
	assert.Contains(t, out, "Accumulation: 35 years (420 months)")

	out, err = run(t, "solve", "retirement_income", "--current-age", "30", "--retirement-age", "65",
		"--sex", "masculino", "--amount", "R$ 5.000,00")
	require.NoError(t, err)
	assert.Contains(t, out, "Required monthly contribution: R$ 239,81")
	assert.Contains(t, out, "Life expectancy at 65: 16.6 years")
}

func TestSolveCommandJSON(t *testing.T) {
	out, err := run(t, "solve", "monthly-contribution", "--current-age", "30", "--retirement-age", "65",
		"--initial", "10000", "--amount", "500", "--json")
	require.NoError(t, err)

	var result domain.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.InDelta(t, 1309866.741309066, result.Value, 1e-6)
}

func TestSolveCommandFailures(t *testing.T) {
	_, err := run(t, "solve", "retirement-income", "--current-age", "30", "--retirement-age", "65", "--amount", "5000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCategory)

	_, err = run(t, "solve", "target-amount", "--current-age", "30", "--retirement-age", "65",
		"--initial", "50000", "--amount", "10000")
	assert.ErrorIs(t, err, domain.ErrInfeasible)

	_, err = run(t, "solve", "lottery", "--current-age", "30", "--retirement-age", "65", "--amount", "1")
	assert.ErrorContains(t, err, "unknown scenario")

	_, err = run(t, "solve", "target-amount", "--current-age", "30", "--retirement-age", "65", "--amount", "lots")
	assert.ErrorContains(t, err, "--amount")

	_, err = run(t, "solve", "target-amount", "--current-age", "30", "--retirement-age", "65", "--amount", "20000000")
	assert.ErrorContains(t, err, "cannot exceed")

	_, err = run(t, "solve", "target-amount", "--current-age", "30")
	assert.Error(t, err)
}

func TestProjectCommand(t *testing.T) {
	out, err := run(t, "project", "target-amount", "--current-age", "30", "--retirement-age", "65",
		"--sex", "male", "--amount", "1000000", "--max-points", "40", "--format", "detailed-csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Age,Phase,Wealth,MonthlyFlow", lines[0])
	assert.LessOrEqual(t, len(lines)-1, 41)
	assert.True(t, strings.HasPrefix(lines[1], "30.0000,accumulation,0.00,"))

	out, err = run(t, "project", "target-amount", "--current-age", "30", "--retirement-age", "65",
		"--amount", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance by age")
}

func TestLifeExpectancyCommand(t *testing.T) {
	out, err := run(t, "life-expectancy", "--age", "65", "--sex", "F")
	require.NoError(t, err)
	assert.Equal(t, "br-2022: 19.9 years (female aged 65)\n", out)

	_, err = run(t, "life-expectancy", "--age", "65", "--sex", "x")
	assert.Error(t, err)

	_, err = run(t, "life-expectancy", "--age", "125", "--sex", "male")
	assert.Error(t, err)
}

func TestInitValidateCalculate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")

	out, err := run(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Example plan written to")

	_, err = run(t, "init", path)
	assert.ErrorContains(t, err, "already exists")
	_, err = run(t, "init", path, "--force")
	require.NoError(t, err)

	out, err = run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Plan is valid")
	assert.Contains(t, out, "Scenario: retirement-income")

	out, err = run(t, "calculate", path, "--format", "json")
	require.NoError(t, err)
	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Result.Success, report.Result.Reason)
	assert.Equal(t, domain.ScenarioRetirementIncome, report.Scenario())
	assert.NotEmpty(t, report.Trajectory)

	out, err = run(t, "calculate", path, "--format", "csv", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")
	matches, _ := filepath.Glob(filepath.Join(dir, "annuity_report_*.csv"))
	assert.Len(t, matches, 1)

	_, err = run(t, "calculate", path, "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestValidateRejectsBadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("person:\n  current_age: 30\nscenario: lottery\n"), 0o644))

	_, err := run(t, "validate", path)
	assert.ErrorContains(t, err, "validation failed")
}

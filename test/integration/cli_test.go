package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/server"
)

// The HTTP API and the plan runner share one calculator and must agree.
func TestAPIMatchesPlanRunner(t *testing.T) {
	report := runPlan(t, "monthly_contribution.yaml")
	srv := server.New(server.Config{Log: zerolog.Nop(), DevMode: true})

	body, err := json.Marshal(map[string]interface{}{
		"person": map[string]interface{}{
			"current_age":        report.Inputs.CurrentAge,
			"retirement_age":     report.Inputs.RetirementAge,
			"initial_investment": report.Inputs.InitialInvestment,
			"sex":                report.Inputs.Sex,
		},
		"amount": report.Goal.Amount,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve/monthly-contribution", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.CalculationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, report.Result.Value, result.Value)
	assert.Equal(t, report.Result.Details.TotalContributions, result.Details.TotalContributions)
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rpgo/annuity-planner/internal/calculation"
	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/mortality"
	"github.com/rpgo/annuity-planner/pkg/decimal"
)

const maxBodyBytes = 1 << 16

// personRequest is the person block of API bodies. Sex is kept as text so
// that an unrecognised value reaches the calculator and is reported there.
type personRequest struct {
	CurrentAge        int     `json:"current_age"`
	RetirementAge     int     `json:"retirement_age"`
	InitialInvestment float64 `json:"initial_investment"`
	Sex               string  `json:"sex,omitempty"`
}

func (p personRequest) inputs() domain.PersonInputs {
	sex, err := domain.ParseSex(p.Sex)
	if err != nil {
		sex = domain.Sex(strings.ToLower(strings.TrimSpace(p.Sex)))
	}
	return domain.PersonInputs{
		CurrentAge:        p.CurrentAge,
		RetirementAge:     p.RetirementAge,
		InitialInvestment: p.InitialInvestment,
		Sex:               sex,
	}
}

type solveRequest struct {
	Person personRequest `json:"person"`
	Amount float64       `json:"amount"`
}

type projectRequest struct {
	Person            personRequest `json:"person"`
	Scenario          string        `json:"scenario"`
	Amount            float64       `json:"amount"`
	MaxPoints         int           `json:"max_points"`
	IncludeRetirement bool          `json:"include_retirement"`
	Sample            *bool         `json:"sample,omitempty"`
}

type projectResponse struct {
	Points      []domain.WealthDataPoint `json:"points"`
	Summary     domain.TrajectorySummary `json:"summary"`
	TotalPoints int                      `json:"total_points"`
}

type lifeExpectancyResponse struct {
	Age            float64    `json:"age"`
	Sex            domain.Sex `json:"sex"`
	RemainingYears float64    `json:"remaining_years"`
	Description    string     `json:"description"`
	Table          string     `json:"table"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "annuity-planner",
		"table":   s.calc.Table().Name(),
	})
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Scenarios())
}

// handleSolve answers 200 for a solved goal and 422 for a calculation
// failure, with the CalculationResult as the body in both cases.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	scenario, err := domain.ParseScenario(chi.URLParam(r, "scenario"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req solveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkAmounts(req.Person.InitialInvestment, req.Amount); err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, domain.Failed(domain.FailureInvalidInput, err.Error()))
		return
	}

	result := s.calc.Solve(req.Person.inputs(), domain.Goal{Scenario: scenario, Amount: req.Amount})
	if !result.Success {
		s.log.Debug().Str("scenario", string(scenario)).Str("kind", string(result.Kind)).Msg(result.Reason)
		s.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scenario, err := domain.ParseScenario(req.Scenario)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxPoints < 0 {
		s.writeError(w, http.StatusBadRequest, "max_points cannot be negative")
		return
	}
	if err := checkAmounts(req.Person.InitialInvestment, req.Amount); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	points := s.calc.ProjectWealthForScenario(req.Person.inputs(), scenario, req.Amount)
	resp := projectResponse{
		Points:      points,
		Summary:     calculation.SummarizeTrajectory(points),
		TotalPoints: len(points),
	}
	if req.Sample == nil || *req.Sample {
		resp.Points = calculation.SampleForChart(points, req.MaxPoints,
			calculation.SampleOptions{IncludeRetirement: req.IncludeRetirement})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLifeExpectancy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	age, err := strconv.ParseFloat(q.Get("age"), 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "age must be a number")
		return
	}
	sex, err := domain.ParseSex(q.Get("sex"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := mortality.ValidateLifeExpectancyInputs(int(age), sex); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table := s.calc.Table()
	years, err := table.RemainingYears(age, sex)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, lifeExpectancyResponse{
		Age:            age,
		Sex:            sex,
		RemainingYears: years,
		Description:    mortality.DescribeYears(years, age, sex),
		Table:          table.Name(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func checkAmounts(amounts ...float64) error {
	limit := decimal.NewMoney(domain.MaxAmount)
	for _, a := range amounts {
		if a > domain.MaxAmount {
			return fmt.Errorf("amounts cannot exceed %s", limit.Format())
		}
	}
	return nil
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}

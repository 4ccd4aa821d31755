package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/annuity-planner/internal/config"
	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/mortality"
	"github.com/rpgo/annuity-planner/internal/output"
	"github.com/rpgo/annuity-planner/pkg/decimal"
)

func scenarioHelp() string {
	var b strings.Builder
	b.WriteString("Scenarios:\n")
	for _, opt := range domain.Scenarios() {
		fmt.Fprintf(&b, "  %-22s %s\n  %-22s --amount is the %s\n", opt.ID, opt.Question, "", opt.GoalLabel)
	}
	return b.String()
}

func addPersonFlags(cmd *cobra.Command) {
	cmd.Flags().Int("current-age", 0, "Current age in years")
	cmd.Flags().Int("retirement-age", 0, "Planned retirement age")
	cmd.Flags().String("initial", "0", "Initial investment, e.g. 10000 or \"R$ 10.000,00\"")
	cmd.Flags().String("sex", "", "Sex for the life expectancy estimate (male, female)")
	cmd.Flags().String("amount", "", "Goal amount for the scenario")
	cmd.Flags().String("table", "", "Mortality table file")
	_ = cmd.MarkFlagRequired("current-age")
	_ = cmd.MarkFlagRequired("retirement-age")
	_ = cmd.MarkFlagRequired("amount")
}

// planFromFlags assembles a validated single-use plan from the person flags.
func planFromFlags(cmd *cobra.Command, scenario string) (*domain.Plan, error) {
	currentAge, _ := cmd.Flags().GetInt("current-age")
	retirementAge, _ := cmd.Flags().GetInt("retirement-age")
	initialStr, _ := cmd.Flags().GetString("initial")
	sex, _ := cmd.Flags().GetString("sex")
	amountStr, _ := cmd.Flags().GetString("amount")
	table, _ := cmd.Flags().GetString("table")

	initial, err := decimal.ParseAmount(initialStr)
	if err != nil {
		return nil, fmt.Errorf("--initial: %w", err)
	}
	amount, err := decimal.ParseAmount(amountStr)
	if err != nil {
		return nil, fmt.Errorf("--amount: %w", err)
	}

	plan := &domain.Plan{
		Person: domain.PlanPerson{
			CurrentAge:        currentAge,
			RetirementAge:     retirementAge,
			InitialInvestment: initial.Decimal,
			Sex:               domain.Sex(sex),
		},
		Scenario:       domain.Scenario(scenario),
		Goal:           amount.Decimal,
		MortalityTable: table,
	}
	if err := config.NewInputParser().ValidatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <scenario>",
		Short: "Solve a single scenario from flags",
		Long:  "Solve a single scenario from flags.\n\n" + scenarioHelp(),
		Example: "  annuity solve target-amount --current-age 30 --retirement-age 65 --amount 1000000\n" +
			"  annuity solve retirement-income --current-age 30 --retirement-age 65 --sex female --amount \"R$ 5.000,00\"",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			calc, err := newCalculator(cmd, plan.MortalityTable)
			if err != nil {
				return err
			}
			inputs, err := plan.ResolveInputs(time.Now())
			if err != nil {
				return err
			}
			result := calc.Solve(inputs, plan.GoalValue())

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return result.Err()
			}
			if !result.Success {
				return result.Err()
			}

			d := result.Details
			fmt.Fprintf(out, "%s: %s\n", resultLabel(plan.Scenario), output.FormatCurrency(result.Value))
			fmt.Fprintf(out, "  Accumulation: %d years (%d months)\n", d.TotalYears, d.TotalMonths)
			fmt.Fprintf(out, "  Monthly contribution: %s\n", output.FormatCurrency(d.MonthlyContribution))
			fmt.Fprintf(out, "  Total contributions: %s\n", output.FormatCurrency(d.TotalContributions))
			if d.RetirementBalance > 0 {
				fmt.Fprintf(out, "  Balance needed at retirement: %s\n", output.FormatCurrency(d.RetirementBalance))
			}
			if d.LifeExpectancy > 0 {
				fmt.Fprintf(out, "  Life expectancy at %d: %.1f years\n", inputs.RetirementAge, d.LifeExpectancy)
			}
			fmt.Fprintf(out, "  Retirement period: %.1f years\n", d.RetirementPeriodYears)
			return nil
		},
	}
	addPersonFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the raw result as JSON")
	return cmd
}

func resultLabel(s domain.Scenario) string {
	if s == domain.ScenarioMonthlyContribution {
		return "Balance at retirement"
	}
	return "Required monthly contribution"
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <scenario>",
		Short: "Project the month-by-month balance for a scenario",
		Long:  "Project the month-by-month balance for a scenario.\n\n" + scenarioHelp(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			plan.Chart.MaxPoints, _ = cmd.Flags().GetInt("max-points")
			plan.Chart.IncludeRetirement, _ = cmd.Flags().GetBool("include-retirement")

			calc, err := newCalculator(cmd, "")
			if err != nil {
				return err
			}
			report, err := calc.RunPlan(plan, time.Now())
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := output.WriteTo(cmd.OutOrStdout(), report, format); err != nil {
				return err
			}
			return report.Result.Err()
		},
	}
	addPersonFlags(cmd)
	addFormatFlag(cmd, "chart")
	cmd.Flags().Int("max-points", 0, "Maximum points kept for display (0 selects the default)")
	cmd.Flags().Bool("include-retirement", false, "Also sample the retirement phase")
	return cmd
}

func lifeExpectancyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "life-expectancy",
		Short: "Look up expected remaining years of life",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			age, _ := cmd.Flags().GetFloat64("age")
			sexFlag, _ := cmd.Flags().GetString("sex")
			tablePath, _ := cmd.Flags().GetString("table")

			sex, err := domain.ParseSex(sexFlag)
			if err != nil {
				return err
			}
			if err := mortality.ValidateLifeExpectancyInputs(int(age), sex); err != nil {
				return err
			}
			table := mortality.Default()
			if tablePath != "" {
				if table, err = mortality.Load(tablePath); err != nil {
					return err
				}
			}
			desc, err := table.Describe(age, sex)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", table.Name(), desc)
			return nil
		},
	}
	cmd.Flags().Float64("age", 65, "Age to look up")
	cmd.Flags().String("sex", "", "Sex (male, female)")
	cmd.Flags().String("table", "", "Mortality table file")
	_ = cmd.MarkFlagRequired("sex")
	return cmd
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/annuity-planner/internal/config"
	"github.com/rpgo/annuity-planner/internal/mortality"
	"github.com/rpgo/annuity-planner/internal/output"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Solve a plan file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if table, _ := cmd.Flags().GetString("table"); table != "" {
				plan.MortalityTable = table
			}

			calc, err := newCalculator(cmd, "")
			if err != nil {
				return err
			}
			report, err := calc.RunPlan(plan, time.Now())
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			dir, _ := cmd.Flags().GetString("output-dir")
			if dir != "" {
				path, err := output.GenerateReport(report, format, dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}
			return output.WriteTo(cmd.OutOrStdout(), report, format)
		},
	}
	addFormatFlag(cmd, "console")
	cmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory")
	cmd.Flags().String("table", "", "Mortality table file overriding the plan's table")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			if plan.MortalityTable != "" {
				if _, err := mortality.Load(plan.MortalityTable); err != nil {
					return fmt.Errorf("validation failed: %w", err)
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan is valid: %s\n", args[0])
			fmt.Fprintf(out, "  Scenario: %s\n", plan.Scenario)
			fmt.Fprintf(out, "  Goal: %s\n", output.FormatCurrency(plan.Goal.InexactFloat64()))
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [plan-file]",
		Short: "Write an example plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "annuity_plan.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			parser := config.NewInputParser()
			if err := parser.SavePlan(parser.CreateExamplePlan(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

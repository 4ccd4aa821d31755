package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/annuity-planner/internal/calculation"
	"github.com/rpgo/annuity-planner/internal/mortality"
	"github.com/rpgo/annuity-planner/internal/output"
	"github.com/rpgo/annuity-planner/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "annuity",
		Short: "Retirement annuity calculator CLI",
		Long: "Solves retirement savings goals with fixed-rate annuity math: the monthly contribution\n" +
			"for a target balance, the balance reached with a fixed contribution, or the contribution\n" +
			"that funds a monthly income until life expectancy.",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(initCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(projectCmd())
	root.AddCommand(lifeExpectancyCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "annuity %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// cliLogger builds the calculator logger from the --debug and --log-level flags.
func cliLogger(cmd *cobra.Command) calculation.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	l := logger.New(logger.Config{Level: level, Pretty: true, Output: cmd.ErrOrStderr()})
	return logger.NewAdapter(l, "calculation")
}

// newCalculator returns the default calculator, with the mortality table
// replaced when tablePath is set.
func newCalculator(cmd *cobra.Command, tablePath string) (*calculation.Calculator, error) {
	calc := calculation.NewDefaultCalculator()
	calc.SetLogger(cliLogger(cmd))
	if tablePath == "" {
		return calc, nil
	}
	table, err := mortality.Load(tablePath)
	if err != nil {
		return nil, err
	}
	return calc.With(calc.Assumptions(), table)
}

func addFormatFlag(cmd *cobra.Command, def string) {
	cmd.Flags().StringP("format", "f", def,
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/compgraph/pkg/errors"
	"github.com/matzehuels/compgraph/pkg/scenario"
)

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "run <scenario.toml>",
		Short: "Execute a scenario file",
		Long: `Execute the runs of a TOML scenario file against one compiled graph.

Each run assigns input values and may state an expected result. Inputs not
mentioned in a run keep their previous value. The command fails if any
expectation is not met (exit status 2).`,
		Example: `  compgraph run examples/reference.toml
  compgraph run examples/reference.toml --stats -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScenario(cmd, args[0], stats)
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "print evaluation counters for each run")

	return cmd
}

func (c *CLI) runScenario(cmd *cobra.Command, path string, stats bool) error {
	logger := loggerFromContext(cmd.Context())

	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded scenario", "name", s.Name, "runs", len(s.Runs))

	var collected *runStats
	if stats {
		collected = newRunStats()
		defer collected.register()()
	}

	prog := newProgress(logger)
	report, err := scenario.NewRunner(logger).Run(cmd.Context(), s)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Evaluated %d runs", len(report.Results)))

	printInfo("%s", StyleTitle.Render(report.Scenario))
	printKeyValue("expression", report.Expression)
	for _, res := range report.Results {
		value := StyleNumber.Render(formatNumber(res.Rounded, report.Precision))
		if res.Passed {
			printSuccess("%s  %s", res.Name(), value)
		} else {
			printError("%s  %s (want %s)", res.Name(), value, formatNumber(*res.Expect, report.Precision))
		}
		printDetail("%s", formatValues(report.Inputs, res.Values))
		if collected != nil {
			printStats(collected.runs[res.Index])
		}
	}

	if failed := report.Failures(); len(failed) > 0 {
		return errors.New(errors.ErrCodeExpectationFailed, "%d of %d runs did not match the expected result",
			len(failed), len(report.Results))
	}
	return nil
}

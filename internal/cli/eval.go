package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/compgraph/pkg/errors"
	"github.com/matzehuels/compgraph/pkg/expr"
	"github.com/matzehuels/compgraph/pkg/observability"
	"github.com/matzehuels/compgraph/pkg/scenario"
)

// evalOptions holds flags for the eval command.
type evalOptions struct {
	sets      []string
	precision int
	stats     bool
}

// evalCommand creates the eval command.
func (c *CLI) evalCommand() *cobra.Command {
	opts := evalOptions{precision: scenario.DefaultPrecision}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression once",
		Long: `Compile an expression into a computational graph, assign input values and print the result.

Functions: ` + strings.Join(expr.Functions(), ", ") + `
Inputs not assigned with --set default to 0.`,
		Example: `  compgraph eval "x1 + x2 * sin(x2 + pow(x3, 3))" --set x1=1 --set x2=2 --set x3=3
  compgraph eval "add(a, a)" -s a=1.5 --stats`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEval(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "assign an input value (name=value, repeatable)")
	cmd.Flags().IntVarP(&opts.precision, "precision", "p", opts.precision, "decimal places in the printed result")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print evaluation counters")

	return cmd
}

func (c *CLI) runEval(cmd *cobra.Command, src string, opts evalOptions) error {
	logger := loggerFromContext(cmd.Context())

	if err := errors.ValidatePrecision(opts.precision); err != nil {
		return err
	}
	values, err := parseAssignments(opts.sets)
	if err != nil {
		return err
	}

	var counter *observability.Counter
	if opts.stats {
		counter = &observability.Counter{}
		observability.SetGraphHooks(counter)
		defer observability.Reset()
	}

	p, err := expr.Compile(src)
	if err != nil {
		return err
	}
	logger.Debug("compiled expression", "inputs", p.Inputs())

	if err := p.Set(values); err != nil {
		return err
	}
	value := p.Eval()
	logger.Debug("evaluated expression", "value", value)

	printKeyValue("expression", src)
	if inputs := p.Inputs(); len(inputs) > 0 {
		printKeyValue("inputs", formatValues(inputs, withDefaults(inputs, values)))
	}
	printSuccess("%s", StyleNumber.Render(formatNumber(value, opts.precision)))
	if counter != nil {
		printStats(counter.Snapshot())
	}
	return nil
}

// parseAssignments parses "name=value" pairs. Later assignments to the same
// name win.
func parseAssignments(pairs []string) (map[string]float64, error) {
	values := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "expected name=value, got %q", pair)
		}
		name = strings.TrimSpace(name)
		if err := errors.ValidateInputName(name); err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid value for %s", name)
		}
		values[name] = v
	}
	return values, nil
}

// withDefaults fills in zero for inputs that were not assigned.
func withDefaults(names []string, values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		out[name] = values[name]
	}
	return out
}

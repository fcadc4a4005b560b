package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/compgraph/pkg/errors"
	"github.com/matzehuels/compgraph/pkg/expr"
	"github.com/matzehuels/compgraph/pkg/render/nodelink"
)

// dotOptions holds flags for the dot command.
type dotOptions struct {
	sets     []string
	output   string // output file path, stdout if empty
	format   string // "dot" or "svg"
	detailed bool
	eval     bool
}

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var opts dotOptions

	cmd := &cobra.Command{
		Use:   "dot <expression>",
		Short: "Draw the graph of an expression",
		Long: `Compile an expression and write its graph as a Graphviz node-link diagram.

The format defaults to the extension of --output, or DOT when writing to stdout.
With --detailed, labels show input values and cached results; combine with
--eval to draw the graph after one evaluation.`,
		Example: `  compgraph dot "x1 + x2 * sin(x2 + pow(x3, 3))" -o graph.svg
  compgraph dot "add(a, a)" -s a=2 --eval --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "assign an input value (name=value, repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include values and cache state in labels")
	cmd.Flags().BoolVar(&opts.eval, "eval", false, "evaluate the expression before drawing")

	return cmd
}

func (c *CLI) runDot(cmd *cobra.Command, src string, opts dotOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := dotFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	values, err := parseAssignments(opts.sets)
	if err != nil {
		return err
	}

	p, err := expr.Compile(src)
	if err != nil {
		return err
	}
	if err := p.Set(values); err != nil {
		return err
	}
	if opts.eval {
		logger.Debug("evaluated expression", "value", p.Eval())
	}

	data, err := renderProgram(ctx, p, format, nodelink.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot write %s", opts.output)
	}
	logger.Infof("Generated %s", opts.output)
	return nil
}

// dotFormat resolves the output format from the --format flag or the output
// file extension.
func dotFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = "dot"
		}
	}
	switch format {
	case "dot", "svg":
		return format, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (want dot or svg)", format)
}

func renderProgram(ctx context.Context, p *expr.Program, format string, opts nodelink.Options) ([]byte, error) {
	dot := nodelink.ToDOT(p, opts)
	if format == "dot" {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return svg, nil
}


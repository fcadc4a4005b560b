package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/compgraph/pkg/expr"
	"github.com/matzehuels/compgraph/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes node state in labels. When false, only the operation
	// or input name is shown.
	Detailed bool
}

// cached is implemented by operation nodes that expose their cache.
type cached interface {
	Cached() (float64, bool)
}

// ToDOT converts a program to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(p *expr.Program, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	terms := p.Terms()
	for _, t := range terms {
		label, stale := fmtLabel(p, t, opts.Detailed)
		fmt.Fprintf(&buf, "  n%d [%s];\n", t.ID, strings.Join(fmtAttrs(t, label, stale), ", "))
	}

	buf.WriteString("\n")
	for _, t := range terms {
		for _, arg := range t.Args {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", arg, t.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *expr.Program, t expr.Term, detailed bool) (label string, stale bool) {
	if !detailed {
		return t.Label, false
	}

	switch n := t.Node.(type) {
	case *graph.Input[float64]:
		// Constants are inputs too, but only named inputs can change.
		if in, ok := p.Input(t.Label); ok && in == n {
			return t.Label + " = " + fmtValue(n.Compute()), false
		}
		return t.Label, false
	case cached:
		if v, ok := n.Cached(); ok {
			return t.Label + "\n" + fmtValue(v), false
		}
		return t.Label + "\nstale", true
	}
	return t.Label, false
}

func fmtAttrs(t expr.Term, label string, stale bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if t.Kind == graph.KindInput {
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=\"#e0f2f1\"")
	}
	if stale {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the drawing starts at the
// origin and carries explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

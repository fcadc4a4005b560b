// Package nodelink renders compiled expressions as node-link diagrams.
//
// # Overview
//
// Each node of a program's graph becomes a box and each argument an arrow
// pointing from the argument to the node that reads it. Inputs are drawn as
// ellipses at the top, the output node at the bottom. A repeated input is a
// single node with several outgoing arrows, which makes shared
// subexpressions visible.
//
// # Usage
//
// Convert a program to DOT format, then render to SVG:
//
//	p := expr.MustCompile("x1 + x2 * sin(x2 + pow(x3, 3))")
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// With Detailed set, labels include each node's state: the current value of
// inputs, the cached value of operations that hold one, and "stale" for
// operations whose cache is empty. Stale nodes are drawn dashed. Building the
// diagram never computes a node, so it shows exactly which parts of the graph
// the last evaluation left cached.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be rendered
// directly via [RenderSVG] or written out for use with external tools:
//
//	dot -Tpng graph.dot -o graph.png
package nodelink

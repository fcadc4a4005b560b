// Package pkg provides the core libraries for compgraph, lazily evaluated
// computational graphs over scalar inputs.
//
// # Overview
//
// A computational graph is built once from inputs and operations, then
// evaluated many times as the inputs change. Every operation caches its last
// result; setting an input clears the caches of everything downstream, and
// the next evaluation recomputes only those nodes. The pkg directory is
// organized into:
//
//  1. [graph] - The generic node, cache and dependency machinery
//  2. [ops] - Arithmetic operations on float64 graphs
//  3. [expr] - Compiling expression text into graphs
//  4. [scenario] - TOML scenario files and their runner
//  5. [render/nodelink] - Graphviz diagrams of compiled expressions
//
// Supporting packages: [errors] (coded errors and validation),
// [observability] (graph and scenario hooks) and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	expression text / scenario file
//	         ↓
//	    [expr] package (parse, build nodes with [ops])
//	         ↓
//	    [graph] package (lazy evaluation + invalidation)
//	         ↓
//	    [scenario] package (assign inputs, compare results)
//
// # Quick Start
//
// Build a graph directly:
//
//	x1, x2, x3 := ops.NewInput("x1"), ops.NewInput("x2"), ops.NewInput("x3")
//	out := ops.Add(x1, ops.Mul(x2, ops.Sin(ops.Add(x2, ops.Pow(x3, 3)))))
//
//	x1.Set(1)
//	x2.Set(2)
//	x3.Set(3)
//	fmt.Println(out.Compute()) // -0.3272...
//
// Or compile the same graph from text:
//
//	p, _ := expr.Compile("x1 + x2 * sin(x2 + pow(x3, 3))")
//	_ = p.Set(map[string]float64{"x1": 1, "x2": 2, "x3": 3})
//	fmt.Println(p.Eval())
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/graph/...    # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/graph
// [ops]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/ops
// [expr]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/expr
// [scenario]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/scenario
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/compgraph/pkg/buildinfo
package pkg

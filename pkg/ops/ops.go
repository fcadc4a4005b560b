// Package ops provides float64 operators for building computational graphs.
//
// Every function wraps [graph.NewUnary] or [graph.NewBinary] with a concrete
// operation and returns the new node as a [graph.Node], ready to be used as
// the input of further operations or as the output of a graph:
//
//	x1 := ops.NewInput("x1")
//	x2 := ops.NewInput("x2")
//	x3 := ops.NewInput("x3")
//	out := ops.Add(x1, ops.Mul(x2, ops.Sin(ops.Add(x2, ops.Pow(x3, 3)))))
//
//	x1.Set(1)
//	x2.Set(2)
//	x3.Set(3)
//	out.Compute() // ≈ -0.32727
//
// All operators follow IEEE-754 semantics: division by zero, log of a
// negative number and similar cases yield infinities or NaN instead of
// failing.
package ops

import (
	"math"
	"strconv"

	"github.com/matzehuels/compgraph/pkg/graph"
)

// NewInput creates an input node with value 0.
func NewInput(name string) *graph.Input[float64] {
	return graph.NewInput[float64](name)
}

// Const creates an input node holding v. It is an ordinary input, named after
// its value, and may still be Set.
func Const(v float64) *graph.Input[float64] {
	in := graph.NewInput[float64](strconv.FormatFloat(v, 'g', -1, 64))
	in.Set(v)
	return in
}

// Add returns a node computing x + y.
func Add(x, y graph.Node[float64]) graph.Node[float64] {
	return graph.NewBinary(x, y, func(a, b float64) float64 { return a + b })
}

// Sub returns a node computing x - y.
func Sub(x, y graph.Node[float64]) graph.Node[float64] {
	return graph.NewBinary(x, y, func(a, b float64) float64 { return a - b })
}

// Mul returns a node computing x * y.
func Mul(x, y graph.Node[float64]) graph.Node[float64] {
	return graph.NewBinary(x, y, func(a, b float64) float64 { return a * b })
}

// Div returns a node computing x / y.
func Div(x, y graph.Node[float64]) graph.Node[float64] {
	return graph.NewBinary(x, y, func(a, b float64) float64 { return a / b })
}

// Neg returns a node computing -x.
func Neg(x graph.Node[float64]) graph.Node[float64] {
	return graph.NewUnary(x, func(v float64) float64 { return -v })
}

// Sin returns a node computing the sine of x (radians).
func Sin(x graph.Node[float64]) graph.Node[float64] {
	return graph.NewUnary(x, math.Sin)
}

// Cos returns a node computing the cosine of x (radians).
func Cos(x graph.Node[float64]) graph.Node[float64] {
	return graph.NewUnary(x, math.Cos)
}

// Exp returns a node computing e**x.
func Exp(x graph.Node[float64]) graph.Node[float64] {
	return graph.NewUnary(x, math.Exp)
}

// Log returns a node computing the natural logarithm of x.
func Log(x graph.Node[float64]) graph.Node[float64] {
	return graph.NewUnary(x, math.Log)
}

// Pow returns a node computing x**e for a fixed exponent e.
func Pow(x graph.Node[float64], e float64) graph.Node[float64] {
	return graph.NewUnary(x, func(v float64) float64 { return math.Pow(v, e) })
}

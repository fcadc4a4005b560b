// Package expr compiles arithmetic expressions into computational graphs.
//
// Expressions use HCL expression syntax and are parsed with hclsyntax.
// Identifiers become named inputs, number literals become constants, and
// operators and function calls map onto the constructors in package ops:
//
//	p, err := expr.Compile("x1 + x2 * sin(x2 + pow(x3, 3))")
//	if err != nil {
//	    return err
//	}
//	_ = p.Set(map[string]float64{"x1": 1, "x2": 2, "x3": 3})
//	p.Eval() // ≈ -0.32727
//
// # Syntax
//
//   - Operators: +, -, *, / and unary minus, with the usual precedence
//   - Parentheses for grouping
//   - Functions: add, sub, mul, div (two arguments), neg, sin, cos, exp,
//     log (one argument) and pow(x, e) where e must be a number literal
//
// # Sharing
//
// Every occurrence of the same identifier refers to the same input node, so
// "x + x" builds a diamond rather than two independent inputs. Compiling the
// same source twice yields two independent graphs.
//
// # Inspection
//
// [Program.Terms] lists the nodes of the compiled graph with their labels and
// argument links. Package nodelink uses it to draw diagrams.
package expr

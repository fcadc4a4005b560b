package expr

import (
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/matzehuels/compgraph/pkg/graph"
	"github.com/matzehuels/compgraph/pkg/ops"
)

type node = graph.Node[float64]

// function describes a callable in expressions.
type function struct {
	arity int
	// exponent marks pow, whose second argument is a literal rather than a node.
	exponent bool
	build    func(args []node) node
}

var functions = map[string]function{
	"add": {arity: 2, build: func(a []node) node { return ops.Add(a[0], a[1]) }},
	"sub": {arity: 2, build: func(a []node) node { return ops.Sub(a[0], a[1]) }},
	"mul": {arity: 2, build: func(a []node) node { return ops.Mul(a[0], a[1]) }},
	"div": {arity: 2, build: func(a []node) node { return ops.Div(a[0], a[1]) }},
	"neg": {arity: 1, build: func(a []node) node { return ops.Neg(a[0]) }},
	"sin": {arity: 1, build: func(a []node) node { return ops.Sin(a[0]) }},
	"cos": {arity: 1, build: func(a []node) node { return ops.Cos(a[0]) }},
	"exp": {arity: 1, build: func(a []node) node { return ops.Exp(a[0]) }},
	"log": {arity: 1, build: func(a []node) node { return ops.Log(a[0]) }},
	"pow": {arity: 2, exponent: true},
}

// operator is an infix arithmetic operator. name matches the equivalent
// function so both spellings label nodes the same way.
type operator struct {
	name  string
	build func(x, y node) node
}

var operators = map[*hclsyntax.Operation]operator{
	hclsyntax.OpAdd:      {"add", ops.Add},
	hclsyntax.OpSubtract: {"sub", ops.Sub},
	hclsyntax.OpMultiply: {"mul", ops.Mul},
	hclsyntax.OpDivide:   {"div", ops.Div},
}

// Functions returns the names of the functions available in expressions.
func Functions() []string {
	return slices.Sorted(maps.Keys(functions))
}

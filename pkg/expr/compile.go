package expr

import (
	"maps"
	"slices"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/compgraph/pkg/errors"
	"github.com/matzehuels/compgraph/pkg/graph"
	"github.com/matzehuels/compgraph/pkg/ops"
)

// Program is a compiled expression: the output node of a graph together with
// the named inputs it reads.
type Program struct {
	// Source is the expression the program was compiled from.
	Source string

	// Output is the terminal node of the graph.
	Output graph.Node[float64]

	inputs map[string]*graph.Input[float64]
	terms  []Term
}

// Term describes one node of a compiled program. Args holds the IDs of the
// terms the node reads, in argument order. Shared subexpressions such as a
// repeated input appear once.
type Term struct {
	ID    int
	Label string
	Kind  string
	Args  []int
	Node  graph.Node[float64]
}

// Compile parses src and builds the corresponding graph. All inputs start at
// zero.
func Compile(src string) (*Program, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, diags, "cannot parse %q", src)
	}

	b := &builder{
		inputs: make(map[string]*graph.Input[float64]),
		ids:    make(map[graph.Node[float64]]int),
	}
	out, err := b.build(parsed)
	if err != nil {
		return nil, err
	}

	return &Program{Source: src, Output: out, inputs: b.inputs, terms: b.terms}, nil
}

// MustCompile is like Compile but panics if src cannot be compiled.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Inputs returns the names of the program's inputs in sorted order.
func (p *Program) Inputs() []string {
	return slices.Sorted(maps.Keys(p.inputs))
}

// Input returns the input node with the given name.
func (p *Program) Input(name string) (*graph.Input[float64], bool) {
	in, ok := p.inputs[name]
	return in, ok
}

// Set assigns values to inputs. Either every name is known and all values
// are installed, or an UNKNOWN_VARIABLE error is returned and nothing changes.
// Inputs not mentioned keep their current value.
func (p *Program) Set(values map[string]float64) error {
	names := slices.Sorted(maps.Keys(values))
	for _, name := range names {
		if _, ok := p.inputs[name]; !ok {
			return errors.New(errors.ErrCodeUnknownVariable, "expression %q has no input %q", p.Source, name)
		}
	}
	for _, name := range names {
		p.inputs[name].Set(values[name])
	}
	return nil
}

// Terms returns the program's nodes in construction order. Arguments always
// precede the terms that read them, so the last term is the output.
func (p *Program) Terms() []Term {
	return slices.Clone(p.terms)
}

// Eval computes the program's output.
func (p *Program) Eval() float64 {
	return p.Output.Compute()
}

// builder turns an hclsyntax tree into graph nodes.
type builder struct {
	inputs map[string]*graph.Input[float64]
	ids    map[graph.Node[float64]]int
	terms  []Term
}

// record registers n as a term reading args and returns it.
func (b *builder) record(label, kind string, n graph.Node[float64], args ...graph.Node[float64]) graph.Node[float64] {
	ids := make([]int, len(args))
	for i, a := range args {
		ids[i] = b.ids[a]
	}
	id := len(b.terms)
	b.ids[n] = id
	b.terms = append(b.terms, Term{ID: id, Label: label, Kind: kind, Args: ids, Node: n})
	return n
}

func (b *builder) build(e hclsyntax.Expression) (graph.Node[float64], error) {
	switch v := e.(type) {
	case *hclsyntax.ParenthesesExpr:
		return b.build(v.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, unsupported(e, "attribute or index access")
		}
		name := v.Traversal.RootName()
		if err := errors.ValidateInputName(name); err != nil {
			// HCL identifiers may contain dashes, so "a-b" reaches us as one name.
			return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err,
				"invalid identifier %q at %s (put spaces around - to subtract)", name, v.SrcRange)
		}
		return b.input(name), nil

	case *hclsyntax.LiteralValueExpr:
		f, err := number(v)
		if err != nil {
			return nil, err
		}
		return b.record(strconv.FormatFloat(f, 'g', -1, 64), graph.KindInput, ops.Const(f)), nil

	case *hclsyntax.UnaryOpExpr:
		if v.Op != hclsyntax.OpNegate {
			return nil, unsupported(e, "logical not")
		}
		x, err := b.build(v.Val)
		if err != nil {
			return nil, err
		}
		return b.record("neg", graph.KindUnary, ops.Neg(x), x), nil

	case *hclsyntax.BinaryOpExpr:
		op, ok := operators[v.Op]
		if !ok {
			return nil, unsupported(e, "operator")
		}
		lhs, err := b.build(v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := b.build(v.RHS)
		if err != nil {
			return nil, err
		}
		return b.record(op.name, graph.KindBinary, op.build(lhs, rhs), lhs, rhs), nil

	case *hclsyntax.FunctionCallExpr:
		return b.call(v)

	default:
		return nil, unsupported(e, "expression")
	}
}

func (b *builder) input(name string) *graph.Input[float64] {
	if in, ok := b.inputs[name]; ok {
		return in
	}
	in := ops.NewInput(name)
	b.inputs[name] = in
	b.record(name, graph.KindInput, in)
	return in
}

func (b *builder) call(v *hclsyntax.FunctionCallExpr) (graph.Node[float64], error) {
	fn, ok := functions[v.Name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownFunction, "unknown function %q at %s", v.Name, v.NameRange)
	}
	if v.ExpandFinal {
		return nil, unsupported(v, "argument expansion")
	}
	if len(v.Args) != fn.arity {
		return nil, errors.New(errors.ErrCodeInvalidArity,
			"%s expects %d argument(s), got %d at %s", v.Name, fn.arity, len(v.Args), v.Range())
	}

	// pow takes its exponent as a fixed number, not a node.
	if fn.exponent {
		x, err := b.build(v.Args[0])
		if err != nil {
			return nil, err
		}
		e, err := constant(v.Args[1])
		if err != nil {
			return nil, err
		}
		label := "pow " + strconv.FormatFloat(e, 'g', -1, 64)
		return b.record(label, graph.KindUnary, ops.Pow(x, e), x), nil
	}

	args := make([]graph.Node[float64], len(v.Args))
	for i, arg := range v.Args {
		n, err := b.build(arg)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	kind := graph.KindBinary
	if fn.arity == 1 {
		kind = graph.KindUnary
	}
	return b.record(v.Name, kind, fn.build(args), args...), nil
}

// constant evaluates a literal number, optionally negated or parenthesized.
func constant(e hclsyntax.Expression) (float64, error) {
	switch v := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		return number(v)
	case *hclsyntax.ParenthesesExpr:
		return constant(v.Expression)
	case *hclsyntax.UnaryOpExpr:
		if v.Op == hclsyntax.OpNegate {
			f, err := constant(v.Val)
			return -f, err
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidExpression, "exponent must be a number literal at %s", e.Range())
}

func number(v *hclsyntax.LiteralValueExpr) (float64, error) {
	if v.Val.IsNull() || !v.Val.Type().Equals(cty.Number) {
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"expected a number, got %s at %s", v.Val.Type().FriendlyName(), v.SrcRange)
	}
	f, _ := v.Val.AsBigFloat().Float64()
	return f, nil
}

func unsupported(e hclsyntax.Expression, what string) error {
	return errors.New(errors.ErrCodeInvalidExpression, "unsupported %s at %s", what, e.Range())
}

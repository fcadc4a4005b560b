package expr

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/compgraph/pkg/errors"
	"github.com/matzehuels/compgraph/pkg/observability"
)

func round(x float64, precision int) float64 {
	m := math.Pow10(precision)
	return math.Round(x*m) / m
}

func TestCompileReference(t *testing.T) {
	sources := []string{
		"add(x1, mul(x2, sin(add(x2, pow(x3, 3)))))",
		"x1 + x2 * sin(x2 + pow(x3, 3))",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			p, err := Compile(src)
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			if got := p.Inputs(); !slices.Equal(got, []string{"x1", "x2", "x3"}) {
				t.Errorf("Inputs() = %v", got)
			}

			if err := p.Set(map[string]float64{"x1": 1, "x2": 2, "x3": 3}); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if got := round(p.Eval(), 5); got != -0.32727 {
				t.Errorf("first run = %v, want -0.32727", got)
			}

			if err := p.Set(map[string]float64{"x1": 2, "x2": 3, "x3": 4}); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if got := round(p.Eval(), 5); got != -0.56656 {
				t.Errorf("second run = %v, want -0.56656", got)
			}
		})
	}
}

func TestCompileArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"1 + 2", 3},
		{"2 * 3 + 4", 10},
		{"2 * (3 + 4)", 14},
		{"10 / 4", 2.5},
		{"7 - 10", -3},
		{"-5", -5},
		{"-(2 + 3)", -5},
		{"neg(2)", -2},
		{"pow(2, 10)", 1024},
		{"pow(4, -1)", 0.25},
		{"pow(9, (0.5))", 3},
		{"sub(1, div(1, 4))", 0.75},
		{"exp(0) + cos(0) + sin(0) + log(1)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.src, err)
			}
			if got := p.Eval(); got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
			if len(p.Inputs()) != 0 {
				t.Errorf("Inputs() = %v, want none", p.Inputs())
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		src  string
		code errors.Code
	}{
		{"1 +", errors.ErrCodeInvalidExpression},
		{"tan(x)", errors.ErrCodeUnknownFunction},
		{"add(x)", errors.ErrCodeInvalidArity},
		{"sin(x, y)", errors.ErrCodeInvalidArity},
		{"pow(x, y)", errors.ErrCodeInvalidExpression},
		{"pow(x, 1 + 1)", errors.ErrCodeInvalidExpression},
		{"x.y + 1", errors.ErrCodeInvalidExpression},
		{"x[0]", errors.ErrCodeInvalidExpression},
		{`"text"`, errors.ErrCodeInvalidExpression},
		{"true + 1", errors.ErrCodeInvalidExpression},
		{"!x", errors.ErrCodeInvalidExpression},
		{"x % 2", errors.ErrCodeInvalidExpression},
		{"x == 1 ? 1 : 0", errors.ErrCodeInvalidExpression},
		{"sin(y...)", errors.ErrCodeInvalidExpression},
		{"a-b", errors.ErrCodeInvalidExpression},
		{"x + sin(a-1)", errors.ErrCodeInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Compile(tt.src)
			if err == nil {
				t.Fatalf("Compile(%q) should fail", tt.src)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Compile(%q) code = %v, want %v (%v)", tt.src, errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestSubtractionNeedsSpaces(t *testing.T) {
	p, err := Compile("a - b")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if err := p.Set(map[string]float64{"a": 5, "b": 2}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := p.Eval(); got != 3 {
		t.Errorf("Eval() = %v, want 3", got)
	}

	_, err = Compile("a-b")
	if err == nil || !strings.Contains(err.Error(), "spaces around -") {
		t.Errorf("Compile(%q) error = %v, want a hint about spacing", "a-b", err)
	}
}

func TestSharedIdentifiers(t *testing.T) {
	counter := &observability.Counter{}
	observability.SetGraphHooks(counter)
	defer observability.Reset()

	p := MustCompile("sin(x) + sin(x) * x")
	if got := p.Inputs(); !slices.Equal(got, []string{"x"}) {
		t.Fatalf("Inputs() = %v, want [x]", got)
	}
	x, ok := p.Input("x")
	if !ok {
		t.Fatal("Input(x) not found")
	}
	if x.Dependents().Len() != 3 {
		t.Errorf("x has %d dependents, want 3", x.Dependents().Len())
	}

	x.Set(2)
	counter.Reset()
	want := math.Sin(2) + math.Sin(2)*2
	if got := p.Eval(); got != want {
		t.Errorf("Eval() = %v, want %v", got, want)
	}
	// two sin nodes, one mul, one add
	if got := counter.Snapshot().Misses; got != 4 {
		t.Errorf("Misses = %d, want 4", got)
	}

	counter.Reset()
	p.Eval()
	if got := counter.Snapshot().Misses; got != 0 {
		t.Errorf("second Eval() missed %d times, want 0", got)
	}
}

func TestSetUnknownInput(t *testing.T) {
	p := MustCompile("a + b")
	if err := p.Set(map[string]float64{"a": 1, "b": 2}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	err := p.Set(map[string]float64{"a": 10, "c": 3})
	if !errors.Is(err, errors.ErrCodeUnknownVariable) {
		t.Fatalf("Set() error = %v, want %s", err, errors.ErrCodeUnknownVariable)
	}
	// Nothing is applied on failure.
	if got := p.Eval(); got != 3 {
		t.Errorf("Eval() = %v, want 3", got)
	}
}

func TestSetPartial(t *testing.T) {
	p := MustCompile("a - b")
	_ = p.Set(map[string]float64{"a": 5, "b": 2})
	if got := p.Eval(); got != 3 {
		t.Fatalf("Eval() = %v, want 3", got)
	}
	_ = p.Set(map[string]float64{"b": 10})
	if got := p.Eval(); got != -5 {
		t.Errorf("Eval() = %v, want -5", got)
	}
}

func TestCompileIndependentGraphs(t *testing.T) {
	a := MustCompile("x * 2")
	b := MustCompile("x * 2")
	_ = a.Set(map[string]float64{"x": 1})
	_ = b.Set(map[string]float64{"x": 5})
	if a.Eval() != 2 || b.Eval() != 10 {
		t.Errorf("Eval() = %v and %v, want 2 and 10", a.Eval(), b.Eval())
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on invalid input")
		}
	}()
	MustCompile("(")
}

func TestFunctions(t *testing.T) {
	want := []string{"add", "cos", "div", "exp", "log", "mul", "neg", "pow", "sin", "sub"}
	if got := Functions(); !slices.Equal(got, want) {
		t.Errorf("Functions() = %v, want %v", got, want)
	}
}

func TestTerms(t *testing.T) {
	p := MustCompile("x * sin(x) + pow(x, 2)")
	terms := p.Terms()

	labels := make([]string, len(terms))
	for i, term := range terms {
		labels[i] = term.Label
		if term.ID != i {
			t.Errorf("terms[%d].ID = %d", i, term.ID)
		}
		for _, arg := range term.Args {
			if arg >= term.ID {
				t.Errorf("term %q reads later term %d", term.Label, arg)
			}
		}
	}

	want := []string{"x", "sin", "mul", "pow 2", "add"}
	if !slices.Equal(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}

	if got := terms[2].Args; !slices.Equal(got, []int{0, 1}) {
		t.Errorf("mul args = %v, want [0 1]", got)
	}
	if got := terms[4].Args; !slices.Equal(got, []int{2, 3}) {
		t.Errorf("add args = %v, want [2 3]", got)
	}
	if terms[len(terms)-1].Node != p.Output {
		t.Error("last term should be the output node")
	}
	if terms[1].Kind != "unary" || terms[0].Kind != "input" {
		t.Errorf("kinds = %q, %q", terms[0].Kind, terms[1].Kind)
	}
}

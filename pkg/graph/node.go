package graph

import "github.com/matzehuels/compgraph/pkg/observability"

// Node kinds reported to [observability.GraphHooks].
const (
	KindInput  = "input"
	KindUnary  = "unary"
	KindBinary = "binary"
)

// Node is a participant in a computational graph.
type Node[T any] interface {
	// Compute returns the node's current output, evaluating upstream nodes
	// only if the cached value has been invalidated.
	Compute() T

	// Invalidate clears the node's cached value, if any, and then invalidates
	// every transitive dependent before returning.
	Invalidate()

	// AddDependent registers d to be invalidated whenever this node's value
	// changes.
	AddDependent(d Dependent[T])
}

// Input is a leaf node holding a directly settable value. An Input that has
// never been set computes to the zero value of T.
type Input[T any] struct {
	name  string
	value T
	deps  Dependencies[T]
}

// NewInput creates an input node. The name is used for diagnostics only.
func NewInput[T any](name string) *Input[T] {
	return &Input[T]{name: name}
}

// Name returns the diagnostic name given to [NewInput].
func (in *Input[T]) Name() string {
	return in.name
}

// Set installs a new value. Every transitive dependent is invalidated before
// the value changes, so a later Compute anywhere downstream observes x.
func (in *Input[T]) Set(x T) {
	observability.Graph().OnInputSet(in.name)
	in.Invalidate()
	in.value = x
}

// Compute returns the stored value.
func (in *Input[T]) Compute() T {
	return in.value
}

// Invalidate propagates invalidation to the dependents. Inputs have no cache
// of their own.
func (in *Input[T]) Invalidate() {
	observability.Graph().OnInvalidate(KindInput)
	in.deps.Invalidate()
}

// AddDependent registers d for invalidation.
func (in *Input[T]) AddDependent(d Dependent[T]) {
	in.deps.Add(d)
}

// Dependents returns the list of registered dependents.
func (in *Input[T]) Dependents() *Dependencies[T] {
	return &in.deps
}

var _ Node[float64] = (*Input[float64])(nil)

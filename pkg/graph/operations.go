package graph

import "github.com/matzehuels/compgraph/pkg/observability"

// Unary is an interior node applying op to the output of a single upstream
// node. The result is memoized until the upstream value changes.
type Unary[T any] struct {
	x     Node[T]
	op    func(T) T
	cache Cache[T]
	deps  Dependencies[T]
}

// NewUnary creates a node computing op(x.Compute()) and registers it as a
// dependent of x. The new node holds x strongly; x only holds a weak
// back-reference.
func NewUnary[T any](x Node[T], op func(T) T) *Unary[T] {
	u := &Unary[T]{x: x, op: op}
	x.AddDependent(WeakRef[T](u))
	return u
}

// Compute returns the cached value, or applies op to the upstream output on a
// cache miss.
func (u *Unary[T]) Compute() T {
	return u.cache.GetOrElse(u.eval)
}

func (u *Unary[T]) eval() T {
	observability.Graph().OnCacheMiss(KindUnary)
	return u.op(u.x.Compute())
}

// Invalidate clears the cache, then invalidates the dependents.
func (u *Unary[T]) Invalidate() {
	observability.Graph().OnInvalidate(KindUnary)
	u.cache.Invalidate()
	u.deps.Invalidate()
}

// AddDependent registers d for invalidation.
func (u *Unary[T]) AddDependent(d Dependent[T]) {
	u.deps.Add(d)
}

// Cached returns the memoized value without computing anything.
func (u *Unary[T]) Cached() (T, bool) {
	return u.cache.Get()
}

// Dependents returns the list of registered dependents.
func (u *Unary[T]) Dependents() *Dependencies[T] {
	return &u.deps
}

// Binary is an interior node applying op to the outputs of two upstream
// nodes. Both inputs may be the same node.
type Binary[T any] struct {
	x, y  Node[T]
	op    func(T, T) T
	cache Cache[T]
	deps  Dependencies[T]
}

// NewBinary creates a node computing op(x.Compute(), y.Compute()) and
// registers it as a dependent of both x and y. When x and y are the same node
// the registration happens twice, which is harmless since invalidation is
// idempotent.
func NewBinary[T any](x, y Node[T], op func(T, T) T) *Binary[T] {
	b := &Binary[T]{x: x, y: y, op: op}
	ref := WeakRef[T](b)
	x.AddDependent(ref)
	y.AddDependent(ref)
	return b
}

// Compute returns the cached value, or applies op to the upstream outputs on
// a cache miss. x is evaluated before y.
func (b *Binary[T]) Compute() T {
	return b.cache.GetOrElse(b.eval)
}

func (b *Binary[T]) eval() T {
	observability.Graph().OnCacheMiss(KindBinary)
	return b.op(b.x.Compute(), b.y.Compute())
}

// Invalidate clears the cache, then invalidates the dependents.
func (b *Binary[T]) Invalidate() {
	observability.Graph().OnInvalidate(KindBinary)
	b.cache.Invalidate()
	b.deps.Invalidate()
}

// AddDependent registers d for invalidation.
func (b *Binary[T]) AddDependent(d Dependent[T]) {
	b.deps.Add(d)
}

// Cached returns the memoized value without computing anything.
func (b *Binary[T]) Cached() (T, bool) {
	return b.cache.Get()
}

// Dependents returns the list of registered dependents.
func (b *Binary[T]) Dependents() *Dependencies[T] {
	return &b.deps
}

var (
	_ Node[float64] = (*Unary[float64])(nil)
	_ Node[float64] = (*Binary[float64])(nil)
)

package graph

import "weak"

// Dependent is a non-owning reference to a node that must be invalidated when
// an upstream value changes. Holding a Dependent never keeps the node alive.
//
// Build one with [WeakRef]. The zero Dependent refers to nothing.
type Dependent[T any] struct {
	ref func() Node[T]
}

// WeakRef returns a non-owning reference to n. Once n becomes unreachable
// through strong references and is collected, the reference reports nil.
//
//	x.AddDependent(graph.WeakRef[float64](consumer))
func WeakRef[T any, N any, P interface {
	*N
	Node[T]
}](n P) Dependent[T] {
	w := weak.Make((*N)(n))
	return Dependent[T]{ref: func() Node[T] {
		if p := w.Value(); p != nil {
			return P(p)
		}
		return nil
	}}
}

// Node returns the referenced node, or nil if it has been collected.
func (d Dependent[T]) Node() Node[T] {
	if d.ref == nil {
		return nil
	}
	return d.ref()
}

// Live reports whether the referenced node is still reachable.
func (d Dependent[T]) Live() bool {
	return d.Node() != nil
}

// Dependencies is an ordered list of non-owning references to the nodes that
// consume a node's value.
//
// Dead entries are skipped during invalidation but never removed, so the list
// only grows. The zero value is an empty list. Not safe for concurrent use.
type Dependencies[T any] struct {
	refs []Dependent[T]
}

// Add appends dep to the list.
func (d *Dependencies[T]) Add(dep Dependent[T]) {
	d.refs = append(d.refs, dep)
}

// Invalidate calls Invalidate on every live dependent in insertion order.
func (d *Dependencies[T]) Invalidate() {
	for _, ref := range d.refs {
		if n := ref.Node(); n != nil {
			n.Invalidate()
		}
	}
}

// Len returns the number of registered entries, dead ones included.
func (d *Dependencies[T]) Len() int {
	return len(d.refs)
}

// Live returns the number of entries whose node is still reachable.
func (d *Dependencies[T]) Live() int {
	n := 0
	for _, ref := range d.refs {
		if ref.Live() {
			n++
		}
	}
	return n
}

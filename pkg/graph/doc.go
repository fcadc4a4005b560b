// Package graph provides lazily evaluated, memoizing computational graph nodes.
//
// A graph is built bottom-up from [Input] leaves and interior [Unary] and
// [Binary] nodes. There is no graph container: the graph is just the nodes and
// the links between them.
//
// # Evaluation
//
// Evaluation is pull-based. [Node.Compute] on an interior node returns its
// cached value if one is present; otherwise it computes the upstream values,
// applies the node's operation and stores the result in the node's [Cache].
// Nothing is computed on construction or when an input changes.
//
// # Invalidation
//
// Every node keeps a [Dependencies] list of the nodes that read it. Calling
// [Input.Set] first invalidates the input's dependents, which clear their own
// caches and invalidate their dependents in turn, and only then installs the
// new value. The whole downstream cone is empty before Set returns, so the next
// Compute observes the new value.
//
// Reaching a node twice through a diamond simply clears an already empty cache
// again. It causes redundant Invalidate calls but never redundant computation.
//
// # Ownership
//
// Interior nodes hold strong references to the nodes they read. The reverse
// links held in [Dependencies] are weak references ([WeakRef]), so a consumer
// that is no longer referenced by anything else can be collected even though
// its inputs still list it. Dead entries are skipped, not pruned.
//
// # Basic Usage
//
//	x := graph.NewInput[float64]("x")
//	y := graph.NewInput[float64]("y")
//	sum := graph.NewBinary[float64](x, y, func(a, b float64) float64 { return a + b })
//
//	x.Set(1)
//	y.Set(2)
//	sum.Compute() // 3
//
//	y.Set(-1)
//	sum.Compute() // 0
//
// Package ops provides ready-made float64 operators built on these
// constructors.
//
// # Concurrency
//
// Nodes are not safe for concurrent use. Compute, Invalidate and Set mutate
// caches and dependency lists without synchronization; a graph must be used
// from one goroutine at a time.
package graph

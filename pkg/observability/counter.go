package observability

import "sync/atomic"

// Counter is a GraphHooks implementation that counts events.
// The zero value is ready to use and safe for concurrent use.
type Counter struct {
	misses        atomic.Int64
	invalidations atomic.Int64
	sets          atomic.Int64
}

// CounterSnapshot is a point-in-time copy of a Counter.
type CounterSnapshot struct {
	Misses        int64 // operations evaluated on a cache miss
	Invalidations int64 // Invalidate calls, including repeats through diamonds
	Sets          int64 // input values installed
}

func (c *Counter) OnCacheMiss(string)  { c.misses.Add(1) }
func (c *Counter) OnInvalidate(string) { c.invalidations.Add(1) }
func (c *Counter) OnInputSet(string)   { c.sets.Add(1) }

// Snapshot returns the current counts.
func (c *Counter) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
		Sets:          c.sets.Load(),
	}
}

// Reset zeroes all counts.
func (c *Counter) Reset() {
	c.misses.Store(0)
	c.invalidations.Store(0)
	c.sets.Store(0)
}

var _ GraphHooks = (*Counter)(nil)

package graph

// Cache is a single-slot memoization cell. It is either empty or holds the
// last value produced by the function handed to [Cache.GetOrElse].
//
// T is expected to be a small value type (a scalar); values are copied in and
// out of the cell. The zero Cache is empty and ready to use. A Cache belongs to
// exactly one node and is not safe for concurrent use.
type Cache[T any] struct {
	val   T
	valid bool
}

// GetOrElse returns the stored value if the cache is valid. Otherwise it calls
// f exactly once, stores the result and returns it.
//
// If f itself causes this cache to be invalidated, the value returned by f is
// still stored.
func (c *Cache[T]) GetOrElse(f func() T) T {
	if !c.valid {
		v := f()
		c.val, c.valid = v, true
	}
	return c.val
}

// Get returns the stored value and true, or the zero value and false if the
// cache is empty. It has no side effects.
func (c *Cache[T]) Get() (T, bool) {
	return c.val, c.valid
}

// Valid reports whether the cache currently holds a value.
func (c *Cache[T]) Valid() bool {
	return c.valid
}

// Invalidate empties the cache, discarding any stored value.
func (c *Cache[T]) Invalidate() {
	var zero T
	c.val, c.valid = zero, false
}

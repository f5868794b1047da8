package asyncmultimap

import (
	"iter"
	"slices"
	"sync/atomic"
)

// ChoosableResultSet is an immutable snapshot of the values found for one key,
// with a round-robin cursor for picking one of them.
// The cursor belongs to the instance; distinct lookups never share it.
type ChoosableResultSet[V any] struct {
	values []V
	cursor atomic.Uint64
}

// NewChoosableResultSet creates a snapshot of values.
func NewChoosableResultSet[V any](values []V) *ChoosableResultSet[V] {
	return &ChoosableResultSet[V]{values: slices.Clone(values)}
}

// Len returns the number of values.
func (s *ChoosableResultSet[V]) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the set has no value.
func (s *ChoosableResultSet[V]) IsEmpty() bool {
	return len(s.values) == 0
}

// All returns an iterator over the values in store order.
func (s *ChoosableResultSet[V]) All() iter.Seq[V] {
	return slices.Values(s.values)
}

// Values returns a copy of the values in store order.
func (s *ChoosableResultSet[V]) Values() []V {
	return slices.Clone(s.values)
}

// Choose returns the value under the cursor and advances it, wrapping to the first value
// after the last one. It returns false if the set is empty.
// It is safe to call from multiple goroutines.
func (s *ChoosableResultSet[V]) Choose() (V, bool) {
	n := uint64(len(s.values))
	if n == 0 {
		var zero V
		return zero, false
	}

	for {
		cur := s.cursor.Load()
		next := cur + 1
		if next >= n {
			next = 0
		}
		if s.cursor.CompareAndSwap(cur, next) {
			return s.values[cur], true
		}
	}
}

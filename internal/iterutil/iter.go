package iterutil

import (
	"iter"
)

// Uniq returns a new iterator that yields the unique values from the input iterator.
// The order of the output is the same as the input.
func Uniq[V comparable](seq iter.Seq[V]) iter.Seq[V] {
	return iter.Seq[V](func(yield func(V) bool) {
		seen := map[V]struct{}{}
		for v := range seq {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				if !yield(v) {
					return
				}
			}
		}
	})
}

package asyncmultimap

import (
	"context"
	"iter"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
// Values are held with set semantics, so they must be comparable.
type ValueConstraint interface {
	comparable
}

// Entry is a key-value pair.
type Entry[K KeyConstraint, V ValueConstraint] struct {
	// Key is the key of the entry.
	Key K

	// Value is one of the values associated with the key.
	Value V
}

// MultiMapStore is the distributed multimap the adapter works on.
// Implementations must be thread-safe. Calls may block; the adapter never calls them on
// the caller's goroutine.
type MultiMapStore[K KeyConstraint, V ValueConstraint] interface {
	// Put adds value to the set of values under key.
	// Adding a value that is already present is a no-op.
	Put(context.Context, K, V) error

	// Get returns the values currently associated with key.
	// An absent key yields an empty slice and no error.
	Get(context.Context, K) ([]V, error)

	// Remove removes value from the set under key and reports whether it was present.
	Remove(context.Context, K, V) (bool, error)

	// RemoveValue removes value from the set of every key.
	RemoveValue(context.Context, V) error
}

// KeyIndex is the auxiliary set of every key ever added to a MultiMapStore.
// It is maintained best-effort and may hold keys that no longer have any value.
// Implementations must be thread-safe.
type KeyIndex[K KeyConstraint] interface {
	// Add adds key to the index. Adding an existing key is a no-op.
	Add(context.Context, K) error

	// Iterator opens a cursor over the keys currently known to the index.
	Iterator(context.Context) (iter.Seq[K], error)
}

// AsyncMultiMap is the callback-driven multimap API.
// No method blocks the caller; each delivers its outcome to the handler exactly once.
// A nil handler discards the outcome.
type AsyncMultiMap[K KeyConstraint, V ValueConstraint] interface {
	// Add registers key in the key index and then adds value under key.
	Add(ctx context.Context, key K, value V, handler Handler[struct{}])

	// Get looks up the values under key. An absent key yields an empty set.
	Get(ctx context.Context, key K, handler Handler[*ChoosableResultSet[V]])

	// Remove removes the (key, value) pair and reports whether it existed.
	Remove(ctx context.Context, key K, value V, handler Handler[bool])

	// RemoveAllForValue removes value from every key.
	RemoveAllForValue(ctx context.Context, value V, handler Handler[struct{}])

	// RemoveAllMatching removes values across all keys known to the key index.
	RemoveAllMatching(ctx context.Context, predicate func(V) bool, handler Handler[struct{}])
}

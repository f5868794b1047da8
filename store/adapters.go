package store

import (
	"context"
	"iter"

	asyncmultimap "github.com/karupanerura/async-multimap"
)

var _ asyncmultimap.MultiMapStore[uint8, struct{}] = (*FunctionsMultiMap[uint8, struct{}])(nil)

// FunctionsMultiMap is an asyncmultimap.MultiMapStore implementation that uses functions to perform the operations.
type FunctionsMultiMap[K asyncmultimap.KeyConstraint, V asyncmultimap.ValueConstraint] struct {
	// PutFunc adds a value to the set under a key.
	PutFunc func(context.Context, K, V) error

	// GetFunc returns the values under a key. An absent key must yield an empty result.
	GetFunc func(context.Context, K) ([]V, error)

	// RemoveFunc removes a (key, value) pair and reports whether it existed.
	RemoveFunc func(context.Context, K, V) (bool, error)

	// RemoveValueFunc removes a value from the set of every key.
	RemoveValueFunc func(context.Context, V) error
}

// Put calls the PutFunc function.
func (s *FunctionsMultiMap[K, V]) Put(ctx context.Context, key K, value V) error {
	return s.PutFunc(ctx, key, value)
}

// Get calls the GetFunc function.
func (s *FunctionsMultiMap[K, V]) Get(ctx context.Context, key K) ([]V, error) {
	return s.GetFunc(ctx, key)
}

// Remove calls the RemoveFunc function.
func (s *FunctionsMultiMap[K, V]) Remove(ctx context.Context, key K, value V) (bool, error) {
	return s.RemoveFunc(ctx, key, value)
}

// RemoveValue calls the RemoveValueFunc function.
func (s *FunctionsMultiMap[K, V]) RemoveValue(ctx context.Context, value V) error {
	return s.RemoveValueFunc(ctx, value)
}

var _ asyncmultimap.KeyIndex[uint8] = (*FunctionsKeyIndex[uint8])(nil)

// FunctionsKeyIndex is an asyncmultimap.KeyIndex implementation that uses functions to perform the operations.
type FunctionsKeyIndex[K asyncmultimap.KeyConstraint] struct {
	AddFunc      func(context.Context, K) error
	IteratorFunc func(context.Context) (iter.Seq[K], error)
}

// Add calls the AddFunc function.
func (i *FunctionsKeyIndex[K]) Add(ctx context.Context, key K) error {
	return i.AddFunc(ctx, key)
}

// Iterator calls the IteratorFunc function.
func (i *FunctionsKeyIndex[K]) Iterator(ctx context.Context) (iter.Seq[K], error) {
	return i.IteratorFunc(ctx)
}

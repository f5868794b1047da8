package memstore

import (
	"context"
	"iter"
	"slices"
	"sync"

	asyncmultimap "github.com/karupanerura/async-multimap"
)

// KeyIndex is an in-memory asyncmultimap.KeyIndex.
// Keys are never removed.
type KeyIndex[K asyncmultimap.KeyConstraint] struct {
	mu   sync.RWMutex
	keys []K
	seen map[K]struct{}
}

var _ asyncmultimap.KeyIndex[uint8] = (*KeyIndex[uint8])(nil)

// NewKeyIndex creates a new in-memory key index.
func NewKeyIndex[K asyncmultimap.KeyConstraint]() *KeyIndex[K] {
	return &KeyIndex[K]{seen: map[K]struct{}{}}
}

// Add adds key to the index. Adding an existing key is a no-op.
func (i *KeyIndex[K]) Add(_ context.Context, key K) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.seen[key]; ok {
		return nil
	}
	i.seen[key] = struct{}{}
	i.keys = append(i.keys, key)
	return nil
}

// Iterator returns a cursor over a snapshot of the keys in insertion order.
func (i *KeyIndex[K]) Iterator(_ context.Context) (iter.Seq[K], error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return slices.Values(slices.Clone(i.keys)), nil
}

// Len returns the number of keys in the index.
func (i *KeyIndex[K]) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.keys)
}

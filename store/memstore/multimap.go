package memstore

import (
	"context"
	"sync"

	asyncmultimap "github.com/karupanerura/async-multimap"
)

// valueSet is a set of values that remembers an iteration order.
// Removal swaps the last value into the hole, so the order is not stable across removals.
type valueSet[V asyncmultimap.ValueConstraint] struct {
	order []V
	pos   map[V]int
}

func newValueSet[V asyncmultimap.ValueConstraint]() *valueSet[V] {
	return &valueSet[V]{pos: map[V]int{}}
}

func (s *valueSet[V]) add(v V) {
	if _, ok := s.pos[v]; ok {
		return
	}
	s.pos[v] = len(s.order)
	s.order = append(s.order, v)
}

func (s *valueSet[V]) remove(v V) bool {
	i, ok := s.pos[v]
	if !ok {
		return false
	}

	last := len(s.order) - 1
	if i != last {
		s.order[i] = s.order[last]
		s.pos[s.order[i]] = i
	}
	var zero V
	s.order[last] = zero
	s.order = s.order[:last]
	delete(s.pos, v)
	return true
}

func (s *valueSet[V]) values() []V {
	values := make([]V, len(s.order))
	copy(values, s.order)
	return values
}

type bucket[K asyncmultimap.KeyConstraint, V asyncmultimap.ValueConstraint] struct {
	m  map[K]*valueSet[V]
	mu sync.RWMutex
}

// MultiMap is an in-memory asyncmultimap.MultiMapStore.
type MultiMap[K asyncmultimap.KeyConstraint, V asyncmultimap.ValueConstraint] struct {
	buckets []*bucket[K, V]
	options options[K]
}

var _ asyncmultimap.MultiMapStore[uint8, struct{}] = (*MultiMap[uint8, struct{}])(nil)

// NewMultiMap creates a new in-memory multimap.
// Keys are distributed across buckets by the key hash.
func NewMultiMap[K asyncmultimap.KeyConstraint, V asyncmultimap.ValueConstraint](opts ...Option[K]) *MultiMap[K, V] {
	options := defaultOptions[K]()
	for _, opt := range opts {
		opt.apply(&options)
	}

	buckets := make([]*bucket[K, V], options.bucketsSize)
	for i := range buckets {
		buckets[i] = &bucket[K, V]{m: map[K]*valueSet[V]{}}
	}
	return &MultiMap[K, V]{
		buckets: buckets,
		options: options,
	}
}

// resolveBucket returns the bucket that corresponds to the given key.
func (s *MultiMap[K, V]) resolveBucket(key K) *bucket[K, V] {
	index := s.options.hashKey(key) % len(s.buckets)
	if index < 0 {
		index *= -1
	}
	return s.buckets[index]
}

// Put adds value under key.
func (s *MultiMap[K, V]) Put(_ context.Context, key K, value V) error {
	bucket := s.resolveBucket(key)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	set, ok := bucket.m[key]
	if !ok {
		set = newValueSet[V]()
		bucket.m[key] = set
	}
	set.add(value)
	return nil
}

// Get returns a copy of the values under key.
func (s *MultiMap[K, V]) Get(_ context.Context, key K) ([]V, error) {
	bucket := s.resolveBucket(key)
	bucket.mu.RLock()
	defer bucket.mu.RUnlock()

	set, ok := bucket.m[key]
	if !ok {
		return []V{}, nil
	}
	return set.values(), nil
}

// Remove removes value from key. A key left without values is dropped.
func (s *MultiMap[K, V]) Remove(_ context.Context, key K, value V) (bool, error) {
	bucket := s.resolveBucket(key)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	set, ok := bucket.m[key]
	if !ok {
		return false, nil
	}
	removed := set.remove(value)
	if len(set.order) == 0 {
		delete(bucket.m, key)
	}
	return removed, nil
}

// RemoveValue removes value from every key.
// It locks every bucket in index order, so it is atomic with respect to other calls.
func (s *MultiMap[K, V]) RemoveValue(_ context.Context, value V) error {
	for _, bucket := range s.buckets {
		bucket.mu.Lock()
		defer bucket.mu.Unlock()
	}

	for _, bucket := range s.buckets {
		for key, set := range bucket.m {
			if set.remove(value) && len(set.order) == 0 {
				delete(bucket.m, key)
			}
		}
	}
	return nil
}

// Len returns the number of keys that hold at least one value.
func (s *MultiMap[K, V]) Len() int {
	n := 0
	for _, bucket := range s.buckets {
		bucket.mu.RLock()
		n += len(bucket.m)
		bucket.mu.RUnlock()
	}
	return n
}

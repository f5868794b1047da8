package memstore_test

import (
	"strconv"
	"testing"

	asyncmultimap "github.com/karupanerura/async-multimap"
	"github.com/karupanerura/async-multimap/store/memstore"
	"github.com/karupanerura/async-multimap/store/storetest"
)

func BenchmarkPut(b *testing.B) {
	entries := make([]asyncmultimap.Entry[uint8, int8], 1024)
	for i := range entries {
		entries[i] = asyncmultimap.Entry[uint8, int8]{Key: uint8(i % 256), Value: int8(i % 7)}
	}

	b.Run("SingleBucket", func(b *testing.B) {
		store := memstore.NewMultiMap[uint8, int8](memstore.WithBucketsSize[uint8](1))
		storetest.BenchmarkPut(b, store, entries)
	})
	b.Run("MultipleBucket", func(b *testing.B) {
		store := memstore.NewMultiMap[uint8, int8](memstore.WithKeyHash(func(u uint8) int {
			return int(u)
		}))
		storetest.BenchmarkPut(b, store, entries)
	})
}

func TestMultiMapConsistency(t *testing.T) {
	t.Parallel()
	for i := range 7 {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			t.Parallel()

			storetest.TestMultiMapConsistency(t, func() (asyncmultimap.MultiMapStore[uint8, int8], func()) {
				return memstore.NewMultiMap[uint8, int8](memstore.WithBucketsSize[uint8](i + 1)), func() {}
			})
		})
	}
}

func TestKeyHash(t *testing.T) {
	t.Parallel()
	for i := range 7 {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			t.Parallel()

			bucketSize := i + 1
			storetest.TestMultiMapConsistency(t, func() (asyncmultimap.MultiMapStore[uint8, int8], func()) {
				return memstore.NewMultiMap[uint8, int8](
					memstore.WithBucketsSize[uint8](bucketSize),
					memstore.WithKeyHash(func(key uint8) int {
						return -int(key)
					}),
				), func() {}
			})
		})
	}
}

func TestMultiMapLen(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := memstore.NewMultiMap[string, int](memstore.WithBucketsSize[string](4))
	for _, e := range []asyncmultimap.Entry[string, int]{{Key: "a", Value: 1}, {Key: "a", Value: 2}, {Key: "b", Value: 1}} {
		if err := store.Put(ctx, e.Key, e.Value); err != nil {
			t.Fatal(err)
		}
	}
	if got := store.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	if _, err := store.Remove(ctx, "b", 1); err != nil {
		t.Fatal(err)
	}
	if got := store.Len(); got != 1 {
		t.Errorf("Len() after emptying a key = %d, want 1", got)
	}

	if err := store.RemoveValue(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := store.RemoveValue(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if got := store.Len(); got != 0 {
		t.Errorf("Len() after RemoveValue = %d, want 0", got)
	}
}

// storetest package provides generic test cases for multimap store implementations.
package storetest

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	asyncmultimap "github.com/karupanerura/async-multimap"
	"golang.org/x/sync/errgroup"
)

// BenchmarkPut benchmarks the Put method of the multimap store.
func BenchmarkPut[K asyncmultimap.KeyConstraint, V asyncmultimap.ValueConstraint](b *testing.B, store asyncmultimap.MultiMapStore[K, V], entries []asyncmultimap.Entry[K, V]) {
	ctx := b.Context()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entry := entries[i%len(entries)]
		if err := store.Put(ctx, entry.Key, entry.Value); err != nil {
			b.Fatal(err)
		}
	}
}

var sortValues = cmpopts.SortSlices(func(a, b int8) bool { return a < b })

func newPatterns() []asyncmultimap.Entry[uint8, int8] {
	patterns := []asyncmultimap.Entry[uint8, int8]{
		{Key: 0, Value: 1},
		{Key: 0, Value: 2},
		{Key: 1, Value: 2},
		{Key: 2, Value: 3},
		{Key: 3, Value: 4},
		{Key: 3, Value: 5},
		{Key: 3, Value: 6},
		{Key: 251, Value: 124},
		{Key: 252, Value: 2},
		{Key: 253, Value: 126},
		{Key: 254, Value: 127},
		{Key: 255, Value: -128},
	}
	rand.Shuffle(len(patterns), func(i, j int) {
		patterns[i], patterns[j] = patterns[j], patterns[i]
	})
	return patterns
}

func groupByKey(patterns []asyncmultimap.Entry[uint8, int8]) map[uint8][]int8 {
	want := map[uint8][]int8{}
	for _, pattern := range patterns {
		want[pattern.Key] = append(want[pattern.Key], pattern.Value)
	}
	return want
}

func putAll(t *testing.T, store asyncmultimap.MultiMapStore[uint8, int8], patterns []asyncmultimap.Entry[uint8, int8]) {
	t.Helper()

	var eg errgroup.Group
	for _, pattern := range patterns {
		eg.Go(func() error {
			return store.Put(t.Context(), pattern.Key, pattern.Value)
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}
}

func getAll(t *testing.T, store asyncmultimap.MultiMapStore[uint8, int8], keys []uint8) map[uint8][]int8 {
	t.Helper()

	var eg errgroup.Group
	results := make([][]int8, len(keys))
	for i, key := range keys {
		eg.Go(func() error {
			values, err := store.Get(t.Context(), key)
			if err != nil {
				return err
			}
			results[i] = values
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	got := make(map[uint8][]int8, len(keys))
	for i, key := range keys {
		got[key] = results[i]
	}
	return got
}

// TestMultiMapConsistency tests the multimap semantics of the store under concurrent access.
func TestMultiMapConsistency(t *testing.T, provider func() (asyncmultimap.MultiMapStore[uint8, int8], func())) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		t.Run("PutAndGet", func(t *testing.T) {
			t.Parallel()

			store, release := provider()
			defer release()

			patterns := newPatterns()
			want := groupByKey(patterns)
			keys := make([]uint8, 0, len(want))
			for key := range want {
				keys = append(keys, key)
			}

			for key, values := range getAll(t, store, keys) {
				if values == nil {
					t.Errorf("key=%d: absent key must yield an empty result, not nil", key)
				} else if len(values) != 0 {
					t.Errorf("key=%d: unexpected values %v", key, values)
				}
			}

			putAll(t, store, patterns)
			if df := cmp.Diff(want, getAll(t, store, keys), sortValues); df != "" {
				t.Errorf("values diff=%s", df)
			}
		})

		t.Run("PutIsIdempotent", func(t *testing.T) {
			t.Parallel()

			store, release := provider()
			defer release()

			patterns := newPatterns()
			putAll(t, store, patterns)
			putAll(t, store, patterns)

			want := groupByKey(patterns)
			keys := make([]uint8, 0, len(want))
			for key := range want {
				keys = append(keys, key)
			}
			if df := cmp.Diff(want, getAll(t, store, keys), sortValues); df != "" {
				t.Errorf("values diff=%s", df)
			}
		})

		t.Run("Remove", func(t *testing.T) {
			t.Parallel()

			store, release := provider()
			defer release()

			patterns := newPatterns()
			putAll(t, store, patterns)

			removed, err := store.Remove(t.Context(), 100, 1)
			if err != nil {
				t.Fatal(err)
			}
			if removed {
				t.Error("never added pair must not be reported as removed")
			}

			var eg errgroup.Group
			results := make([]bool, len(patterns))
			for i, pattern := range patterns {
				eg.Go(func() error {
					removed, err := store.Remove(t.Context(), pattern.Key, pattern.Value)
					if err != nil {
						return err
					}
					results[i] = removed
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatal(err)
			}
			for i, removed := range results {
				if !removed {
					t.Errorf("pattern[%d] %+v should be removed", i, patterns[i])
				}
			}

			for _, pattern := range patterns {
				removed, err := store.Remove(t.Context(), pattern.Key, pattern.Value)
				if err != nil {
					t.Fatal(err)
				}
				if removed {
					t.Errorf("%+v removed twice", pattern)
				}

				values, err := store.Get(t.Context(), pattern.Key)
				if err != nil {
					t.Fatal(err)
				}
				if len(values) != 0 {
					t.Errorf("key=%d: unexpected values %v", pattern.Key, values)
				}
			}
		})

		t.Run("RemoveValue", func(t *testing.T) {
			t.Parallel()

			store, release := provider()
			defer release()

			patterns := newPatterns()
			putAll(t, store, patterns)

			const target int8 = 2
			if err := store.RemoveValue(t.Context(), target); err != nil {
				t.Fatal(err)
			}
			if err := store.RemoveValue(t.Context(), 99); err != nil {
				t.Fatal(err)
			}

			want := map[uint8][]int8{}
			for key, values := range groupByKey(patterns) {
				want[key] = slices.DeleteFunc(values, func(v int8) bool { return v == target })
			}
			keys := make([]uint8, 0, len(want))
			for key := range want {
				keys = append(keys, key)
			}
			if df := cmp.Diff(want, getAll(t, store, keys), sortValues, cmpopts.EquateEmpty()); df != "" {
				t.Errorf("values diff=%s", df)
			}
		})

		t.Run("GetReturnsCopy", func(t *testing.T) {
			t.Parallel()

			store, release := provider()
			defer release()

			if err := store.Put(t.Context(), 1, 1); err != nil {
				t.Fatal(err)
			}
			values, err := store.Get(t.Context(), 1)
			if err != nil {
				t.Fatal(err)
			}
			values[0] = 42

			values, err = store.Get(t.Context(), 1)
			if err != nil {
				t.Fatal(err)
			}
			if df := cmp.Diff([]int8{1}, values); df != "" {
				t.Errorf("values diff=%s", df)
			}
		})
	})
}

// TestKeyIndexConsistency tests the set semantics of the key index under concurrent access.
func TestKeyIndexConsistency(t *testing.T, provider func() (asyncmultimap.KeyIndex[uint8], func())) {
	t.Run("KeyIndex", func(t *testing.T) {
		t.Parallel()

		index, release := provider()
		defer release()

		keys, err := index.Iterator(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		for key := range keys {
			t.Errorf("unexpected key %d in empty index", key)
		}

		var eg errgroup.Group
		for i := range 64 {
			eg.Go(func() error {
				key := uint8(i % 16)
				if err := index.Add(t.Context(), key); err != nil {
					return fmt.Errorf("add %d: %w", key, err)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		keys, err = index.Iterator(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		got := slices.Collect(keys)
		slices.Sort(got)

		want := make([]uint8, 16)
		for i := range want {
			want[i] = uint8(i)
		}
		if df := cmp.Diff(want, got); df != "" {
			t.Errorf("keys diff=%s", df)
		}
	})
}

package asyncmultimap

import (
	"context"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/karupanerura/async-multimap/internal/iterutil"
	"github.com/karupanerura/async-multimap/internal/panicutil"
	"github.com/karupanerura/async-multimap/logging"
)

// removeAllMatching runs the two-phase scatter-gather behind RemoveAllMatching.
//
// Gather: a Get is issued for every indexed key and all returned values are collected
// into one deduplicated candidate set. Removal: a RemoveValue is issued for every
// candidate. No removal starts before every Get has finished. The first failure
// fails the whole operation; removals already applied are not undone.
func (m *MultiMapAdapter[K, V]) removeAllMatching(ctx context.Context, _ func(V) bool) error {
	logger := logging.Ctx(ctx)

	keys, err := m.keys.Iterator(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("remove-all-matching: unable to open key index cursor")
		return err
	}

	candidates := xsync.NewMap[V, struct{}]()
	gather := m.newPhase()
	for key := range iterutil.Uniq(keys) {
		gather.Go(func() error {
			values, err := m.store.Get(ctx, key)
			if err != nil {
				logger.Warn().Err(err).Interface("key", key).Msg("remove-all-matching: get failed")
				return err
			}
			for _, v := range values {
				candidates.Store(v, struct{}{})
			}
			return nil
		})
	}
	if err := gather.Wait(); err != nil {
		return err
	}

	m.metrics.observeCandidates(candidates.Size())
	logger.Debug().Int("candidates", candidates.Size()).Msg("remove-all-matching: gathered")

	removal := m.newPhase()
	candidates.Range(func(value V, _ struct{}) bool {
		removal.Go(func() error {
			if err := m.store.RemoveValue(ctx, value); err != nil {
				logger.Warn().Err(err).Interface("value", value).Msg("remove-all-matching: remove failed")
				return err
			}
			return nil
		})
		return true
	})
	return removal.Wait()
}

// phase is a fan-out of store calls joined by Wait, keeping the first failure.
type phase struct {
	pool *pool.Pool

	once sync.Once
	err  error
}

func (m *MultiMapAdapter[K, V]) newPhase() *phase {
	p := pool.New()
	if m.options.maxConcurrency > 0 {
		p = p.WithMaxGoroutines(m.options.maxConcurrency)
	}
	return &phase{pool: p}
}

// Go runs f concurrently. Panics and runtime.Goexit in f count as failures.
func (p *phase) Go(f func() error) {
	p.pool.Go(func() {
		panicutil.Complete(func() (struct{}, error) {
			return struct{}{}, f()
		}, func(_ struct{}, err error) {
			if err != nil {
				p.once.Do(func() { p.err = err })
			}
		})
	})
}

// Wait blocks until every call has finished and returns the first failure.
func (p *phase) Wait() error {
	p.pool.Wait()
	return p.err
}

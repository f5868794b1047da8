package asyncmultimap

import (
	"context"
	"time"

	"github.com/karupanerura/async-multimap/execctx"
	"github.com/karupanerura/async-multimap/internal/ctxsync"
	"github.com/karupanerura/async-multimap/internal/panicutil"
	"github.com/karupanerura/async-multimap/logging"
)

// MultiMapAdapter implements AsyncMultiMap on top of a MultiMapStore and a KeyIndex.
type MultiMapAdapter[K KeyConstraint, V ValueConstraint] struct {
	provider execctx.Provider
	store    MultiMapStore[K, V]
	keys     KeyIndex[K]
	options  options
	metrics  *operationMetrics
	inflight *ctxsync.Tracker
}

var _ AsyncMultiMap[uint8, struct{}] = (*MultiMapAdapter[uint8, struct{}])(nil)

// New creates a new MultiMapAdapter.
// It returns an error if a collaborator is missing or the metrics cannot be registered.
func New[K KeyConstraint, V ValueConstraint](provider execctx.Provider, store MultiMapStore[K, V], keys KeyIndex[K], opts ...Option) (*MultiMapAdapter[K, V], error) {
	switch {
	case provider == nil:
		return nil, ErrNilProvider
	case store == nil:
		return nil, ErrNilStore
	case keys == nil:
		return nil, ErrNilKeyIndex
	}
	if p, ok := provider.(*execctx.DefaultProvider); ok && (p == nil || p.Fallback == nil) {
		return nil, ErrNilExecutionContext
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}

	metrics, err := newOperationMetrics(options.registerer)
	if err != nil {
		return nil, err
	}

	return &MultiMapAdapter[K, V]{
		provider: provider,
		store:    store,
		keys:     keys,
		options:  options,
		metrics:  metrics,
		inflight: ctxsync.NewTracker(),
	}, nil
}

// Add registers key in the key index and then adds value under key.
// The two writes are sequenced but not transactional: if the map write fails,
// the index keeps the key.
func (m *MultiMapAdapter[K, V]) Add(ctx context.Context, key K, value V, handler Handler[struct{}]) {
	ctx, ec, finish, err := m.begin(ctx, opAdd)
	complete := voidHandler(ec, handler)
	if err != nil {
		complete(err)
		finish(err)
		return
	}
	go panicutil.Complete(func() (struct{}, error) {
		if err := m.keys.Add(ctx, key); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, m.store.Put(ctx, key, value)
	}, func(_ struct{}, err error) {
		complete(err)
		finish(err)
	})
}

// Get looks up the values under key and delivers them as a ChoosableResultSet.
func (m *MultiMapAdapter[K, V]) Get(ctx context.Context, key K, handler Handler[*ChoosableResultSet[V]]) {
	ctx, ec, finish, err := m.begin(ctx, opGet)
	complete := convertHandler(ec, handler, NewChoosableResultSet[V])
	if err != nil {
		complete(nil, err)
		finish(err)
		return
	}
	go panicutil.Complete(func() ([]V, error) {
		return m.store.Get(ctx, key)
	}, func(values []V, err error) {
		complete(values, err)
		finish(err)
	})
}

// Remove removes the (key, value) pair. The key stays in the key index.
func (m *MultiMapAdapter[K, V]) Remove(ctx context.Context, key K, value V, handler Handler[bool]) {
	ctx, ec, finish, err := m.begin(ctx, opRemove)
	complete := resultHandler(ec, handler)
	if err != nil {
		complete(false, err)
		finish(err)
		return
	}
	go panicutil.Complete(func() (bool, error) {
		return m.store.Remove(ctx, key, value)
	}, func(removed bool, err error) {
		complete(removed, err)
		finish(err)
	})
}

// RemoveAllForValue removes value from every key using the store's value-indexed removal.
func (m *MultiMapAdapter[K, V]) RemoveAllForValue(ctx context.Context, value V, handler Handler[struct{}]) {
	ctx, ec, finish, err := m.begin(ctx, opRemoveAllForValue)
	complete := voidHandler(ec, handler)
	if err != nil {
		complete(err)
		finish(err)
		return
	}
	go panicutil.Complete(func() (struct{}, error) {
		return struct{}{}, m.store.RemoveValue(ctx, value)
	}, func(_ struct{}, err error) {
		complete(err)
		finish(err)
	})
}

// RemoveAllMatching removes every value reachable from the keys in the key index.
//
// NOTE: predicate is accepted but not applied. All values gathered from the indexed keys are
// removed, whatever predicate returns for them. Callers relying on filtering must not use it.
func (m *MultiMapAdapter[K, V]) RemoveAllMatching(ctx context.Context, predicate func(V) bool, handler Handler[struct{}]) {
	ctx, ec, finish, err := m.begin(ctx, opRemoveAllMatching)
	complete := voidHandler(ec, handler)
	if err != nil {
		complete(err)
		finish(err)
		return
	}
	go panicutil.Complete(func() (struct{}, error) {
		return struct{}{}, m.removeAllMatching(ctx, predicate)
	}, func(_ struct{}, err error) {
		complete(err)
		finish(err)
	})
}

// Drain waits until every operation issued so far has handed its outcome to its
// execution context, or ctx is done.
func (m *MultiMapAdapter[K, V]) Drain(ctx context.Context) error {
	return m.inflight.Wait(ctx)
}

// InFlight returns the number of operations whose outcome is not yet handed over.
func (m *MultiMapAdapter[K, V]) InFlight() int {
	return m.inflight.InFlight()
}

// begin resolves the caller's execution context and starts tracking an operation.
// The returned context is detached from the caller's cancellation: once issued,
// an operation runs to completion.
// If the provider resolves no execution context, begin returns ErrNilExecutionContext
// together with a context that runs the handler on its own goroutine.
func (m *MultiMapAdapter[K, V]) begin(ctx context.Context, op string) (context.Context, execctx.ExecutionContext, func(error), error) {
	m.inflight.Begin()
	startedAt := time.Now()
	logger := logging.Ctx(ctx)

	var err error
	ec := m.provider.GetOrCreateContext(ctx)
	if ec == nil {
		logger.Error().Str("operation", op).Msg("provider resolved no execution context")
		ec, err = detachedContext{}, ErrNilExecutionContext
	} else {
		logger.Debug().Str("operation", op).Msg("operation issued")
	}

	finish := func(err error) {
		defer m.inflight.End()
		m.metrics.observe(op, startedAt, err)
		if err != nil {
			logger.Debug().Err(err).Str("operation", op).Dur("elapsed", time.Since(startedAt)).Msg("operation failed")
			return
		}
		logger.Debug().Str("operation", op).Dur("elapsed", time.Since(startedAt)).Msg("operation completed")
	}
	return context.WithoutCancel(ctx), ec, finish, err
}

// detachedContext runs each task on a new goroutine.
type detachedContext struct{}

func (detachedContext) RunOnContext(task func()) {
	go task()
}

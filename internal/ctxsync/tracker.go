package ctxsync

import (
	"context"
	"sync"
)

// Tracker counts in-flight operations and lets callers wait until none remain.
// The zero value is not usable; use NewTracker.
type Tracker struct {
	mu   sync.Mutex
	cond CtxSyncCond
	n    int
}

// NewTracker creates a new Tracker.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.cond = CtxSyncCond{Cond: sync.NewCond(&t.mu)}
	return t
}

// Begin registers an operation. Every Begin must be paired with exactly one End.
func (t *Tracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
}

// End marks an operation as finished.
func (t *Tracker) End() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n--
	if t.n < 0 {
		panic("ctxsync: End called more than Begin")
	}
	if t.n == 0 {
		t.cond.Broadcast()
	}
}

// InFlight returns the number of unfinished operations.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Wait blocks until no operation is in flight or the context is done.
func (t *Tracker) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	locked := true
	defer func() {
		if locked {
			t.mu.Unlock()
		}
	}()

	for t.n > 0 {
		var err error
		if locked, err = t.cond.WaitCtx(ctx); err != nil {
			return err
		}
	}
	return nil
}

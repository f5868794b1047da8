package ctxsync_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/karupanerura/async-multimap/internal/ctxsync"
)

func TestCtxSyncCond_WaitCtx(t *testing.T) {
	t.Parallel()

	t.Run("Notified", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		cond := ctxsync.CtxSyncCond{Cond: sync.NewCond(&mu)}
		ready := false

		go func() {
			mu.Lock()
			ready = true
			mu.Unlock()
			cond.Broadcast()
		}()

		mu.Lock()
		for !ready {
			locked, err := cond.WaitCtx(t.Context())
			if err != nil || !locked {
				t.Fatalf("unexpected result: locked=%v err=%v", locked, err)
			}
		}
		mu.Unlock()
	})

	t.Run("Canceled", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		cond := ctxsync.CtxSyncCond{Cond: sync.NewCond(&mu)}

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		mu.Lock()
		locked, err := cond.WaitCtx(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
		if locked {
			t.Fatal("lock must be handed to the pending wait on cancellation")
		}

		// the pending wait gives the lock up while waiting, and releases it again once notified
		acquired := make(chan struct{})
		go func() {
			defer close(acquired)
			mu.Lock()
			cond.Broadcast()
			mu.Unlock()

			mu.Lock()
			mu.Unlock()
		}()
		select {
		case <-acquired:
		case <-time.After(5 * time.Second):
			t.Fatal("lock was not released after notification")
		}
	})
}

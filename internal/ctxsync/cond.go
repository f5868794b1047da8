package ctxsync

import (
	"context"
	"sync"
)

// CtxSyncCond is a wrapper of sync.Cond that can wait with context.
type CtxSyncCond struct {
	*sync.Cond
}

// WaitCtx waits to be notified or canceled. c.L must be held by the caller.
// It reports whether c.L is still held by the caller on return: true after a notification,
// false with the context error after a cancellation. In the latter case the lock belongs
// to the pending Wait and is released as soon as it wakes up.
func (c *CtxSyncCond) WaitCtx(ctx context.Context) (bool, error) {
	woken := make(chan struct{})
	go func() {
		defer close(woken)
		c.Cond.Wait()
	}()

	select {
	case <-woken:
		return true, nil
	case <-ctx.Done():
		go func() {
			<-woken
			c.Cond.L.Unlock()
		}()
		return false, ctx.Err()
	}
}

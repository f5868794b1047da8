// Package execctx provides the execution contexts that completion callbacks are delivered on.
//
// An ExecutionContext runs scheduled tasks one at a time in FIFO order. EventLoop is the
// bundled implementation: a single goroutine draining an unbounded queue. A caller selects
// the context its callbacks should run on by attaching it to a context.Context with
// WithExecutionContext, and a Provider resolves it again on the other side.
package execctx

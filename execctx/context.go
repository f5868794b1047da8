package execctx

import "context"

// ExecutionContext runs tasks in the order they were scheduled, one at a time.
// Implementations must be thread-safe.
type ExecutionContext interface {
	// RunOnContext schedules task to run on this context later. It must not block
	// until the task has run.
	RunOnContext(task func())
}

// Provider resolves the execution context of the caller.
type Provider interface {
	// GetOrCreateContext returns the execution context that callbacks for a request
	// issued with ctx must be delivered on. It must not return nil; a caller that gets
	// nil fails the request instead of delivering on some other context.
	GetOrCreateContext(ctx context.Context) ExecutionContext
}

// ProviderFunc is a function type that implements the Provider interface.
type ProviderFunc func(context.Context) ExecutionContext

// GetOrCreateContext calls the function.
func (f ProviderFunc) GetOrCreateContext(ctx context.Context) ExecutionContext {
	return f(ctx)
}

type contextKey struct{}

// WithExecutionContext returns a copy of ctx carrying ec.
func WithExecutionContext(ctx context.Context, ec ExecutionContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ec)
}

// FromContext returns the execution context carried by ctx, if any.
func FromContext(ctx context.Context) (ExecutionContext, bool) {
	ec, ok := ctx.Value(contextKey{}).(ExecutionContext)
	return ec, ok && ec != nil
}

// DefaultProvider returns the execution context carried by the request context,
// or Fallback when there is none. Fallback must be set unless every request
// carries its own execution context.
type DefaultProvider struct {
	Fallback ExecutionContext
}

var _ Provider = (*DefaultProvider)(nil)

// GetOrCreateContext implements Provider.
func (p *DefaultProvider) GetOrCreateContext(ctx context.Context) ExecutionContext {
	if ec, ok := FromContext(ctx); ok {
		return ec
	}
	return p.Fallback
}

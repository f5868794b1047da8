package asyncmultimap

// Result is the outcome of an asynchronous operation: either a value or a failure cause.
type Result[T any] struct {
	value T
	err   error
}

// Handler receives the outcome of an asynchronous operation.
type Handler[T any] func(Result[T])

// Succeeded returns a successful result holding value.
func Succeeded[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failed returns a failed result. err must not be nil.
func Failed[T any](err error) Result[T] {
	if err == nil {
		panic("asyncmultimap: Failed called with nil error")
	}
	return Result[T]{err: err}
}

// Value returns the value of a successful result, or the zero value of T.
func (r Result[T]) Value() T {
	return r.value
}

// Cause returns the failure cause, or nil on success.
func (r Result[T]) Cause() error {
	return r.err
}

// Succeeded reports whether the operation succeeded.
func (r Result[T]) Succeeded() bool {
	return r.err == nil
}

// Failed reports whether the operation failed.
func (r Result[T]) Failed() bool {
	return r.err != nil
}

package asyncmultimap

import (
	"sync"

	"github.com/karupanerura/async-multimap/execctx"
	"github.com/karupanerura/async-multimap/logging"
)

// voidHandler bridges a value-less completion to handler on ec.
func voidHandler(ec execctx.ExecutionContext, handler Handler[struct{}]) func(error) {
	complete := resultHandler(ec, handler)
	return func(err error) {
		complete(struct{}{}, err)
	}
}

// resultHandler bridges a completion to handler on ec, passing the value through.
func resultHandler[T any](ec execctx.ExecutionContext, handler Handler[T]) func(T, error) {
	return convertHandler(ec, handler, func(v T) T { return v })
}

// convertHandler bridges a completion to handler on ec, mapping a successful value with convert.
// The returned function schedules the handler at most once; later calls are dropped.
func convertHandler[T, R any](ec execctx.ExecutionContext, handler Handler[R], convert func(T) R) func(T, error) {
	var once sync.Once
	return func(value T, err error) {
		delivered := false
		once.Do(func() {
			delivered = true
			if handler == nil {
				return
			}

			var result Result[R]
			if err != nil {
				result = Failed[R](err)
			} else {
				result = Succeeded(convert(value))
			}
			ec.RunOnContext(func() {
				handler(result)
			})
		})
		if !delivered {
			logging.Warn().Err(err).Msg("duplicate completion dropped")
		}
	}
}

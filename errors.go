package asyncmultimap

import (
	"errors"

	"github.com/karupanerura/async-multimap/internal/panicutil"
)

var (
	ErrNilProvider = errors.New("execution context provider must not be nil")
	ErrNilStore    = errors.New("multimap store must not be nil")
	ErrNilKeyIndex = errors.New("key index must not be nil")

	// ErrNilExecutionContext is returned when no execution context can be resolved for a call.
	ErrNilExecutionContext = errors.New("execution context must not be nil")

	// ErrGoexit is the failure cause when a store call invokes runtime.Goexit.
	ErrGoexit = panicutil.ErrGoexit
)

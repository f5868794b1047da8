package panicutil

import (
	"errors"

	"github.com/sourcegraph/conc/panics"
)

// ErrGoexit is reported when the guarded function calls runtime.Goexit.
var ErrGoexit = errors.New("runtime.Goexit is called")

// Sandwich runs a function between two defers so that a panic and a runtime.Goexit
// can be told apart from a normal return.
type Sandwich struct {
	// OnGoexit is called from the outer defer when the function calls runtime.Goexit.
	// The calling goroutine terminates right after it returns.
	OnGoexit func()

	// capture builds the report of a recovered panic; panics.NewRecovered when nil.
	capture func(skip int, value any) panics.Recovered
}

// Invoke runs f. A panic is returned as *panics.ErrRecovered.
// If f calls runtime.Goexit, OnGoexit is called and Invoke never returns.
func (s *Sandwich) Invoke(f func() error) (err error) {
	var (
		normalReturn bool
		recovered    bool
		panicValue   panics.Recovered
	)
	defer func() {
		if !normalReturn && !recovered && s.OnGoexit != nil {
			s.OnGoexit()
		}
	}()
	capture := s.capture
	if capture == nil {
		capture = panics.NewRecovered
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicValue = capture(2, r)
			}
		}()
		err = f()
		normalReturn = true
	}()
	if !normalReturn {
		recovered = true
		err = panicValue.AsError()
	}
	return
}

// Recover runs f and converts a panic into an error.
func Recover(f func() error) error {
	var s Sandwich
	return s.Invoke(f)
}

// Complete runs f and hands its outcome to done exactly once.
// A panic in f is passed as *panics.ErrRecovered, and runtime.Goexit as ErrGoexit.
func Complete[T any](f func() (T, error), done func(T, error)) {
	var value T
	s := Sandwich{
		OnGoexit: func() {
			var zero T
			done(zero, ErrGoexit)
		},
	}
	err := s.Invoke(func() (err error) {
		value, err = f()
		return
	})
	done(value, err)
}

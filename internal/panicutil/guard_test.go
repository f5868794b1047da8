package panicutil_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/karupanerura/async-multimap/internal/panicutil"
	"github.com/sourcegraph/conc/panics"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("Normal return with no error", func(t *testing.T) {
		t.Parallel()

		if err := panicutil.Recover(func() error { return nil }); err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
	})

	t.Run("Normal return with error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("expected error")
		if err := panicutil.Recover(func() error { return expectedErr }); err != expectedErr {
			t.Errorf("expected error %v, got: %v", expectedErr, err)
		}
	})

	t.Run("Panic with string", func(t *testing.T) {
		t.Parallel()

		err := panicutil.Recover(func() error {
			panic("test panic")
		})
		var recoveredErr *panics.ErrRecovered
		if !errors.As(err, &recoveredErr) {
			t.Fatalf("expected error to be of type *panics.ErrRecovered, got: %T", err)
		}
		if recoveredErr.Value != "test panic" {
			t.Errorf("expected panic value 'test panic', got: %v", err)
		}
	})

	t.Run("Nested panic", func(t *testing.T) {
		t.Parallel()

		err := panicutil.Recover(func() error {
			return panicutil.Recover(func() error {
				panic("inner panic")
			})
		})
		var recoveredErr *panics.ErrRecovered
		if !errors.As(err, &recoveredErr) {
			t.Fatalf("expected error to be of type *panics.ErrRecovered, got: %T", err)
		}
		if recoveredErr.Value != "inner panic" {
			t.Errorf("expected panic value 'inner panic', got: %v", err)
		}
	})

	t.Run("Runtime.Goexit", func(t *testing.T) {
		t.Parallel()

		var (
			wg       sync.WaitGroup
			returned bool
			called   bool
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := panicutil.Sandwich{OnGoexit: func() { called = true }}
			_ = s.Invoke(func() error {
				runtime.Goexit()
				return nil // unreachable
			})
			returned = true
		}()
		wg.Wait()

		if returned {
			t.Error("Invoke must not return after runtime.Goexit")
		}
		if !called {
			t.Error("OnGoexit must be called")
		}
	})
}

func TestComplete(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("store error")
	tests := []struct {
		name      string
		f         func() (int, error)
		wantValue int
		wantErr   func(error) bool
	}{
		{
			name:      "value",
			f:         func() (int, error) { return 42, nil },
			wantValue: 42,
			wantErr:   func(err error) bool { return err == nil },
		},
		{
			name:    "error",
			f:       func() (int, error) { return 0, storeErr },
			wantErr: func(err error) bool { return errors.Is(err, storeErr) },
		},
		{
			name: "panic",
			f:    func() (int, error) { panic("boom") },
			wantErr: func(err error) bool {
				var recoveredErr *panics.ErrRecovered
				return errors.As(err, &recoveredErr)
			},
		},
		{
			name: "goexit",
			f: func() (int, error) {
				runtime.Goexit()
				return 1, nil // unreachable
			},
			wantErr: func(err error) bool { return errors.Is(err, panicutil.ErrGoexit) },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				calls int
				value int
				err   error
			)
			done := make(chan struct{})
			go func() {
				defer close(done)
				panicutil.Complete(tt.f, func(v int, e error) {
					calls++
					value, err = v, e
				})
			}()
			<-done

			if calls != 1 {
				t.Fatalf("done must be called exactly once, got %d", calls)
			}
			if value != tt.wantValue {
				t.Errorf("unexpected value: %d (expected: %d)", value, tt.wantValue)
			}
			if !tt.wantErr(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

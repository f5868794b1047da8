package execctx

import (
	"sync"

	"github.com/karupanerura/async-multimap/internal/panicutil"
	"github.com/karupanerura/async-multimap/logging"
)

// EventLoop is an ExecutionContext backed by a single goroutine.
// Tasks run in FIFO order and never concurrently with each other.
type EventLoop struct {
	name string

	mu     sync.Mutex
	queue  []func()
	closed bool

	wakeup chan struct{}
	done   chan struct{}
}

var _ ExecutionContext = (*EventLoop)(nil)

// NewEventLoop starts a new event loop.
func NewEventLoop(name string) *EventLoop {
	l := &EventLoop{
		name:   name,
		wakeup: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Name returns the name given to NewEventLoop.
func (l *EventLoop) Name() string {
	return l.name
}

// RunOnContext appends task to the queue. Tasks scheduled after Close are dropped.
func (l *EventLoop) RunOnContext(task func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		logging.Warn().Str("loop", l.name).Msg("event loop is closed, task dropped")
		return
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wakeup <- struct{}{}:
	default:
	}
}

// Close runs every task queued so far, then stops the loop.
// It must not be called from a task running on the same loop.
func (l *EventLoop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wakeup <- struct{}{}:
	default:
	}
	<-l.done
}

func (l *EventLoop) run() {
	for {
		l.mu.Lock()
		tasks := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		if len(tasks) == 0 {
			if closed {
				logging.Info().Str("loop", l.name).Msg("event loop stopped")
				close(l.done)
				return
			}
			<-l.wakeup
			continue
		}

		for i, task := range tasks {
			s := panicutil.Sandwich{
				OnGoexit: func() {
					// the loop goroutine is gone; hand the rest of the batch to a new one
					l.restart(tasks[i+1:])
				},
			}
			if err := s.Invoke(func() error {
				task()
				return nil
			}); err != nil {
				logging.Error().Err(err).Str("loop", l.name).Msg("recovered panic in event loop task")
			}
		}
	}
}

func (l *EventLoop) restart(rest []func()) {
	l.mu.Lock()
	l.queue = append(rest[:len(rest):len(rest)], l.queue...)
	l.mu.Unlock()

	logging.Warn().Str("loop", l.name).Msg("event loop task called runtime.Goexit, restarting loop")
	go l.run()
}

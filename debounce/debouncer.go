// Package debounce coalesces bursts of values into a single delayed emission.
//
// A Debouncer holds at most one pending value and one timer. Every Push
// replaces the pending value and restarts the quiescence window; the value is
// emitted once no Push has arrived for a full window. Intermediate values are
// dropped, never queued.
package debounce

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultWindow is the quiescence window used when none is given.
const DefaultWindow = 300 * time.Millisecond

type options struct {
	clock clock.WithDelayedExecution
}

// Option configures a Debouncer.
type Option func(*options)

// WithClock replaces the wall clock, typically with a fake clock in tests.
func WithClock(c clock.WithDelayedExecution) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Debouncer delays values of type T until they settle.
type Debouncer[T any] struct {
	window time.Duration
	clock  clock.WithDelayedExecution
	emit   func(T)

	mu      sync.Mutex
	timer   clock.Timer
	pending T
	armed   bool
	// gen invalidates callbacks of timers that fired while a newer value was
	// being pushed.
	gen     uint64
	stopped bool
}

// New returns a Debouncer that calls emit with the latest value once window
// has passed without a Push. emit runs on the timer goroutine.
func New[T any](window time.Duration, emit func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer[T]{
		window: window,
		clock:  o.clock,
		emit:   emit,
	}
}

// Window returns the quiescence window.
func (d *Debouncer[T]) Window() time.Duration {
	return d.window
}

// Push makes v the pending value and restarts the window.
// It returns false if the debouncer has been stopped.
func (d *Debouncer[T]) Push(v T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
	return true
}

// Pending reports whether a value is waiting for its window to elapse.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Stop discards any pending value. Later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.armed = false
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}

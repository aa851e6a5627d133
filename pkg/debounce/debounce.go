// Package debounce converts a rapidly changing value into a stable one that
// settles after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the most recent value passed to Set to the callback
// once no newer value has arrived for the configured delay. Each Set
// cancels the previously scheduled, not-yet-delivered value, so only the
// last value of a burst is ever observed.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New creates a debouncer that invokes fn with the settled value.
// The callback runs on a timer goroutine; fn must be safe to call from
// a goroutine other than the caller of Set.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Set schedules v for delivery after the quiet window, replacing any
// pending value.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.fn(v)
		}
	})
}

// Stop cancels any pending delivery and prevents future ones. It is used
// when the owning scope is torn down so a stale value never fires into a
// consumer that is gone.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

package fetch

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default quiet window
const DefaultDebounceDuration = 300 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation.
// When Trigger is called multiple times within the quiet window,
// only the last callback is executed after the window elapses.
type Debouncer struct {
	duration time.Duration
	clock    Clock

	mu    sync.Mutex
	timer Timer
	seq   uint64
}

// NewDebouncer creates a new Debouncer with the specified duration.
// If duration is 0, DefaultDebounceDuration is used; a nil clock means real time.
func NewDebouncer(duration time.Duration, clock Clock) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Debouncer{
		duration: duration,
		clock:    clock,
	}
}

// Trigger schedules the callback to be called after the quiet window.
// If Trigger is called again before the window elapses, the previous
// scheduled callback is cancelled and a new one is scheduled.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.duration, func() {
		shouldRun := func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()

			// A timer that already fired when Stop was called may still get
			// here; only the most recent trigger is allowed to run.
			if seq != d.seq {
				return false
			}
			d.timer = nil
			return true
		}()
		if !shouldRun {
			return
		}

		callback()
	})
}

// Cancel cancels any pending callback
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is waiting for the window to elapse
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Duration returns the debounce duration
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// Package debounce coalesces bursts of trigger signals into one action.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays an action until a burst of signals has settled. Each call
// to Do cancels the previously armed action, so a burst of N calls within the
// delay window runs exactly once, with the function supplied last.
//
// The scheduled-task handle is owned here explicitly; re-arming stops the
// prior timer before scheduling a new one.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

// New creates a debouncer with the given settle delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do arms fn to run once the delay elapses with no further calls. A pending
// invocation from an earlier call is cancelled in favor of fn.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops any pending invocation.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels any pending invocation and runs fn immediately.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}

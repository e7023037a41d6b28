package dashboard

import (
	"sync"
	"time"
)

// Debouncer collapses rapid calls into a single trailing invocation: each
// Call cancels any pending timer, so only the last callback runs, delay after
// the final Call. Arguments travel inside the closure, so intermediate calls
// are dropped rather than queued.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the debounce delay, cancelling any
// previously scheduled call. Fire-and-forget: fn runs on a timer goroutine
// and returns nothing.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

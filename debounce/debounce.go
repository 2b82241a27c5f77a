package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback that runs
// once the triggers have settled for the configured delay.
type Debouncer struct {
	delay    time.Duration
	timer    *time.Timer
	mutex    sync.Mutex
	callback func()
	fired    int
}

// New creates a new debouncer with the specified delay
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules callback after the delay. A trigger arriving before the
// delay expires replaces the pending callback and restarts the delay.
func (d *Debouncer) Trigger(callback func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.callback = callback

	d.timer = time.AfterFunc(d.delay, func() {
		d.mutex.Lock()
		cb := d.callback
		d.callback = nil
		d.timer = nil
		d.fired++
		d.mutex.Unlock()

		if cb != nil {
			cb()
		}
	})
}

// Cancel stops any pending callback
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

// Pending returns true if a callback is waiting to run
func (d *Debouncer) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.timer != nil
}

// Fired returns how many callbacks have run so far.
func (d *Debouncer) Fired() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.fired
}

// Package sched provides cancel-and-replace scheduling: a single pending task
// slot where a newly scheduled task atomically supersedes the one waiting.
// This is the server-side analogue of input debouncing — a burst of query
// updates collapses to one execution after the interval elapses.
package sched

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending task. Schedule replaces whatever is
// waiting; Flush runs it immediately; Stop discards it.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64 // incremented on every Schedule/Stop; stale timers check it
}

// NewDebouncer creates a Debouncer with the given settle interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Schedule queues fn to run once no further Schedule call arrives for the
// settle interval. Any previously pending task is dropped, not queued.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen) })
}

// Flush runs the pending task now, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	gen := d.gen
	d.mu.Unlock()
	d.fire(gen)
}

// Stop discards the pending task without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// fire runs the pending task if gen still identifies the live slot. A timer
// whose task was superseded arrives with a stale gen and does nothing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	fn()
}

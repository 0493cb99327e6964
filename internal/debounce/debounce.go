// Package debounce collapses bursts of triggers into one deferred call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending timer. Each Trigger replaces the
// previous pending call rather than queueing another, so a burst of triggers
// results in a single call after the quiet period.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, replacing any pending call.
// fn runs on the timer goroutine and must not touch state shared with the
// caller; pass a snapshot instead.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = fn
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.timer != t { // replaced by a newer trigger
			d.mu.Unlock()
			return
		}
		f := d.fn
		d.fn = nil
		d.timer = nil
		d.mu.Unlock()
		if f != nil {
			f()
		}
	})
	d.timer = t
}

// Flush runs the pending call immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	f := d.fn
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if f != nil {
		f()
	}
}

// Stop discards the pending call without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

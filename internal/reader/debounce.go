// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Schedule calls into a single invocation of
// fn after a quiet delay. Schedule is schedule-if-absent: while a flush is
// already pending, further calls are no-ops, so a steady stream of calls
// still flushes once per window rather than never.
type Debouncer struct {
	mu    sync.Mutex
	clock Clock
	delay time.Duration
	fn    func()
	timer Timer
}

// NewDebouncer creates a debouncer invoking fn after delay.
func NewDebouncer(clock Clock, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{clock: clock, delay: delay, fn: fn}
}

// Schedule arranges for fn to run after the delay unless a run is already
// pending.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		return
	}
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Flush cancels any pending run and invokes fn immediately.
func (d *Debouncer) Flush() {
	d.Stop()
	d.fn()
}

// Stop cancels any pending run without invoking fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

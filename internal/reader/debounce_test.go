// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(clock, 600*time.Millisecond, func() { calls++ })

	for i := 0; i < 10; i++ {
		d.Schedule()
		clock.Advance(10 * time.Millisecond)
	}
	if calls != 0 {
		t.Fatalf("fired during the quiet window: %d calls", calls)
	}

	clock.Advance(600 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("burst of schedules: got %d calls, want 1", calls)
	}
}

func TestDebouncerScheduleIfAbsent(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(clock, 100*time.Millisecond, func() { calls++ })

	// A steady stream of schedules must still flush once per window: the
	// pending timer is kept, not reset.
	d.Schedule()
	clock.Advance(90 * time.Millisecond)
	d.Schedule()
	clock.Advance(10 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("pending flush was pushed back: %d calls", calls)
	}
}

func TestDebouncerFlush(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(clock, time.Second, func() { calls++ })

	d.Schedule()
	d.Flush()
	if calls != 1 {
		t.Fatalf("Flush: got %d calls, want 1", calls)
	}

	// The cancelled timer must not fire later.
	clock.Advance(2 * time.Second)
	if calls != 1 {
		t.Fatalf("cancelled timer fired anyway: %d calls", calls)
	}
}

func TestDebouncerStop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	d := NewDebouncer(clock, time.Second, func() { calls++ })

	d.Schedule()
	d.Stop()
	clock.Advance(2 * time.Second)
	if calls != 0 {
		t.Fatalf("Stop did not cancel: %d calls", calls)
	}

	// Stop with nothing pending is fine.
	d.Stop()
}

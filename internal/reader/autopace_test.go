// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"testing"
)

func TestAutoPaceDisabledPassesThrough(t *testing.T) {
	pace := AutoPace{Enabled: false, StartWPM: 150, MaxWPM: 400}
	if got := pace.Rate(500, 2000, 275); got != 275 {
		t.Fatalf("disabled pace changed the rate: %d", got)
	}
}

func TestAutoPaceRamp(t *testing.T) {
	pace := AutoPace{Enabled: true, StartWPM: 150, MaxWPM: 400}
	pace.BeginRun(0)
	total := 5000 // ramp window caps at 1000

	if got := pace.Rate(0, total, 150); got != 150 {
		t.Fatalf("rate at 0 words read: got %d, want 150", got)
	}
	if got := pace.Rate(500, total, 150); got != 275 {
		t.Fatalf("rate at half ramp: got %d, want 275", got)
	}
	if got := pace.Rate(1000, total, 150); got != 400 {
		t.Fatalf("rate at full ramp: got %d, want 400", got)
	}
	// Beyond the window the rate stays clamped at max.
	if got := pace.Rate(4000, total, 150); got != 400 {
		t.Fatalf("rate past ramp: got %d, want 400", got)
	}
}

func TestAutoPaceMonotonic(t *testing.T) {
	pace := AutoPace{Enabled: true, StartWPM: 150, MaxWPM: 400}
	pace.BeginRun(0)
	prev := 0
	for i := 0; i <= 1200; i += 25 {
		rate := pace.Rate(i, 5000, prev)
		if rate < prev {
			t.Fatalf("rate decreased at %d words read: %d < %d", i, rate, prev)
		}
		if rate > 400 {
			t.Fatalf("rate exceeded max at %d words read: %d", i, rate)
		}
		prev = rate
	}
}

func TestAutoPaceShortTextRampsOverFullLength(t *testing.T) {
	pace := AutoPace{Enabled: true, StartWPM: 100, MaxWPM: 300}
	pace.BeginRun(0)
	// 200-word text: the ramp window is the whole text.
	if got := pace.Rate(100, 200, 100); got != 200 {
		t.Fatalf("rate at half of a short text: got %d, want 200", got)
	}
	if got := pace.Rate(200, 200, 100); got != 300 {
		t.Fatalf("rate at end of a short text: got %d, want 300", got)
	}
}

func TestAutoPaceWithinSessionProgress(t *testing.T) {
	// Resuming deep into a long document must restart the ramp from the
	// resume point, not from the absolute position.
	pace := AutoPace{Enabled: true, StartWPM: 150, MaxWPM: 400}
	pace.BeginRun(8000)

	if got := pace.Rate(8000, 20000, 150); got != 150 {
		t.Fatalf("rate at session start: got %d, want 150", got)
	}
	if got := pace.Rate(8500, 20000, 150); got != 275 {
		t.Fatalf("rate 500 words into the sitting: got %d, want 275", got)
	}

	// An index behind the session start clamps words read to zero.
	if got := pace.Rate(7000, 20000, 150); got != 150 {
		t.Fatalf("rate behind session start: got %d, want 150", got)
	}
}

func TestAutoPaceZeroTotal(t *testing.T) {
	pace := AutoPace{Enabled: true, StartWPM: 150, MaxWPM: 400}
	pace.BeginRun(0)
	if got := pace.Rate(0, 0, 222); got != 222 {
		t.Fatalf("zero-length text should leave the rate alone, got %d", got)
	}
}

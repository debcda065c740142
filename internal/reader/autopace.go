// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"math"
)

// Auto-pace defaults, matching the reader's settings panel.
const (
	DefaultAutoPaceStartWPM = 150
	DefaultAutoPaceMaxWPM   = 400

	// autoPaceRampWords is the number of words over which the rate climbs
	// from the start rate to the max rate. Short texts ramp over their full
	// length instead.
	autoPaceRampWords = 1000
)

// AutoPace ramps the playback rate as the current sitting progresses.
// Progress is measured from where the current play run began, not from the
// absolute document position: resuming a long book deep in should restart
// the ramp, not jump straight to max speed.
type AutoPace struct {
	Enabled  bool
	StartWPM int
	MaxWPM   int

	sessionStartIndex int
}

// BeginRun fixes the ramp origin at the index where playback is starting.
// Called when playback starts from a stopped state; pausing and resuming
// within the same run keeps the origin and therefore the ramp progress.
func (a *AutoPace) BeginRun(index int) {
	a.sessionStartIndex = index
}

// Rate returns the paced words-per-minute for the next word. When disabled
// it returns currentWPM unchanged.
func (a *AutoPace) Rate(currentIndex, totalWords, currentWPM int) int {
	if !a.Enabled || totalWords == 0 {
		return currentWPM
	}

	wordsRead := currentIndex - a.sessionStartIndex
	if wordsRead < 0 {
		wordsRead = 0
	}

	rampWindow := totalWords
	if rampWindow > autoPaceRampWords {
		rampWindow = autoPaceRampWords
	}
	progress := 1.0
	if rampWindow > 0 {
		progress = float64(wordsRead) / float64(rampWindow)
		if progress > 1 {
			progress = 1
		}
	}

	rate := int(math.Round(float64(a.StartWPM) + float64(a.MaxWPM-a.StartWPM)*progress))
	if rate > a.MaxWPM {
		rate = a.MaxWPM
	}
	return rate
}

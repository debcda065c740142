// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

// Status carries the playback scalars a front end displays alongside the
// word: position, totals and the live rate.
type Status struct {
	Phase   Phase `json:"phase"`
	Index   int   `json:"index"`
	Total   int   `json:"total"`
	Percent int   `json:"percent"`
	WPM     int   `json:"wpm"`
}

// Sink receives playback output. Implementations render to a terminal, an
// HTTP response, or nothing at all; the engine never knows.
type Sink interface {
	// ShowWord displays one word, split around its focus point.
	ShowWord(Frame)
	// ShowMessage displays a transient prompt ("Done", "Paste text...").
	ShowMessage(string)
	// ShowStatus reports position and rate after every state change.
	ShowStatus(Status)
}

// NopSink discards all output.
type NopSink struct{}

func (NopSink) ShowWord(Frame)     {}
func (NopSink) ShowMessage(string) {}
func (NopSink) ShowStatus(Status)  {}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"time"
)

// Document is a reading-library record. Its ID is the content fingerprint of
// Text, so importing identical text twice resolves to the same record.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Source      string    `json:"source"` // "paste", "file", "stdin", "watch", ...
	WordCount   int       `json:"wordCount"`
	LastIndex   int       `json:"lastIndex"` // 0 <= LastIndex <= WordCount
	WPM         int       `json:"wpm"`       // last used playback rate
	Sessions    int       `json:"sessions"`  // distinct reading sessions started
	TotalReadMs int64     `json:"totalReadMs"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	LastReadAt  time.Time `json:"lastReadAt,omitempty"`

	// Import provenance, opaque to the engine.
	Meta JSONMap `json:"meta,omitempty"`
}

// JSONMap is a flexible map for import metadata.
type JSONMap map[string]any

// ProgressPercent reports how far through the document the saved position is.
func (d *Document) ProgressPercent() int {
	if d.WordCount == 0 {
		return 0
	}
	pct := d.LastIndex * 100 / d.WordCount
	if pct > 100 {
		pct = 100
	}
	return pct
}

// SessionRecord is one uninterrupted span of playing time for a document.
// The aggregate counters live on Document; records keep the history.
type SessionRecord struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	WPM        int       `json:"wpm"` // rate when the session ended
}

// WordsRead is the forward distance covered during the session.
func (s *SessionRecord) WordsRead() int {
	n := s.EndIndex - s.StartIndex
	if n < 0 {
		return 0
	}
	return n
}

// ListOptions filters document listing.
type ListOptions struct {
	Search string // substring match against title and text
	Source string
	Limit  int
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"strconv"
	"strings"
	"time"

	"github.com/mtreilly/arc-reader/internal/library"
)

// Fingerprint derives the persistence identity of a text. It is a djb2 hash
// rendered as lowercase hex: not collision-proof, but deterministic, which is
// the property the dedup strategy actually relies on.
func Fingerprint(text string) string {
	var h uint32 = 5381
	for i := 0; i < len(text); i++ {
		h = h*33 + uint32(text[i])
	}
	return strconv.FormatUint(uint64(h), 16)
}

// DeriveTitle builds a human label from the first few words of text.
func DeriveTitle(text string) string {
	words := Tokenize(text)
	if len(words) == 0 {
		return "Untitled"
	}
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

// DocumentOptions carries optional fields for NewDocument.
type DocumentOptions struct {
	Title  string
	Source string
	WPM    int
	Meta   library.JSONMap
}

// NewDocument creates a library record for text. The ID is the content
// fingerprint, so creating a document from identical text twice yields the
// same identity.
func NewDocument(text string, opts DocumentOptions, now time.Time) *library.Document {
	text = strings.TrimSpace(text)
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DeriveTitle(text)
	}
	source := opts.Source
	if source == "" {
		source = "paste"
	}
	wpm := opts.WPM
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	return &library.Document{
		ID:        Fingerprint(text),
		Title:     title,
		Text:      text,
		Source:    source,
		WordCount: len(Tokenize(text)),
		WPM:       wpm,
		CreatedAt: now,
		UpdatedAt: now,
		Meta:      opts.Meta,
	}
}

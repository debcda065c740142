// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package reader implements the RSVP reading engine: tokenization, paragraph
// mapping, auto-paced playback scheduling and session accounting.
package reader

import (
	"strings"
)

// Tokenize splits text into its non-whitespace runs, in order. Empty or
// whitespace-only text yields no tokens. The function is pure: the same text
// always produces the same tokens, which keeps stored word counts and
// paragraph offsets stable across runs.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"testing"
)

func TestSplitWord(t *testing.T) {
	cases := []struct {
		word  string
		left  string
		focus string
		right string
	}{
		{"a", "", "a", ""},
		{"to", "", "t", "o"},
		{"word", "w", "o", "rd"},
		{"reading", "rea", "d", "ing"},
		// Trailing punctuation is not a letter and never becomes the focus.
		{"word.", "w", "o", "rd."},
		{"(word)", "(w", "o", "rd)"},
		// No letters at all: everything lands on the left.
		{"1234", "1234", "", ""},
		{"—", "—", "", ""},
	}
	for _, tc := range cases {
		got := SplitWord(tc.word)
		if got.Left != tc.left || got.Focus != tc.focus || got.Right != tc.right {
			t.Errorf("SplitWord(%q) = %q|%q|%q, want %q|%q|%q",
				tc.word, got.Left, got.Focus, got.Right, tc.left, tc.focus, tc.right)
		}
		if got.Word() != tc.word {
			t.Errorf("SplitWord(%q) does not reassemble: %q", tc.word, got.Word())
		}
	}
}

func TestSplitWordMultibyte(t *testing.T) {
	got := SplitWord("café")
	if got.Word() != "café" {
		t.Fatalf("multibyte word does not reassemble: %q", got.Word())
	}
	if got.Focus == "" {
		t.Fatal("letters present but no focus chosen")
	}
}

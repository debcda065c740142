// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"strings"
	"testing"
)

// checkPartition asserts the paragraph ranges cover [0, len(words)) exactly
// once, in order.
func checkPartition(t *testing.T, ix *ParagraphIndex, words []string) {
	t.Helper()
	next := 0
	for i, p := range ix.Paragraphs {
		if p.Start != next {
			t.Fatalf("paragraph %d starts at %d, want %d (gap or overlap)", i, p.Start, next)
		}
		if len(p.Words) != p.End-p.Start+1 {
			t.Fatalf("paragraph %d has %d words but range [%d,%d]", i, len(p.Words), p.Start, p.End)
		}
		for j, w := range p.Words {
			if words[p.Start+j] != w {
				t.Fatalf("paragraph %d word %d is %q, canonical token is %q", i, j, w, words[p.Start+j])
			}
		}
		next = p.End + 1
	}
	if next != len(words) {
		t.Fatalf("paragraphs cover %d words, document has %d", next, len(words))
	}
}

func TestBuildParagraphsPartition(t *testing.T) {
	text := "First paragraph here.\n\nSecond one with more words in it.\n\n\n\nThird after many breaks."
	words := Tokenize(text)

	ix := BuildParagraphs(text, words)
	if ix.Fallback {
		t.Fatal("unexpected fallback")
	}
	if len(ix.Paragraphs) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(ix.Paragraphs))
	}
	checkPartition(t, ix, words)
}

func TestBuildParagraphsSoftWraps(t *testing.T) {
	// Single line breaks inside a paragraph (PDF-style hard wrapping) must
	// not split it.
	text := "A sentence that\nwraps across\nthree lines.\n\nNext paragraph."
	words := Tokenize(text)

	ix := BuildParagraphs(text, words)
	if len(ix.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(ix.Paragraphs))
	}
	if ix.Paragraphs[0].Text != "A sentence that wraps across three lines." {
		t.Fatalf("soft wraps not joined: %q", ix.Paragraphs[0].Text)
	}
	checkPartition(t, ix, words)
}

func TestBuildParagraphsCRLF(t *testing.T) {
	text := "Windows line one.\r\n\r\nWindows line two."
	words := Tokenize(text)
	ix := BuildParagraphs(text, words)
	if len(ix.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(ix.Paragraphs))
	}
	checkPartition(t, ix, words)
}

func TestBuildParagraphsSingleBlock(t *testing.T) {
	text := "Just one paragraph with no breaks at all."
	words := Tokenize(text)
	ix := BuildParagraphs(text, words)
	if len(ix.Paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(ix.Paragraphs))
	}
	checkPartition(t, ix, words)
}

func TestBuildParagraphsEmpty(t *testing.T) {
	ix := BuildParagraphs("", nil)
	if len(ix.Paragraphs) != 0 {
		t.Fatalf("empty text produced %d paragraphs", len(ix.Paragraphs))
	}
	if _, p := ix.Locate(0); p != nil {
		t.Fatal("Locate on empty index should return nil")
	}
}

func TestBuildParagraphsFallback(t *testing.T) {
	// A words slice that disagrees with the text's own tokenization forces
	// the consistency guard.
	text := "alpha beta\n\ngamma"
	words := []string{"alpha", "beta", "gamma", "extra"}

	ix := BuildParagraphs(text, words)
	if !ix.Fallback {
		t.Fatal("expected fallback on token-count mismatch")
	}
	if len(ix.Paragraphs) != 1 {
		t.Fatalf("fallback should yield one paragraph, got %d", len(ix.Paragraphs))
	}
	p := ix.Paragraphs[0]
	if p.Start != 0 || p.End != len(words)-1 {
		t.Fatalf("fallback range [%d,%d], want [0,%d]", p.Start, p.End, len(words)-1)
	}
}

func TestLocate(t *testing.T) {
	text := "one two three.\n\nfour five.\n\nsix seven eight."
	words := Tokenize(text)
	ix := BuildParagraphs(text, words)

	cases := []struct {
		wordIndex int
		wantPara  int
	}{
		{0, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {7, 2},
	}
	for _, tc := range cases {
		got, p := ix.Locate(tc.wordIndex)
		if got != tc.wantPara {
			t.Errorf("Locate(%d) = paragraph %d, want %d", tc.wordIndex, got, tc.wantPara)
		}
		if p == nil || !p.Contains(tc.wordIndex) {
			t.Errorf("Locate(%d) returned paragraph not containing the index", tc.wordIndex)
		}
	}

	// Out of range defaults to the first paragraph rather than failing.
	got, p := ix.Locate(999)
	if got != 0 || p == nil {
		t.Fatal("Locate out of range should default to the first paragraph")
	}
}

func TestBuildParagraphsLongDocument(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Paragraph body with a handful of words in it.")
		b.WriteString("\n\n")
	}
	text := b.String()
	words := Tokenize(text)
	ix := BuildParagraphs(text, words)
	if len(ix.Paragraphs) != 40 {
		t.Fatalf("got %d paragraphs, want 40", len(ix.Paragraphs))
	}
	checkPartition(t, ix, words)
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"testing"
	"time"
)

func TestFingerprintDeterministic(t *testing.T) {
	text := "some document content that should hash stably"
	a := Fingerprint(text)
	b := Fingerprint(text)
	if a != b {
		t.Fatalf("same text hashed differently: %s vs %s", a, b)
	}
	if a == "" {
		t.Fatal("empty fingerprint")
	}
	if c := Fingerprint(text + " "); c == a {
		t.Fatalf("different text produced the same fingerprint %s", a)
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "Untitled"},
		{"   ", "Untitled"},
		{"Short text", "Short text"},
		{"one two three four five six seven eight", "one two three four five six"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.in); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewDocument(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	text := "  The quick brown fox jumps over the lazy dog.  "

	doc := NewDocument(text, DocumentOptions{Source: "file"}, now)

	if doc.ID != Fingerprint("The quick brown fox jumps over the lazy dog.") {
		t.Fatal("ID should be the fingerprint of the trimmed text")
	}
	if doc.WordCount != len(Tokenize(text)) {
		t.Fatalf("WordCount = %d, want %d", doc.WordCount, len(Tokenize(text)))
	}
	if doc.Title != "The quick brown fox jumps over" {
		t.Fatalf("derived title: %q", doc.Title)
	}
	if doc.WPM != DefaultWPM {
		t.Fatalf("WPM = %d, want default %d", doc.WPM, DefaultWPM)
	}
	if doc.LastIndex != 0 {
		t.Fatalf("LastIndex = %d, want 0", doc.LastIndex)
	}
	if !doc.CreatedAt.Equal(now) || !doc.UpdatedAt.Equal(now) {
		t.Fatal("timestamps not set from now")
	}

	// Identical content resolves to the same identity regardless of options.
	other := NewDocument(text, DocumentOptions{Title: "My Title", WPM: 450}, now)
	if other.ID != doc.ID {
		t.Fatal("same text must produce the same document id")
	}
	if other.Title != "My Title" {
		t.Fatalf("explicit title ignored: %q", other.Title)
	}
}

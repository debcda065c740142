// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"testing"

	"github.com/mtreilly/arc-reader/internal/kv"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/reader"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	if got := truncate("a very long document title", 10); got != "a very ..." {
		t.Errorf("truncate long = %q", got)
	}
}

func TestFormatReadTime(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "-"},
		{45_000, "45s"},
		{125_000, "2m05s"},
		{3_720_000, "1h02m"},
	}
	for _, tc := range cases {
		if got := formatReadTime(tc.ms); got != tc.want {
			t.Errorf("formatReadTime(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestResolveDocumentByPrefix(t *testing.T) {
	store := library.NewKVStore(kv.NewMemoryStore(), nil)
	doc, _, err := importText(store, "some words to remember", reader.DocumentOptions{})
	if err != nil {
		t.Fatal(err)
	}

	got, err := resolveDocument(store, doc.ID[:6])
	if err != nil {
		t.Fatalf("prefix resolve: %v", err)
	}
	if got.ID != doc.ID {
		t.Fatalf("resolved %s, want %s", got.ID, doc.ID)
	}

	if _, err := resolveDocument(store, "zzzzzz"); err == nil {
		t.Fatal("unknown prefix must fail")
	}
}

func TestImportTextDedupes(t *testing.T) {
	store := library.NewKVStore(kv.NewMemoryStore(), nil)

	first, created, err := importText(store, "identical body of text", reader.DocumentOptions{})
	if err != nil || !created {
		t.Fatalf("first import: created=%v err=%v", created, err)
	}

	second, created, err := importText(store, "identical body of text", reader.DocumentOptions{Title: "Renamed"})
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("identical text must not create a second record")
	}
	if second.ID != first.ID {
		t.Fatalf("ids diverged: %s vs %s", second.ID, first.ID)
	}
	if second.Title != "Renamed" {
		t.Fatalf("re-import with title should update it, got %q", second.Title)
	}

	if _, _, err := importText(store, "   \n  ", reader.DocumentOptions{}); err == nil {
		t.Fatal("empty text must be rejected")
	}
}

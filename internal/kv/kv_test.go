// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package kv

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
)

func testStore(t *testing.T, s KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: want ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "a:1", []byte("one")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "a:2", []byte("two")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "b:1", []byte("other")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, "a:1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "one" {
		t.Fatalf("Get a:1: got %q, want %q", got, "one")
	}

	// Upsert: last write wins
	if err := s.Set(ctx, "a:1", []byte("uno")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "a:1")
	if string(got) != "uno" {
		t.Fatalf("Get after overwrite: got %q, want %q", got, "uno")
	}

	keys, err := s.Keys(ctx, "a:")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a:1" || keys[1] != "a:2" {
		t.Fatalf("Keys a: got %v", keys)
	}

	if err := s.Delete(ctx, "a:1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "a:1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound, got %v", err)
	}

	// Delete is idempotent
	if err := s.Delete(ctx, "a:1"); err != nil {
		t.Fatalf("Delete again: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	if err := s.Set(ctx, "persist", []byte("yes")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "persist")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "yes" {
		t.Fatalf("Get after reopen: got %q", got)
	}
}

func TestLikePatternEscaping(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer s.Close()

	s.Set(ctx, "pre_fix:x", []byte("1"))
	s.Set(ctx, "preAfix:x", []byte("2"))

	keys, err := s.Keys(ctx, "pre_fix:")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "pre_fix:x" {
		t.Fatalf("underscore should not act as a wildcard: got %v", keys)
	}
}

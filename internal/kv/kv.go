// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package kv provides the key-value storage primitives arc-reader persists
// into. Implementations must be safe for concurrent use and treat Set as a
// last-write-wins upsert.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// KV is a minimal key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys returns every key with the given prefix, in unspecified order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

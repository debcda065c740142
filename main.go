// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mtreilly/arc-reader/internal/cmd"
	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/kv"
	"github.com/mtreilly/arc-reader/internal/library"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-reader: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-reader: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Storage backend selection via environment variable.
	// Default: "sqlite" (persistent library).
	// Options: "sqlite", "memory" (in-memory only).
	storage := os.Getenv("ARC_READER_STORAGE")
	if storage == "" {
		storage = "sqlite"
	}

	var backing kv.KV

	switch storage {
	case "sqlite":
		// If SQLite fails (missing dir, corrupted, permissions), fall back
		// to the in-memory store so the tool remains operational
		// (statelessly) without persistence.
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot create data dir: %v\n", err)
		}
		s, err := kv.OpenSQLiteStore(cfg.DBPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open SQLite database: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			backing = kv.NewMemoryStore()
		} else {
			backing = s
		}

	case "memory":
		// In-memory only - degrades gracefully, no persistence
		backing = kv.NewMemoryStore()

	default:
		fmt.Fprintf(os.Stderr, "arc-reader: unknown storage backend %q (choose sqlite or memory)\n", storage)
		os.Exit(1)
	}
	defer backing.Close()

	store := library.NewKVStore(backing, logger)

	root := cmd.NewRootCmd(cfg, store, logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zcfg.Build()
}

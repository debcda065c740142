// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WPM != 300 {
		t.Errorf("default wpm = %d, want 300", cfg.WPM)
	}
	if cfg.AutoPace {
		t.Error("auto-pace should default off")
	}
	if cfg.AutoPaceStartWPM != 150 || cfg.AutoPaceMaxWPM != 400 {
		t.Errorf("auto-pace defaults = %d..%d, want 150..400",
			cfg.AutoPaceStartWPM, cfg.AutoPaceMaxWPM)
	}
	if cfg.SaveDebounce() != 600*time.Millisecond {
		t.Errorf("save debounce = %v, want 600ms", cfg.SaveDebounce())
	}
	if cfg.DataDir == "" {
		t.Error("data dir must have a default")
	}
	if filepath.Base(cfg.DBPath()) != "reader.db" {
		t.Errorf("db path = %q", cfg.DBPath())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARC_READER_WPM", "450")
	t.Setenv("ARC_READER_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WPM != 450 {
		t.Errorf("wpm = %d, want env override 450", cfg.WPM)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "wpm: 250\nauto_pace: true\nauto_pace_max_wpm: 500\nfocus_color: \"#00ff00\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.WPM != 250 {
		t.Errorf("wpm = %d, want 250", cfg.WPM)
	}
	if !cfg.AutoPace || cfg.AutoPaceMaxWPM != 500 {
		t.Errorf("auto-pace = %v max %d", cfg.AutoPace, cfg.AutoPaceMaxWPM)
	}
	if cfg.FocusColor != "#00ff00" {
		t.Errorf("focus color = %q", cfg.FocusColor)
	}
	// Unset keys keep their defaults.
	if cfg.ListLimit != 20 {
		t.Errorf("list limit = %d, want default 20", cfg.ListLimit)
	}
}

func TestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("wpm: -10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("negative wpm must be rejected")
	}

	if err := os.WriteFile(path, []byte("auto_pace_start_wpm: 500\nauto_pace_max_wpm: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("inverted auto-pace range must be rejected")
	}
}

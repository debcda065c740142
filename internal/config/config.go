// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-reader settings from the user config file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ARC_READER"

// Config holds everything tunable about arc-reader. Zero values are never
// used directly: Load fills defaults before unmarshalling.
type Config struct {
	// DataDir is where the reading library database lives.
	DataDir string `mapstructure:"data_dir"`

	// WPM is the default playback rate for documents without a saved rate.
	WPM int `mapstructure:"wpm"`

	AutoPace         bool `mapstructure:"auto_pace"`
	AutoPaceStartWPM int  `mapstructure:"auto_pace_start_wpm"`
	AutoPaceMaxWPM   int  `mapstructure:"auto_pace_max_wpm"`

	// SaveDebounceMs is the coalescing window for progress saves.
	SaveDebounceMs int `mapstructure:"save_debounce_ms"`

	LogLevel  string `mapstructure:"log_level"`
	ListLimit int    `mapstructure:"list_limit"`
	ServeAddr string `mapstructure:"serve_addr"`

	// Cosmetic preferences for the word display.
	FocusHighlight bool   `mapstructure:"focus_highlight"`
	FocusColor     string `mapstructure:"focus_color"`
}

// Load reads ~/.config/arc-reader/config.yaml if present, applies
// ARC_READER_* environment overrides, and falls back to defaults for
// everything else. A missing config file is not an error.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "arc-reader"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return finalize(v)
}

// LoadFile reads configuration from an explicit file path. Used by the
// --config flag and by tests.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return finalize(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("wpm", 300)
	v.SetDefault("auto_pace", false)
	v.SetDefault("auto_pace_start_wpm", 150)
	v.SetDefault("auto_pace_max_wpm", 400)
	v.SetDefault("save_debounce_ms", 600)
	v.SetDefault("log_level", "info")
	v.SetDefault("list_limit", 20)
	v.SetDefault("serve_addr", "127.0.0.1:8675")
	v.SetDefault("focus_highlight", true)
	v.SetDefault("focus_color", "#e53e3e")
	return v
}

func finalize(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.WPM <= 0 {
		return fmt.Errorf("wpm must be positive, got %d", c.WPM)
	}
	if c.AutoPaceStartWPM <= 0 || c.AutoPaceMaxWPM <= 0 {
		return fmt.Errorf("auto-pace rates must be positive, got start=%d max=%d",
			c.AutoPaceStartWPM, c.AutoPaceMaxWPM)
	}
	if c.AutoPaceStartWPM > c.AutoPaceMaxWPM {
		return fmt.Errorf("auto_pace_start_wpm %d exceeds auto_pace_max_wpm %d",
			c.AutoPaceStartWPM, c.AutoPaceMaxWPM)
	}
	if c.SaveDebounceMs < 0 {
		return fmt.Errorf("save_debounce_ms must be non-negative, got %d", c.SaveDebounceMs)
	}
	return nil
}

// SaveDebounce returns the progress-save coalescing window as a duration.
func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMs) * time.Millisecond
}

// DBPath is the SQLite database location under the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "reader.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "arc-reader")
}

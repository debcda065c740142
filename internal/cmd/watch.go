// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/reader"
)

func newWatchCmd(cfg *config.Config, store library.DocumentStore, logger *zap.Logger) *cobra.Command {
	var (
		debounceMs int
		oneShot    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a folder for text files and auto-import",
		Long: `Monitor a directory for new .txt and .md files and automatically
import them into the reading library.

Examples:
  arc-reader watch ~/Downloads/articles
  arc-reader watch ~/notes --one-shot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if strings.HasPrefix(dir, "~") {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("cannot determine home directory: %w", err)
				}
				dir = filepath.Join(home, dir[1:])
			}

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("cannot access directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			if oneShot {
				return importExistingFiles(dir, store, logger)
			}
			return watchDirectory(dir, store, logger, debounceMs)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 1000, "Debounce milliseconds for file events")
	cmd.Flags().BoolVar(&oneShot, "one-shot", false, "Import existing files and exit (don't watch)")

	return cmd
}

func watchDirectory(dir string, store library.DocumentStore, logger *zap.Logger, debounceMs int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	logger.Info("watching directory", zap.String("dir", dir))
	fmt.Printf("Watching %s for text files. Press Ctrl+C to stop.\n", dir)

	// Editors write files in bursts, so hold each path until its events
	// settle before importing.
	pending := make(map[string]*time.Timer)
	var pendingMu sync.Mutex

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isTextFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			pendingMu.Lock()
			if timer, exists := pending[event.Name]; exists {
				timer.Stop()
			}
			path := event.Name
			pending[path] = time.AfterFunc(time.Duration(debounceMs)*time.Millisecond, func() {
				pendingMu.Lock()
				delete(pending, path)
				pendingMu.Unlock()

				if err := importWatchedFile(path, store); err != nil {
					logger.Warn("import failed", zap.String("path", path), zap.Error(err))
				} else {
					logger.Info("imported", zap.String("path", path))
				}
			})
			pendingMu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func importExistingFiles(dir string, store library.DocumentStore, logger *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && isTextFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		fmt.Println("No text files found")
		return nil
	}

	fmt.Printf("Found %d text file(s), importing...\n", len(files))

	imported := 0
	failed := 0
	for _, f := range files {
		if err := importWatchedFile(f, store); err != nil {
			logger.Warn("import failed", zap.String("path", f), zap.Error(err))
			failed++
		} else {
			imported++
		}
	}

	fmt.Printf("\nImported: %d, Failed: %d\n", imported, failed)
	return nil
}

func importWatchedFile(path string, store library.DocumentStore) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	_, _, err = importText(store, string(data), reader.DocumentOptions{
		Title:  titleFromFilename(path),
		Source: "watch",
		Meta:   library.JSONMap{"path": path},
	})
	return err
}

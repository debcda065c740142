// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
)

// NewRootCmd creates the root command for arc-reader.
func NewRootCmd(cfg *config.Config, store library.DocumentStore, logger *zap.Logger) *cobra.Command {

	root := &cobra.Command{
		Use:   "arc-reader",
		Short: "Speed-read documents one word at a time",
		Long: `Read text at a fixed point, one word at a time, at a rate you control.

arc-reader provides tools to:
- Import text and markdown documents into a reading library
- Play documents back word by word with punctuation-aware pacing
- Resume any document exactly where you left off
- Ramp the rate gradually with auto-pace
- Track reading sessions and total time per document`,
	}

	root.AddCommand(newImportCmd(cfg, store))
	root.AddCommand(newReadCmd(cfg, store))
	root.AddCommand(newListCmd(cfg, store))
	root.AddCommand(newContextCmd(cfg, store))
	root.AddCommand(newStatsCmd(cfg, store))
	root.AddCommand(newSessionCmd(cfg, store))
	root.AddCommand(newRenameCmd(cfg, store))
	root.AddCommand(newRmCmd(cfg, store))
	root.AddCommand(newExportCmd(cfg, store))
	root.AddCommand(newServeCmd(cfg, store, logger))
	root.AddCommand(newWatchCmd(cfg, store, logger))

	return root
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
)

func newRmCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var all bool
	var force bool

	cmd := &cobra.Command{
		Use:   "rm [document-id]",
		Short: "Remove documents from the library",
		Long: `Remove a document and its session history from the library.

Examples:
  arc-reader rm 1a2b3c4d       # Remove one document
  arc-reader rm --all --force  # Empty the library`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				if !force {
					return fmt.Errorf("refusing to remove all documents without --force")
				}
				if err := store.Clear(); err != nil {
					return fmt.Errorf("clear library: %w", err)
				}
				fmt.Println("Library cleared.")
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("document ID required (or --all)")
			}
			doc, err := resolveDocument(store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteDocument(doc.ID); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			fmt.Printf("Removed: %s - %s\n", doc.ID[:8], truncate(doc.Title, 50))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every document")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the safety check for --all")

	return cmd
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
)

func newRenameCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <document-id> <title>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resolveDocument(store, args[0])
			if err != nil {
				return err
			}

			old := doc.Title
			doc.Title = args[1]
			doc.UpdatedAt = time.Now()
			if err := store.PutDocument(doc); err != nil {
				return fmt.Errorf("rename: %w", err)
			}

			fmt.Printf("Renamed %s: %q -> %q\n", doc.ID[:8], truncate(old, 40), truncate(doc.Title, 40))
			return nil
		},
	}

	return cmd
}

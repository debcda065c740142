// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/output"
)

func newListCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var out output.OutputOptions
	var search string
	var source string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in the reading library",
		Long: `List all documents in the reading library.

Examples:
  arc-reader list                      # List all documents
  arc-reader list --search "essay"     # Filter by title or text
  arc-reader list --source paste       # Filter by source
  arc-reader list --limit 10           # Limit results`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			if limit == 0 {
				limit = cfg.ListLimit
			}
			opts := &library.ListOptions{
				Search: search,
				Source: source,
				Limit:  limit,
			}

			docs, err := store.ListDocuments(opts)
			if err != nil {
				return err
			}

			if len(docs) == 0 {
				fmt.Println("No documents found in library.")
				fmt.Println("Use 'arc-reader import <path>' to add documents.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(docs)
			}

			table := output.NewTable("ID", "Title", "Words", "Progress", "Read Time", "Last Read")
			for _, d := range docs {
				lastRead := "-"
				if !d.LastReadAt.IsZero() {
					lastRead = humanize.Time(d.LastReadAt)
				}
				table.AddRow(
					d.ID[:8],
					truncate(d.Title, 45),
					humanize.Comma(int64(d.WordCount)),
					fmt.Sprintf("%d%%", d.ProgressPercent()),
					formatReadTime(d.TotalReadMs),
					lastRead,
				)
			}
			table.Render()

			fmt.Printf("\nTotal: %d document(s)\n", len(docs))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by title or text")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Filter by source (file, paste, watch)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")

	return cmd
}

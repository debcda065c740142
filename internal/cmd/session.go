// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/output"
)

func newSessionCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect reading sessions",
		Long:  "Reading sessions are recorded automatically while you play documents.",
	}

	cmd.AddCommand(newSessionListCmd(store))

	return cmd
}

func newSessionListCmd(store library.DocumentStore) *cobra.Command {
	var (
		documentID string
		limit      int
		out        output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reading sessions",
		Long:  "List recorded sessions, optionally filtered by document.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var sessions []*library.SessionRecord

			if documentID != "" {
				doc, err := resolveDocument(store, documentID)
				if err != nil {
					return err
				}
				sessions, err = store.ListSessionRecords(doc.ID)
				if err != nil {
					return fmt.Errorf("list sessions: %w", err)
				}
			} else {
				// Global list: aggregate all documents' sessions.
				docs, err := store.ListDocuments(nil)
				if err != nil {
					return fmt.Errorf("list documents: %w", err)
				}
				var all []*library.SessionRecord
				for _, d := range docs {
					recs, err := store.ListSessionRecords(d.ID)
					if err != nil {
						continue
					}
					all = append(all, recs...)
				}
				// Newest first across documents.
				for i := 1; i < len(all); i++ {
					j := i
					for j > 0 && all[j-1].StartAt.Before(all[j].StartAt) {
						all[j-1], all[j] = all[j], all[j-1]
						j--
					}
				}
				sessions = all
			}

			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(sessions)
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions recorded yet.")
				return nil
			}

			table := output.NewTable("Session", "Document", "Start", "Duration", "Words", "WPM")
			for _, s := range sessions {
				dur := s.EndAt.Sub(s.StartAt)
				table.AddRow(
					s.ID[:8],
					truncate(s.DocumentID, 8),
					s.StartAt.Format("2006-01-02 15:04"),
					formatReadTime(dur.Milliseconds()),
					fmt.Sprintf("%d", s.WordsRead()),
					fmt.Sprintf("%d", s.WPM),
				)
			}
			table.Render()

			fmt.Printf("\nTotal: %d session(s)\n", len(sessions))
			return nil
		},
	}

	cmd.Flags().StringVarP(&documentID, "document", "d", "", "Filter sessions by document ID")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

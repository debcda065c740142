// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/output"
)

func newStatsCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "stats [document-id]",
		Short: "Show reading statistics",
		Long: `Display statistics across the library: document counts, words read,
time spent. With a document ID, show that document's stats instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			if len(args) == 1 {
				doc, err := resolveDocument(store, args[0])
				if err != nil {
					return err
				}
				return documentStats(&out, store, doc)
			}

			docs, err := store.ListDocuments(nil)
			if err != nil {
				return err
			}

			totalWords := 0
			wordsRead := 0
			finished := 0
			totalSessions := 0
			var totalReadMs int64
			var mostRead *library.Document

			for _, d := range docs {
				totalWords += d.WordCount
				wordsRead += d.LastIndex
				if d.WordCount > 0 && d.LastIndex == d.WordCount {
					finished++
				}
				totalSessions += d.Sessions
				totalReadMs += d.TotalReadMs
				if mostRead == nil || d.TotalReadMs > mostRead.TotalReadMs {
					mostRead = d
				}
			}

			if out.Is(output.OutputJSON) {
				stats := map[string]any{
					"documents":      len(docs),
					"finished":       finished,
					"total_words":    totalWords,
					"words_read":     wordsRead,
					"sessions":       totalSessions,
					"total_read_ms":  totalReadMs,
				}
				if mostRead != nil && mostRead.TotalReadMs > 0 {
					stats["most_read"] = mostRead.ID
				}
				return output.JSON(stats)
			}

			fmt.Printf("Reading Statistics\n")
			fmt.Printf("==================\n\n")
			fmt.Printf("Documents:     %d (%d finished)\n", len(docs), finished)
			fmt.Printf("Total words:   %s\n", humanize.Comma(int64(totalWords)))
			fmt.Printf("Words read:    %s\n", humanize.Comma(int64(wordsRead)))
			fmt.Printf("Sessions:      %d\n", totalSessions)
			fmt.Printf("Time reading:  %s\n", formatReadTime(totalReadMs))
			if mostRead != nil && mostRead.TotalReadMs > 0 {
				fmt.Printf("Most read:     %s (%s)\n",
					truncate(mostRead.Title, 45), formatReadTime(mostRead.TotalReadMs))
			}

			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func documentStats(out *output.OutputOptions, store library.DocumentStore, doc *library.Document) error {
	records, err := store.ListSessionRecords(doc.ID)
	if err != nil {
		return err
	}

	if out.Is(output.OutputJSON) {
		return output.JSON(map[string]any{
			"id":            doc.ID,
			"title":         doc.Title,
			"word_count":    doc.WordCount,
			"last_index":    doc.LastIndex,
			"progress":      doc.ProgressPercent(),
			"wpm":           doc.WPM,
			"sessions":      doc.Sessions,
			"total_read_ms": doc.TotalReadMs,
			"records":       len(records),
		})
	}

	fmt.Printf("%s\n", doc.Title)
	fmt.Printf("%s\n\n", strings.Repeat("=", len(doc.Title)))
	fmt.Printf("ID:            %s\n", doc.ID)
	fmt.Printf("Words:         %s\n", humanize.Comma(int64(doc.WordCount)))
	fmt.Printf("Position:      %d (%d%%)\n", doc.LastIndex, doc.ProgressPercent())
	fmt.Printf("Rate:          %d wpm\n", doc.WPM)
	fmt.Printf("Sessions:      %d\n", doc.Sessions)
	fmt.Printf("Time reading:  %s\n", formatReadTime(doc.TotalReadMs))
	if !doc.LastReadAt.IsZero() {
		fmt.Printf("Last read:     %s\n", humanize.Time(doc.LastReadAt))
	}
	return nil
}

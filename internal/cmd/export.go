// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
)

func newExportCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var (
		format   string
		outPath  string
		search   string
		source   string
		withText bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export library documents to various formats",
		Long:  "Export the reading library to JSON, YAML, or Markdown for use in other tools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := store.ListDocuments(&library.ListOptions{
				Search: search,
				Source: source,
			})
			if err != nil {
				return fmt.Errorf("list documents: %w", err)
			}

			if !withText {
				// Metadata-only export: strip the body.
				stripped := make([]*library.Document, len(docs))
				for i, d := range docs {
					dup := *d
					dup.Text = ""
					stripped[i] = &dup
				}
				docs = stripped
			}

			var outBytes []byte

			switch format {
			case "json":
				outBytes, err = json.MarshalIndent(docs, "", "  ")
			case "yaml":
				outBytes, err = yaml.Marshal(docs)
			case "markdown":
				outBytes, err = exportMarkdown(docs)
			default:
				return fmt.Errorf("unsupported format: %s (choose json, yaml, markdown)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if outPath == "-" || outPath == "" {
				fmt.Println(string(outBytes))
				return nil
			}
			if err := os.WriteFile(outPath, outBytes, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Printf("Exported %d document(s) to %s\n", len(docs), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml, markdown")
	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by title or text")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Filter by source")
	cmd.Flags().BoolVar(&withText, "with-text", false, "Include full document text")

	return cmd
}

// exportMarkdown renders a reading-list summary.
func exportMarkdown(docs []*library.Document) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Reading Library\n\n")
	for _, d := range docs {
		fmt.Fprintf(&buf, "## %s\n\n", d.Title)
		fmt.Fprintf(&buf, "- ID: `%s`\n", d.ID)
		fmt.Fprintf(&buf, "- Source: %s\n", d.Source)
		fmt.Fprintf(&buf, "- Words: %d\n", d.WordCount)
		fmt.Fprintf(&buf, "- Progress: %d%%\n", d.ProgressPercent())
		if d.TotalReadMs > 0 {
			fmt.Fprintf(&buf, "- Time read: %s over %d session(s)\n",
				formatReadTime(d.TotalReadMs), d.Sessions)
		}
		if d.Text != "" {
			buf.WriteString("\n")
			buf.WriteString(strings.TrimSpace(d.Text))
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

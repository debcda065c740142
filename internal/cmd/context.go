// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/output"
	"github.com/mtreilly/arc-reader/internal/reader"
)

func newContextCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "context <document-id> [word-index]",
		Short: "Show the paragraph around a word position",
		Long: `Show the full paragraph containing a word position, so you can
re-anchor after rapid playback. Without an index, the document's saved
position is used.

Examples:
  arc-reader context 1a2b3c4d          # Paragraph at the saved position
  arc-reader context 1a2b3c4d 1500     # Paragraph containing word 1500`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			doc, err := resolveDocument(store, args[0])
			if err != nil {
				return err
			}

			index := doc.LastIndex
			if len(args) == 2 {
				index, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid word index: %s", args[1])
				}
			}

			idx := reader.BuildParagraphs(doc.Text, reader.Tokenize(doc.Text))
			pos, para := idx.Locate(index)
			if para == nil {
				return fmt.Errorf("document has no paragraphs")
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(map[string]any{
					"documentId": doc.ID,
					"wordIndex":  index,
					"paragraph":  pos + 1,
					"paragraphs": len(idx.Paragraphs),
					"start":      para.Start,
					"end":        para.End,
					"text":       para.Text,
				})
			}

			fmt.Printf("%s\n", truncate(doc.Title, 60))
			fmt.Printf("Paragraph %d of %d (words %d-%d, position %d)\n\n",
				pos+1, len(idx.Paragraphs), para.Start, para.End, index)
			fmt.Println(markWord(para, index))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

// markWord renders the paragraph with the word at index bracketed, so the
// reading position is visible in running text.
func markWord(para *reader.Paragraph, index int) string {
	if !para.Contains(index) {
		return para.Text
	}
	words := make([]string, len(para.Words))
	copy(words, para.Words)
	at := index - para.Start
	words[at] = "[" + words[at] + "]"
	return strings.Join(words, " ")
}

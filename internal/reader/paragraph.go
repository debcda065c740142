// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"regexp"
	"strings"
)

// Paragraph is one block of the source text with its word-index range.
// Start and End are inclusive indexes into the document's token sequence.
type Paragraph struct {
	Text  string
	Words []string
	Start int
	End   int
}

// Contains reports whether wordIndex falls inside the paragraph's range.
func (p *Paragraph) Contains(wordIndex int) bool {
	return wordIndex >= p.Start && wordIndex <= p.End
}

// ParagraphIndex maps word positions back to their surrounding paragraph for
// "where am I" navigation. The paragraph ranges partition the document's
// tokens: every token belongs to exactly one paragraph.
type ParagraphIndex struct {
	Paragraphs []Paragraph
	// Fallback is set when the rebuilt token count disagreed with the
	// canonical tokenization and the whole document was collapsed into a
	// single paragraph. Correctness over granularity.
	Fallback bool
}

var multiBreak = regexp.MustCompile(`\n{2,}`)

// BuildParagraphs derives the paragraph index for text, whose canonical
// tokenization is words. Single embedded line breaks are treated as soft
// wraps (joined into the paragraph); runs of two or more breaks separate
// paragraphs. If the per-paragraph token counts fail to add up to the
// canonical count, the index falls back to one paragraph spanning everything.
func BuildParagraphs(text string, words []string) *ParagraphIndex {
	ix := &ParagraphIndex{}
	if strings.TrimSpace(text) == "" || len(words) == 0 {
		return ix
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	offset := 0
	for _, block := range multiBreak.Split(normalized, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		// Soft-wrapped lines inside the block become one flowing paragraph.
		blockText := strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		blockWords := Tokenize(block)
		ix.Paragraphs = append(ix.Paragraphs, Paragraph{
			Text:  blockText,
			Words: blockWords,
			Start: offset,
			End:   offset + len(blockWords) - 1,
		})
		offset += len(blockWords)
	}

	if offset != len(words) {
		return &ParagraphIndex{
			Paragraphs: []Paragraph{{
				Text:  text,
				Words: words,
				Start: 0,
				End:   len(words) - 1,
			}},
			Fallback: true,
		}
	}
	return ix
}

// Locate returns the position and paragraph containing wordIndex. When no
// paragraph matches it defaults to the first one; this should not happen
// given the partition invariant, but navigation must never dead-end.
func (ix *ParagraphIndex) Locate(wordIndex int) (int, *Paragraph) {
	if len(ix.Paragraphs) == 0 {
		return 0, nil
	}
	for i := range ix.Paragraphs {
		if ix.Paragraphs[i].Contains(wordIndex) {
			return i, &ix.Paragraphs[i]
		}
	}
	return 0, &ix.Paragraphs[0]
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mtreilly/arc-reader/internal/library"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// resolveDocument finds a document by full ID or unique ID prefix.
func resolveDocument(store library.DocumentStore, id string) (*library.Document, error) {
	doc, err := store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}

	// Prefix match across the library.
	docs, err := store.ListDocuments(nil)
	if err != nil {
		return nil, err
	}
	var matches []*library.Document
	for _, d := range docs {
		if strings.HasPrefix(d.ID, id) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("document not found: %s", id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous document ID %s (%d matches)", id, len(matches))
	}
}

// formatReadTime renders accumulated reading milliseconds compactly.
func formatReadTime(ms int64) string {
	if ms == 0 {
		return "-"
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

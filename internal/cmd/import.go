// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/reader"
)

func newImportCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var (
		titleFlag  string
		sourceFlag string
		wpmFlag    int
		metaFlags  []string
	)

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import documents into the reading library",
		Long: `Import text files into the reading library database.

Supported sources:
- A .txt or .md file
- A directory of .txt/.md files (non-recursive)
- "-" to read from stdin (pasted text)

Examples:
  arc-reader import ~/articles/essay.txt             # Import single file
  arc-reader import ~/articles                       # Import all text files
  arc-reader import - --title "Pasted note"          # Import from stdin
  arc-reader import book.md --wpm 250                # Import with a saved rate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importPath := args[0]

			meta, err := parseMeta(metaFlags)
			if err != nil {
				return err
			}

			if importPath == "-" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				doc, created, err := importText(store, string(data), reader.DocumentOptions{
					Title:  titleFlag,
					Source: "paste",
					WPM:    wpmFlag,
					Meta:   meta,
				})
				if err != nil {
					return err
				}
				reportImport(doc, created)
				return nil
			}

			// Expand ~ to home directory
			if strings.HasPrefix(importPath, "~") {
				home, _ := os.UserHomeDir()
				importPath = filepath.Join(home, importPath[1:])
			}

			info, err := os.Stat(importPath)
			if err != nil {
				return fmt.Errorf("path not found: %s", importPath)
			}

			var pathsToImport []string
			if info.IsDir() {
				entries, err := os.ReadDir(importPath)
				if err != nil {
					return err
				}
				for _, e := range entries {
					if !e.IsDir() && isTextFile(e.Name()) {
						pathsToImport = append(pathsToImport, filepath.Join(importPath, e.Name()))
					}
				}
				if len(pathsToImport) == 0 {
					return fmt.Errorf("no .txt or .md files found in %s", importPath)
				}
			} else {
				if !isTextFile(importPath) {
					return fmt.Errorf("unsupported file type: %s (expected .txt or .md)", importPath)
				}
				pathsToImport = []string{importPath}
			}

			imported := 0
			skipped := 0

			for _, path := range pathsToImport {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Printf("  Warning: could not read %s: %v\n", path, err)
					continue
				}

				title := titleFlag
				if title == "" || len(pathsToImport) > 1 {
					title = titleFromFilename(path)
				}
				source := sourceFlag
				if source == "" {
					source = "file"
				}

				fileMeta := library.JSONMap{"path": path}
				for k, v := range meta {
					fileMeta[k] = v
				}
				doc, created, err := importText(store, string(data), reader.DocumentOptions{
					Title:  title,
					Source: source,
					WPM:    wpmFlag,
					Meta:   fileMeta,
				})
				if err != nil {
					fmt.Printf("  Warning: could not import %s: %v\n", path, err)
					continue
				}
				if !created {
					skipped++
					continue
				}
				fmt.Printf("Imported: %s - %s (%d words)\n", doc.ID[:8], truncate(doc.Title, 50), doc.WordCount)
				imported++
			}

			fmt.Printf("\nImported %d document(s), skipped %d already in library.\n", imported, skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "Title for the document (default: filename or first words)")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Source label (e.g., file, paste, web)")
	cmd.Flags().IntVar(&wpmFlag, "wpm", 0, "Saved playback rate for this document")
	cmd.Flags().StringSliceVar(&metaFlags, "meta", nil, "Metadata key=value pairs (can be repeated)")

	return cmd
}

func parseMeta(pairs []string) (library.JSONMap, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := library.JSONMap{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --meta %q (expected key=value)", p)
		}
		meta[k] = v
	}
	return meta, nil
}

// importText commits text keyed by its content fingerprint. Re-importing
// identical text updates the existing record instead of duplicating it.
func importText(store library.DocumentStore, text string, opts reader.DocumentOptions) (*library.Document, bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false, fmt.Errorf("document is empty")
	}

	id := reader.Fingerprint(trimmed)
	existing, err := store.GetDocument(id)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		changed := false
		if opts.Title != "" && opts.Title != existing.Title {
			existing.Title = opts.Title
			changed = true
		}
		if opts.WPM > 0 && opts.WPM != existing.WPM {
			existing.WPM = opts.WPM
			changed = true
		}
		if changed {
			existing.UpdatedAt = time.Now()
			if err := store.PutDocument(existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}

	doc := reader.NewDocument(trimmed, opts, time.Now())
	if err := store.PutDocument(doc); err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func reportImport(doc *library.Document, created bool) {
	if created {
		fmt.Printf("Imported: %s - %s (%d words)\n", doc.ID[:8], truncate(doc.Title, 50), doc.WordCount)
	} else {
		fmt.Printf("Already in library: %s - %s\n", doc.ID[:8], truncate(doc.Title, 50))
	}
}

func isTextFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".md"
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

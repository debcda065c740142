// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as a table or JSON, selected by the
// --output flag.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
)

// OutputOptions carries the resolved output format for a command.
type OutputOptions struct {
	format string
}

// AddOutputFlags registers the --output flag on cmd with the given default.
func (o *OutputOptions) AddOutputFlags(cmd *cobra.Command, def Format) {
	cmd.Flags().StringVarP(&o.format, "output", "o", string(def), "Output format (table, json)")
}

// Resolve validates the flag value. Call it at the top of RunE.
func (o *OutputOptions) Resolve() error {
	switch Format(o.format) {
	case OutputTable, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (choose table or json)", o.format)
	}
}

// Is reports whether the resolved format matches f.
func (o *OutputOptions) Is(f Format) bool {
	return Format(o.format) == f
}

// JSON writes v to stdout as indented JSON.
func JSON(v any) error {
	return WriteJSON(os.Stdout, v)
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table accumulates rows and renders them in aligned columns.
type Table struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers, writing to stdout.
func NewTable(headers ...string) *Table {
	return &Table{w: os.Stdout, headers: headers}
}

// NewTableTo is NewTable with an explicit writer.
func NewTableTo(w io.Writer, headers ...string) *Table {
	return &Table{w: w, headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the headers and all accumulated rows.
func (t *Table) Render() {
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	writeRow(tw, t.headers)
	for _, row := range t.rows {
		writeRow(tw, row)
	}
	tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableTo(&buf, "ID", "Title")
	table.AddRow("abc123", "A Short Title")
	table.AddRow("d4", "Another")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header line: %q", lines[0])
	}
	// Second column starts at the same offset in every line.
	off := strings.Index(lines[0], "Title")
	if off < 0 || strings.Index(lines[1], "A Short Title") != off {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"words": 42}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\"words\": 42") {
		t.Errorf("output: %q", buf.String())
	}
}

func TestResolveRejectsUnknownFormat(t *testing.T) {
	o := OutputOptions{format: "xml"}
	if err := o.Resolve(); err == nil {
		t.Fatal("xml must be rejected")
	}
	o.format = "json"
	if err := o.Resolve(); err != nil {
		t.Fatalf("json rejected: %v", err)
	}
	if !o.Is(OutputJSON) || o.Is(OutputTable) {
		t.Error("Is() inconsistent with resolved format")
	}
}

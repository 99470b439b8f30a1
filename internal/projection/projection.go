// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projection renders run results into files and markdown documents.
package projection

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// AtomicWrite writes content to path by writing a temp file in the same
// directory and renaming it over path.
func AtomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	tmpFile, err := os.CreateTemp(dir, ".skillcheck-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "writing content")
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return errors.Wrapf(err, "moving report to %s", path)
	}
	return nil
}

// Tally counts occurrences per key, e.g. findings per check ID.
type Tally map[string]int

// Add counts one occurrence of key.
func (t Tally) Add(key string) {
	t[key]++
}

// Rows returns one [key, count] row per key, keys in ascending order.
func (t Tally) Rows() [][]string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, strconv.Itoa(t[k])})
	}
	return rows
}

// Document builds a markdown document out of blocks separated by one blank
// line.
type Document struct {
	blocks []string
}

// Heading appends an ATX heading.
func (d *Document) Heading(level int, text string) {
	d.blocks = append(d.blocks, strings.Repeat("#", level)+" "+text+"\n")
}

// Paragraph appends a line of plain text.
func (d *Document) Paragraph(text string) {
	d.blocks = append(d.blocks, text+"\n")
}

// Bullets appends an unordered list. Nothing is appended for no items.
func (d *Document) Bullets(items ...string) {
	if len(items) == 0 {
		return
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- " + escapeInline(item) + "\n")
	}
	d.blocks = append(d.blocks, b.String())
}

// Table appends a table. Pipes and newlines inside cells are escaped so
// every row stays on one line. Rows are written in the order given.
func (d *Document) Table(headers []string, rows [][]string) {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(escapeInline(cell), "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	d.blocks = append(d.blocks, b.String())
}

// String returns the rendered document.
func (d *Document) String() string {
	return strings.Join(d.blocks, "\n")
}

func escapeInline(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

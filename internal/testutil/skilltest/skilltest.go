// SPDX-License-Identifier: AGPL-3.0-or-later

// Package skilltest writes skill catalogs and case files for tests.
package skilltest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DefaultHeadings are the second-level headings a conforming body carries.
var DefaultHeadings = []string{
	"Scope & Boundaries",
	"Degrees of Freedom",
	"Definition of Done",
	"Troubleshooting",
}

// Doc describes a skill document to render.
type Doc struct {
	Name        string
	Description string
	Tags        []string
	// Headings defaults to DefaultHeadings when nil.
	Headings []string
	// NoFeedbackLoop omits the feedback loop section.
	NoFeedbackLoop bool
	// ExtraLines pads the body with filler lines.
	ExtraLines int
}

// Valid returns a Doc that passes every conformance check.
func Valid(name, description string, tags ...string) Doc {
	if len(tags) == 0 {
		tags = []string{name}
	}
	return Doc{Name: name, Description: description, Tags: tags}
}

// Render produces the SKILL.md text.
func (d Doc) Render() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "name: %s\n", d.Name)
	fmt.Fprintf(&b, "description: %s\n", d.Description)
	b.WriteString("compatibility:\n  - claude-code\n")
	b.WriteString("allowed-tools: Read Grep\n")
	b.WriteString("metadata:\n")
	b.WriteString("  version: 1.0.0\n")
	b.WriteString("  author: platform-team\n")
	b.WriteString("  tags:\n")
	for _, tag := range d.Tags {
		fmt.Fprintf(&b, "    - %s\n", tag)
	}
	b.WriteString("  last_updated: 2025-01-15\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", d.Name)

	headings := d.Headings
	if headings == nil {
		headings = DefaultHeadings
	}
	for _, h := range headings {
		fmt.Fprintf(&b, "## %s\n\nGuidance.\n\n", h)
	}
	if !d.NoFeedbackLoop {
		b.WriteString("### Feedback Loop\n\nIterate until checks pass.\n")
	}
	for i := 0; i < d.ExtraLines; i++ {
		b.WriteString("filler\n")
	}
	return b.String()
}

// WriteSkill writes content to dir/folder/SKILL.md and returns its path.
func WriteSkill(t *testing.T, dir, folder, content string) string {
	t.Helper()
	path := filepath.Join(dir, folder, "SKILL.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", folder, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFile writes content to dir/name and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

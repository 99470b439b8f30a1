// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads skill documents into read-only Skill records.
//
// A skill lives in its own folder as SKILL.md: a YAML frontmatter block
// between "---" lines followed by a markdown body.
//
//	---
//	name: security
//	description: Threat modeling and security review.
//	compatibility: [claude-code]
//	metadata:
//	  version: 1.0.0
//	---
//
//	## Scope & Boundaries
//	...
package catalog

import (
	"strings"

	"github.com/bartekus/skillcheck/internal/tokenize"
)

// Skill is one routable unit of the catalog.
type Skill struct {
	// Folder is the containing directory name; unique within a catalog.
	Folder string
	// Path is the skill document path as discovered.
	Path   string
	Header *Header
	Body   string
	// BodyLine is the document line where Body starts.
	BodyLine  int
	LineCount int

	profile tokenize.Set
}

// Name returns the declared identity name, trimmed.
func (s *Skill) Name() string {
	return strings.TrimSpace(Text(s.Header.Direct("name")))
}

// ProfileTokens returns the token profile built from the description,
// name, tags and folder. The returned set must not be modified.
func (s *Skill) ProfileTokens() tokenize.Set {
	return s.profile
}

// FolderTokens returns the hyphen-separated words of the folder name.
func (s *Skill) FolderTokens() []string {
	return strings.Split(s.Folder, "-")
}

func profileText(h *Header, folder string) string {
	var tags string
	if list, ok := h.Resolve("tags").([]any); ok {
		tags = Text(list)
	}
	return strings.Join([]string{
		Text(h.Direct("description")),
		Text(h.Direct("name")),
		tags,
		strings.ReplaceAll(folder, "-", " "),
	}, " ")
}

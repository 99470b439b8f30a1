// SPDX-License-Identifier: AGPL-3.0-or-later

package routing

import (
	"sort"
	"strings"

	"github.com/bartekus/skillcheck/internal/tokenize"
)

// defaultHints maps a skill folder to words that strongly indicate it.
var defaultHints = map[string][]string{
	"product-manager":    {"mvp", "persona", "personas", "story", "stories", "requirements", "acceptance", "scope"},
	"architect":          {"architecture", "data", "model", "api", "contract", "adr", "design"},
	"backend-developer":  {"backend", "endpoint", "api", "migration", "entity", "repository", "dotnet"},
	"frontend-developer": {"frontend", "react", "screen", "form", "component", "ui", "typescript"},
	"ai-engineer":        {"llm", "prompt", "mcp", "agent", "workflow", "model", "inference"},
	"quality-engineer":   {"test", "tests", "coverage", "e2e", "performance", "regression"},
	"devops":             {"docker", "compose", "deploy", "deployment", "infrastructure", "pipeline", "cicd", "monitoring"},
	"code-reviewer":      {"review", "pull", "request", "code", "quality", "maintainability", "pr"},
	"security":           {"security", "owasp", "threat", "vulnerability", "auth", "audit"},
	"technical-writer":   {"documentation", "docs", "runbook", "guide", "api"},
	"blogger":            {"blog", "devlog", "retrospective", "lessons", "article"},
}

// HintTable is an immutable mapping from skill folder to hint words.
// The zero value has no hints.
type HintTable struct {
	words map[string]tokenize.Set
}

// NewHintTable builds a table from folder → words. Words are lowercased and
// trimmed; blank words are dropped.
func NewHintTable(src map[string][]string) HintTable {
	t := HintTable{words: make(map[string]tokenize.Set, len(src))}
	for folder, words := range src {
		t.words[folder] = normalize(words)
	}
	return t
}

// DefaultHints returns the built-in hint table.
func DefaultHints() HintTable {
	return NewHintTable(defaultHints)
}

// Merge returns a new table where each folder in overrides replaces that
// folder's hints. The receiver is not modified.
func (t HintTable) Merge(overrides map[string][]string) HintTable {
	out := HintTable{words: make(map[string]tokenize.Set, len(t.words)+len(overrides))}
	for folder, words := range t.words {
		out.words[folder] = words
	}
	for folder, words := range overrides {
		out.words[folder] = normalize(words)
	}
	return out
}

// Has reports whether tok is a hint for folder.
func (t HintTable) Has(folder, tok string) bool {
	return t.words[folder].Has(tok)
}

// Words returns the sorted hints for folder.
func (t HintTable) Words(folder string) []string {
	return t.words[folder].Sorted()
}

// Folders returns the folders with hints, sorted.
func (t HintTable) Folders() []string {
	out := make([]string, 0, len(t.words))
	for folder := range t.words {
		out = append(out, folder)
	}
	sort.Strings(out)
	return out
}

func normalize(words []string) tokenize.Set {
	set := tokenize.Set{}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/skillcheck/internal/scanner"
	"github.com/bartekus/skillcheck/internal/testutil/skilltest"
	"github.com/bartekus/skillcheck/internal/tokenize"
)

func newTestLoader(dir string) *Loader {
	return NewLoader(scanner.New(dir, scanner.FilterOptions{}), tokenize.Default())
}

func TestParse_ValidDocument(t *testing.T) {
	l := newTestLoader(t.TempDir())
	doc := skilltest.Valid("security", "Threat modeling and OWASP review.", "security", "appsec").Render()

	skill, err := l.Parse(filepath.Join("agents", "security-review", "SKILL.md"), doc)
	require.NoError(t, err)

	assert.Equal(t, "security-review", skill.Folder)
	assert.Equal(t, "security", skill.Name())
	assert.Equal(t, "1.0.0", Text(skill.Header.Resolve("version")))
	assert.Equal(t, "Read Grep", Text(skill.Header.Resolve("allowed-tools")))
	assert.Equal(t, []string{"security", "review"}, skill.FolderTokens())
	assert.Contains(t, skill.Body, "## Troubleshooting")
	assert.Equal(t, 15, skill.BodyLine)

	profile := skill.ProfileTokens()
	for _, tok := range []string{"threat", "modeling", "owasp", "review", "security", "appsec"} {
		assert.True(t, profile.Has(tok), tok)
	}
	assert.False(t, profile.Has("and"))
}

func TestParse_Failures(t *testing.T) {
	l := newTestLoader(t.TempDir())

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "empty file", content: "", want: ErrMissingStart},
		{name: "no start delimiter", content: "name: x\n---\nbody\n", want: ErrMissingStart},
		{name: "no end delimiter", content: "---\nname: x\nbody\n", want: ErrMissingEnd},
		{name: "list header", content: "---\n- a\n- b\n---\nbody\n", want: ErrNotMapping},
		{name: "empty header", content: "---\n---\nbody\n", want: ErrNotMapping},
		{name: "scalar header", content: "---\njust text\n---\n", want: ErrNotMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Parse("agents/x/SKILL.md", tt.content)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "agents/x/SKILL.md", perr.Path)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), "failed to parse SKILL.md")
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := newTestLoader(t.TempDir()).Parse("x/SKILL.md", "---\nname: [unclosed\n---\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestParse_LineCountAndBody(t *testing.T) {
	l := newTestLoader(t.TempDir())

	skill, err := l.Parse("a/SKILL.md", "  ---  \nname: a\n---\nline one\r\nline two\n")
	require.NoError(t, err)
	assert.Equal(t, 5, skill.LineCount)
	assert.Equal(t, "line one\nline two", skill.Body)
	assert.Equal(t, 4, skill.BodyLine)

	skill, err = l.Parse("a/SKILL.md", "---\nname: a\n---")
	require.NoError(t, err)
	assert.Equal(t, 3, skill.LineCount)
	assert.Equal(t, "", skill.Body)
}

func TestHeader_Resolve(t *testing.T) {
	l := newTestLoader(t.TempDir())
	content := "---\n" +
		"name: a\n" +
		"version: 2.0.0\n" +
		"author: null\n" +
		"metadata:\n" +
		"  version: 1.0.0\n" +
		"  author: someone\n" +
		"  tags: [x, y]\n" +
		"---\n"

	skill, err := l.Parse("a/SKILL.md", content)
	require.NoError(t, err)
	h := skill.Header

	assert.Equal(t, "2.0.0", h.Resolve("version"), "direct wins over nested")
	assert.Nil(t, h.Resolve("author"), "direct null wins over nested")
	assert.True(t, h.Has("author"))
	assert.Equal(t, []any{"x", "y"}, h.Resolve("tags"))
	assert.Nil(t, h.Resolve("last_updated"))
	assert.Nil(t, h.Direct("tags"))

	assert.Equal(t, 3, h.Line("version"))
	assert.Equal(t, 8, h.Line("tags"))
	assert.Equal(t, 4, h.Line("author"), "top-level declaration shadows the nested one")
	assert.Equal(t, 0, h.Line("missing"))
	assert.Equal(t, []string{"author", "metadata", "name", "version"}, h.Keys())
}

func TestHeader_Scalar(t *testing.T) {
	l := newTestLoader(t.TempDir())
	content := "---\n" +
		"name: a\n" +
		"author: null\n" +
		"version: 1.10\n" +
		"metadata:\n" +
		"  author: someone\n" +
		"  last_updated: 2025-1-1\n" +
		"  tags: [x]\n" +
		"---\n"

	skill, err := l.Parse("a/SKILL.md", content)
	require.NoError(t, err)
	h := skill.Header

	raw, ok := h.Scalar("version")
	assert.True(t, ok)
	assert.Equal(t, "1.10", raw)

	raw, ok = h.Scalar("last_updated")
	assert.True(t, ok, "nested scalar")
	assert.Equal(t, "2025-1-1", raw)

	_, ok = h.Scalar("author")
	assert.False(t, ok, "direct null shadows the nested value")
	_, ok = h.Scalar("tags")
	assert.False(t, ok, "lists are not scalars")
	_, ok = h.Scalar("missing")
	assert.False(t, ok)
}

func TestHeader_ResolveDoesNotMutate(t *testing.T) {
	skill, err := newTestLoader(t.TempDir()).Parse("a/SKILL.md", "---\nmetadata:\n  version: 1.0.0\n---\n")
	require.NoError(t, err)

	_ = skill.Header.Resolve("version")
	assert.False(t, skill.Header.Has("version"))
	assert.Equal(t, []string{"metadata"}, skill.Header.Keys())
}

func TestProfile_NonListTagsIgnored(t *testing.T) {
	skill, err := newTestLoader(t.TempDir()).Parse("ai-engineer/SKILL.md",
		"---\nname: ai\ndescription: Prompt design\ntags: llm\n---\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"ai", "design", "engineer", "prompt"}, skill.ProfileTokens().Sorted())
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"1.0.0", "1.0.0"},
		{true, "true"},
		{42, "42"},
		{1.5, "1.5"},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "2025-01-15"},
		{[]any{"a", 1}, "a 1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in))
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	skilltest.WriteSkill(t, dir, "architect", skilltest.Valid("architect", "Architecture and contracts").Render())
	skilltest.WriteSkill(t, dir, "broken", "no frontmatter here\n")
	skilltest.WriteSkill(t, dir, "security", skilltest.Valid("security", "Security review").Render())

	cat, failures, err := newTestLoader(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"architect", "security"}, cat.Folders())
	assert.Equal(t, 2, cat.Len())
	assert.True(t, cat.Has("security"))
	assert.Nil(t, cat.Get("broken"))

	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "broken", "SKILL.md"), failures[0].Path)
	assert.True(t, errors.Is(failures[0], ErrMissingStart))
}

func TestLoader_LoadMissingDir(t *testing.T) {
	_, _, err := newTestLoader(filepath.Join(t.TempDir(), "missing")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scanner.ErrRootNotFound))
}

func TestNew_IgnoresDuplicateFolders(t *testing.T) {
	a := &Skill{Folder: "a", Path: "one/a/SKILL.md"}
	dup := &Skill{Folder: "a", Path: "two/a/SKILL.md"}
	c := New(a, dup)
	assert.Equal(t, 1, c.Len())
	assert.Same(t, a, c.Get("a"))
}

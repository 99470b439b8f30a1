// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/skillcheck/internal/report"
	"github.com/bartekus/skillcheck/internal/testutil/skilltest"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "agents", cfg.SkillsDir)
	assert.Equal(t, "scripts/skill-regression-cases.yaml", cfg.Cases)
	assert.Equal(t, 500, cfg.MaxLines)
	assert.Equal(t, report.FormatText, cfg.Format)
	assert.Equal(t, report.ColorAuto, cfg.Color)
	assert.Empty(t, cfg.Exclude)
	assert.Nil(t, cfg.Hints)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := skilltest.WriteFile(t, dir, "custom.yaml", `
skills_dir: skills
max_lines: 300
format: markdown
exclude: [drafts]
hints:
  security: [pentest, cve]
  blogger: essay
`)

	t.Setenv("SKILLCHECK_MAX_LINES", "250")

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "skills", cfg.SkillsDir)
	assert.Equal(t, 250, cfg.MaxLines)
	assert.Equal(t, report.FormatMarkdown, cfg.Format)
	assert.Equal(t, []string{"drafts"}, cfg.Exclude)
	assert.Equal(t, map[string][]string{
		"security": {"pentest", "cve"},
		"blogger":  {"essay"},
	}, cfg.Hints)

	table := cfg.HintTable()
	assert.Equal(t, []string{"cve", "pentest"}, table.Words("security"))
	assert.True(t, table.Has("architect", "adr"))
}

func TestReadFile_Missing(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, ReadFile(New(), ""))

	err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestReadFile_DiscoversDefaultName(t *testing.T) {
	dir := t.TempDir()
	skilltest.WriteFile(t, dir, ".skillcheck.yaml", "cases: tests/cases.yaml\n")
	chdir(t, dir)

	v := New()
	require.NoError(t, ReadFile(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "tests/cases.yaml", cfg.Cases)
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	v := New()
	v.Set(KeySkillsDir, " ")
	v.Set(KeyMaxLines, 0)
	v.Set(KeyFormat, "yaml")
	v.Set(KeyHints, map[string]any{"security": map[string]any{"nested": true}})

	_, err := Load(v)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 4)
	assert.Contains(t, err.Error(), "skills_dir must not be empty")
	assert.Contains(t, err.Error(), "max_lines must be positive, got 0")
	assert.Contains(t, err.Error(), `unknown report format "yaml"`)
	assert.Contains(t, err.Error(), "hints must map skill folders to word lists")
}

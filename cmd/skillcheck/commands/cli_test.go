package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/skillcheck/cmd/skillcheck/internal/clierr"
	"github.com/bartekus/skillcheck/internal/testutil/skilltest"
)

const casesFile = `cases:
  - id: sec
    prompt: run a security audit of the auth design
    expected_skill: security
    forbidden_skills: [architect]
  - id: arch
    prompt: draft an ADR for the data model contract
    expected_skill: architect
`

// workspace creates a passing repository layout and makes it the working
// directory.
func workspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	skilltest.WriteSkill(t, filepath.Join(root, "agents"), "architect",
		skilltest.Valid("architect", "System design and API contracts").Render())
	skilltest.WriteSkill(t, filepath.Join(root, "agents"), "security",
		skilltest.Valid("security", "Threat modeling and security review").Render())
	skilltest.WriteFile(t, root, "scripts/skill-regression-cases.yaml", casesFile)
	chdir(t, root)
	return root
}

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), clierr.ExitCodeOf(err)
}

func TestCheck_Pass(t *testing.T) {
	workspace(t)

	for _, args := range [][]string{nil, {"check"}} {
		out, _, code := execute(t, args...)
		assert.Equal(t, clierr.ExitOK, code, out)
		assert.Contains(t, out,
			"[PASS] Skill regression checks passed for 2 skills (max_lines=500, cases=scripts/skill-regression-cases.yaml)")
		assert.Contains(t, out, "Summary: 2 skills, 2 cases, 0 errors, 0 warnings")
	}
}

func TestCheck_StructureFindings(t *testing.T) {
	root := workspace(t)
	doc := skilltest.Valid("security", "Threat modeling and security review")
	doc.NoFeedbackLoop = true
	skilltest.WriteSkill(t, filepath.Join(root, "agents"), "security", doc.Render())

	out, _, code := execute(t)
	assert.Equal(t, clierr.ExitFindings, code)
	assert.Contains(t, out, "[FAIL] Skill regression checks failed:")
	assert.Contains(t, out, filepath.Join("agents", "security", "SKILL.md"))
	assert.Contains(t, out, "    - missing explicit 'Feedback Loop' section\n")
}

func TestCheck_InfrastructureFailures(t *testing.T) {
	t.Run("missing skills dir", func(t *testing.T) {
		workspace(t)
		_, _, code := execute(t, "--skills-dir", "nope")
		assert.Equal(t, clierr.ExitInfra, code)
	})

	t.Run("missing cases file", func(t *testing.T) {
		workspace(t)
		_, _, code := execute(t, "--cases", "nope.yaml")
		assert.Equal(t, clierr.ExitInfra, code)
	})

	t.Run("no parsable skills", func(t *testing.T) {
		root := t.TempDir()
		skilltest.WriteSkill(t, filepath.Join(root, "agents"), "broken", "---\nname: broken\n")
		chdir(t, root)

		out, _, code := execute(t)
		assert.Equal(t, clierr.ExitInfra, code)
		assert.Contains(t, out, "failed to parse SKILL.md (missing YAML frontmatter end delimiter)")
	})

	t.Run("empty skills dir", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "agents"), 0o755))
		chdir(t, root)

		out, _, code := execute(t)
		assert.Equal(t, clierr.ExitInfra, code)
		assert.Contains(t, out, "[ERROR] No SKILL.md files found under agents")
		assert.NotContains(t, out, "[PASS]")
	})

	t.Run("invalid config", func(t *testing.T) {
		workspace(t)
		_, _, code := execute(t, "--max-lines", "0", "--format", "yaml")
		assert.Equal(t, clierr.ExitInfra, code)
	})
}

func TestCheck_ParseFailureSkipsRouting(t *testing.T) {
	root := workspace(t)
	skilltest.WriteSkill(t, filepath.Join(root, "agents"), "broken", "---\n- not a mapping\n---\n")

	// the missing cases file is never consulted
	out, _, code := execute(t, "--cases", "nope.yaml")
	assert.Equal(t, clierr.ExitFindings, code)
	assert.Contains(t, out, "frontmatter must parse to a mapping")
	assert.Contains(t, out, "Skipped:\n  - routing:regression: 1 skill document(s) failed to parse\n")
}

func TestCheck_ConfigFileAndFlagPrecedence(t *testing.T) {
	root := workspace(t)
	skilltest.WriteFile(t, root, ".skillcheck.yaml", "max_lines: 10\n")

	_, _, code := execute(t)
	assert.Equal(t, clierr.ExitFindings, code)

	_, _, code = execute(t, "--max-lines", "1000")
	assert.Equal(t, clierr.ExitOK, code)

	other := skilltest.WriteFile(t, root, "ci.yaml", "max_lines: 1000\n")
	_, _, code = execute(t, "--config", other)
	assert.Equal(t, clierr.ExitOK, code)
}

func TestCheck_JSONReport(t *testing.T) {
	workspace(t)

	out, _, code := execute(t, "check", "--format", "json")
	require.Equal(t, clierr.ExitOK, code)

	var decoded struct {
		Status   string `json:"status"`
		Skills   int    `json:"skills"`
		Cases    int    `json:"cases"`
		Findings []any  `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "pass", decoded.Status)
	assert.Equal(t, 2, decoded.Skills)
	assert.Equal(t, 2, decoded.Cases)
	assert.Empty(t, decoded.Findings)
}

func TestCheck_OutputFile(t *testing.T) {
	root := workspace(t)
	path := filepath.Join(root, "out", "report.md")

	out, _, code := execute(t, "--format", "markdown", "--output", path)
	require.Equal(t, clierr.ExitOK, code)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Skill check report")
	assert.Contains(t, string(data), "No findings.")
}

func TestCheck_Only(t *testing.T) {
	workspace(t)

	out, _, code := execute(t, "check", "--only", "skills:metadata", "--cases", "nope.yaml")
	assert.Equal(t, clierr.ExitOK, code, out)
	assert.Contains(t, out, "0 cases")

	_, _, code = execute(t, "check", "--only", "nope")
	assert.Equal(t, clierr.ExitInfra, code)
}

func TestRoute(t *testing.T) {
	workspace(t)

	out, _, code := execute(t, "route", "run a security audit of the auth design")
	assert.Equal(t, clierr.ExitOK, code)
	assert.Contains(t, out, "Prompt tokens: audit, auth, design, of, security\n")
	assert.Contains(t, out, "audit(hint) auth(hint) security(profile+hint+name)")
	assert.Contains(t, out, "design(profile+hint)")
	assert.Contains(t, out, "Routed to security (score 9)\n")

	out, _, code = execute(t, "route", "bake", "bread")
	assert.Equal(t, clierr.ExitFindings, code)
	assert.Contains(t, out, "No confident route: every skill scored 0")
}

func TestRoute_JSON(t *testing.T) {
	workspace(t)

	out, _, code := execute(t, "route", "--json", "--top", "1", "adr for the data model")
	require.Equal(t, clierr.ExitOK, code)

	var res struct {
		Winner  string           `json:"winner"`
		Score   int              `json:"score"`
		Ranking []map[string]any `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "architect", res.Winner)
	assert.Equal(t, 6, res.Score)
	assert.Len(t, res.Ranking, 1)
}

func TestList(t *testing.T) {
	workspace(t)

	out, _, code := execute(t, "list")
	require.Equal(t, clierr.ExitOK, code)
	assert.Contains(t, out, "FOLDER")
	assert.Contains(t, out, "architect")
	assert.Contains(t, out, "security")

	out, _, code = execute(t, "list", "--json")
	require.Equal(t, clierr.ExitOK, code)
	var items []SkillListItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "architect", items[0].Folder)
	assert.Equal(t, "architect", items[0].Name)
	assert.Positive(t, items[0].Lines)
}

func TestVersion(t *testing.T) {
	t.Setenv("SKILLCHECK_VERSION", "1.2.3")
	out, _, code := execute(t, "version")
	assert.Equal(t, clierr.ExitOK, code)
	assert.Equal(t, "skillcheck version 1.2.3\n", out)
}

func TestHelp(t *testing.T) {
	out, _, code := execute(t, "--help")
	assert.Equal(t, clierr.ExitOK, code)
	for _, want := range []string{"check", "route", "list", "version", "--skills-dir", "--cases", "--max-lines"} {
		assert.Contains(t, out, want)
	}
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package regression

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/finding"
)

// CheckRegression identifies findings produced by the regression runner.
const CheckRegression = "routing:regression"

const unknownID = "<unknown>"

// ErrCasesFileMissing is returned when the cases file does not exist.
var ErrCasesFileMissing = errors.New("cases file not found")

// Suite is a loaded cases file. Entries stay as YAML nodes so each case can
// be validated individually and reported with its line.
type Suite struct {
	Path    string
	entries []*yaml.Node
}

// Len returns the number of case entries, well-formed or not.
func (s *Suite) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Load reads a cases file. A missing or unreadable file is an error; a file
// that is not a document with a top-level "cases" list yields a nil suite
// and a finding.
func Load(path string) (*Suite, finding.List, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(ErrCasesFileMissing, "%s", path)
		}
		return nil, nil, errors.Wrapf(err, "reading cases file %s", path)
	}
	suite, f := Parse(path, content)
	if f != nil {
		return nil, finding.List{*f}, nil
	}
	return suite, nil, nil
}

// Parse builds a Suite from cases file content.
func Parse(path string, content []byte) (*Suite, *finding.Finding) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		f := finding.Errorf(CheckRegression, finding.At(path), "invalid YAML (%v)", err)
		return nil, &f
	}

	var doc *yaml.Node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		doc = root.Content[0]
	}
	if doc == nil || doc.Kind != yaml.MappingNode {
		f := finding.Errorf(CheckRegression, finding.At(path), "expected top-level 'cases' list")
		return nil, &f
	}

	var list *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "cases" {
			list = doc.Content[i+1]
		}
	}
	if list == nil || list.Kind != yaml.SequenceNode {
		line := 0
		if list != nil {
			line = list.Line
		}
		f := finding.Errorf(CheckRegression, finding.AtLine(path, line), "expected top-level 'cases' list")
		return nil, &f
	}

	return &Suite{Path: path, entries: list.Content}, nil
}

// Case is one well-formed golden routing assertion.
type Case struct {
	ID              string
	Prompt          string
	ExpectedSkill   string
	ForbiddenSkills []string
	// Line is where the case starts in the cases file.
	Line int
}

// caseError is a reason a case entry cannot be evaluated. expected is set
// once the expected skill resolved, so the entry still counts for coverage.
type caseError struct {
	id       string
	msg      string
	expected string
}

// decodeCase validates one entry against the catalog. On success the case
// references only known skills.
func decodeCase(node *yaml.Node, c *catalog.Catalog) (*Case, *caseError) {
	if node.Kind != yaml.MappingNode {
		var v any
		_ = node.Decode(&v)
		return nil, &caseError{msg: "case must be a mapping, got '" + catalog.Text(v) + "'"}
	}

	fields := map[string]any{}
	if err := node.Decode(&fields); err != nil {
		return nil, &caseError{msg: fmt.Sprintf("case could not be decoded (%v)", err)}
	}

	id := unknownID
	if v, ok := fields["id"]; ok {
		id = catalog.Text(v)
	}
	expected := strings.TrimSpace(catalog.Text(fields["expected_skill"]))
	if expected == "" {
		return nil, &caseError{id: id, msg: fmt.Sprintf("case '%s' missing expected_skill", id)}
	}
	if !c.Has(expected) {
		return nil, &caseError{id: id, msg: fmt.Sprintf("case '%s' expects unknown skill '%s'", id, expected)}
	}
	fail := func(format string, args ...any) (*Case, *caseError) {
		return nil, &caseError{id: id, msg: fmt.Sprintf(format, args...), expected: expected}
	}

	prompt := strings.TrimSpace(catalog.Text(fields["prompt"]))
	if prompt == "" {
		return fail("case '%s' missing prompt", id)
	}

	var forbidden []string
	switch raw := fields["forbidden_skills"].(type) {
	case nil:
	case []any:
		var invalid []any
		for _, item := range raw {
			s, ok := item.(string)
			if !ok || strings.TrimSpace(s) == "" {
				invalid = append(invalid, item)
				continue
			}
			forbidden = append(forbidden, strings.TrimSpace(s))
		}
		if len(invalid) > 0 {
			return fail("case '%s' has invalid forbidden_skills entries: %s", id, quoteList(invalid))
		}
	default:
		return fail("case '%s' field 'forbidden_skills' must be a list of skill names", id)
	}

	var unknown []any
	for _, f := range forbidden {
		if !c.Has(f) {
			unknown = append(unknown, f)
		}
	}
	if len(unknown) > 0 {
		return fail("case '%s' has unknown forbidden skills: %s", id, quoteList(unknown))
	}

	return &Case{
		ID:              id,
		Prompt:          prompt,
		ExpectedSkill:   expected,
		ForbiddenSkills: forbidden,
		Line:            node.Line,
	}, nil
}

// quoteList renders values as ['a', 'b']; non-string values are unquoted.
func quoteList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			parts = append(parts, "'"+t+"'")
		case nil:
			parts = append(parts, "null")
		default:
			parts = append(parts, fmt.Sprint(t))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

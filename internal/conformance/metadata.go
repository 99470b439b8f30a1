// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conformance checks skill documents against the catalog's
// metadata and structure contract.
package conformance

import (
	"regexp"

	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/finding"
)

// Check identifiers used on findings.
const (
	CheckMetadata    = "skills:metadata"
	CheckStructure   = "skills:structure"
	CheckUniqueNames = "skills:unique-names"
)

var (
	semverExpr = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	dateExpr   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// MetadataRules lists the header fields every skill must declare.
type MetadataRules struct {
	// TopLevel fields must be declared directly and be non-empty.
	TopLevel []string
	// Flexible fields may be declared directly or under the metadata mapping.
	Flexible []string
}

// DefaultMetadataRules returns the catalog's header contract.
func DefaultMetadataRules() MetadataRules {
	return MetadataRules{
		TopLevel: []string{"name", "description", "compatibility"},
		Flexible: []string{"allowed-tools", "version", "author", "tags", "last_updated"},
	}
}

// MetadataValidator checks a skill's header block.
type MetadataValidator struct {
	rules MetadataRules
}

// NewMetadataValidator creates a validator for the given rules.
func NewMetadataValidator(rules MetadataRules) *MetadataValidator {
	return &MetadataValidator{rules: rules}
}

// Validate returns one error finding per violation. An absent optional
// field is only reported by the presence rules, never by the format rules.
func (v *MetadataValidator) Validate(s *catalog.Skill) finding.List {
	var out finding.List
	h := s.Header
	at := func(field string) finding.Location {
		return finding.AtLine(s.Path, h.Line(field))
	}

	for _, field := range v.rules.TopLevel {
		if isEmpty(h.Direct(field)) {
			out.Add(finding.Errorf(CheckMetadata, finding.At(s.Path),
				"missing top-level frontmatter field '%s'", field))
		}
	}

	for _, field := range v.rules.Flexible {
		if h.Resolve(field) == nil {
			out.Add(finding.Errorf(CheckMetadata, finding.At(s.Path),
				"missing skill field '%s' (expected top-level or %s.<field>)", field, catalog.NestedKey))
		}
	}

	if version := sourceText(h, "version"); version != "" && !semverExpr.MatchString(version) {
		out.Add(finding.Errorf(CheckMetadata, at("version"),
			"version must be semver (x.y.z), got '%s'", version))
	}

	for _, field := range []string{"tags", "compatibility"} {
		value := h.Resolve(field)
		if value == nil {
			continue
		}
		if list, ok := value.([]any); !ok || len(list) == 0 {
			out.Add(finding.Errorf(CheckMetadata, at(field), "'%s' must be a non-empty list", field))
		}
	}

	if updated := sourceText(h, "last_updated"); updated != "" && !dateExpr.MatchString(updated) {
		out.Add(finding.Errorf(CheckMetadata, at("last_updated"),
			"'last_updated' must use YYYY-MM-DD, got '%s'", updated))
	}

	return out
}

// sourceText returns a field as written in the document. Scalars keep their
// source form so that dates and numbers are checked before YAML normalizes
// them.
func sourceText(h *catalog.Header, field string) string {
	if raw, ok := h.Scalar(field); ok {
		return raw
	}
	return catalog.Text(h.Resolve(field))
}

// isEmpty treats null, blank strings, empty collections, false and zero as
// not declared.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case bool:
		return !t
	case int:
		return t == 0
	case float64:
		return t == 0
	}
	return false
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package conformance

import (
	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/finding"
)

// DefaultMaxLines is the default ceiling on a skill document's length.
const DefaultMaxLines = 500

// StructureRules describes the required shape of a skill body.
type StructureRules struct {
	MaxLines int
	// Headings must appear verbatim as second-level headings.
	Headings []string
}

// DefaultStructureRules returns the catalog's body contract.
func DefaultStructureRules() StructureRules {
	return StructureRules{
		MaxLines: DefaultMaxLines,
		Headings: []string{
			"Scope & Boundaries",
			"Degrees of Freedom",
			"Definition of Done",
			"Troubleshooting",
		},
	}
}

// StructureValidator checks a skill's size and body sections.
type StructureValidator struct {
	rules StructureRules
}

// NewStructureValidator creates a validator for the given rules.
func NewStructureValidator(rules StructureRules) *StructureValidator {
	return &StructureValidator{rules: rules}
}

// Validate returns one error finding per violation.
func (v *StructureValidator) Validate(s *catalog.Skill) finding.List {
	var out finding.List
	loc := finding.At(s.Path)

	if s.LineCount > v.rules.MaxLines {
		out.Add(finding.Errorf(CheckStructure, loc,
			"line count %d exceeds max %d", s.LineCount, v.rules.MaxLines))
	}

	o := parseOutline(s.Body)
	for _, heading := range v.rules.Headings {
		if !o.h2[heading] {
			out.Add(finding.Errorf(CheckStructure, loc, "missing required H2 heading '## %s'", heading))
		}
	}

	if !o.feedbackLoop {
		out.Add(finding.Errorf(CheckStructure, loc, "missing explicit 'Feedback Loop' section"))
	}

	return out
}

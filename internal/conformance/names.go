// SPDX-License-Identifier: AGPL-3.0-or-later

package conformance

import (
	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/finding"
)

// UniqueNames reports every skill whose declared name was already declared
// by an earlier skill. Each duplicate names both documents.
func UniqueNames(skills []*catalog.Skill) finding.List {
	var out finding.List
	seen := make(map[string]string, len(skills))

	for _, s := range skills {
		name := s.Name()
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			out.Add(finding.Errorf(CheckUniqueNames, finding.AtLine(s.Path, s.Header.Line("name")),
				"duplicate frontmatter name '%s' in %s and %s", name, s.Path, first))
			continue
		}
		seen[name] = s.Path
	}

	return out
}

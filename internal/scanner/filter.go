// SPDX-License-Identifier: AGPL-3.0-or-later

package scanner

import (
	"sort"
	"strings"
)

// FilterOptions defines criteria for excluding skill folders.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "drafts" excludes "drafts/SKILL.md",
	// but not "drafts-old/SKILL.md".
	ExcludeDirs []string
}

// FilterFiles applies the filter options to a list of slash-separated paths.
// It returns a new slice, sorted deterministically.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	var filtered []string
	for _, path := range paths {
		if shouldExclude(path, opts.ExcludeDirs) {
			continue
		}
		filtered = append(filtered, path)
	}

	sort.Strings(filtered)
	return filtered
}

// shouldExclude returns true if the path contains any of the excluded segments.
func shouldExclude(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

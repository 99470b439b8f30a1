// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Reasons a skill document fails to parse.
var (
	ErrMissingStart = errors.New("missing YAML frontmatter start delimiter")
	ErrMissingEnd   = errors.New("missing YAML frontmatter end delimiter")
	ErrNotMapping   = errors.New("frontmatter must parse to a mapping")
)

// ParseError is a structural failure of one skill document. It is fatal for
// that skill only.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse SKILL.md (%v)", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// document is a skill file split into its header and body.
type document struct {
	header    *yaml.Node // mapping node
	body      string
	bodyLine  int
	lineCount int
}

// splitLines splits content the way a line-oriented reader sees it: a
// trailing newline does not start an extra line and CRLF/CR are line breaks.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// parseDocument splits content into a frontmatter mapping and a body. The
// first line must be the start delimiter; the header ends at the next
// delimiter line.
func parseDocument(content string) (*document, error) {
	lines := splitLines(content)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return nil, ErrMissingStart
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, ErrMissingEnd
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &root); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	return &document{
		header:    root.Content[0],
		body:      strings.Join(lines[end+1:], "\n"),
		bodyLine:  end + 2,
		lineCount: len(lines),
	}, nil
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// SkillFileName is the canonical skill document name inside a skill folder.
const SkillFileName = "SKILL.md"

// ErrRootNotFound is returned when the skills directory does not exist.
var ErrRootNotFound = errors.New("skills directory not found")

// Scanner enumerates skill documents below a skills directory.
type Scanner struct {
	root string
	opts FilterOptions

	mu    sync.Mutex
	cache []string
}

// New creates a Scanner for the given skills directory.
func New(root string, opts FilterOptions) *Scanner {
	return &Scanner{
		root: root,
		opts: opts,
	}
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string {
	return s.root
}

// SkillDocuments returns the paths of every <root>/<folder>/SKILL.md, one per
// immediate non-hidden subdirectory, sorted. Paths are joined onto root as given.
// The result is cached for the instance lifetime.
func (s *Scanner) SkillDocuments(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		return s.cache, nil
	}

	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrRootNotFound, "%s", s.root)
		}
		return nil, errors.Wrapf(err, "stat skills directory %s", s.root)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrRootNotFound, "%s is not a directory", s.root)
	}

	matches, err := doublestar.Glob(os.DirFS(s.root), "*/"+SkillFileName)
	if err != nil {
		return nil, errors.Wrap(err, "globbing skill documents")
	}

	var files []string
	for _, rel := range FilterFiles(matches, s.opts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(rel, ".") {
			continue
		}
		full := filepath.Join(s.root, filepath.FromSlash(rel))
		fi, err := os.Stat(full)
		if err != nil || fi.IsDir() {
			continue
		}
		files = append(files, full)
	}

	if files == nil {
		files = []string{}
	}
	s.cache = files
	return s.cache, nil
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bartekus/skillcheck/internal/logger"
	"github.com/bartekus/skillcheck/internal/scanner"
	"github.com/bartekus/skillcheck/internal/tokenize"
)

// Catalog is the ordered set of skills that parsed successfully.
type Catalog struct {
	skills   []*Skill
	byFolder map[string]*Skill
}

// New builds a catalog from already constructed skills, keeping their order.
// Later skills with a folder already present are ignored.
func New(skills ...*Skill) *Catalog {
	c := &Catalog{byFolder: make(map[string]*Skill, len(skills))}
	for _, s := range skills {
		if _, dup := c.byFolder[s.Folder]; dup {
			continue
		}
		c.skills = append(c.skills, s)
		c.byFolder[s.Folder] = s
	}
	return c
}

// Skills returns the skills in discovery order.
func (c *Catalog) Skills() []*Skill {
	return c.skills
}

// Get returns the skill for folder, or nil.
func (c *Catalog) Get(folder string) *Skill {
	return c.byFolder[folder]
}

// Has reports whether folder is part of the catalog.
func (c *Catalog) Has(folder string) bool {
	_, ok := c.byFolder[folder]
	return ok
}

// Len returns the number of skills.
func (c *Catalog) Len() int {
	return len(c.skills)
}

// Folders returns the folder names in discovery order.
func (c *Catalog) Folders() []string {
	out := make([]string, 0, len(c.skills))
	for _, s := range c.skills {
		out = append(out, s.Folder)
	}
	return out
}

// Loader builds skills from documents found by a scanner.
type Loader struct {
	scanner   *scanner.Scanner
	tokenizer *tokenize.Tokenizer
}

// NewLoader creates a Loader. The tokenizer builds every skill's profile.
func NewLoader(scn *scanner.Scanner, tok *tokenize.Tokenizer) *Loader {
	return &Loader{scanner: scn, tokenizer: tok}
}

// Load parses every discovered skill document. A document that fails to
// parse is reported in the returned failures and skipped; the scan always
// continues. The error is non-nil only when discovery itself fails.
func (l *Loader) Load(ctx context.Context) (*Catalog, []*ParseError, error) {
	log := logger.G(ctx)

	paths, err := l.scanner.SkillDocuments(ctx)
	if err != nil {
		return nil, nil, err
	}

	var (
		skills   []*Skill
		failures []*ParseError
	)
	for _, path := range paths {
		skill, err := l.LoadFile(path)
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				perr = &ParseError{Path: path, Err: err}
			}
			log.WithField("path", path).WithError(perr.Err).Debug("skill document failed to parse")
			failures = append(failures, perr)
			continue
		}
		log.WithField("skill", skill.Folder).WithField("lines", skill.LineCount).Debug("loaded skill")
		skills = append(skills, skill)
	}

	return New(skills...), failures, nil
}

// LoadFile parses a single skill document. The folder is the name of the
// directory containing path.
func (l *Loader) LoadFile(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: errors.Wrap(err, "reading skill document")}
	}
	return l.Parse(path, string(content))
}

// Parse builds a Skill from document content.
func (l *Loader) Parse(path, content string) (*Skill, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	// The header starts on the line after the opening delimiter.
	header, err := newHeader(doc.header, 2)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	folder := filepath.Base(filepath.Dir(path))
	return &Skill{
		Folder:    folder,
		Path:      path,
		Header:    header,
		Body:      doc.body,
		BodyLine:  doc.bodyLine,
		LineCount: doc.lineCount,
		profile:   l.tokenizer.Tokenize(profileText(header, folder)),
	}, nil
}

// SPDX-License-Identifier: AGPL-3.0-or-later

// Package routing scores prompts against the skill catalog and picks the
// skill a prompt should activate.
//
// Every prompt token contributes independently:
//
//	+1  token is in the skill's profile tokens
//	+2  token is one of the skill's hint words
//	+2  token is a folder word or a token of the declared name
//
// The highest total wins; ties go to the lexically smallest folder.
package routing

import (
	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/tokenize"
)

// Scoring weights. Existing regression suites are tuned against these.
const (
	ProfileWeight = 1
	HintWeight    = 2
	NameWeight    = 2
)

// Contribution is what a single prompt token added to a skill's score.
type Contribution struct {
	Token   string `json:"token"`
	Profile bool   `json:"profile,omitempty"`
	Hint    bool   `json:"hint,omitempty"`
	Name    bool   `json:"name,omitempty"`
	Points  int    `json:"points"`
}

// Breakdown is a skill's score for one prompt with the tokens that produced it.
type Breakdown struct {
	Folder string `json:"folder"`
	Score  int    `json:"score"`
	// Contributions holds only tokens that scored, in ascending token order.
	Contributions []Contribution `json:"contributions,omitempty"`
}

// Scorer computes routing scores. It holds no mutable state.
type Scorer struct {
	hints     HintTable
	tokenizer *tokenize.Tokenizer
}

// NewScorer creates a Scorer using hints and the tokenizer that tokenizes
// prompts and declared names.
func NewScorer(hints HintTable, tok *tokenize.Tokenizer) *Scorer {
	return &Scorer{hints: hints, tokenizer: tok}
}

// Hints returns the table the scorer was built with.
func (s *Scorer) Hints() HintTable {
	return s.hints
}

// Tokenize tokenizes a prompt the same way Route does.
func (s *Scorer) Tokenize(prompt string) tokenize.Set {
	return s.tokenizer.Tokenize(prompt)
}

// Score returns the routing score of skill for the given prompt tokens.
func (s *Scorer) Score(prompt tokenize.Set, skill *catalog.Skill) int {
	return s.Explain(prompt, skill).Score
}

// Explain returns the score of skill together with each token's contribution.
func (s *Scorer) Explain(prompt tokenize.Set, skill *catalog.Skill) Breakdown {
	names := s.nameTokens(skill)
	profile := skill.ProfileTokens()

	b := Breakdown{Folder: skill.Folder}
	for _, tok := range prompt.Sorted() {
		c := Contribution{
			Token:   tok,
			Profile: profile.Has(tok),
			Hint:    s.hints.Has(skill.Folder, tok),
			Name:    names.Has(tok),
		}
		if c.Profile {
			c.Points += ProfileWeight
		}
		if c.Hint {
			c.Points += HintWeight
		}
		if c.Name {
			c.Points += NameWeight
		}
		if c.Points == 0 {
			continue
		}
		b.Score += c.Points
		b.Contributions = append(b.Contributions, c)
	}
	return b
}

// nameTokens are the raw folder words plus the tokenized declared name.
func (s *Scorer) nameTokens(skill *catalog.Skill) tokenize.Set {
	set := s.tokenizer.Tokenize(skill.Name())
	for _, w := range skill.FolderTokens() {
		set[w] = struct{}{}
	}
	return set
}

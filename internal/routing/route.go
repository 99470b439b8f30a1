// SPDX-License-Identifier: AGPL-3.0-or-later

package routing

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bartekus/skillcheck/internal/catalog"
)

// ErrNoConfidentRoute is returned when no skill scores above zero.
var ErrNoConfidentRoute = errors.New("no confident route")

// Result is the outcome of routing one prompt.
type Result struct {
	Winner string `json:"winner"`
	Score  int    `json:"score"`
	// Tokens are the prompt tokens in ascending order.
	Tokens []string `json:"tokens"`
	// Ranking lists every skill by descending score, then ascending folder.
	Ranking []Breakdown `json:"ranking"`
}

// Rank scores prompt against every skill in c.
func (s *Scorer) Rank(prompt string, c *catalog.Catalog) Result {
	tokens := s.Tokenize(prompt)

	ranking := make([]Breakdown, 0, c.Len())
	for _, skill := range c.Skills() {
		ranking = append(ranking, s.Explain(tokens, skill))
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Folder < ranking[j].Folder
	})

	res := Result{Tokens: tokens.Sorted(), Ranking: ranking}
	if len(ranking) > 0 {
		res.Winner = ranking[0].Folder
		res.Score = ranking[0].Score
	}
	return res
}

// Route selects the skill prompt should activate. It returns
// ErrNoConfidentRoute, along with the full ranking, when the best score is
// zero or the catalog is empty.
func (s *Scorer) Route(prompt string, c *catalog.Catalog) (Result, error) {
	res := s.Rank(prompt, c)
	if res.Score == 0 {
		res.Winner = ""
		return res, ErrNoConfidentRoute
	}
	return res, nil
}

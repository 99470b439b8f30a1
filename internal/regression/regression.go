// SPDX-License-Identifier: AGPL-3.0-or-later

// Package regression evaluates golden routing cases against a catalog.
//
// A cases file is a YAML document with a top-level "cases" list:
//
//	cases:
//	  - id: security-audit
//	    prompt: run a security audit of the auth design
//	    expected_skill: security
//	    forbidden_skills: [architect]
//
// Every case is evaluated even when earlier ones fail. After the last case
// every catalog folder must have appeared as some case's expected_skill.
package regression

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/finding"
	"github.com/bartekus/skillcheck/internal/logger"
	"github.com/bartekus/skillcheck/internal/routing"
)

// Outcome summarizes one regression run.
type Outcome struct {
	Findings finding.List
	// Cases is the number of case entries in the suite.
	Cases int
	// Routed counts the cases that reached the scorer.
	Routed int
	// Covered lists the catalog folders referenced as expected_skill, sorted.
	Covered []string
}

// Runner evaluates suites with a fixed scorer.
type Runner struct {
	scorer *routing.Scorer
}

// NewRunner creates a Runner.
func NewRunner(scorer *routing.Scorer) *Runner {
	return &Runner{scorer: scorer}
}

// Run evaluates every case in suite against c and then checks coverage.
func (r *Runner) Run(ctx context.Context, suite *Suite, c *catalog.Catalog) Outcome {
	log := logger.G(ctx).WithField("cases", suite.Path)

	out := Outcome{Cases: suite.Len()}
	covered := map[string]bool{}

	for _, node := range suite.entries {
		loc := finding.AtLine(suite.Path, node.Line)

		tc, cerr := decodeCase(node, c)
		if cerr != nil {
			f := finding.Errorf(CheckRegression, loc, "%s", cerr.msg)
			if cerr.id != "" {
				f = f.ForCase(cerr.id)
			}
			out.Findings.Add(f)
			if cerr.expected != "" {
				covered[cerr.expected] = true
			}
			continue
		}
		covered[tc.ExpectedSkill] = true
		out.Routed++

		res, err := r.scorer.Route(tc.Prompt, c)
		log.WithField("case", tc.ID).
			WithField("winner", res.Winner).
			WithField("score", res.Score).
			Debug("routed case")

		for _, msg := range evaluate(tc, res, err) {
			out.Findings.Add(finding.Errorf(CheckRegression, loc, "%s", msg).ForCase(tc.ID))
		}
	}

	var missing []string
	for _, folder := range c.Folders() {
		if covered[folder] {
			out.Covered = append(out.Covered, folder)
		} else {
			missing = append(missing, folder)
		}
	}
	sort.Strings(out.Covered)
	sort.Strings(missing)
	if len(missing) > 0 {
		out.Findings.Add(finding.Errorf(CheckRegression, finding.At(suite.Path),
			"regression cases missing coverage for skills: %s", strings.Join(missing, ", ")))
	}

	return out
}

// evaluate compares a routing result with the case's expectations and
// returns one message per failure. A zero score ends the case; a mismatch
// is still followed by the forbidden-skill comparison.
func evaluate(tc *Case, res routing.Result, err error) []string {
	if errors.Is(err, routing.ErrNoConfidentRoute) {
		return []string{fmt.Sprintf("case '%s' produced zero scores for all skills", tc.ID)}
	}
	var msgs []string
	if res.Winner != tc.ExpectedSkill {
		msgs = append(msgs, fmt.Sprintf("case '%s' routed to '%s' (score %d) instead of '%s'",
			tc.ID, res.Winner, res.Score, tc.ExpectedSkill))
	}
	for _, forbidden := range tc.ForbiddenSkills {
		if res.Winner == forbidden {
			msgs = append(msgs, fmt.Sprintf("case '%s' predicted forbidden skill '%s'", tc.ID, forbidden))
		}
	}
	return msgs
}

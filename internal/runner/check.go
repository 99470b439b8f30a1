package runner

import (
	"context"

	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/routing"
)

// Deps contains dependencies injected into checks.
type Deps struct {
	SkillsDir     string
	CasesPath     string
	MaxLines      int
	Catalog       *catalog.Catalog
	ParseFailures []*catalog.ParseError
	Scorer        *routing.Scorer
}

// Complete reports whether every discovered skill document parsed.
func (d *Deps) Complete() bool {
	return len(d.ParseFailures) == 0
}

// Check is one stage of the harness.
type Check interface {
	// ID returns the unique identifier (e.g. "skills:metadata").
	ID() string

	// Run executes the check. A non-nil error is an infrastructure failure
	// and aborts the run; everything else is reported through the result.
	Run(ctx context.Context, deps *Deps) (CheckResult, error)
}

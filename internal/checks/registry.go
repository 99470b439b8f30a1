package checks

import (
	"context"

	"github.com/bartekus/skillcheck/internal/catalog"
	"github.com/bartekus/skillcheck/internal/routing"
	"github.com/bartekus/skillcheck/internal/runner"
	"github.com/bartekus/skillcheck/internal/scanner"
	"github.com/bartekus/skillcheck/internal/tokenize"
)

// Registry defines the canonical order of checks. Per-skill checks come
// before the catalog-wide ones so a report reads from file to catalog.
var Registry = []runner.Check{
	NewCatalogParse(),
	NewSkillsMetadata(),
	NewSkillsStructure(),
	NewUniqueNames(),
	NewRoutingRegression(),
}

// Options configure how the catalog is loaded and scored.
type Options struct {
	SkillsDir string
	CasesPath string
	MaxLines  int
	Hints     routing.HintTable
	Exclude   []string
}

// NewDeps discovers and parses the catalog. The error is non-nil only when
// the skills directory cannot be scanned.
func NewDeps(ctx context.Context, opts Options) (*runner.Deps, error) {
	tok := tokenize.Default()
	scn := scanner.New(opts.SkillsDir, scanner.FilterOptions{ExcludeDirs: opts.Exclude})

	cat, failures, err := catalog.NewLoader(scn, tok).Load(ctx)
	if err != nil {
		return nil, err
	}

	return &runner.Deps{
		SkillsDir:     opts.SkillsDir,
		CasesPath:     opts.CasesPath,
		MaxLines:      opts.MaxLines,
		Catalog:       cat,
		ParseFailures: failures,
		Scorer:        routing.NewScorer(opts.Hints, tok),
	}, nil
}

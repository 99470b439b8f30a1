package checks

import (
	"context"
	"fmt"

	"github.com/bartekus/skillcheck/internal/regression"
	"github.com/bartekus/skillcheck/internal/runner"
)

type RoutingRegression struct {
	id string
}

func NewRoutingRegression() runner.Check {
	return &RoutingRegression{id: regression.CheckRegression}
}

func (s *RoutingRegression) ID() string { return s.id }

// Run evaluates the golden cases. It is skipped when any skill document
// failed to parse, since routing against a partial catalog is meaningless.
func (s *RoutingRegression) Run(ctx context.Context, deps *runner.Deps) (runner.CheckResult, error) {
	if !deps.Complete() {
		return runner.CheckResult{
			Check:  s.id,
			Status: runner.StatusSkip,
			Note:   fmt.Sprintf("%d skill document(s) failed to parse", len(deps.ParseFailures)),
		}, nil
	}
	if deps.Catalog.Len() == 0 {
		return runner.CheckResult{Check: s.id, Status: runner.StatusSkip, Note: "catalog is empty"}, nil
	}

	suite, fs, err := regression.Load(deps.CasesPath)
	if err != nil {
		return runner.CheckResult{}, err
	}
	if suite == nil {
		return runner.ResultFrom(s.id, fs), nil
	}

	out := regression.NewRunner(deps.Scorer).Run(ctx, suite, deps.Catalog)
	res := runner.ResultFrom(s.id, out.Findings)
	res.Cases = out.Cases
	res.Note = fmt.Sprintf("%d/%d skills covered", len(out.Covered), deps.Catalog.Len())
	return res, nil
}

package runner

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bartekus/skillcheck/internal/logger"
)

// Runner manages the execution of checks.
type Runner struct {
	checks []Check
	deps   *Deps
}

// NewRunner creates a new runner with the given checks and dependencies.
func NewRunner(checks []Check, deps *Deps) *Runner {
	return &Runner{
		checks: checks,
		deps:   deps,
	}
}

// RunAll executes all checks in order.
// It continues past failing checks; only an infrastructure error stops it.
func (r *Runner) RunAll(ctx context.Context) (*Summary, error) {
	return r.executeSequence(ctx, r.checks)
}

// RunList executes a specific list of check IDs, in the order given.
func (r *Runner) RunList(ctx context.Context, ids []string) (*Summary, error) {
	var toRun []Check
	for _, id := range ids {
		c := r.findCheck(id)
		if c == nil {
			return nil, errors.Errorf("check not found: %s", id)
		}
		toRun = append(toRun, c)
	}
	return r.executeSequence(ctx, toRun)
}

// IDs returns the registered check IDs in execution order.
func (r *Runner) IDs() []string {
	ids := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		ids = append(ids, c.ID())
	}
	return ids
}

func (r *Runner) findCheck(id string) Check {
	for _, c := range r.checks {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

func (r *Runner) executeSequence(ctx context.Context, checks []Check) (*Summary, error) {
	summary := &Summary{Status: "pass", Checks: []string{}, Failed: []string{}}

	for _, c := range checks {
		id := c.ID()
		log := logger.G(ctx).WithField("check", id)
		log.Debug("check started")

		res, err := c.Run(ctx, r.deps)
		if err != nil {
			return nil, errors.Wrapf(err, "check %s", id)
		}
		if res.Check == "" {
			res.Check = id
		}

		summary.Checks = append(summary.Checks, id)
		summary.Results = append(summary.Results, res)

		entry := log.WithField("status", res.Status).WithField("findings", len(res.Findings))
		if res.Note != "" {
			entry = entry.WithField("note", res.Note)
		}
		entry.Debug("check finished")

		if res.Status == StatusFail {
			summary.Failed = append(summary.Failed, id)
			summary.Status = "fail"
		}
	}

	return summary, nil
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bartekus/skillcheck/cmd/skillcheck/internal/clierr"
	"github.com/bartekus/skillcheck/internal/checks"
	"github.com/bartekus/skillcheck/internal/config"
	"github.com/bartekus/skillcheck/internal/logger"
	"github.com/bartekus/skillcheck/internal/projection"
	"github.com/bartekus/skillcheck/internal/regression"
	"github.com/bartekus/skillcheck/internal/report"
	"github.com/bartekus/skillcheck/internal/runner"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		output string
		only   []string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every skill and run the routing regression cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logger.G(ctx)

			deps, err := a.deps(ctx, cfg)
			if err != nil {
				return err
			}
			log.WithField("skills", deps.Catalog.Len()).
				WithField("failures", len(deps.ParseFailures)).
				Info("catalog loaded")

			r := runner.NewRunner(checks.Registry, deps)
			var summary *runner.Summary
			if len(only) > 0 {
				summary, err = r.RunList(ctx, only)
			} else {
				summary, err = r.RunAll(ctx)
			}
			if err != nil {
				if errors.Is(err, regression.ErrCasesFileMissing) {
					return clierr.Wrap(clierr.ExitInfra, "missing cases file", err)
				}
				return clierr.Wrap(clierr.ExitInfra, "running checks", err)
			}

			rep := report.New(summary, deps.Catalog.Len(), cfg.Cases, cfg.MaxLines)
			rep.SkillsDir = cfg.SkillsDir
			if err := writeReport(cmd.OutOrStdout(), output, rep, report.Options{Format: cfg.Format, Color: colorMode(cfg)}); err != nil {
				return clierr.Wrap(clierr.ExitInfra, "writing report", err)
			}

			if deps.Catalog.Len() == 0 {
				return clierr.Newf(clierr.ExitInfra, "no skills loaded from %s", cfg.SkillsDir)
			}
			if !rep.Passed {
				return clierr.Newf(clierr.ExitFindings, "skill checks failed with %d error(s)", rep.Findings.Errors())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("format", string(report.FormatText), "report format (text, json, markdown)")
	flags.StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	flags.StringSliceVar(&only, "only", nil, "run only these check IDs, in the given order")
	_ = a.v.BindPFlag(config.KeyFormat, flags.Lookup("format"))

	return cmd
}

func writeReport(stdout io.Writer, path string, rep *report.Report, opts report.Options) error {
	if path == "" {
		return report.Write(stdout, rep, opts)
	}
	// files never get terminal colors
	opts.Color = report.ColorNever
	var buf bytes.Buffer
	if err := report.Write(&buf, rep, opts); err != nil {
		return err
	}
	return projection.AtomicWrite(path, buf.Bytes())
}

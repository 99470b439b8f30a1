// SPDX-License-Identifier: AGPL-3.0-or-later

/*
skillcheck - validates a catalog of agent skill documents and verifies that
free-text prompts route to the skill they should activate.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bartekus/skillcheck/cmd/skillcheck/internal/clierr"
	"github.com/bartekus/skillcheck/internal/checks"
	"github.com/bartekus/skillcheck/internal/config"
	"github.com/bartekus/skillcheck/internal/conformance"
	"github.com/bartekus/skillcheck/internal/logger"
	"github.com/bartekus/skillcheck/internal/report"
	"github.com/bartekus/skillcheck/internal/runner"
)

// app is the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd constructs the skillcheck root Cobra command. Running it
// without a subcommand performs a full check.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "skillcheck",
		Short: "Validate skill documents and their prompt routing",
		Long: `skillcheck discovers <skills-dir>/<folder>/SKILL.md documents, checks their
frontmatter and section structure, and runs the golden routing cases against
the catalog. Every problem is reported in one pass.

Exit codes: 0 pass, 1 error findings, 2 infrastructure failure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default .skillcheck.yaml if present)")
	flags.String("skills-dir", config.DefaultSkillsDir, "directory containing one folder per skill")
	flags.String("cases", config.DefaultCases, "YAML file containing routing regression cases")
	flags.Int("max-lines", conformance.DefaultMaxLines, "maximum lines per SKILL.md")
	flags.StringSlice("exclude", nil, "skill folders to skip")
	flags.String("color", "auto", "color the text report (auto, always, never)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	for key, flag := range map[string]string{
		config.KeySkillsDir: "skills-dir",
		config.KeyCases:     "cases",
		config.KeyMaxLines:  "max-lines",
		config.KeyExclude:   "exclude",
		config.KeyColor:     "color",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	check := newCheckCmd(a)
	cmd.Flags().AddFlagSet(check.Flags())
	cmd.RunE = check.RunE

	cmd.AddCommand(check)
	cmd.AddCommand(newRouteCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := logger.Configure(a.logLevel, a.logFormat); err != nil {
		return clierr.Wrap(clierr.ExitInfra, "configuring logging", err)
	}
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return clierr.Wrap(clierr.ExitInfra, "loading config", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithLogger(ctx, logger.G(ctx).WithField("cmd", cmd.Name())))
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitInfra, "loading config", err)
	}
	return cfg, nil
}

// deps loads the catalog described by cfg.
func (a *app) deps(ctx context.Context, cfg *config.Config) (*runner.Deps, error) {
	deps, err := checks.NewDeps(ctx, checks.Options{
		SkillsDir: cfg.SkillsDir,
		CasesPath: cfg.Cases,
		MaxLines:  cfg.MaxLines,
		Hints:     cfg.HintTable(),
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitInfra, "loading skills", err)
	}
	return deps, nil
}

func colorMode(cfg *config.Config) report.ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return report.ColorNever
	}
	return cfg.Color
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of skillcheck",
		Run: func(cmd *cobra.Command, args []string) {
			version := os.Getenv("SKILLCHECK_VERSION")
			if version == "" {
				version = "0.0.0-dev"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skillcheck version %s\n", version)
		},
	}
}

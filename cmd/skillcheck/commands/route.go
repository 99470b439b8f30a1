// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bartekus/skillcheck/cmd/skillcheck/internal/clierr"
	"github.com/bartekus/skillcheck/internal/logger"
	"github.com/bartekus/skillcheck/internal/routing"
)

func newRouteCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		top    int
	)

	cmd := &cobra.Command{
		Use:   "route <prompt>",
		Short: "Show which skill a prompt routes to and why",
		Long: `Scores the prompt against every skill and prints the ranking with each
token's contribution: profile +1, hint +2, folder or name +2.

Exits 1 when no skill scores above zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			deps, err := a.deps(ctx, cfg)
			if err != nil {
				return err
			}
			if deps.Catalog.Len() == 0 {
				return clierr.Newf(clierr.ExitInfra, "no skills loaded from %s", cfg.SkillsDir)
			}
			for _, perr := range deps.ParseFailures {
				logger.G(ctx).WithField("path", perr.Path).WithError(perr.Err).Warn("skill left out of routing")
			}

			prompt := strings.Join(args, " ")
			res, routeErr := deps.Scorer.Route(prompt, deps.Catalog)
			if top > 0 && len(res.Ranking) > top {
				res.Ranking = res.Ranking[:top]
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return clierr.Wrap(clierr.ExitInfra, "encoding result", err)
				}
			} else if err := writeRanking(cmd.OutOrStdout(), res, routeErr); err != nil {
				return clierr.Wrap(clierr.ExitInfra, "writing result", err)
			}

			if errors.Is(routeErr, routing.ErrNoConfidentRoute) {
				return clierr.Wrap(clierr.ExitFindings, "routing failed", routeErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output the result as JSON")
	cmd.Flags().IntVar(&top, "top", 5, "number of ranked skills to show (0 for all)")

	return cmd
}

func writeRanking(w io.Writer, res routing.Result, routeErr error) error {
	if len(res.Tokens) == 0 {
		fmt.Fprintln(w, "Prompt tokens: (none)")
	} else {
		fmt.Fprintf(w, "Prompt tokens: %s\n", strings.Join(res.Tokens, ", "))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSKILL\tSCORE\tMATCHES")
	for i, b := range res.Ranking {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, b.Folder, b.Score, describeMatches(b.Contributions))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if routeErr != nil {
		fmt.Fprintln(w, "No confident route: every skill scored 0")
		return nil
	}
	fmt.Fprintf(w, "Routed to %s (score %d)\n", res.Winner, res.Score)
	return nil
}

func describeMatches(cs []routing.Contribution) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		var kinds []string
		if c.Profile {
			kinds = append(kinds, "profile")
		}
		if c.Hint {
			kinds = append(kinds, "hint")
		}
		if c.Name {
			kinds = append(kinds, "name")
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", c.Token, strings.Join(kinds, "+")))
	}
	return strings.Join(parts, " ")
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bartekus/skillcheck/cmd/skillcheck/internal/clierr"
)

// SkillListItem is one row of `skillcheck list --json`.
type SkillListItem struct {
	Folder string `json:"folder"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	Lines  int    `json:"lines"`
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the skills in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			deps, err := a.deps(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			items := make([]SkillListItem, 0, deps.Catalog.Len())
			for _, s := range deps.Catalog.Skills() {
				items = append(items, SkillListItem{Folder: s.Folder, Name: s.Name(), Path: s.Path, Lines: s.LineCount})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(items); err != nil {
					return clierr.Wrap(clierr.ExitInfra, "encoding skills", err)
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "FOLDER\tNAME\tLINES")
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", it.Folder, it.Name, it.Lines)
				}
				if err := tw.Flush(); err != nil {
					return clierr.Wrap(clierr.ExitInfra, "writing skills", err)
				}
			}

			for _, perr := range deps.ParseFailures {
				fmt.Fprintln(cmd.ErrOrStderr(), perr.Error())
			}
			if len(deps.ParseFailures) > 0 {
				return clierr.Newf(clierr.ExitFindings, "%d skill document(s) failed to parse", len(deps.ParseFailures))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output the list as JSON")
	return cmd
}

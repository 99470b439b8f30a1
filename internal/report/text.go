// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/bartekus/skillcheck/internal/finding"
)

// ColorMode represents the color handling of the text renderer.
type ColorMode int

const (
	// ColorAuto leaves the decision to terminal detection.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps auto, always and never to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "force":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	}
	return ColorAuto, errors.Errorf("unknown color mode %q (want auto, always or never)", s)
}

type palette struct {
	fail, pass, errs, warns, group *color.Color
}

func newPalette(mode ColorMode) palette {
	p := palette{
		fail:  color.New(color.FgRed, color.Bold),
		pass:  color.New(color.FgGreen, color.Bold),
		errs:  color.New(color.FgRed),
		warns: color.New(color.FgYellow),
		group: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.fail, p.pass, p.errs, p.warns, p.group} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return p
}

func writeText(w io.Writer, r *Report, p palette) error {
	var b strings.Builder

	switch {
	case r.Skills == 0 && len(r.Findings) == 0:
		p.fail.Fprintf(&b, "[ERROR] No SKILL.md files found under %s\n", r.SkillsDir)
	case r.Passed:
		p.pass.Fprintf(&b, "[PASS] Skill regression checks passed for %d skills (max_lines=%d, cases=%s)\n",
			r.Skills, r.MaxLines, r.CasesPath)
	default:
		p.fail.Fprintln(&b, "[FAIL] Skill regression checks failed:")
	}

	writeSection(&b, "Errors:", r.Findings.BySeverity(finding.SeverityError), p.errs, p.group)
	writeSection(&b, "Warnings:", r.Findings.BySeverity(finding.SeverityWarning), p.warns, p.group)

	if len(r.Skipped) > 0 {
		b.WriteString("\nSkipped:\n")
		for _, res := range r.Skipped {
			fmt.Fprintf(&b, "  - %s: %s\n", res.Check, res.Note)
		}
	}

	fmt.Fprintf(&b, "\nSummary: %d skills, %d cases, %d errors, %d warnings\n",
		r.Skills, r.Cases, r.Findings.Errors(), r.Findings.Warnings())

	_, err := io.WriteString(w, b.String())
	return err
}

// writeSection lists findings grouped by file (and case), groups in order of
// first appearance.
func writeSection(b *strings.Builder, title string, fs finding.List, heading, group *color.Color) {
	if len(fs) == 0 {
		return
	}

	var order []string
	groups := map[string][]finding.Finding{}
	for _, f := range fs {
		key := f.Group()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], f)
	}

	b.WriteString("\n")
	heading.Fprintln(b, title)
	for _, key := range order {
		label := key
		if label == "" {
			label = finding.Location{}.String()
		}
		b.WriteString("  ")
		group.Fprintln(b, label)
		for _, f := range groups[key] {
			if f.Location.Line > 0 {
				fmt.Fprintf(b, "    - line %d: %s\n", f.Location.Line, f.Message)
			} else {
				fmt.Fprintf(b, "    - %s\n", f.Message)
			}
		}
	}
}

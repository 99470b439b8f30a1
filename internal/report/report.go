// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders the outcome of a harness run.
package report

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/bartekus/skillcheck/internal/finding"
	"github.com/bartekus/skillcheck/internal/runner"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown}

// ParseFormat validates a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown report format %q (want text, json or markdown)", s)
}

// Report is everything a renderer needs.
type Report struct {
	Passed    bool
	SkillsDir string
	Skills    int
	Cases     int
	CasesPath string
	MaxLines  int
	Findings  finding.List
	// Skipped holds checks that did not run, with their reason.
	Skipped []runner.CheckResult
}

// New builds a report from a run summary. The run passes when at least one
// skill was loaded and no finding is error-severity.
func New(summary *runner.Summary, skills int, casesPath string, maxLines int) *Report {
	r := &Report{
		Skills:    skills,
		Cases:     summary.Cases(),
		CasesPath: casesPath,
		MaxLines:  maxLines,
		Findings:  summary.Findings(),
	}
	r.Passed = skills > 0 && !r.Findings.HasErrors()
	for _, res := range summary.Results {
		if res.Status == runner.StatusSkip {
			r.Skipped = append(r.Skipped, res)
		}
	}
	return r
}

// Status returns "pass", "fail", or "error" when no skill was loaded.
func (r *Report) Status() string {
	switch {
	case r.Passed:
		return "pass"
	case r.Skills == 0:
		return "error"
	}
	return "fail"
}

// Options control rendering.
type Options struct {
	Format Format
	Color  ColorMode
}

// Write renders r to w.
func Write(w io.Writer, r *Report, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return writeText(w, r, newPalette(opts.Color))
	case FormatJSON:
		return writeJSON(w, r)
	case FormatMarkdown:
		return writeMarkdown(w, r)
	}
	return errors.Errorf("unknown report format %q", opts.Format)
}

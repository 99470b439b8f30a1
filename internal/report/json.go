// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"io"

	"github.com/bartekus/skillcheck/internal/finding"
)

type jsonReport struct {
	Status   string       `json:"status"`
	Skills   int          `json:"skills"`
	Cases    int          `json:"cases"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Findings finding.List `json:"findings"`
}

func writeJSON(w io.Writer, r *Report) error {
	fs := r.Findings
	if fs == nil {
		fs = finding.List{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonReport{
		Status:   r.Status(),
		Skills:   r.Skills,
		Cases:    r.Cases,
		Errors:   r.Findings.Errors(),
		Warnings: r.Findings.Warnings(),
		Findings: fs,
	})
}

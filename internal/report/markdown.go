// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/skillcheck/internal/projection"
)

func writeMarkdown(w io.Writer, r *Report) error {
	var doc projection.Document

	doc.Heading(1, "Skill check report")
	doc.Bullets(
		"Status: "+strings.ToUpper(r.Status()),
		fmt.Sprintf("Skills: %d", r.Skills),
		fmt.Sprintf("Cases: %d", r.Cases),
		fmt.Sprintf("Errors: %d", r.Findings.Errors()),
		fmt.Sprintf("Warnings: %d", r.Findings.Warnings()),
	)

	doc.Heading(2, "Findings")
	if len(r.Findings) == 0 {
		doc.Paragraph("No findings.")
	} else {
		rows := make([][]string, 0, len(r.Findings))
		perCheck := projection.Tally{}
		for _, f := range r.Findings {
			rows = append(rows, []string{string(f.Severity), f.Check, f.Location.String(), f.Case, f.Message})
			perCheck.Add(f.Check)
		}
		doc.Table([]string{"Severity", "Check", "Location", "Case", "Message"}, rows)

		doc.Heading(2, "Findings by check")
		doc.Table([]string{"Check", "Count"}, perCheck.Rows())
	}

	if len(r.Skipped) > 0 {
		doc.Heading(2, "Skipped checks")
		items := make([]string, 0, len(r.Skipped))
		for _, res := range r.Skipped {
			items = append(items, res.Check+": "+res.Note)
		}
		doc.Bullets(items...)
	}

	_, err := io.WriteString(w, doc.String())
	return err
}

// SPDX-License-Identifier: AGPL-3.0-or-later

// Package finding defines the records produced by every conformance and
// routing check.
package finding

import (
	"fmt"
	"strconv"
)

// Severity indicates a finding level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Location points at the document a finding is about. Line is 1-based and
// zero when unknown.
type Location struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

// At builds a Location for file without a line.
func At(file string) Location {
	return Location{File: file}
}

// AtLine builds a Location for file and line.
func AtLine(file string, line int) Location {
	return Location{File: file, Line: line}
}

func (l Location) String() string {
	if l.File == "" {
		return "<catalog>"
	}
	if l.Line > 0 {
		return l.File + ":" + strconv.Itoa(l.Line)
	}
	return l.File
}

// Finding is a single check result.
type Finding struct {
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`
	Location Location `json:"location"`
	// Case is the regression case id for routing findings.
	Case    string `json:"case,omitempty"`
	Message string `json:"message"`
}

// Errorf returns an error-severity finding.
func Errorf(check string, loc Location, format string, args ...any) Finding {
	return Finding{
		Severity: SeverityError,
		Check:    check,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Warnf returns a warning-severity finding.
func Warnf(check string, loc Location, format string, args ...any) Finding {
	return Finding{
		Severity: SeverityWarning,
		Check:    check,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// ForCase returns a copy of f attributed to the given regression case.
func (f Finding) ForCase(id string) Finding {
	f.Case = id
	return f
}

// Group is the heading a report files this finding under.
func (f Finding) Group() string {
	if f.Case != "" {
		return fmt.Sprintf("%s (case '%s')", f.Location.File, f.Case)
	}
	return f.Location.File
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Location, f.Message)
}

// List is an ordered collection of findings.
type List []Finding

// Add appends findings to l.
func (l *List) Add(fs ...Finding) {
	*l = append(*l, fs...)
}

// Errors returns the number of error-severity findings.
func (l List) Errors() int {
	return l.count(SeverityError)
}

// Warnings returns the number of warning-severity findings.
func (l List) Warnings() int {
	return l.count(SeverityWarning)
}

// HasErrors reports whether any finding is error-severity.
func (l List) HasErrors() bool {
	return l.Errors() > 0
}

// BySeverity returns the findings of one severity, preserving order.
func (l List) BySeverity(sev Severity) List {
	var out List
	for _, f := range l {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func (l List) count(sev Severity) int {
	n := 0
	for _, f := range l {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Package clierr maps command failures to process exit codes.
//
// skillcheck exits with:
//
//	0  every check passed
//	1  the run completed with error-severity findings
//	2  the run could not be carried out: missing skills directory or cases
//	   file, no loadable skill, invalid configuration or an unwritable report
//
// Commands return an *ExitError and main passes ExitCodeOf(err) to os.Exit.
// Any other non-nil error is treated as findings.
package clierr

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	ExitOK       = 0
	ExitFindings = 1
	ExitInfra    = 2
)

// ExitCoder is implemented by errors that choose the process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError pairs a user-facing message, and optionally its cause, with an
// exit code.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// Wrap attaches code and msg to cause. A nil cause yields a plain message.
func Wrap(code int, msg string, cause error) error {
	return &ExitError{code: failureCode(code), msg: msg, cause: cause}
}

// Newf creates an ExitError without a cause.
func Newf(code int, format string, args ...any) error {
	return &ExitError{code: failureCode(code), msg: fmt.Sprintf(format, args...)}
}

// ExitCodeOf returns the exit code for err: ExitOK for nil, the code of the
// first ExitCoder in the chain, or ExitFindings.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFindings
}

// failureCode keeps an error from ever mapping to success.
func failureCode(code int) int {
	if code <= ExitOK {
		return ExitFindings
	}
	return code
}

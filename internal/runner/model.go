package runner

import "github.com/bartekus/skillcheck/internal/finding"

// CheckStatus represents the outcome of a check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	StatusSkip CheckStatus = "skip"
)

// CheckResult is the result of a single check.
type CheckResult struct {
	Check    string       `json:"check"`
	Status   CheckStatus  `json:"status"`
	Findings finding.List `json:"findings,omitempty"`
	Note     string       `json:"note,omitempty"`
	// Cases is the number of regression cases the check evaluated.
	Cases int `json:"cases,omitempty"`
}

// Summary aggregates a run of checks in execution order.
type Summary struct {
	Status  string        `json:"status"` // "pass" or "fail"
	Checks  []string      `json:"checks"`
	Failed  []string      `json:"failed"`
	Results []CheckResult `json:"results"`
}

// Findings returns every finding of the run in check order.
func (s *Summary) Findings() finding.List {
	var out finding.List
	for _, r := range s.Results {
		out.Add(r.Findings...)
	}
	return out
}

// Cases returns the number of regression cases evaluated during the run.
func (s *Summary) Cases() int {
	n := 0
	for _, r := range s.Results {
		n += r.Cases
	}
	return n
}

// Passed reports whether no check failed.
func (s *Summary) Passed() bool {
	return s.Status == "pass"
}

// ResultFrom builds a result whose status follows the findings: any
// error-severity finding fails the check.
func ResultFrom(id string, findings finding.List) CheckResult {
	status := StatusPass
	if findings.HasErrors() {
		status = StatusFail
	}
	return CheckResult{Check: id, Status: status, Findings: findings}
}

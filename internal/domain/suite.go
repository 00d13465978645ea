package domain

import (
	"fmt"
	"time"
)

// Suite is an ordered list of checks.
type Suite struct {
	Checks []CheckSpec
}

// CheckSpec defines one check. Exactly one of Compile and RunAndWait is set.
// Fields are ordered to minimize memory padding.
type CheckSpec struct {
	Compile     *CompileStep
	RunAndWait  *RunAndWaitStep
	Name        string
	Description string
	Depends     []string
}

// CompileStep compiles source files. Zero values fall back to configuration.
type CompileStep struct {
	Tool        string
	ExeName     string
	Files       []string
	Flags       Flags
	Timeout     time.Duration
	MaxLogLines int
}

// RunAndWaitStep runs a program that must still be running after Timeout.
type RunAndWaitStep struct {
	Command        string
	LogMessage     string
	FailureMessage string
	Timeout        time.Duration
}

// Validate checks the suite structure: unique non-empty names, exactly one
// step per check and dependencies that refer to earlier checks.
func (s *Suite) Validate() error {
	if len(s.Checks) == 0 {
		return fmt.Errorf("%w: no checks defined", ErrInvalidSuite)
	}
	seen := make(map[string]bool, len(s.Checks))
	for i, c := range s.Checks {
		if c.Name == "" {
			return fmt.Errorf("%w: check #%d has no name", ErrInvalidSuite, i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate check name %q", ErrInvalidSuite, c.Name)
		}
		if (c.Compile == nil) == (c.RunAndWait == nil) {
			return fmt.Errorf("%w: check %q must define exactly one of compile or run_and_wait", ErrInvalidSuite, c.Name)
		}
		for _, dep := range c.Depends {
			if !seen[dep] {
				return fmt.Errorf("%w: check %q depends on unknown or later check %q", ErrInvalidSuite, c.Name, dep)
			}
		}
		seen[c.Name] = true
	}
	return nil
}

// CheckStatus is the outcome of a single check.
type CheckStatus string

// Check statuses.
const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckSkipped CheckStatus = "skipped"
	CheckErrored CheckStatus = "errored"
)

// Symbol returns the face shown next to a check in reports.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPassed:
		return ":)"
	case CheckFailed:
		return ":("
	default:
		return ":|"
	}
}

// CheckResult is the reported result of one check.
type CheckResult struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      CheckStatus `json:"status"`
	Message     string      `json:"message,omitempty"`
	Log         []string    `json:"log,omitempty"`
}

// NewCheckResult classifies the error returned by a check: nil passed, a
// *Failure failed and anything else errored.
func NewCheckResult(name, description string, err error, log []string) CheckResult {
	result := CheckResult{
		Name:        name,
		Description: description,
		Log:         log,
	}
	switch failure, isFailure := AsFailure(err); {
	case err == nil:
		result.Status = CheckPassed
	case isFailure:
		result.Status = CheckFailed
		result.Message = failure.Message
	default:
		result.Status = CheckErrored
		result.Message = err.Error()
	}
	return result
}

// AllPassed reports whether every result passed.
func AllPassed(results []CheckResult) bool {
	for _, r := range results {
		if r.Status != CheckPassed {
			return false
		}
	}
	return true
}

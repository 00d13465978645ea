package domain

import "fmt"

// ExitOutcome is the result of waiting for a process: either it exited with a
// status code, or it was still running when the wait deadline passed.
type ExitOutcome struct {
	Code     int
	TimedOut bool
}

// Exited returns an outcome for a process that exited with code.
func Exited(code int) ExitOutcome {
	return ExitOutcome{Code: code}
}

// TimedOut returns an outcome for a process that did not exit in time.
func TimedOut() ExitOutcome {
	return ExitOutcome{TimedOut: true}
}

// Success reports whether the process exited with status zero.
func (o ExitOutcome) Success() bool {
	return !o.TimedOut && o.Code == 0
}

func (o ExitOutcome) String() string {
	if o.TimedOut {
		return "timed out"
	}
	return fmt.Sprintf("exited with status %d", o.Code)
}

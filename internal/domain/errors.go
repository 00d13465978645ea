package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks errors caused by a broken check definition rather than by
// the submission under test.
var ErrConfiguration = errors.New("invalid check configuration")

// Domain errors.
var (
	ErrNoFiles        = fmt.Errorf("%w: compile requires at least one file", ErrConfiguration)
	ErrExecutableName = fmt.Errorf("%w: could not determine executable name", ErrConfiguration)
	ErrInvalidSuite   = fmt.Errorf("%w: invalid check suite", ErrConfiguration)
	ErrEmptyCommand   = errors.New("command cannot be empty")
	ErrProcessTimeout = errors.New("process did not exit before the timeout")
	ErrConfigExists   = errors.New("config file already exists")
	ErrConfigNil      = errors.New("config is nil")
)

// Failure reports that the submission did not meet an expectation.
// The message is shown to the student; details belong in the check log.
type Failure struct {
	Message string
}

// NewFailure creates a Failure with the given message.
func NewFailure(message string) *Failure {
	return &Failure{Message: message}
}

func (f *Failure) Error() string {
	return f.Message
}

// AsFailure reports whether err is, or wraps, a check failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsConfigurationError reports whether err indicates a misconfigured check.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

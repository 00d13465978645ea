package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
)

// RunAndWaitInput contains the parameters for checking that a program keeps running.
// Fields are ordered to minimize memory padding.
type RunAndWaitInput struct {
	Log            domain.CheckLog // Receives LogMessage (optional)
	Command        string          // Command line to run (required)
	Dir            string          // Working directory
	Check          string          // Check name for application logs (optional)
	LogMessage     string          // Logged after the program starts
	FailureMessage string          // Failure message if the program exits
	Timeout        time.Duration   // How long the program must keep running (default 2s)
}

// RunAndWaitOutput contains the result of a passed run-and-wait check.
type RunAndWaitOutput struct {
	// Process is still running. The caller owns it and must Kill it when done.
	Process domain.Process
}

// RunAndWait is the use case for asserting that a program does not exit on its
// own within a deadline, typically because it is blocked waiting for input.
type RunAndWait struct {
	runner domain.ProcessRunner
	logger domain.Logger
}

// NewRunAndWait creates a new RunAndWait use case.
func NewRunAndWait(runner domain.ProcessRunner, logger domain.Logger) *RunAndWait {
	return &RunAndWait{
		runner: runner,
		logger: logger,
	}
}

// Execute starts the command and waits up to the timeout.
// An exit within the timeout returns a *domain.Failure; timing out is success.
func (uc *RunAndWait) Execute(ctx context.Context, in RunAndWaitInput) (*RunAndWaitOutput, error) {
	cmd := domain.NewCommand(in.Command, in.Dir)
	if cmd.Empty() {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, domain.ErrEmptyCommand)
	}

	timeout := in.Timeout
	if timeout <= 0 {
		timeout = domain.Seconds(domain.DefaultWaitTimeoutSeconds)
	}
	logMessage := in.LogMessage
	if logMessage == "" {
		logMessage = domain.DefaultWaitLogMessage
	}
	failureMessage := in.FailureMessage
	if failureMessage == "" {
		failureMessage = domain.DefaultWaitFailureMessage
	}
	checkLog := in.Log
	if checkLog == nil {
		checkLog = domain.DiscardLog{}
	}

	proc, err := uc.runner.Start(ctx, cmd)
	checkLog.Log(logMessage)
	if err != nil {
		// A program that cannot start has certainly not waited for input.
		checkLog.Log(err.Error())
		return nil, domain.NewFailure(failureMessage)
	}

	outcome := proc.Wait(timeout)
	if !outcome.TimedOut {
		if uc.logger != nil {
			uc.logger.Debug(in.Check, "run_and_wait", fmt.Sprintf("%q %s before %s", in.Command, outcome, timeout))
		}
		_ = proc.Kill()
		return nil, domain.NewFailure(failureMessage)
	}

	return &RunAndWaitOutput{Process: proc}, nil
}

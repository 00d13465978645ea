package cli

import (
	"fmt"
	"time"

	"github.com/runoshun/rscheck/internal/app"
	"github.com/runoshun/rscheck/internal/domain"
	"github.com/runoshun/rscheck/internal/usecase"
	"github.com/spf13/cobra"
)

// runWaitCheckName names the check reported by the run-wait command.
const runWaitCheckName = "run-wait"

// replyWait is how long a program gets to answer --send input before it is stopped.
const replyWait = 250 * time.Millisecond

// newRunWaitCommand creates the run-wait command.
func newRunWaitCommand(c *app.Container) *cobra.Command {
	var opts struct {
		LogMessage     string
		FailureMessage string
		Send           []string
		Timeout        time.Duration
	}

	cmd := &cobra.Command{
		Use:   "run-wait COMMAND",
		Short: "Check that a program keeps running",
		Long: `Run COMMAND and check that it has not exited after --timeout.

This is how a program that should be waiting for input is checked: its stdin
stays open, so a program blocked on a read keeps running and passes. A program
that exits, or cannot be started, fails. The program is stopped afterwards.

COMMAND is split into arguments like a shell would, but no shell is used.

Examples:
  rscheck run-wait ./target/debug/guessing_game
  rscheck run-wait --timeout 5s "./hello --name world"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.LoadedConfig()
			if err != nil {
				return err
			}

			in := usecase.RunAndWaitInput{
				Command:        args[0],
				Dir:            c.Config.Dir,
				Check:          runWaitCheckName,
				LogMessage:     opts.LogMessage,
				FailureMessage: opts.FailureMessage,
				Timeout:        opts.Timeout,
			}
			if in.Timeout <= 0 {
				in.Timeout = cfg.WaitTimeout()
			}
			if in.LogMessage == "" {
				in.LogMessage = cfg.RunAndWait.LogMessage
			}
			if in.FailureMessage == "" {
				in.FailureMessage = cfg.RunAndWait.FailureMessage
			}

			checkLog := c.Logger.ForCheck(runWaitCheckName)
			in.Log = checkLog

			uc := c.RunAndWaitUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err == nil {
				err = release(out.Process, opts.Send, checkLog)
			}

			result := domain.NewCheckResult(runWaitCheckName, fmt.Sprintf("%s waits for input", args[0]), err, checkLog.Lines())
			return finish(cmd.OutOrStdout(), []domain.CheckResult{result}, false)
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "How long the program must keep running (default from config)")
	cmd.Flags().StringVar(&opts.LogMessage, "log-message", "", "Message logged when the program starts (default from config)")
	cmd.Flags().StringVar(&opts.FailureMessage, "failure-message", "", "Message shown when the program exits (default from config)")
	cmd.Flags().StringArrayVar(&opts.Send, "send", nil, "Line written to the program after it passes; its output is then logged (repeatable)")

	return cmd
}

// release writes lines to a still-running process and stops it. When lines
// were sent, whatever the program printed is added to log.
func release(proc domain.Process, lines []string, log domain.CheckLog) error {
	if len(lines) == 0 {
		return proc.Kill()
	}
	for _, line := range lines {
		if err := proc.SendLine(line); err != nil {
			_ = proc.Kill()
			return fmt.Errorf("send input: %w", err)
		}
	}
	proc.Wait(replyWait)
	for _, l := range domain.SplitLines(domain.StripANSI(proc.Output())) {
		log.Log(l)
	}
	return proc.Kill()
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
	"github.com/runoshun/rscheck/internal/testutil"
	"github.com/runoshun/rscheck/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAndWait_Execute(t *testing.T) {
	t.Run("program still running passes", func(t *testing.T) {
		proc := &testutil.MockProcess{Outcome: domain.TimedOut()}
		runner := testutil.NewMockProcessRunner(proc)
		log := &testutil.MockCheckLog{}

		uc := usecase.NewRunAndWait(runner, &testutil.MockLogger{})
		out, err := uc.Execute(context.Background(), usecase.RunAndWaitInput{
			Command: "./guessing_game",
			Dir:     "/work",
			Log:     log,
		})

		require.NoError(t, err)
		assert.Same(t, proc, out.Process)
		assert.False(t, proc.Killed)
		assert.Equal(t, []time.Duration{2 * time.Second}, proc.Waits)
		assert.Equal(t, []string{"checking that program did not exit..."}, log.Logged)
		assert.Equal(t, "./guessing_game", runner.Commands[0].Line)
		assert.Equal(t, "/work", runner.Commands[0].Dir)
	})

	t.Run("program that exits fails", func(t *testing.T) {
		proc := &testutil.MockProcess{Outcome: domain.Exited(0)}
		logger := &testutil.MockLogger{}

		uc := usecase.NewRunAndWait(testutil.NewMockProcessRunner(proc), logger)
		out, err := uc.Execute(context.Background(), usecase.RunAndWaitInput{
			Command: "./guessing_game",
			Check:   "waits",
		})

		assert.Nil(t, out)
		failure, ok := domain.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, "Program exited when it should have waited for input.", failure.Message)
		assert.True(t, proc.Killed)
		require.Len(t, logger.Entries, 1)
		assert.Equal(t, "waits", logger.Entries[0].Check)
	})

	t.Run("non-zero exit fails too", func(t *testing.T) {
		proc := &testutil.MockProcess{Outcome: domain.Exited(101)}

		uc := usecase.NewRunAndWait(testutil.NewMockProcessRunner(proc), nil)
		_, err := uc.Execute(context.Background(), usecase.RunAndWaitInput{Command: "./panics"})

		_, ok := domain.AsFailure(err)
		assert.True(t, ok)
	})

	t.Run("custom messages and timeout", func(t *testing.T) {
		proc := &testutil.MockProcess{Outcome: domain.Exited(0)}
		log := &testutil.MockCheckLog{}

		uc := usecase.NewRunAndWait(testutil.NewMockProcessRunner(proc), nil)
		_, err := uc.Execute(context.Background(), usecase.RunAndWaitInput{
			Command:        "./prompt",
			LogMessage:     "waiting for a prompt",
			FailureMessage: "did not prompt",
			Timeout:        500 * time.Millisecond,
			Log:            log,
		})

		failure, ok := domain.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, "did not prompt", failure.Message)
		assert.Equal(t, []string{"waiting for a prompt"}, log.Logged)
		assert.Equal(t, []time.Duration{500 * time.Millisecond}, proc.Waits)
	})

	t.Run("start error is a failure", func(t *testing.T) {
		runner := testutil.NewMockProcessRunner()
		runner.StartErr = errors.New("no such file or directory")
		log := &testutil.MockCheckLog{}

		uc := usecase.NewRunAndWait(runner, nil)
		_, err := uc.Execute(context.Background(), usecase.RunAndWaitInput{
			Command: "./missing",
			Log:     log,
		})

		failure, ok := domain.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, domain.DefaultWaitFailureMessage, failure.Message)
		assert.Equal(t, []string{domain.DefaultWaitLogMessage, "no such file or directory"}, log.Logged)
	})

	t.Run("empty command", func(t *testing.T) {
		runner := testutil.NewMockProcessRunner()

		uc := usecase.NewRunAndWait(runner, nil)
		_, err := uc.Execute(context.Background(), usecase.RunAndWaitInput{Command: "  "})

		assert.ErrorIs(t, err, domain.ErrEmptyCommand)
		assert.True(t, domain.IsConfigurationError(err))
		assert.Empty(t, runner.Commands)
	})
}

// Package executor starts and supervises external processes.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/shlex"
	"github.com/runoshun/rscheck/internal/domain"
)

// outputGrace bounds how long Output waits for output still buffered in the
// pipe after the process has exited. Background children that inherited the
// pipe may keep it open indefinitely.
const outputGrace = 200 * time.Millisecond

// Client implements domain.ProcessRunner interface.
type Client struct{}

// NewClient creates a new process runner client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.ProcessRunner interface.
var _ domain.ProcessRunner = (*Client)(nil)

// Start splits the command line into words and starts the program without a shell.
// Stdout and stderr are captured together. Stdin stays open until Kill so the
// program sees a blocking terminal-like input rather than EOF.
func (c *Client) Start(ctx context.Context, cmd *domain.ExecCommand) (domain.Process, error) {
	if cmd.Empty() {
		return nil, domain.ErrEmptyCommand
	}

	args, err := shlex.Split(cmd.Line)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", cmd.Line, err)
	}
	if len(args) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	// #nosec G204 - command lines come from check definitions
	execCmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	// The child writes to an *os.File so exec.Cmd.Wait returns when the
	// process exits, not when every inheritor of the pipe has closed it.
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("open output pipe: %w", err)
	}
	execCmd.Stdout = outW
	execCmd.Stderr = outW

	stdin, err := execCmd.StdinPipe()
	if err != nil {
		_ = outR.Close()
		_ = outW.Close()
		return nil, fmt.Errorf("open stdin: %w", err)
	}

	if err := execCmd.Start(); err != nil {
		_ = stdin.Close()
		_ = outR.Close()
		_ = outW.Close()
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}
	_ = outW.Close()

	p := &process{
		cmd:    execCmd,
		stdin:  stdin,
		outR:   outR,
		output: &outputBuffer{},
		done:   make(chan struct{}),
		copied: make(chan struct{}),
	}
	go p.copyOutput()
	go p.reap()
	return p, nil
}

// process implements domain.Process for a started exec.Cmd.
type process struct {
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	outR     *os.File
	output   *outputBuffer
	done     chan struct{} // closed when the process has exited
	copied   chan struct{} // closed when the output pipe reached EOF
	exitCode int
	killOnce sync.Once
	killErr  error
}

// copyOutput drains the output pipe until every writer has closed it.
func (p *process) copyOutput() {
	_, _ = io.Copy(p.output, p.outR)
	close(p.copied)
}

// reap waits for the process and records its exit code.
func (p *process) reap() {
	_ = p.cmd.Wait()
	p.exitCode = -1
	if p.cmd.ProcessState != nil {
		p.exitCode = p.cmd.ProcessState.ExitCode()
	}
	close(p.done)
}

// Wait blocks until the process exits or timeout elapses.
func (p *process) Wait(timeout time.Duration) domain.ExitOutcome {
	if timeout <= 0 {
		<-p.done
		return domain.Exited(p.exitCode)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.done:
		return domain.Exited(p.exitCode)
	case <-timer.C:
		return domain.TimedOut()
	}
}

// Output returns everything the process has written so far. Once the process
// has exited it first waits up to outputGrace for the pipe to drain.
func (p *process) Output() string {
	select {
	case <-p.done:
		p.waitCopied(outputGrace)
	default:
	}
	return p.output.String()
}

func (p *process) waitCopied(grace time.Duration) {
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-p.copied:
	case <-timer.C:
	}
}

// SendLine writes line and a newline to the process stdin.
func (p *process) SendLine(line string) error {
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return fmt.Errorf("write stdin: %w", err)
	}
	return nil
}

// Kill terminates the process if it is still running and waits for it to be
// reaped. The output pipe is closed even if a background child still holds it.
func (p *process) Kill() error {
	p.killOnce.Do(func() {
		_ = p.stdin.Close()
		select {
		case <-p.done:
		default:
			if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				p.killErr = fmt.Errorf("kill process: %w", err)
			}
			<-p.done
		}
		p.waitCopied(outputGrace)
		_ = p.outR.Close()
	})
	return p.killErr
}

// outputBuffer is a bytes.Buffer safe for concurrent writers and readers.
type outputBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *outputBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *outputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
)

// CompileInput contains the parameters for compiling a submission.
// Fields are ordered to minimize memory padding.
type CompileInput struct {
	Log         domain.CheckLog    // Receives compiler output on failure (optional)
	Config      domain.BuildConfig // Tool and default flags
	Files       []string           // Source files (required)
	Flags       domain.Flags       // Per-call flag overrides
	ExeName     string             // Executable name (optional, resolved from Files)
	Dir         string             // Working directory
	Check       string             // Check name for application logs (optional)
	Timeout     time.Duration      // Maximum compilation time (default 60s)
	MaxLogLines int                // Output lines logged on failure (default 50)
}

// CompileOutput contains the result of a successful compilation.
type CompileOutput struct {
	CommandLine string // Command that was run
	ExeName     string // Resolved executable name
}

// Compile is the use case for compiling Rust sources with a compiler or build tool.
type Compile struct {
	runner    domain.ProcessRunner
	manifests domain.ManifestReader
	logger    domain.Logger
}

// NewCompile creates a new Compile use case.
func NewCompile(runner domain.ProcessRunner, manifests domain.ManifestReader, logger domain.Logger) *Compile {
	return &Compile{
		runner:    runner,
		manifests: manifests,
		logger:    logger,
	}
}

// Execute compiles the input files.
//
// A non-zero compiler exit returns a *domain.Failure after logging the
// sanitized, truncated output. A compiler that does not finish within the
// timeout is killed and reported as domain.ErrProcessTimeout.
func (uc *Compile) Execute(ctx context.Context, in CompileInput) (*CompileOutput, error) {
	if len(in.Files) == 0 {
		return nil, domain.ErrNoFiles
	}

	exeName, err := domain.ResolveExecutableName(in.Files, in.ExeName, in.Dir, uc.manifests)
	if err != nil {
		return nil, err
	}

	tool := in.Config.Tool
	if tool == "" {
		tool = domain.DefaultBuildTool
	}
	timeout := in.Timeout
	if timeout <= 0 {
		timeout = domain.Seconds(domain.DefaultCompileTimeoutSeconds)
	}
	maxLines := in.MaxLogLines
	if maxLines <= 0 {
		maxLines = domain.DefaultMaxLogLines
	}
	checkLog := in.Log
	if checkLog == nil {
		checkLog = domain.DiscardLog{}
	}

	flags := in.Config.DefaultFlags.Merge(in.Flags).Render()
	line := domain.BuildCommandLine(tool, in.Files, exeName, flags)
	uc.debug(in.Check, fmt.Sprintf("compiling: %s", line))

	proc, err := uc.runner.Start(ctx, domain.NewCommand(line, in.Dir))
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", tool, err)
	}

	outcome := proc.Wait(timeout)
	if outcome.TimedOut {
		_ = proc.Kill()
		return nil, fmt.Errorf("%w: %q after %s", domain.ErrProcessTimeout, line, timeout)
	}
	uc.debug(in.Check, fmt.Sprintf("compiler %s", outcome))

	if outcome.Code != 0 {
		output := domain.StripANSI(proc.Output())
		for _, l := range domain.TruncateLines(domain.SplitLines(output), maxLines) {
			checkLog.Log(l)
		}
		return nil, domain.NewFailure(domain.CompileFailureMessage)
	}

	return &CompileOutput{
		CommandLine: line,
		ExeName:     exeName,
	}, nil
}

func (uc *Compile) debug(check, msg string) {
	if uc.logger != nil {
		uc.logger.Debug(check, "compile", msg)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/rscheck/internal/domain"
)

// skippedMessage is reported for checks whose dependencies did not pass.
const skippedMessage = "can't check until a frown turns upside down"

// RunSuiteInput contains the parameters for running a check suite.
// Fields are ordered to minimize memory padding.
type RunSuiteInput struct {
	Config    *domain.Config // Defaults for steps (required)
	SuitePath string         // Path to the suite file (required)
	Dir       string         // Submission directory; ignored when GitURL is set
	GitURL    string         // Clone the submission from this repository (optional)
	GitRef    string         // Branch or tag to check out with GitURL (optional)
}

// RunSuiteOutput contains the results of every check in suite order.
type RunSuiteOutput struct {
	Dir     string // Directory the checks ran in
	Results []domain.CheckResult
}

// RunSuite is the use case for running every check of a suite in order.
// Fields are ordered to minimize memory padding.
type RunSuite struct {
	suites     domain.SuiteLoader
	fetcher    domain.SubmissionFetcher
	logs       domain.CheckLogFactory
	logger     domain.Logger
	compile    *Compile
	runAndWait *RunAndWait
}

// NewRunSuite creates a new RunSuite use case.
func NewRunSuite(
	suites domain.SuiteLoader,
	fetcher domain.SubmissionFetcher,
	logs domain.CheckLogFactory,
	logger domain.Logger,
	compile *Compile,
	runAndWait *RunAndWait,
) *RunSuite {
	return &RunSuite{
		suites:     suites,
		fetcher:    fetcher,
		logs:       logs,
		logger:     logger,
		compile:    compile,
		runAndWait: runAndWait,
	}
}

// Execute loads the suite and runs its checks.
// A check is skipped when any check it depends on did not pass.
func (uc *RunSuite) Execute(ctx context.Context, in RunSuiteInput) (*RunSuiteOutput, error) {
	if in.Config == nil {
		return nil, errors.New("config is required")
	}

	suite, err := uc.suites.Load(in.SuitePath)
	if err != nil {
		return nil, fmt.Errorf("load suite: %w", err)
	}
	if err := suite.Validate(); err != nil {
		return nil, err
	}

	dir := in.Dir
	if in.GitURL != "" {
		if uc.fetcher == nil {
			return nil, errors.New("fetching submissions from git is not available")
		}
		fetched, cleanup, err := uc.fetcher.Fetch(ctx, in.GitURL, in.GitRef)
		if err != nil {
			return nil, fmt.Errorf("fetch submission: %w", err)
		}
		defer cleanup()
		dir = fetched
	}

	results := make([]domain.CheckResult, 0, len(suite.Checks))
	passed := make(map[string]bool, len(suite.Checks))

	for _, check := range suite.Checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !dependenciesPassed(check.Depends, passed) {
			results = append(results, domain.CheckResult{
				Name:        check.Name,
				Description: check.Description,
				Status:      domain.CheckSkipped,
				Message:     skippedMessage,
			})
			uc.info(check.Name, "skipped")
			continue
		}

		checkLog := uc.logs.ForCheck(check.Name)
		err := uc.runCheck(ctx, check, in.Config, dir, checkLog)
		result := domain.NewCheckResult(check.Name, check.Description, err, checkLog.Lines())
		if result.Status == domain.CheckPassed {
			passed[check.Name] = true
		}
		uc.info(check.Name, string(result.Status))
		results = append(results, result)
	}

	return &RunSuiteOutput{Dir: dir, Results: results}, nil
}

func (uc *RunSuite) runCheck(ctx context.Context, check domain.CheckSpec, cfg *domain.Config, dir string, checkLog domain.CheckLog) error {
	if step := check.Compile; step != nil {
		build := cfg.BuildConfig()
		if step.Tool != "" {
			build.Tool = step.Tool
		}
		timeout := step.Timeout
		if timeout <= 0 {
			timeout = cfg.CompileTimeout()
		}
		maxLines := step.MaxLogLines
		if maxLines <= 0 {
			maxLines = cfg.Build.MaxLogLines
		}
		_, err := uc.compile.Execute(ctx, CompileInput{
			Config:      build,
			Files:       step.Files,
			ExeName:     step.ExeName,
			Flags:       step.Flags,
			Dir:         dir,
			Check:       check.Name,
			Timeout:     timeout,
			MaxLogLines: maxLines,
			Log:         checkLog,
		})
		return err
	}

	step := check.RunAndWait
	in := RunAndWaitInput{
		Command:        step.Command,
		Dir:            dir,
		Check:          check.Name,
		LogMessage:     step.LogMessage,
		FailureMessage: step.FailureMessage,
		Timeout:        step.Timeout,
		Log:            checkLog,
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
	out, err := uc.runAndWait.Execute(ctx, in)
	if err != nil {
		return err
	}
	return out.Process.Kill()
}

func (uc *RunSuite) info(check, msg string) {
	if uc.logger != nil {
		uc.logger.Info(check, "suite", msg)
	}
}

func dependenciesPassed(deps []string, passed map[string]bool) bool {
	for _, dep := range deps {
		if !passed[dep] {
			return false
		}
	}
	return true
}

package domain

import (
	"context"
	"time"
)

// ProcessRunner starts external processes.
type ProcessRunner interface {
	// Start launches cmd and returns a handle to the running process.
	Start(ctx context.Context, cmd *ExecCommand) (Process, error)
}

// Process is a handle to a started process.
type Process interface {
	// Wait blocks until the process exits or timeout elapses.
	// A non-positive timeout waits without a deadline.
	Wait(timeout time.Duration) ExitOutcome

	// Output returns everything written to stdout and stderr so far.
	Output() string

	// SendLine writes line followed by a newline to the process stdin.
	SendLine(line string) error

	// Kill terminates the process if it is still running and releases its resources.
	Kill() error
}

// CheckLog receives the lines shown in a check's log.
type CheckLog interface {
	Log(line string)
}

// ManifestReader extracts information from build manifests.
type ManifestReader interface {
	// PackageName returns the [package] name declared in the manifest at path.
	PackageName(path string) (string, error)
}

// SuiteLoader loads check suites.
type SuiteLoader interface {
	Load(path string) (*Suite, error)
}

// SubmissionFetcher materializes a submission from a remote source.
type SubmissionFetcher interface {
	// Fetch checks out ref of the repository at url into a fresh directory.
	// The returned cleanup removes the directory.
	Fetch(ctx context.Context, url, ref string) (dir string, cleanup func(), err error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- repo).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration, optionally skipping sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// LoadConfigOptions selects which configuration sources to skip.
type LoadConfigOptions struct {
	IgnoreGlobal bool
	IgnoreRepo   bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	GetRepoConfigInfo() ConfigInfo
	GetGlobalConfigInfo() ConfigInfo
	InitRepoConfig() error
	InitGlobalConfig() error
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Logger records application events. check is the check name, or empty for
// events outside any check.
type Logger interface {
	Info(check, category, msg string)
	Debug(check, category, msg string)
	Warn(check, category, msg string)
	Error(check, category, msg string)
}

// CheckRecorder is a CheckLog that remembers its lines for reporting.
type CheckRecorder interface {
	CheckLog
	Lines() []string
}

// CheckLogFactory creates a log for each check of a run.
type CheckLogFactory interface {
	ForCheck(name string) CheckRecorder
}

// DiscardLog is a CheckLog that drops every line.
type DiscardLog struct{}

// Log discards line.
func (DiscardLog) Log(string) {}

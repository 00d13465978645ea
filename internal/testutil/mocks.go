// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
)

// MockProcess is a test double for domain.Process.
// Fields are ordered to minimize memory padding.
type MockProcess struct {
	SendErr error
	KillErr error
	Text    string          // Returned by Output
	Sent    []string        // Lines passed to SendLine
	Waits   []time.Duration // Timeouts passed to Wait
	Outcome domain.ExitOutcome
	Killed  bool
}

// Wait records the timeout and returns the configured outcome.
func (m *MockProcess) Wait(timeout time.Duration) domain.ExitOutcome {
	m.Waits = append(m.Waits, timeout)
	return m.Outcome
}

// Output returns the configured output.
func (m *MockProcess) Output() string {
	return m.Text
}

// SendLine records line.
func (m *MockProcess) SendLine(line string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, line)
	return nil
}

// Kill marks the process as killed.
func (m *MockProcess) Kill() error {
	m.Killed = true
	return m.KillErr
}

// MockProcessRunner is a test double for domain.ProcessRunner.
// Processes are handed out in order; the last one is reused when exhausted.
type MockProcessRunner struct {
	StartErr  error
	Processes []*MockProcess
	Commands  []*domain.ExecCommand
}

// NewMockProcessRunner creates a runner that returns procs in order.
func NewMockProcessRunner(procs ...*MockProcess) *MockProcessRunner {
	return &MockProcessRunner{Processes: procs}
}

// Start records cmd and returns the next configured process.
func (m *MockProcessRunner) Start(_ context.Context, cmd *domain.ExecCommand) (domain.Process, error) {
	m.Commands = append(m.Commands, cmd)
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	if len(m.Processes) == 0 {
		return &MockProcess{}, nil
	}
	idx := len(m.Commands) - 1
	if idx >= len(m.Processes) {
		idx = len(m.Processes) - 1
	}
	return m.Processes[idx], nil
}

// Lines returns the command lines started so far.
func (m *MockProcessRunner) Lines() []string {
	lines := make([]string, 0, len(m.Commands))
	for _, c := range m.Commands {
		lines = append(lines, c.Line)
	}
	return lines
}

// MockCheckLog is a test double for domain.CheckRecorder.
type MockCheckLog struct {
	Logged []string
	mu     sync.Mutex
}

// Log records line.
func (m *MockCheckLog) Log(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logged = append(m.Logged, line)
}

// Lines returns the recorded lines.
func (m *MockCheckLog) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Logged...)
}

// MockCheckLogFactory is a test double for domain.CheckLogFactory.
type MockCheckLogFactory struct {
	Logs map[string]*MockCheckLog
}

// NewMockCheckLogFactory creates a factory with an initialized map.
func NewMockCheckLogFactory() *MockCheckLogFactory {
	return &MockCheckLogFactory{Logs: make(map[string]*MockCheckLog)}
}

// ForCheck returns the log of the named check, creating it on first use.
func (m *MockCheckLogFactory) ForCheck(name string) domain.CheckRecorder {
	l, ok := m.Logs[name]
	if !ok {
		l = &MockCheckLog{}
		m.Logs[name] = l
	}
	return l
}

// MockManifestReader is a test double for domain.ManifestReader.
type MockManifestReader struct {
	Err   error
	Names map[string]string // path -> package name
	Paths []string          // Paths requested
}

// PackageName returns the configured name for path.
func (m *MockManifestReader) PackageName(path string) (string, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Names[path], nil
}

// MockSuiteLoader is a test double for domain.SuiteLoader.
type MockSuiteLoader struct {
	Suite *domain.Suite
	Err   error
	Path  string
}

// Load returns the configured suite.
func (m *MockSuiteLoader) Load(path string) (*domain.Suite, error) {
	m.Path = path
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suite, nil
}

// MockSubmissionFetcher is a test double for domain.SubmissionFetcher.
// Fields are ordered to minimize memory padding.
type MockSubmissionFetcher struct {
	Err       error
	Dir       string
	URL       string
	Ref       string
	CleanedUp bool
}

// Fetch records the request and returns the configured directory.
func (m *MockSubmissionFetcher) Fetch(_ context.Context, url, ref string) (string, func(), error) {
	m.URL = url
	m.Ref = ref
	if m.Err != nil {
		return "", nil, m.Err
	}
	return m.Dir, func() { m.CleanedUp = true }, nil
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Entries []LogEntry
}

// LogEntry is one recorded MockLogger call.
type LogEntry struct {
	Level    string
	Check    string
	Category string
	Msg      string
}

func (m *MockLogger) record(level, check, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, Check: check, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(check, category, msg string) { m.record("info", check, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(check, category, msg string) { m.record("debug", check, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(check, category, msg string) { m.record("warn", check, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(check, category, msg string) { m.record("error", check, category, msg) }

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config   *domain.Config
	LoadErr  error
	LastOpts domain.LoadConfigOptions
}

// Load returns the configured config, or defaults when none is set.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	return m.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions records opts and returns the configured config.
func (m *MockConfigLoader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	m.LastOpts = opts
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitRepoErr   error
	InitGlobalErr error
	RepoInfo      domain.ConfigInfo
	GlobalInfo    domain.ConfigInfo
	RepoInited    bool
	GlobalInited  bool
}

// GetRepoConfigInfo returns the configured repo info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo { return m.RepoInfo }

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo { return m.GlobalInfo }

// InitRepoConfig records the call.
func (m *MockConfigManager) InitRepoConfig() error {
	m.RepoInited = true
	return m.InitRepoErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.GlobalInited = true
	return m.InitGlobalErr
}

// Compile-time interface checks.
var (
	_ domain.Process           = (*MockProcess)(nil)
	_ domain.ProcessRunner     = (*MockProcessRunner)(nil)
	_ domain.CheckRecorder     = (*MockCheckLog)(nil)
	_ domain.CheckLogFactory   = (*MockCheckLogFactory)(nil)
	_ domain.ManifestReader    = (*MockManifestReader)(nil)
	_ domain.SuiteLoader       = (*MockSuiteLoader)(nil)
	_ domain.SubmissionFetcher = (*MockSubmissionFetcher)(nil)
	_ domain.Logger            = (*MockLogger)(nil)
	_ domain.ConfigLoader      = (*MockConfigLoader)(nil)
	_ domain.ConfigManager     = (*MockConfigManager)(nil)
)

// OutputLines joins lines with newlines, for building fake compiler output.
func OutputLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Build tools with special dispatch.
const (
	BuildToolCargo = "cargo"
	BuildToolRustc = "rustc"
)

// Default configuration values.
const (
	DefaultBuildTool             = BuildToolCargo
	DefaultMaxLogLines           = 50
	DefaultCompileTimeoutSeconds = 60
	DefaultWaitTimeoutSeconds    = 2
	DefaultLogLevel              = "info"

	DefaultWaitLogMessage     = "checking that program did not exit..."
	DefaultWaitFailureMessage = "Program exited when it should have waited for input."
	CompileFailureMessage     = "code failed to compile"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings   []string         `toml:"-"`
	Build      BuildSection     `toml:"build"`
	RunAndWait RunAndWaitConfig `toml:"run_and_wait"`
	Log        LogConfig        `toml:"log"`
}

// BuildSection holds compile settings from the [build] section.
type BuildSection struct {
	DefaultFlags   map[string]any `toml:"default_flags,omitempty"` // Flags applied before per-call overrides
	Tool           string         `toml:"tool,omitempty"`          // Compiler or build tool to invoke
	TimeoutSeconds float64        `toml:"timeout,omitempty"`       // Maximum compilation time
	MaxLogLines    int            `toml:"max_log_lines,omitempty"` // Lines logged when compilation fails
}

// RunAndWaitConfig holds settings from the [run_and_wait] section.
type RunAndWaitConfig struct {
	LogMessage     string  `toml:"log_message,omitempty"`
	FailureMessage string  `toml:"failure_message,omitempty"`
	TimeoutSeconds float64 `toml:"timeout,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	Dir   string `toml:"dir,omitempty"`   // Directory for check log files; empty disables them
}

// BuildConfig selects the compiler and the flags applied before per-call overrides.
type BuildConfig struct {
	Tool         string
	DefaultFlags Flags
}

// BuildConfig returns the build settings of c in call form.
func (c *Config) BuildConfig() BuildConfig {
	return BuildConfig{
		Tool:         c.Build.Tool,
		DefaultFlags: FlagsFromMap(c.Build.DefaultFlags),
	}
}

// CompileTimeout returns the configured compile timeout.
func (c *Config) CompileTimeout() time.Duration {
	return Seconds(c.Build.TimeoutSeconds)
}

// WaitTimeout returns the configured run-and-wait duration.
func (c *Config) WaitTimeout() time.Duration {
	return Seconds(c.RunAndWait.TimeoutSeconds)
}

// Seconds converts fractional seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Build: BuildSection{
			Tool:           DefaultBuildTool,
			TimeoutSeconds: DefaultCompileTimeoutSeconds,
			MaxLogLines:    DefaultMaxLogLines,
			DefaultFlags:   map[string]any{},
		},
		RunAndWait: RunAndWaitConfig{
			TimeoutSeconds: DefaultWaitTimeoutSeconds,
			LogMessage:     DefaultWaitLogMessage,
			FailureMessage: DefaultWaitFailureMessage,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// File names for rscheck configuration.
const (
	AppDirName         = "rscheck"       // Directory name under the user config home
	ConfigFileName     = "config.toml"   // Global config file name
	RepoConfigFileName = ".rscheck.toml" // Config file name in a submission directory
)

// RepoConfigPath returns the config path inside a submission directory.
func RepoConfigPath(dir string) string {
	return filepath.Join(dir, RepoConfigFileName)
}

// GlobalConfigDir returns the global rscheck directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

type templateData struct {
	Tool           string
	LogLevel       string
	LogMessage     string
	FailureMessage string
	Timeout        string
	WaitTimeout    string
	MaxLogLines    int
}

// RenderConfigTemplate renders the commented config template with the values of cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))

	data := templateData{
		Tool:           cfg.Build.Tool,
		MaxLogLines:    cfg.Build.MaxLogLines,
		Timeout:        formatSeconds(cfg.Build.TimeoutSeconds),
		WaitTimeout:    formatSeconds(cfg.RunAndWait.TimeoutSeconds),
		LogMessage:     quoteTOML(cfg.RunAndWait.LogMessage),
		FailureMessage: quoteTOML(cfg.RunAndWait.FailureMessage),
		LogLevel:       cfg.Log.Level,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%g", s)
}

func quoteTOML(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

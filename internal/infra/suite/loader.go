// Package suite loads check suites from YAML files.
package suite

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// Ensure Loader implements domain.SuiteLoader.
var _ domain.SuiteLoader = (*Loader)(nil)

// Loader reads suite files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the suite file at path.
func (l *Loader) Load(path string) (*domain.Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	return Parse(data)
}

// Parse decodes suite YAML.
func Parse(data []byte) (*domain.Suite, error) {
	var raw suiteFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSuite, err)
	}

	s := &domain.Suite{Checks: make([]domain.CheckSpec, 0, len(raw.Checks))}
	for _, c := range raw.Checks {
		spec := domain.CheckSpec{
			Name:        c.Name,
			Description: c.Description,
			Depends:     c.Depends,
		}
		if c.Compile != nil {
			spec.Compile = &domain.CompileStep{
				Files:       c.Compile.Files,
				Tool:        c.Compile.Tool,
				ExeName:     c.Compile.ExeName,
				MaxLogLines: c.Compile.MaxLogLines,
				Timeout:     time.Duration(c.Compile.Timeout),
				Flags:       domain.Flags(c.Compile.Flags),
			}
		}
		if c.RunAndWait != nil {
			spec.RunAndWait = &domain.RunAndWaitStep{
				Command:        c.RunAndWait.Command,
				LogMessage:     c.RunAndWait.LogMessage,
				FailureMessage: c.RunAndWait.FailureMessage,
				Timeout:        time.Duration(c.RunAndWait.Timeout),
			}
		}
		s.Checks = append(s.Checks, spec)
	}
	return s, nil
}

type suiteFile struct {
	Checks []checkEntry `yaml:"checks"`
}

type checkEntry struct {
	Compile     *compileEntry    `yaml:"compile"`
	RunAndWait  *runAndWaitEntry `yaml:"run_and_wait"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Depends     []string         `yaml:"depends"`
}

type compileEntry struct {
	Tool        string   `yaml:"tool"`
	ExeName     string   `yaml:"exe_name"`
	Files       []string `yaml:"files"`
	Flags       flagList `yaml:"flags"`
	Timeout     duration `yaml:"timeout"`
	MaxLogLines int      `yaml:"max_log_lines"`
}

type runAndWaitEntry struct {
	Command        string   `yaml:"command"`
	LogMessage     string   `yaml:"log_message"`
	FailureMessage string   `yaml:"failure_message"`
	Timeout        duration `yaml:"timeout"`
}

// flagList decodes a YAML mapping into flags, keeping document order.
type flagList domain.Flags

func (f *flagList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New("flags must be a mapping")
	}
	flags := make(domain.Flags, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("flag %q: %w", name, err)
		}
		flags = flags.Set(name, value)
	}
	*f = flagList(flags)
	return nil
}

// duration accepts a number of seconds or a Go duration string such as "1m30s".
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New("timeout must be a scalar")
	}
	if secs, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*d = duration(domain.Seconds(secs))
		return nil
	}
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", node.Value, err)
	}
	*d = duration(parsed)
	return nil
}

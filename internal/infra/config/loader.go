// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/rscheck/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dir           string // Submission directory holding .rscheck.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/rscheck)
}

// NewLoader creates a new Loader.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:           dir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dir, globalConfDir string) *Loader {
	return &Loader{
		dir:           dir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (default <- global <- repo).
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if !opts.IgnoreGlobal && l.globalConfDir != "" {
		path := filepath.Join(l.globalConfDir, domain.ConfigFileName)
		if err := l.applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreRepo && l.dir != "" {
		if err := l.applyFile(cfg, domain.RepoConfigPath(l.dir)); err != nil {
			return nil, err
		}
	}

	sort.Strings(cfg.Warnings)
	return cfg, nil
}

// applyFile overlays the settings of a config file onto cfg.
// A missing file is not an error.
func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	applyRaw(cfg, raw)
	return nil
}

// applyRaw overlays raw TOML values onto cfg and collects warnings for unknown keys.
func applyRaw(cfg *domain.Config, raw map[string]any) {
	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "build":
			for k, v := range m {
				switch k {
				case "tool":
					if s, ok := v.(string); ok {
						cfg.Build.Tool = s
					}
				case "timeout":
					if f, ok := toFloat(v); ok {
						cfg.Build.TimeoutSeconds = f
					}
				case "max_log_lines":
					if n, ok := v.(int64); ok {
						cfg.Build.MaxLogLines = int(n)
					}
				case "default_flags":
					if flags, ok := v.(map[string]any); ok {
						if cfg.Build.DefaultFlags == nil {
							cfg.Build.DefaultFlags = make(map[string]any)
						}
						for name, fv := range flags {
							cfg.Build.DefaultFlags[name] = fv
						}
					}
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [build]: %s", k))
				}
			}
		case "run_and_wait":
			for k, v := range m {
				switch k {
				case "timeout":
					if f, ok := toFloat(v); ok {
						cfg.RunAndWait.TimeoutSeconds = f
					}
				case "log_message":
					if s, ok := v.(string); ok {
						cfg.RunAndWait.LogMessage = s
					}
				case "failure_message":
					if s, ok := v.(string); ok {
						cfg.RunAndWait.FailureMessage = s
					}
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [run_and_wait]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						cfg.Log.Level = s
					}
				case "dir":
					if s, ok := v.(string); ok {
						cfg.Log.Dir = s
					}
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

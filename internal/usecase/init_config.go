package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/rscheck/internal/domain"
)

// ConfigScope names the configuration file a command writes.
type ConfigScope string

// Configuration file scopes.
const (
	ScopeSubmission ConfigScope = "submission"
	ScopeGlobal     ConfigScope = "global"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Global bool // Write the global file instead of .rscheck.toml
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path  string
	Scope ConfigScope
}

// InitConfig writes a configuration file holding the default values.
type InitConfig struct {
	manager domain.ConfigManager
	logger  domain.Logger
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(manager domain.ConfigManager, logger domain.Logger) *InitConfig {
	return &InitConfig{manager: manager, logger: logger}
}

// configTarget is the file InitConfig writes and how to create it.
type configTarget struct {
	create func() error
	info   domain.ConfigInfo
	scope  ConfigScope
}

func (uc *InitConfig) target(global bool) configTarget {
	if global {
		return configTarget{
			create: uc.manager.InitGlobalConfig,
			info:   uc.manager.GetGlobalConfigInfo(),
			scope:  ScopeGlobal,
		}
	}
	return configTarget{
		create: uc.manager.InitRepoConfig,
		info:   uc.manager.GetRepoConfigInfo(),
		scope:  ScopeSubmission,
	}
}

// Execute creates the selected configuration file. An existing file is never
// overwritten.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	t := uc.target(in.Global)
	if t.info.Exists {
		return nil, fmt.Errorf("%s config %s: %w", t.scope, t.info.Path, domain.ErrConfigExists)
	}
	if err := t.create(); err != nil {
		return nil, fmt.Errorf("create %s config: %w", t.scope, err)
	}

	uc.logger.Info("", "config", fmt.Sprintf("created %s config %s", t.scope, t.info.Path))
	return &InitConfigOutput{Path: t.info.Path, Scope: t.scope}, nil
}

// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/rscheck/internal/domain"
	"github.com/runoshun/rscheck/internal/infra/config"
	"github.com/runoshun/rscheck/internal/infra/executor"
	"github.com/runoshun/rscheck/internal/infra/gitsource"
	"github.com/runoshun/rscheck/internal/infra/logging"
	"github.com/runoshun/rscheck/internal/infra/manifest"
	"github.com/runoshun/rscheck/internal/infra/suite"
	"github.com/runoshun/rscheck/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	Dir string // Submission directory checks run in
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
// Fields are ordered to minimize memory padding.
type Container struct {
	// Ports (interfaces bound to implementations)
	Runner        domain.ProcessRunner
	Manifests     domain.ManifestReader
	Suites        domain.SuiteLoader
	Fetcher       domain.SubmissionFetcher
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// ConfigErr is set when the config files could not be loaded; AppConfig
	// then holds defaults.
	ConfigErr error

	// Pointer fields
	AppConfig *domain.Config
	Logger    *logging.Logger
	Slog      *slog.Logger

	// Configuration
	Config Config
}

// New creates a new Container for the submission directory dir.
func New(dir string) (*Container, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	configLoader := config.NewLoader(absDir)
	appConfig, configErr := configLoader.Load()
	if configErr != nil {
		appConfig = domain.NewDefaultConfig()
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	sl := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &Container{
		Runner:        executor.NewClient(),
		Manifests:     manifest.NewCargoReader(),
		Suites:        suite.NewLoader(),
		Fetcher:       gitsource.NewFetcher(""),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(absDir),
		ConfigErr:     configErr,
		AppConfig:     appConfig,
		Logger:        logging.New(appConfig.Log.Dir, level, sl),
		Slog:          sl,
		Config:        Config{Dir: absDir},
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// Suite and manifest parsing use the real adapters; configuration is not read
// from disk.
func NewWithDeps(cfg Config, appConfig *domain.Config, runner domain.ProcessRunner, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Runner:    runner,
		Manifests: manifest.NewCargoReader(),
		Suites:    suite.NewLoader(),
		AppConfig: appConfig,
		Logger:    logging.New("", logging.ParseLevel(appConfig.Log.Level), logger),
		Slog:      logger,
		Config:    cfg,
	}
}

// LoadedConfig returns the configuration loaded at startup, or the load error.
func (c *Container) LoadedConfig() (*domain.Config, error) {
	if c.ConfigErr != nil {
		return nil, c.ConfigErr
	}
	return c.AppConfig, nil
}

// Close releases log files.
func (c *Container) Close() error {
	if c.Logger == nil {
		return nil
	}
	return c.Logger.Close()
}

// UseCase factory methods

// CompileUseCase returns a new Compile use case.
func (c *Container) CompileUseCase() *usecase.Compile {
	return usecase.NewCompile(c.Runner, c.Manifests, c.Logger)
}

// RunAndWaitUseCase returns a new RunAndWait use case.
func (c *Container) RunAndWaitUseCase() *usecase.RunAndWait {
	return usecase.NewRunAndWait(c.Runner, c.Logger)
}

// RunSuiteUseCase returns a new RunSuite use case.
func (c *Container) RunSuiteUseCase() *usecase.RunSuite {
	return usecase.NewRunSuite(c.Suites, c.Fetcher, c.Logger, c.Logger, c.CompileUseCase(), c.RunAndWaitUseCase())
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager, c.Logger)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate(c.ConfigLoader)
}

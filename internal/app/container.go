// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/infra/config"
	"github.com/runoshun/tasks-timeline/internal/infra/logging"
	"github.com/runoshun/tasks-timeline/internal/infra/vault"
	"github.com/runoshun/tasks-timeline/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	VaultDir string // Root directory of the vault
	LogPath  string // Path to the log file ("" = logging disabled)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Source        domain.TaskSource
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// NewNotifier opens a change notifier over the files Source reads.
	NewNotifier func(debounce time.Duration) (domain.ChangeNotifier, error)

	// AppConfig is the merged configuration loaded at startup.
	AppConfig *domain.Config

	logFile *logging.Logger

	// Configuration
	Config Config
}

// New creates a new Container for the vault at vaultDir.
// Config files that fail to load are reported through AppConfig.Warnings
// and the defaults are used instead.
func New(vaultDir string) (*Container, error) {
	root, err := filepath.Abs(vaultDir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault directory: %w", err)
	}

	configLoader := config.NewLoader(root)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}

	logger := logging.New(defaultLogDir(), logging.ParseLevel(appConfig.Log.Level))
	harvester := vault.NewHarvester(root, appConfig.Vault.IgnoreDirs, logger)

	return &Container{
		Source:        harvester,
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(root),
		Logger:        logger,
		NewNotifier: func(debounce time.Duration) (domain.ChangeNotifier, error) {
			return vault.NewWatcher(harvester, debounce)
		},
		AppConfig: appConfig,
		logFile:   logger,
		Config: Config{
			VaultDir: root,
			LogPath:  logger.Path(),
		},
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, source domain.TaskSource, clock domain.Clock, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Source:    source,
		Clock:     clock,
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// defaultLogDir returns the log directory under XDG_STATE_HOME or ~/.local/state.
func defaultLogDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.LogDir(stateHome)
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

// UseCase factory methods

// Pipeline builds the enrichment pipeline for opts.
func (c *Container) Pipeline(opts usecase.PipelineOptions) (*usecase.Pipeline, error) {
	return usecase.NewPipeline(opts, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case running pipeline.
func (c *Container) ListTasksUseCase(pipeline *usecase.Pipeline) *usecase.ListTasks {
	return usecase.NewListTasks(c.Source, pipeline, c.Logger)
}

// ParseLineUseCase returns a new ParseLine use case running pipeline.
func (c *Container) ParseLineUseCase(pipeline *usecase.Pipeline) *usecase.ParseLine {
	return usecase.NewParseLine(pipeline)
}

// WatchTasksUseCase returns a new WatchTasks use case with a fresh notifier.
func (c *Container) WatchTasksUseCase(list *usecase.ListTasks, debounce time.Duration) (*usecase.WatchTasks, error) {
	if c.NewNotifier == nil {
		return nil, errors.New("watch: no change notifier configured")
	}
	notifier, err := c.NewNotifier(debounce)
	if err != nil {
		return nil, err
	}
	return usecase.NewWatchTasks(list, notifier, c.Logger), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.LogPath)
}

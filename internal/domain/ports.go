package domain

import (
	"context"
	"time"
)

// TaskSource harvests raw task records from markdown files.
type TaskSource interface {
	// Harvest returns one record per task list item, in file and line order.
	// Records have Visual equal to Text and no derived fields set.
	Harvest(ctx context.Context) ([]*Task, error)
}

// ChangeNotifier reports changes to the files a TaskSource reads.
type ChangeNotifier interface {
	// Changes delivers a signal after a burst of file changes settles.
	// Signals are coalesced: a pending signal absorbs later ones.
	Changes() <-chan struct{}

	// Errors delivers watcher errors.
	Errors() <-chan error

	// Close stops watching and closes both channels.
	Close() error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default + global + vault).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// LoadWithOptions returns the merged configuration with options to ignore sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// LoadConfigOptions selects which config sources are merged.
type LoadConfigOptions struct {
	IgnoreGlobal bool
	IgnoreVault  bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetVaultConfigInfo returns information about the vault config file.
	GetVaultConfigInfo() ConfigInfo

	// InitGlobalConfig creates the global config file from the template.
	InitGlobalConfig(cfg *Config) error

	// InitVaultConfig creates the vault config file from the template.
	InitVaultConfig(cfg *Config) error
}

// ConfigInfo describes a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Logger writes leveled log lines.
// scope is the file a message concerns, or "global".
type Logger interface {
	Debug(scope, category, msg string)
	Info(scope, category, msg string)
	Warn(scope, category, msg string)
	Error(scope, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, string, string) {}
func (NopLogger) Info(string, string, string)  {}
func (NopLogger) Warn(string, string, string)  {}
func (NopLogger) Error(string, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the current calendar day of the clock in its local zone.
func Today(c Clock) Date {
	return DateOf(c.Now())
}

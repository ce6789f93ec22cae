// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// NewMockClockOn returns a clock fixed at noon UTC of the given day.
func NewMockClockOn(year int, month time.Month, day int) *MockClock {
	return &MockClock{NowTime: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}

// MockTaskSource is a test double for domain.TaskSource.
// Each Harvest returns fresh clones of Tasks.
// Fields are ordered to minimize memory padding.
type MockTaskSource struct {
	HarvestErr error
	Tasks      []*domain.Task
	mu         sync.Mutex
	calls      int
}

// Ensure MockTaskSource implements domain.TaskSource interface.
var _ domain.TaskSource = (*MockTaskSource)(nil)

// Harvest returns clones of the configured tasks.
func (m *MockTaskSource) Harvest(ctx context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.HarvestErr != nil {
		return nil, m.HarvestErr
	}
	out := make([]*domain.Task, len(m.Tasks))
	for i, t := range m.Tasks {
		if t != nil {
			out[i] = t.Clone()
		}
	}
	return out, nil
}

// Calls returns how many times Harvest was called.
func (m *MockTaskSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockChangeNotifier is a test double for domain.ChangeNotifier.
type MockChangeNotifier struct {
	changes chan struct{}
	errs    chan error
	once    sync.Once
	Closed  bool
}

// Ensure MockChangeNotifier implements domain.ChangeNotifier interface.
var _ domain.ChangeNotifier = (*MockChangeNotifier)(nil)

// NewMockChangeNotifier creates a notifier with unbuffered channels.
func NewMockChangeNotifier() *MockChangeNotifier {
	return &MockChangeNotifier{
		changes: make(chan struct{}),
		errs:    make(chan error),
	}
}

// Changes returns the change channel.
func (m *MockChangeNotifier) Changes() <-chan struct{} { return m.changes }

// Errors returns the error channel.
func (m *MockChangeNotifier) Errors() <-chan error { return m.errs }

// Notify delivers one change signal, blocking until it is received.
func (m *MockChangeNotifier) Notify() { m.changes <- struct{}{} }

// Fail delivers one error, blocking until it is received.
func (m *MockChangeNotifier) Fail(err error) { m.errs <- err }

// Close closes both channels.
func (m *MockChangeNotifier) Close() error {
	m.once.Do(func() {
		m.Closed = true
		close(m.changes)
		close(m.errs)
	})
	return nil
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Scope    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, scope, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Scope: scope, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(scope, category, msg string) { m.record("debug", scope, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(scope, category, msg string) { m.record("info", scope, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(scope, category, msg string) { m.record("warn", scope, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(scope, category, msg string) { m.record("error", scope, category, msg) }

// Entries returns a copy of all recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), m.entries...)
}

// Warnings returns the messages of warn entries, formatted "[category] msg".
func (m *MockLogger) Warnings() []string {
	var out []string
	for _, e := range m.Entries() {
		if e.Level == "warn" {
			out = append(out, fmt.Sprintf("[%s] %s", e.Category, e.Msg))
		}
	}
	return out
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// LoadWithOptions returns the configured config; options are ignored.
func (m *MockConfigLoader) LoadWithOptions(_ domain.LoadConfigOptions) (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitVaultErr     error
	InitGlobalErr    error
	VaultConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitVaultCalled  bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		VaultConfigInfo: domain.ConfigInfo{
			Path:   "/vault/.timeline.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/tasks-timeline/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetVaultConfigInfo returns the configured vault config info.
func (m *MockConfigManager) GetVaultConfigInfo() domain.ConfigInfo {
	return m.VaultConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitVaultConfig records the call and returns configured error.
func (m *MockConfigManager) InitVaultConfig(_ *domain.Config) error {
	m.InitVaultCalled = true
	return m.InitVaultErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

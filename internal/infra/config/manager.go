package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// errNoGlobalDir is returned when no user config directory could be resolved.
var errNoGlobalDir = errors.New("no user config directory for tasks-timeline")

// Manager reads and scaffolds the vault and user config files.
type Manager struct {
	vaultDir  string // .timeline.toml lives here
	globalDir string // Empty when the OS reports no user config dir
}

// NewManager returns a Manager for vaultDir using the platform's user config dir.
func NewManager(vaultDir string) *Manager {
	return NewManagerWithGlobalDir(vaultDir, defaultGlobalConfigDir())
}

// NewManagerWithGlobalDir returns a Manager with an explicit user config dir.
func NewManagerWithGlobalDir(vaultDir, globalDir string) *Manager {
	return &Manager{vaultDir: vaultDir, globalDir: globalDir}
}

// GetVaultConfigInfo reports the vault config file and its content.
func (m *Manager) GetVaultConfigInfo() domain.ConfigInfo {
	return readInfo(domain.VaultConfigPath(m.vaultDir))
}

// GetGlobalConfigInfo reports the user config file and its content.
// Path is empty when there is no user config dir.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	path, ok := m.globalPath()
	if !ok {
		return domain.ConfigInfo{}
	}
	return readInfo(path)
}

// InitVaultConfig writes the commented template into the vault.
func (m *Manager) InitVaultConfig(cfg *domain.Config) error {
	if _, err := os.Stat(m.vaultDir); err != nil {
		return domain.ErrVaultNotFound
	}
	return writeTemplate(domain.VaultConfigPath(m.vaultDir), cfg)
}

// InitGlobalConfig writes the commented template into the user config dir,
// creating the directory when needed.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	path, ok := m.globalPath()
	if !ok {
		return errNoGlobalDir
	}
	if err := os.MkdirAll(m.globalDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return writeTemplate(path, cfg)
}

func (m *Manager) globalPath() (string, bool) {
	if m.globalDir == "" {
		return "", false
	}
	return filepath.Join(m.globalDir, domain.ConfigFileName), true
}

// readInfo never fails; an unreadable file is reported as missing.
func readInfo(path string) domain.ConfigInfo {
	info := domain.ConfigInfo{Path: path}
	if data, err := os.ReadFile(path); err == nil {
		info.Content = string(data)
		info.Exists = true
	}
	return info
}

// writeTemplate refuses to overwrite an existing file.
func writeTemplate(path string, cfg *domain.Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return domain.ErrConfigExists
	}
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := f.WriteString(domain.RenderConfigTemplate(cfg)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}

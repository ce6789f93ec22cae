package domain

import (
	"path/filepath"
	"strings"
)

// Directory and file names for tasks-timeline.
const (
	AppDirName          = "tasks-timeline" // Directory name under XDG config and state homes
	ConfigFileName      = "config.toml"    // Global config file name
	VaultConfigFileName = ".timeline.toml" // Config file name in the vault root
	LogFileName         = "timeline.log"   // Log file name
	MarkdownExt         = ".md"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// VaultConfigPath returns the vault config path.
func VaultConfigPath(vaultRoot string) string {
	return filepath.Join(vaultRoot, VaultConfigFileName)
}

// LogDir returns the log directory under the state directory.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func LogDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, "logs")
}

// LogPath returns the log file path under the state directory.
func LogPath(stateHome string) string {
	return filepath.Join(LogDir(stateHome), LogFileName)
}

// IsMarkdownPath reports whether p names a markdown file.
func IsMarkdownPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), MarkdownExt)
}

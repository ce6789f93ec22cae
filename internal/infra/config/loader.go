// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/tasks-timeline/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	vaultDir      string // Vault root holding .timeline.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/tasks-timeline)
}

// NewLoader creates a new Loader.
func NewLoader(vaultDir string) *Loader {
	return &Loader{
		vaultDir:      vaultDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(vaultDir, globalConfDir string) *Loader {
	return &Loader{
		vaultDir:      vaultDir,
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

// Load returns the merged configuration (default + global + vault).
// Vault config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadGlobal returns the default configuration overlaid with the global file.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	global, err := l.globalOverlay()
	if err != nil {
		return nil, err
	}
	base := domain.NewDefaultConfig()
	global.applyTo(base)
	return base, nil
}

// LoadVault returns the default configuration overlaid with the vault file.
func (l *Loader) LoadVault() (*domain.Config, error) {
	vault, err := l.loadFile(domain.VaultConfigPath(l.vaultDir))
	if err != nil {
		return nil, err
	}
	base := domain.NewDefaultConfig()
	vault.applyTo(base)
	return base, nil
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	var global, vault *overlay
	var err error

	// Load global config unless ignored
	if !opts.IgnoreGlobal {
		global, err = l.globalOverlay()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Load vault config unless ignored
	if !opts.IgnoreVault && l.vaultDir != "" {
		vault, err = l.loadFile(domain.VaultConfigPath(l.vaultDir))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Merge: default <- global <- vault (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		global.applyTo(base)
	}
	if vault != nil {
		vault.applyTo(base)
	}
	return base, nil
}

func (l *Loader) globalOverlay() (*overlay, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration overlay from a file.
func (l *Loader) loadFile(path string) (*overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToOverlay(raw), nil
}

// overlay holds the keys present in one config file.
// nil fields were not set and leave the base value alone.
type overlay struct {
	dailyNoteFormat *string
	statusOrder     []domain.Status
	workers         *int
	forward         *bool
	links           *bool
	createdAsStart  *bool
	includeTags     []string
	excludeTags     []string
	excludePaths    []string
	hideMarkers     []string
	hideEmpty       *bool
	includeDone     *bool
	sortBy          *string
	ignoreDirs      []string
	logLevel        *string
	warnings        []string
}

// applyTo overwrites the fields of cfg that the overlay sets.
func (o *overlay) applyTo(cfg *domain.Config) {
	setIf(&cfg.Pipeline.DailyNoteFormat, o.dailyNoteFormat)
	setIf(&cfg.Pipeline.Workers, o.workers)
	setIf(&cfg.Pipeline.Forward, o.forward)
	setIf(&cfg.Pipeline.Links, o.links)
	setIf(&cfg.Pipeline.CreatedAsStart, o.createdAsStart)
	setIf(&cfg.Filter.HideEmpty, o.hideEmpty)
	setIf(&cfg.Filter.IncludeDone, o.includeDone)
	setIf(&cfg.Sort.By, o.sortBy)
	setIf(&cfg.Log.Level, o.logLevel)

	if o.statusOrder != nil {
		cfg.Pipeline.StatusOrder = slices.Clone(o.statusOrder)
	}
	if o.includeTags != nil {
		cfg.Filter.IncludeTags = slices.Clone(o.includeTags)
	}
	if o.excludeTags != nil {
		cfg.Filter.ExcludeTags = slices.Clone(o.excludeTags)
	}
	if o.excludePaths != nil {
		cfg.Filter.ExcludePaths = slices.Clone(o.excludePaths)
	}
	if o.hideMarkers != nil {
		cfg.Filter.HideMarkers = slices.Clone(o.hideMarkers)
	}
	if o.ignoreDirs != nil {
		cfg.Vault.IgnoreDirs = slices.Clone(o.ignoreDirs)
	}

	cfg.Warnings = append(cfg.Warnings, o.warnings...)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// convertRawToOverlay converts the raw map to an overlay and collects warnings.
func convertRawToOverlay(raw map[string]any) *overlay {
	res := &overlay{}
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown section: %s", section)
			continue
		}
		switch section {
		case "pipeline":
			for k, v := range m {
				switch k {
				case "daily_note_format":
					res.dailyNoteFormat = stringValue(section, k, v, warn)
				case "forward":
					res.forward = boolValue(section, k, v, warn)
				case "links":
					res.links = boolValue(section, k, v, warn)
				case "created_as_start":
					res.createdAsStart = boolValue(section, k, v, warn)
				case "workers":
					if n, ok := v.(int64); ok && n >= 0 {
						workers := int(n)
						res.workers = &workers
					} else {
						warn("invalid value in [%s]: %s must be a non-negative integer", section, k)
					}
				case "status_order":
					values := stringsValue(section, k, v, warn)
					if values == nil {
						continue
					}
					order := make([]domain.Status, 0, len(values))
					for _, s := range values {
						status, err := domain.ParseStatus(s)
						if err != nil {
							warn("invalid value in [%s]: %s: %v", section, k, err)
							continue
						}
						order = append(order, status)
					}
					res.statusOrder = order
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "filter":
			for k, v := range m {
				switch k {
				case "include_tags":
					res.includeTags = stringsValue(section, k, v, warn)
				case "exclude_tags":
					res.excludeTags = stringsValue(section, k, v, warn)
				case "exclude_paths":
					res.excludePaths = stringsValue(section, k, v, warn)
				case "hide_markers":
					res.hideMarkers = stringsValue(section, k, v, warn)
				case "hide_empty":
					res.hideEmpty = boolValue(section, k, v, warn)
				case "include_done":
					res.includeDone = boolValue(section, k, v, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "sort":
			for k, v := range m {
				switch k {
				case "by":
					res.sortBy = stringValue(section, k, v, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "vault":
			for k, v := range m {
				switch k {
				case "ignore_dirs":
					res.ignoreDirs = stringsValue(section, k, v, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.logLevel = stringValue(section, k, v, warn)
				default:
					warn("unknown key in [%s]: %s", section, k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	res.warnings = warnings
	return res
}

type warnFunc func(format string, args ...any)

func stringValue(section, key string, v any, warn warnFunc) *string {
	s, ok := v.(string)
	if !ok {
		warn("invalid value in [%s]: %s must be a string", section, key)
		return nil
	}
	return &s
}

func boolValue(section, key string, v any, warn warnFunc) *bool {
	b, ok := v.(bool)
	if !ok {
		warn("invalid value in [%s]: %s must be a boolean", section, key)
		return nil
	}
	return &b
}

// stringsValue returns nil when v is not an array of strings.
func stringsValue(section, key string, v any, warn warnFunc) []string {
	items, ok := v.([]any)
	if !ok {
		warn("invalid value in [%s]: %s must be an array of strings", section, key)
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			warn("invalid value in [%s]: %s must be an array of strings", section, key)
			return nil
		}
		out = append(out, s)
	}
	return out
}

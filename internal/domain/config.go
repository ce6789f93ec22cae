package domain

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Filter   FilterConfig   `toml:"filter"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Vault    VaultConfig    `toml:"vault"`
	Sort     SortConfig     `toml:"sort"`
	Log      LogConfig      `toml:"log"`
}

// PipelineConfig holds enrichment settings from [pipeline] section.
type PipelineConfig struct {
	DailyNoteFormat string   `toml:"daily_note_format,omitempty"` // moment-style pattern, e.g. "YYYY-MM-DD"
	StatusOrder     []Status `toml:"status_order,omitempty"`      // Status ranking for order numbering
	Workers         int      `toml:"workers,omitempty"`           // Worker pool size (0 = GOMAXPROCS)
	Forward         bool     `toml:"forward,omitempty"`           // Carry unplanned and overdue tasks onto today
	Links           bool     `toml:"links,omitempty"`             // Run the link extractor
	CreatedAsStart  bool     `toml:"created_as_start,omitempty"`  // Route [created::] annotations to Start
}

// FilterConfig holds output filter settings from [filter] section.
type FilterConfig struct {
	IncludeTags  []string `toml:"include_tags,omitempty"`  // Keep only tasks carrying one of these tags
	ExcludeTags  []string `toml:"exclude_tags,omitempty"`  // Drop tasks carrying any of these tags
	ExcludePaths []string `toml:"exclude_paths,omitempty"` // Drop tasks whose path has one of these prefixes
	HideMarkers  []string `toml:"hide_markers,omitempty"`  // Drop tasks with these status marker characters
	HideEmpty    bool     `toml:"hide_empty,omitempty"`    // Drop tasks whose visual text is empty
	IncludeDone  bool     `toml:"include_done,omitempty"`  // Keep done and cancelled tasks
}

// SortConfig holds ordering settings from [sort] section.
type SortConfig struct {
	By string `toml:"by,omitempty"` // Comma-separated sort keys, "-" prefix for descending
}

// VaultConfig holds harvesting settings from [vault] section.
type VaultConfig struct {
	IgnoreDirs []string `toml:"ignore_dirs,omitempty"` // Directory names skipped while walking
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultSortBy   = "order"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			DailyNoteFormat: DefaultDailyNoteFormat,
			StatusOrder:     DefaultStatusOrder(),
			Links:           true,
			CreatedAsStart:  true,
		},
		Filter: FilterConfig{
			HideEmpty: true,
		},
		Sort: SortConfig{By: DefaultSortBy},
		Vault: VaultConfig{
			IgnoreDirs: []string{"node_modules"},
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// templateData holds data for rendering the config template.
type templateData struct {
	DailyNoteFormat string
	StatusOrder     string
	SortBy          string
	LogLevel        string
	IgnoreDirs      string
	Forward         bool
	Links           bool
	CreatedAsStart  bool
	HideEmpty       bool
	IncludeDone     bool
}

// RenderConfigTemplate renders the commented config template from cfg.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		DailyNoteFormat: cfg.Pipeline.DailyNoteFormat,
		StatusOrder:     tomlStringArray(statusStrings(cfg.Pipeline.StatusOrder)),
		SortBy:          cfg.Sort.By,
		LogLevel:        cfg.Log.Level,
		IgnoreDirs:      tomlStringArray(cfg.Vault.IgnoreDirs),
		Forward:         cfg.Pipeline.Forward,
		Links:           cfg.Pipeline.Links,
		CreatedAsStart:  cfg.Pipeline.CreatedAsStart,
		HideEmpty:       cfg.Filter.HideEmpty,
		IncludeDone:     cfg.Filter.IncludeDone,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		return configTemplateContent
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func tomlStringArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

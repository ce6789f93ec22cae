package parser

import (
	"fmt"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// Stage is one enrichment step applied to a task record.
type Stage interface {
	// Name identifies the stage in logs and errors.
	Name() string

	// Apply updates the task in place.
	Apply(t *domain.Task) error
}

// Stage names.
const (
	StageMarker    = "marker"
	StageLinks     = "links"
	StageKeyValue  = "keyvalue"
	StageDailyNote = "dailynote"
	StageTags      = "tags"
	StageReminder  = "reminder"
)

// cut removes s[start:end] and trims the result.
func cut(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + s[end:])
}

// parseMarkerDate parses a date captured by a marker pattern.
// It logs and returns nil when the date is malformed.
func parseMarkerDate(logger domain.Logger, t *domain.Task, stage, role, value string) *domain.Date {
	d, err := domain.ParseDate(value)
	if err != nil {
		logger.Warn(t.Path, stage, fmt.Sprintf("line %d: %s date skipped: %v", t.Line, role, err))
		return nil
	}
	return &d
}

func loggerOrNop(logger domain.Logger) domain.Logger {
	if logger == nil {
		return domain.NopLogger{}
	}
	return logger
}

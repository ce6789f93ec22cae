package parser

import (
	"fmt"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// KeyValueStage strips [key::value] annotations and routes date values to
// the task's date fields.
//
// Reserved keys (due, scheduled, start, created, complete, completion,
// done) fill the dedicated fields; other keys go to Dates, or to Fields
// when the value is not a date. A malformed date on a reserved key is
// logged and dropped. The annotation is removed from Visual either way.
type KeyValueStage struct {
	logger         domain.Logger
	createdAsStart bool
}

// NewKeyValueStage creates a KeyValueStage.
// With createdAsStart, [created::] also fills Start.
func NewKeyValueStage(logger domain.Logger, createdAsStart bool) *KeyValueStage {
	return &KeyValueStage{logger: loggerOrNop(logger), createdAsStart: createdAsStart}
}

// Name implements Stage.
func (s *KeyValueStage) Name() string { return StageKeyValue }

// IsReservedKey reports whether key names a dedicated date field.
func IsReservedKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "due", "scheduled", "start", "created", "complete", "completion", "done":
		return true
	default:
		return false
	}
}

// Apply implements Stage.
func (s *KeyValueStage) Apply(t *domain.Task) error {
	desc := t.Visual
	matched := false

	for {
		m := keyValueRe.FindStringSubmatchIndex(desc)
		if m == nil {
			break
		}
		key := strings.TrimSpace(desc[m[2]:m[3]])
		value := strings.TrimSpace(desc[m[4]:m[5]])
		desc = cut(desc, m[0], m[1])
		matched = true

		s.route(t, key, value)
	}

	if matched {
		t.Visual = desc
	}
	return nil
}

func (s *KeyValueStage) route(t *domain.Task, key, value string) {
	d, err := domain.ParseAnnotationDate(value)
	if err != nil {
		if IsReservedKey(key) {
			s.logger.Warn(t.Path, StageKeyValue, fmt.Sprintf("line %d: %s date skipped: %v", t.Line, key, err))
			return
		}
		t.SetField(key, value)
		return
	}

	switch strings.ToLower(key) {
	case "due":
		t.Due = &d
	case "scheduled":
		t.Scheduled = &d
	case "complete", "completion", "done":
		t.Completion = &d
	case "start":
		t.Start = &d
	case "created":
		t.Created = domain.DatePtr(d)
		if s.createdAsStart {
			t.Start = domain.DatePtr(d)
		}
	default:
		t.SetDate(key, d)
	}
}

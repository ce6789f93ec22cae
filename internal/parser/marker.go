package parser

import (
	"regexp"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// maxMarkerPasses bounds the strip loop on pathological input.
const maxMarkerPasses = 20

// MarkerStage strips the trailing marker block: priority, the four date
// markers, recurrence and trailing tags.
//
// Markers may appear in any order, so the stage repeats until a pass
// strips nothing. Trailing tags are re-appended to Visual so TagStage
// collects them together with inline tags.
type MarkerStage struct {
	logger domain.Logger
}

// NewMarkerStage creates a MarkerStage.
func NewMarkerStage(logger domain.Logger) *MarkerStage {
	return &MarkerStage{logger: loggerOrNop(logger)}
}

// Name implements Stage.
func (s *MarkerStage) Name() string { return StageMarker }

// dateMarker pairs a date pattern with the field it fills.
type dateMarker struct {
	re    *regexp.Regexp
	field func(t *domain.Task) **domain.Date
	role  string
}

var dateMarkers = []dateMarker{
	{re: doneDateRe, role: "done", field: func(t *domain.Task) **domain.Date { return &t.Completion }},
	{re: dueDateRe, role: "due", field: func(t *domain.Task) **domain.Date { return &t.Due }},
	{re: scheduledDateRe, role: "scheduled", field: func(t *domain.Task) **domain.Date { return &t.Scheduled }},
	{re: startDateRe, role: "start", field: func(t *domain.Task) **domain.Date { return &t.Start }},
}

// Apply implements Stage.
func (s *MarkerStage) Apply(t *domain.Task) error {
	desc := t.Visual
	var trailingTags []string
	stripped := false
	populated := false

	for pass := 0; pass < maxMarkerPasses; pass++ {
		matched := false

		if m := priorityRe.FindStringSubmatchIndex(desc); m != nil {
			if p, ok := domain.PriorityFromSymbol(desc[m[2]:m[3]]); ok {
				t.Priority = p
			}
			desc = cut(desc, m[0], m[1])
			matched = true
		}

		for _, dm := range dateMarkers {
			m := dm.re.FindStringSubmatchIndex(desc)
			if m == nil {
				continue
			}
			if d := parseMarkerDate(s.logger, t, StageMarker, dm.role, desc[m[2]:m[3]]); d != nil {
				*dm.field(t) = d
				populated = true
			}
			desc = cut(desc, m[0], m[1])
			matched = true
		}

		if m := recurrenceRe.FindStringSubmatchIndex(desc); m != nil {
			t.Recurrence = strings.TrimSpace(desc[m[2]:m[3]])
			desc = cut(desc, m[0], m[1])
			matched = true
		}

		if m := trailingHashTagRe.FindStringIndex(desc); m != nil {
			tag := strings.TrimSpace(desc[m[0]:m[1]])
			trailingTags = append([]string{tag}, trailingTags...)
			desc = cut(desc, m[0], m[1])
			matched = true
		}

		if !matched {
			break
		}
		stripped = true
	}

	if !stripped {
		return nil
	}
	if len(trailingTags) > 0 {
		desc = strings.TrimSpace(desc + " " + strings.Join(trailingTags, " "))
	}
	t.Visual = desc
	t.IsTasksTask = t.IsTasksTask || populated
	return nil
}

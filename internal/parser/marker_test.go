package parser

import (
	"testing"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(text string) *domain.Task {
	return domain.NewTask("notes/a.md", 1, "-", text)
}

func dateString(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func TestMarkerStage_Apply(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		visual      string
		priority    domain.Priority
		due         string
		scheduled   string
		start       string
		completion  string
		recurrence  string
		isTasksTask bool
	}{
		{
			name:        "due priority and trailing tag",
			text:        "Buy milk 📅 2024-01-05 ⏫ #errand",
			visual:      "Buy milk #errand",
			priority:    domain.PriorityHigh,
			due:         "2024-01-05",
			isTasksTask: true,
		},
		{
			name:        "all dates in mixed order",
			text:        "Ship ✅ 2024-01-09 🛫 2024-01-01 ⏳ 2024-01-02 📅 2024-01-08 🔺",
			visual:      "Ship",
			priority:    domain.PriorityHighest,
			due:         "2024-01-08",
			scheduled:   "2024-01-02",
			start:       "2024-01-01",
			completion:  "2024-01-09",
			isTasksTask: true,
		},
		{
			name:        "recurrence",
			text:        "Water plants 🔁 every week 📅 2024-01-05",
			visual:      "Water plants",
			priority:    domain.PriorityNone,
			due:         "2024-01-05",
			recurrence:  "every week",
			isTasksTask: true,
		},
		{
			name:        "alternate emoji and variation selector",
			text:        "Plan 🗓\uFE0F 2024-02-01 ⌛ 2024-01-20 ⏬\uFE0F",
			visual:      "Plan",
			priority:    domain.PriorityLowest,
			due:         "2024-02-01",
			scheduled:   "2024-01-20",
			isTasksTask: true,
		},
		{
			name:     "priority only at end",
			text:     "Read ⏫ chapter",
			visual:   "Read ⏫ chapter",
			priority: domain.PriorityNone,
		},
		{
			name:     "priority without dates",
			text:     "Read chapter 🔽",
			visual:   "Read chapter",
			priority: domain.PriorityLow,
		},
		{
			name:     "several trailing tags keep their order",
			text:     "Call #a #b 🔼 #c",
			visual:   "Call #a #b #c",
			priority: domain.PriorityMedium,
		},
		{
			name:     "no markup",
			text:     "Just  a plain   description",
			visual:   "Just  a plain   description",
			priority: domain.PriorityNone,
		},
		{
			name:     "malformed date is stripped and skipped",
			text:     "Pay rent 📅 2024-02-30",
			visual:   "Pay rent",
			priority: domain.PriorityNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask(tt.text)
			require.NoError(t, NewMarkerStage(nil).Apply(task))

			assert.Equal(t, tt.visual, task.Visual)
			assert.Equal(t, tt.text, task.Text)
			assert.Equal(t, tt.priority, task.Priority)
			assert.Equal(t, tt.due, dateString(task.Due))
			assert.Equal(t, tt.scheduled, dateString(task.Scheduled))
			assert.Equal(t, tt.start, dateString(task.Start))
			assert.Equal(t, tt.completion, dateString(task.Completion))
			assert.Equal(t, tt.recurrence, task.Recurrence)
			assert.Equal(t, tt.isTasksTask, task.IsTasksTask)
		})
	}
}

func TestMarkerStage_Idempotent(t *testing.T) {
	inputs := []string{
		"Buy milk 📅 2024-01-05 ⏫ #errand",
		"Ship ✅ 2024-01-09 🛫 2024-01-01 ⏳ 2024-01-02 📅 2024-01-08 🔺",
		"Water plants 🔁 every week 📅 2024-01-05 #home #garden",
		"Call  mom   #family",
		"#only-tags #here",
		"Plain text",
		"",
	}

	stage := NewMarkerStage(nil)
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := newTask(in)
			require.NoError(t, stage.Apply(once))

			twice := once.Clone()
			require.NoError(t, stage.Apply(twice))

			assert.Equal(t, once, twice)
		})
	}
}

func TestMarkerStage_LogsMalformedDate(t *testing.T) {
	logger := &testutil.MockLogger{}
	task := newTask("Pay rent 📅 2024-02-30")

	require.NoError(t, NewMarkerStage(logger).Apply(task))

	assert.Nil(t, task.Due)
	assert.False(t, task.IsTasksTask)
	require.Len(t, logger.Warnings(), 1)
	assert.Contains(t, logger.Warnings()[0], "due date skipped")
}

func TestMarkerStage_PassLimit(t *testing.T) {
	text := "Loop"
	for i := 0; i < 30; i++ {
		text += " 🔼"
	}
	task := newTask(text)

	require.NoError(t, NewMarkerStage(nil).Apply(task))

	// One priority marker is stripped per pass.
	assert.Equal(t, 10, countRune(task.Visual, '🔼'))
	assert.Equal(t, domain.PriorityMedium, task.Priority)
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagStage_Apply(t *testing.T) {
	tests := []struct {
		name   string
		visual string
		want   string
		tags   []string
	}{
		{name: "leading middle trailing", visual: "#a Buy #b milk #c", want: "Buy milk", tags: []string{"#a", "#b", "#c"}},
		{name: "nested tag", visual: "Fix #work/client-x bug", want: "Fix bug", tags: []string{"#work/client-x"}},
		{name: "duplicates kept", visual: "#x and #x", want: "and", tags: []string{"#x", "#x"}},
		{name: "punctuation ends tag", visual: "Ping #team, then rest", want: "Ping, then rest", tags: []string{"#team"}},
		{name: "inside word is not a tag", visual: "Issue a#1 and C#", want: "Issue a#1 and C#", tags: []string{}},
		{name: "lone hash", visual: "Item # 3", want: "Item # 3", tags: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask(tt.visual)
			require.NoError(t, NewTagStage().Apply(task))

			assert.Equal(t, tt.want, task.Visual)
			assert.Equal(t, tt.tags, task.Tags)
		})
	}
}

func TestReminderStage_Apply(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "Call ⏰ 2024-01-05 09:30 back", want: "Call  back"},
		{text: "Call (@2024-01-05 09:30)", want: "Call"},
		{text: "Call (@2024-01-05)", want: "Call"},
		{text: "Only one ⏰ 2024-01-05 (@2024-01-06)", want: "Only one  (@2024-01-06)"},
		{text: "No reminder", want: "No reminder"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			task := newTask(tt.text)
			require.NoError(t, NewReminderStage().Apply(task))

			assert.Equal(t, tt.want, task.Text)
			assert.Equal(t, tt.text, task.Visual, "visual is untouched")
		})
	}
}

package parser

import (
	"testing"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    TaskLine
		wantErr error
	}{
		{
			name: "open task",
			line: "- [ ] Do something 📅 2024-01-05 #work",
			want: TaskLine{Symbol: "-", Marker: " ", Text: "Do something 📅 2024-01-05 #work"},
		},
		{
			name: "nested done task with block id",
			line: "    * [x] Shipped ^ship-1",
			want: TaskLine{Indent: "    ", Symbol: "*", Marker: "x", Text: "Shipped", BlockID: "ship-1"},
		},
		{
			name: "ordered list in blockquote",
			line: "> 2. [/] Halfway\r\n",
			want: TaskLine{Indent: "> ", Symbol: "2.", Marker: "/", Text: "Halfway"},
		},
		{name: "plain list item", line: "- not a task", wantErr: domain.ErrNotTaskLine},
		{name: "missing space", line: "-[ ] cramped", wantErr: domain.ErrNotTaskLine},
		{name: "blank", line: "   ", wantErr: domain.ErrEmptyLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskLine(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskLine_Task(t *testing.T) {
	tl, err := ParseTaskLine("\t- [X] Filed taxes ^tax")
	require.NoError(t, err)

	task := tl.Task("finance.md", 12)

	assert.Equal(t, "finance.md", task.Path)
	assert.Equal(t, 12, task.Line)
	assert.Equal(t, "Filed taxes", task.Text)
	assert.Equal(t, task.Text, task.Visual)
	assert.Equal(t, "tax", task.BlockID)
	assert.Equal(t, "X", task.StatusMarker)
	assert.True(t, task.Completed)
	assert.True(t, task.Checked)
	assert.Equal(t, 4, tl.Depth())
}

func TestTaskLine_CheckedButNotCompleted(t *testing.T) {
	tl, err := ParseTaskLine("- [-] Dropped")
	require.NoError(t, err)

	assert.True(t, tl.Checked())
	assert.False(t, tl.Completed())
}

func TestListItemDepth(t *testing.T) {
	tests := []struct {
		line  string
		depth int
		ok    bool
	}{
		{line: "- item", depth: 0, ok: true},
		{line: "  * [ ] nested task", depth: 2, ok: true},
		{line: "\t1. ordered", depth: 4, ok: true},
		{line: "-", depth: 0, ok: true},
		{line: "---", ok: false},
		{line: "**bold**", ok: false},
		{line: "plain text", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			depth, ok := ListItemDepth(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.depth, depth)
		})
	}
}

package parser

import (
	"testing"

	"github.com/runoshun/tasks-timeline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStage_Apply(t *testing.T) {
	task := newTask("Review [due::2024-01-05] draft [scheduled:: 2024-01-02] [start::2024-01-01] [completion::2024-01-06] [review::2024-01-04T10:00] [owner::sam]")

	require.NoError(t, NewKeyValueStage(nil, true).Apply(task))

	assert.Equal(t, "Review  draft", task.Visual)
	assert.Equal(t, "2024-01-05", dateString(task.Due))
	assert.Equal(t, "2024-01-02", dateString(task.Scheduled))
	assert.Equal(t, "2024-01-01", dateString(task.Start))
	assert.Equal(t, "2024-01-06", dateString(task.Completion))
	assert.Equal(t, map[string]string{"owner": "sam"}, task.Fields)
	require.Contains(t, task.Dates, "review")
	assert.Equal(t, "2024-01-04", task.Dates["review"].String())
}

func TestKeyValueStage_ReservedKeysNeverInDates(t *testing.T) {
	task := newTask("[Due::2024-01-05] [DONE::2024-01-06] [complete::2024-01-07] [Created::2024-01-01] [start::2024-01-02] [scheduled::2024-01-03]")

	require.NoError(t, NewKeyValueStage(nil, true).Apply(task))

	assert.Empty(t, task.Dates)
	assert.Empty(t, task.Visual)
	assert.Equal(t, "2024-01-05", dateString(task.Due))
	assert.Equal(t, "2024-01-07", dateString(task.Completion))
	assert.Equal(t, "2024-01-01", dateString(task.Created))
	// start follows the last annotation that fills it
	assert.Equal(t, "2024-01-02", dateString(task.Start))
}

func TestKeyValueStage_Created(t *testing.T) {
	tests := []struct {
		name           string
		createdAsStart bool
		wantStart      string
	}{
		{name: "compat mapping", createdAsStart: true, wantStart: "2024-01-01"},
		{name: "own field", createdAsStart: false, wantStart: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask("Plan [created::2024-01-01]")
			require.NoError(t, NewKeyValueStage(nil, tt.createdAsStart).Apply(task))

			assert.Equal(t, "2024-01-01", dateString(task.Created))
			assert.Equal(t, tt.wantStart, dateString(task.Start))
			assert.Empty(t, task.Dates)
		})
	}
}

func TestKeyValueStage_InvalidReservedDate(t *testing.T) {
	logger := &testutil.MockLogger{}
	task := newTask("Pay rent [[due::2024-02-30]] now")

	require.NoError(t, NewKeyValueStage(logger, true).Apply(task))

	assert.Nil(t, task.Due)
	assert.Equal(t, "Pay rent  now", task.Visual)
	assert.Empty(t, task.Fields)
	require.Len(t, logger.Warnings(), 1)
	assert.Contains(t, logger.Warnings()[0], "due date skipped")
}

func TestKeyValueStage_NoAnnotations(t *testing.T) {
	task := newTask("A [link](target) and [[wiki]]")
	require.NoError(t, NewKeyValueStage(nil, true).Apply(task))

	assert.Equal(t, "A [link](target) and [[wiki]]", task.Visual)
	assert.Nil(t, task.Fields)
	assert.Empty(t, task.Dates)
}

func TestIsReservedKey(t *testing.T) {
	for _, key := range []string{"due", "Scheduled", "START", "created", "complete", "completion", "done"} {
		assert.True(t, IsReservedKey(key), key)
	}
	assert.False(t, IsReservedKey("review"))
	assert.False(t, IsReservedKey(""))
}

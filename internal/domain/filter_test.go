package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchesDate(t *testing.T) {
	day := NewDate(2024, time.January, 5)

	tests := []struct {
		task *Task
		name string
		want bool
	}{
		{name: "no dates", task: &Task{}, want: false},
		{name: "due", task: &Task{Due: DatePtr(day)}, want: true},
		{name: "scheduled", task: &Task{Scheduled: DatePtr(day)}, want: true},
		{name: "created", task: &Task{Created: DatePtr(day)}, want: true},
		{name: "completion", task: &Task{Completion: DatePtr(day)}, want: true},
		{name: "start", task: &Task{Start: DatePtr(day)}, want: true},
		{name: "open date", task: &Task{Dates: map[string]Date{"unplanned": day}}, want: true},
		{name: "other day", task: &Task{Due: DatePtr(day.AddDays(1))}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesDate(tt.task, day))
		})
	}
}

func TestMatchesYear(t *testing.T) {
	task := &Task{Due: DatePtr(NewDate(2024, time.December, 31))}
	assert.True(t, MatchesYear(task, 2024))
	assert.False(t, MatchesYear(task, 2025))
}

func TestMatchesDateRange(t *testing.T) {
	from := NewDate(2024, time.January, 1)
	to := NewDate(2024, time.January, 10)

	assert.True(t, MatchesDateRange(&Task{Due: DatePtr(NewDate(2024, time.January, 5))}, from, to))
	assert.False(t, MatchesDateRange(&Task{Due: DatePtr(from)}, from, to), "bounds are exclusive")
	assert.False(t, MatchesDateRange(&Task{Due: DatePtr(to)}, from, to), "bounds are exclusive")
	assert.False(t, MatchesDateRange(&Task{}, from, to))
}

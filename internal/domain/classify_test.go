package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	today := NewDate(2024, time.January, 10)
	yesterday := DatePtr(today.AddDays(-1))
	tomorrow := DatePtr(today.AddDays(1))
	todayPtr := DatePtr(today)

	tests := []struct {
		task *Task
		name string
		want Status
	}{
		{name: "no dates", task: &Task{}, want: StatusUnplanned},
		{name: "no dates completed", task: &Task{Completed: true}, want: StatusDone},
		{name: "created only is unplanned", task: &Task{Created: yesterday}, want: StatusUnplanned},
		{name: "completed ahead of schedule", task: &Task{Completed: true, Scheduled: tomorrow}, want: StatusCancelled},
		{name: "completed ahead of start", task: &Task{Completed: true, Start: tomorrow, Due: yesterday}, want: StatusCancelled},
		{name: "completed on schedule", task: &Task{Completed: true, Scheduled: todayPtr}, want: StatusDone},
		{name: "completed with completion date", task: &Task{Completed: true, Completion: yesterday}, want: StatusDone},
		{name: "due yesterday", task: &Task{Due: yesterday}, want: StatusOverdue},
		{name: "due today", task: &Task{Due: todayPtr}, want: StatusDue},
		{name: "due dominates start", task: &Task{Due: todayPtr, Start: yesterday}, want: StatusDue},
		{name: "start passed", task: &Task{Start: yesterday, Due: tomorrow}, want: StatusProcess},
		{name: "scheduled passed", task: &Task{Scheduled: yesterday}, want: StatusStart},
		{name: "start passed beats scheduled", task: &Task{Start: yesterday, Scheduled: yesterday}, want: StatusProcess},
		{name: "scheduled today", task: &Task{Scheduled: todayPtr}, want: StatusScheduled},
		{name: "future start", task: &Task{Start: tomorrow}, want: StatusScheduled},
		{name: "open date only", task: &Task{Dates: map[string]Date{"review": today}}, want: StatusScheduled},
		{name: "incomplete with completion date", task: &Task{Completion: yesterday}, want: StatusScheduled},
		{name: "marker process ignores dates", task: &Task{StatusMarker: "/", Due: yesterday}, want: StatusProcess},
		{name: "marker overdue", task: &Task{StatusMarker: ">"}, want: StatusOverdue},
		{name: "marker scheduled", task: &Task{StatusMarker: "<", Due: yesterday}, want: StatusScheduled},
		{name: "marker cancelled", task: &Task{StatusMarker: "-", Completed: true}, want: StatusCancelled},
		{name: "marker done", task: &Task{StatusMarker: "x", Completed: true, Scheduled: tomorrow}, want: StatusDone},
		{name: "completed marker clamps to done", task: &Task{StatusMarker: ">", Completed: true}, want: StatusDone},
		{name: "unknown marker uses dates", task: &Task{StatusMarker: "?", Due: yesterday}, want: StatusOverdue},
		{name: "upper X uses dates", task: &Task{StatusMarker: "X", Completed: true, Scheduled: tomorrow}, want: StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.task, today))
		})
	}
}

func TestClassifyStatus_CompletedNeverOpen(t *testing.T) {
	today := NewDate(2024, time.January, 10)
	offsets := []*int{nil, intPtr(-3), intPtr(0), intPtr(3)}
	markers := []string{"", " ", ">", "<", "x", "X", "/", "-", "?"}

	dateAt := func(off *int) *Date {
		if off == nil {
			return nil
		}
		return DatePtr(today.AddDays(*off))
	}

	for _, marker := range markers {
		for _, s := range offsets {
			for _, sc := range offsets {
				for _, d := range offsets {
					task := &Task{
						StatusMarker: marker,
						Completed:    true,
						Start:        dateAt(s),
						Scheduled:    dateAt(sc),
						Due:          dateAt(d),
					}
					got := ClassifyStatus(task, today)
					assert.True(t, got == StatusDone || got == StatusCancelled, "marker %q: got %s", marker, got)

					task.Completed = false
					assert.True(t, ClassifyStatus(task, today).IsValid())
				}
			}
		}
	}
}

func intPtr(v int) *int {
	return &v
}

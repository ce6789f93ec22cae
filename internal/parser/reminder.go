package parser

import (
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// ReminderStage removes one inline reminder (⏰ 2024-01-05 09:00 or
// (@2024-01-05 09:00)) from Text. It is the only stage that edits Text.
// Visual keeps the reminder.
type ReminderStage struct{}

// NewReminderStage creates a ReminderStage.
func NewReminderStage() *ReminderStage {
	return &ReminderStage{}
}

// Name implements Stage.
func (s *ReminderStage) Name() string { return StageReminder }

// Apply implements Stage.
func (s *ReminderStage) Apply(t *domain.Task) error {
	m := reminderRe.FindStringIndex(t.Text)
	if m == nil {
		return nil
	}
	t.Text = strings.TrimSpace(t.Text[:m[0]] + t.Text[m[1]:])
	return nil
}

package domain

// ClassifyStatus derives the lifecycle status of a task.
//
// A recognized status marker decides the status on its own; otherwise the
// dates are inspected in this order, first match wins:
//
//  1. no dates: unplanned, or done when completed
//  2. completed ahead of its start or scheduled day: cancelled
//  3. completed: done
//  4. due before today: overdue
//  5. due today: due
//  6. start before today: process
//  7. scheduled before today: start
//  8. otherwise: scheduled
//
// A completed task is never given an open status.
func ClassifyStatus(t *Task, today Date) Status {
	if s, ok := StatusForMarker(t.StatusMarker); ok {
		if t.Completed && s.IsTodo() {
			return StatusDone
		}
		return s
	}
	return classifyByDates(t, today)
}

func classifyByDates(t *Task, today Date) Status {
	if !t.HasDates() {
		if t.Completed {
			return StatusDone
		}
		return StatusUnplanned
	}

	if t.Completed {
		if isAfter(t.Scheduled, today) || isAfter(t.Start, today) {
			return StatusCancelled
		}
		return StatusDone
	}

	switch {
	case isBefore(t.Due, today):
		return StatusOverdue
	case t.Due != nil && t.Due.Equal(today):
		return StatusDue
	case isBefore(t.Start, today):
		return StatusProcess
	case isBefore(t.Scheduled, today):
		return StatusStart
	default:
		return StatusScheduled
	}
}

func isBefore(d *Date, today Date) bool {
	return d != nil && d.Before(today)
}

func isAfter(d *Date, today Date) bool {
	return d != nil && d.After(today)
}

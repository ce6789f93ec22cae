package domain

import "fmt"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusUnplanned Status = "unplanned" // No planning date at all
	StatusScheduled Status = "scheduled" // Planned for a future day
	StatusStart     Status = "start"     // Scheduled day has passed, ready to start
	StatusProcess   Status = "process"   // Start day has passed, in progress
	StatusDue       Status = "due"       // Due today
	StatusOverdue   Status = "overdue"   // Due day has passed
	StatusDone      Status = "done"      // Completed
	StatusCancelled Status = "cancelled" // Completed ahead of its schedule, or marked cancelled
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusUnplanned,
		StatusScheduled,
		StatusStart,
		StatusProcess,
		StatusDue,
		StatusOverdue,
		StatusDone,
		StatusCancelled,
	}
}

// DefaultStatusOrder returns the status ranking used for order numbering
// when none is configured.
func DefaultStatusOrder() []Status {
	return []Status{
		StatusOverdue,
		StatusDue,
		StatusScheduled,
		StatusStart,
		StatusProcess,
		StatusUnplanned,
		StatusDone,
		StatusCancelled,
	}
}

// markerStatuses maps explicit status marker characters to their status.
var markerStatuses = map[string]Status{
	">": StatusOverdue,
	"<": StatusScheduled,
	"x": StatusDone,
	"/": StatusProcess,
	"-": StatusCancelled,
}

// StatusForMarker returns the status a marker character selects.
// ok is false when the marker is not one of the recognized override characters.
func StatusForMarker(marker string) (Status, bool) {
	s, ok := markerStatuses[marker]
	return s, ok
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsTodo returns true if the status denotes work that is still open.
func (s Status) IsTodo() bool {
	switch s {
	case StatusUnplanned, StatusScheduled, StatusStart, StatusProcess, StatusDue, StatusOverdue:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusUnplanned:
		return "Unplanned"
	case StatusScheduled:
		return "Scheduled"
	case StatusStart:
		return "Ready"
	case StatusProcess:
		return "In Process"
	case StatusDue:
		return "Due Today"
	case StatusOverdue:
		return "Overdue"
	case StatusDone:
		return "Done"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnplanned, StatusScheduled, StatusStart, StatusProcess, StatusDue, StatusOverdue, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

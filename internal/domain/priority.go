package domain

import (
	"fmt"
	"strings"
)

// Priority is the importance label of a task.
type Priority string

const (
	PriorityHighest Priority = "highest"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityNone    Priority = "none"
	PriorityLow     Priority = "low"
	PriorityLowest  Priority = "lowest"
)

// AllPriorities returns all priority values from most to least important.
func AllPriorities() []Priority {
	return []Priority{
		PriorityHighest,
		PriorityHigh,
		PriorityMedium,
		PriorityNone,
		PriorityLow,
		PriorityLowest,
	}
}

var prioritySymbols = map[Priority]string{
	PriorityHighest: "🔺",
	PriorityHigh:    "⏫",
	PriorityMedium:  "🔼",
	PriorityLow:     "🔽",
	PriorityLowest:  "⏬",
}

// PriorityFromSymbol returns the priority a marker emoji denotes.
func PriorityFromSymbol(symbol string) (Priority, bool) {
	symbol = strings.TrimSuffix(symbol, "\uFE0F")
	for p, s := range prioritySymbols {
		if s == symbol {
			return p, true
		}
	}
	return PriorityNone, false
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityNone, nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// Symbol returns the marker emoji, or "" for PriorityNone.
func (p Priority) Symbol() string {
	return prioritySymbols[p]
}

// Label returns a human-readable name.
func (p Priority) Label() string {
	switch p {
	case PriorityHighest:
		return "Highest"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityLowest:
		return "Lowest"
	default:
		return "None"
	}
}

// Rank orders priorities from most (0) to least (5) important.
// The empty priority ranks as PriorityNone.
func (p Priority) Rank() int {
	switch p {
	case PriorityHighest:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 4
	case PriorityLowest:
		return 5
	default:
		return 3
	}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHighest, PriorityHigh, PriorityMedium, PriorityNone, PriorityLow, PriorityLowest:
		return true
	default:
		return false
	}
}

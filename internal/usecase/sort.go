package usecase

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// SortField is one of the fields tasks can be ordered by.
type SortField string

// Sort fields.
const (
	SortByOrder      SortField = "order"
	SortByStatus     SortField = "status"
	SortByPriority   SortField = "priority"
	SortByDue        SortField = "due"
	SortByScheduled  SortField = "scheduled"
	SortByStart      SortField = "start"
	SortByCompletion SortField = "completion"
	SortByCreated    SortField = "created"
	SortByPath       SortField = "path"
	SortByLine       SortField = "line"
	SortByText       SortField = "text"
)

// SortFields returns every accepted sort field.
func SortFields() []SortField {
	return []SortField{
		SortByOrder, SortByStatus, SortByPriority, SortByDue, SortByScheduled, SortByStart,
		SortByCompletion, SortByCreated, SortByPath, SortByLine, SortByText,
	}
}

// SortKey is a field with a direction.
type SortKey struct {
	Field      SortField
	Descending bool
}

// String returns the key as ParseSortKeys accepts it, e.g. "-due".
func (k SortKey) String() string {
	if k.Descending {
		return "-" + string(k.Field)
	}
	return string(k.Field)
}

// ParseSortKeys parses a comma-separated list of sort keys such as "order,-due".
// An empty string yields no keys.
func ParseSortKeys(s string) ([]SortKey, error) {
	var keys []SortKey
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := SortKey{}
		if name, ok := strings.CutPrefix(part, "-"); ok {
			key.Descending = true
			part = name
		} else {
			part = strings.TrimPrefix(part, "+")
		}
		key.Field = SortField(strings.ToLower(part))
		if !slices.Contains(SortFields(), key.Field) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, part)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// SortTasks stably orders tasks by keys, first key first.
// Missing dates sort after present ones in either direction.
func SortTasks(tasks []*domain.Task, keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		for _, k := range keys {
			if c := compareBy(a, b, k); c != 0 {
				return c
			}
		}
		return 0
	})
}

func compareBy(a, b *domain.Task, k SortKey) int {
	var c int
	switch k.Field {
	case SortByDue:
		return compareDates(a.Due, b.Due, k.Descending)
	case SortByScheduled:
		return compareDates(a.Scheduled, b.Scheduled, k.Descending)
	case SortByStart:
		return compareDates(a.Start, b.Start, k.Descending)
	case SortByCompletion:
		return compareDates(a.Completion, b.Completion, k.Descending)
	case SortByCreated:
		return compareDates(a.Created, b.Created, k.Descending)
	case SortByOrder:
		c = cmp.Compare(a.Order, b.Order)
	case SortByStatus:
		c = cmp.Compare(statusRank(a.Status), statusRank(b.Status))
	case SortByPriority:
		c = cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	case SortByPath:
		c = cmp.Compare(a.Path, b.Path)
	case SortByLine:
		c = cmp.Compare(a.Line, b.Line)
	case SortByText:
		c = cmp.Compare(strings.ToLower(a.Visual), strings.ToLower(b.Visual))
	}
	if k.Descending {
		return -c
	}
	return c
}

func compareDates(a, b *domain.Date, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := a.Compare(*b)
	if desc {
		return -c
	}
	return c
}

func statusRank(s domain.Status) int {
	if i := slices.Index(domain.DefaultStatusOrder(), s); i >= 0 {
		return i
	}
	return len(domain.DefaultStatusOrder())
}

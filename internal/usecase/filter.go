package usecase

import (
	"path"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// TaskFilter selects enriched tasks for output.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	On           *domain.Date    // Keep tasks with any date on this day
	From         *domain.Date    // Keep tasks with any date strictly after this day
	To           *domain.Date    // Keep tasks with any date strictly before this day
	IncludeTags  []string        // Keep tasks carrying one of these tags (nested tags match their parent)
	ExcludeTags  []string        // Drop tasks carrying any of these tags
	ExcludePaths []string        // Drop tasks under these vault-relative paths
	HideMarkers  []string        // Drop tasks with these status marker characters
	Statuses     []domain.Status // Keep only these statuses; overrides IncludeDone
	Year         int             // Keep tasks with any date in this year (0 = any)
	HideEmpty    bool            // Drop tasks whose display text is empty
	IncludeDone  bool            // Keep done and cancelled tasks
}

// FilterFromConfig builds a filter from the [filter] section.
func FilterFromConfig(cfg domain.FilterConfig) TaskFilter {
	return TaskFilter{
		IncludeTags:  slices.Clone(cfg.IncludeTags),
		ExcludeTags:  slices.Clone(cfg.ExcludeTags),
		ExcludePaths: slices.Clone(cfg.ExcludePaths),
		HideMarkers:  slices.Clone(cfg.HideMarkers),
		HideEmpty:    cfg.HideEmpty,
		IncludeDone:  cfg.IncludeDone,
	}
}

// Match reports whether t passes every condition of the filter.
func (f TaskFilter) Match(t *domain.Task) bool {
	if f.HideEmpty && strings.TrimSpace(t.Visual) == "" {
		return false
	}
	if slices.Contains(f.HideMarkers, t.StatusMarker) {
		return false
	}
	if len(f.Statuses) > 0 {
		if !slices.Contains(f.Statuses, t.Status) {
			return false
		}
	} else if !f.IncludeDone && t.Status.IsTerminal() {
		return false
	}
	if len(f.IncludeTags) > 0 && !hasAnyTag(t, f.IncludeTags) {
		return false
	}
	if hasAnyTag(t, f.ExcludeTags) {
		return false
	}
	for _, p := range f.ExcludePaths {
		if underPath(t.Path, p) {
			return false
		}
	}
	if f.On != nil && !domain.MatchesDate(t, *f.On) {
		return false
	}
	if f.Year != 0 && !domain.MatchesYear(t, f.Year) {
		return false
	}
	if f.From != nil || f.To != nil {
		from, to := domain.NewDate(1, time.January, 1), domain.NewDate(9999, time.December, 31)
		if f.From != nil {
			from = *f.From
		}
		if f.To != nil {
			to = *f.To
		}
		if !domain.MatchesDateRange(t, from, to) {
			return false
		}
	}
	return true
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []*domain.Task, f TaskFilter) []*domain.Task {
	result := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// normalizeTag lowercases a tag and ensures a leading '#'.
func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || strings.HasPrefix(tag, "#") {
		return tag
	}
	return "#" + tag
}

func hasAnyTag(t *domain.Task, wanted []string) bool {
	for _, w := range wanted {
		w = normalizeTag(w)
		if w == "" {
			continue
		}
		for _, tag := range t.Tags {
			tag = normalizeTag(tag)
			if tag == w || strings.HasPrefix(tag, w+"/") {
				return true
			}
		}
	}
	return false
}

// underPath reports whether p equals dir or lies beneath it.
func underPath(p, dir string) bool {
	dir = strings.Trim(path.Clean("/"+strings.TrimSpace(dir)), "/")
	if dir == "" {
		return false
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// Package domain contains core business entities and interfaces.
package domain

import (
	"maps"
	"slices"
)

// Task is one markdown list item carrying raw and derived task metadata.
// Fields are ordered to minimize memory padding.
type Task struct {
	Start      *Date             `json:"start,omitempty" yaml:"start,omitempty"`
	Scheduled  *Date             `json:"scheduled,omitempty" yaml:"scheduled,omitempty"`
	Due        *Date             `json:"due,omitempty" yaml:"due,omitempty"`
	Completion *Date             `json:"completion,omitempty" yaml:"completion,omitempty"`
	Created    *Date             `json:"created,omitempty" yaml:"created,omitempty"`
	Parent     *int              `json:"parent,omitempty" yaml:"parent,omitempty"` // Line of the parent item (nil = top level)
	Dates      map[string]Date   `json:"dates,omitempty" yaml:"dates,omitempty"`   // Non-reserved date annotations
	Fields     map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"` // Non-date annotations
	FontMatter map[string]string `json:"fontMatter,omitempty" yaml:"fontMatter,omitempty"`
	Symbol     string            `json:"symbol" yaml:"symbol"` // List marker: "-", "*", "1."
	Text       string            `json:"text" yaml:"text"`     // Original line text
	Visual     string            `json:"visual" yaml:"visual"` // Display text with markup stripped
	Path       string            `json:"path" yaml:"path"`
	BlockID    string            `json:"blockId,omitempty" yaml:"blockId,omitempty"`
	Status     Status            `json:"status" yaml:"status"`
	Priority   Priority          `json:"priority" yaml:"priority"`
	Recurrence string            `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	// StatusMarker is the raw checkbox character; recognized values override date-based status.
	StatusMarker string   `json:"statusMarker,omitempty" yaml:"statusMarker,omitempty"`
	Children     []int    `json:"children,omitempty" yaml:"children,omitempty"`
	Tags         []string `json:"tags" yaml:"tags"`
	Outlinks     []Link   `json:"outlinks" yaml:"outlinks"`
	Line         int      `json:"line" yaml:"line"` // 1-based
	LineCount    int      `json:"lineCount" yaml:"lineCount"`
	List         int      `json:"list" yaml:"list"` // Line of the first item of the enclosing list
	Order        int      `json:"order" yaml:"order"`
	Completed    bool     `json:"completed" yaml:"completed"`
	Checked      bool     `json:"checked" yaml:"checked"`
	DailyNote    bool     `json:"dailyNote" yaml:"dailyNote"`
	IsTasksTask  bool     `json:"isTasksTask" yaml:"isTasksTask"`
}

// NewTask returns a record for a raw list item with Visual initialized to text.
func NewTask(path string, line int, symbol, text string) *Task {
	return &Task{
		Path:      path,
		Line:      line,
		LineCount: 1,
		Symbol:    symbol,
		Text:      text,
		Visual:    text,
		Priority:  PriorityNone,
		Tags:      []string{},
		Outlinks:  []Link{},
		Dates:     map[string]Date{},
	}
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Start = clonePtr(t.Start)
	c.Scheduled = clonePtr(t.Scheduled)
	c.Due = clonePtr(t.Due)
	c.Completion = clonePtr(t.Completion)
	c.Created = clonePtr(t.Created)
	c.Parent = clonePtr(t.Parent)
	c.Dates = maps.Clone(t.Dates)
	c.Fields = maps.Clone(t.Fields)
	c.FontMatter = maps.Clone(t.FontMatter)
	c.Children = slices.Clone(t.Children)
	c.Tags = slices.Clone(t.Tags)
	c.Outlinks = slices.Clone(t.Outlinks)
	if c.Dates == nil {
		c.Dates = map[string]Date{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Outlinks == nil {
		c.Outlinks = []Link{}
	}
	return &c
}

// HasDates reports whether any planning or completion date is set.
// Created is not a planning date and is ignored.
func (t *Task) HasDates() bool {
	return t.Start != nil || t.Scheduled != nil || t.Due != nil || t.Completion != nil || len(t.Dates) > 0
}

// IsRoot returns true if the item is not nested under another item.
func (t *Task) IsRoot() bool {
	return t.Parent == nil
}

// SetDate records an open-ended date annotation.
func (t *Task) SetDate(key string, d Date) {
	if t.Dates == nil {
		t.Dates = map[string]Date{}
	}
	t.Dates[key] = d
}

// SetField records a non-date annotation.
func (t *Task) SetField(key, value string) {
	if t.Fields == nil {
		t.Fields = map[string]string{}
	}
	t.Fields[key] = value
}

// AddOutlink appends l unless a link with the same path is already present.
func (t *Task) AddOutlink(l Link) bool {
	for _, existing := range t.Outlinks {
		if existing.Path == l.Path {
			return false
		}
	}
	t.Outlinks = append(t.Outlinks, l)
	return true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

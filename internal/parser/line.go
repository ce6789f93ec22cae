package parser

import (
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// TaskLine is a markdown task list item split into its parts.
type TaskLine struct {
	Indent  string // Leading whitespace and blockquote markers
	Symbol  string // "-", "*", "+", "1." or "1)"
	Marker  string // Checkbox character
	Text    string // Body with a trailing ^block-id removed
	BlockID string
}

// ParseTaskLine splits a markdown line such as "- [ ] Do it ^abc".
func ParseTaskLine(line string) (TaskLine, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return TaskLine{}, domain.ErrEmptyLine
	}

	m := taskLineRe.FindStringSubmatch(line)
	if m == nil {
		return TaskLine{}, domain.ErrNotTaskLine
	}

	tl := TaskLine{
		Indent: m[1],
		Symbol: m[2],
		Marker: m[3],
		Text:   strings.TrimSpace(m[4]),
	}
	if b := blockIDRe.FindStringSubmatchIndex(tl.Text); b != nil {
		tl.BlockID = tl.Text[b[2]:b[3]]
		tl.Text = strings.TrimSpace(tl.Text[:b[0]])
	}
	return tl, nil
}

// ListItemDepth reports whether line is any list item, checkbox or not,
// and returns its nesting depth.
func ListItemDepth(line string) (int, bool) {
	m := listItemRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return 0, false
	}
	return TaskLine{Indent: m[1]}.Depth(), true
}

// Depth returns the nesting depth of the item, counting a tab as four spaces.
func (l TaskLine) Depth() int {
	depth := 0
	for _, r := range l.Indent {
		switch r {
		case '\t':
			depth += 4
		case '>':
		default:
			depth++
		}
	}
	return depth
}

// Completed reports whether the checkbox denotes a finished task.
func (l TaskLine) Completed() bool {
	return l.Marker == "x" || l.Marker == "X"
}

// Checked reports whether the checkbox is not blank.
func (l TaskLine) Checked() bool {
	return l.Marker != " "
}

// Task builds the raw record for this line at path:lineNo.
func (l TaskLine) Task(path string, lineNo int) *domain.Task {
	t := domain.NewTask(path, lineNo, l.Symbol, l.Text)
	t.BlockID = l.BlockID
	t.StatusMarker = l.Marker
	t.Completed = l.Completed()
	t.Checked = l.Checked()
	return t
}

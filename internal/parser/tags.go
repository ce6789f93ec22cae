package parser

import (
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// TagStage moves every #tag from Visual into Tags, left to right.
// Tags are not deduplicated.
type TagStage struct{}

// NewTagStage creates a TagStage.
func NewTagStage() *TagStage {
	return &TagStage{}
}

// Name implements Stage.
func (s *TagStage) Name() string { return StageTags }

// Apply implements Stage.
func (s *TagStage) Apply(t *domain.Task) error {
	desc := t.Visual
	matched := false

	for {
		m := hashTagRe.FindStringIndex(desc)
		if m == nil {
			break
		}
		t.Tags = append(t.Tags, strings.TrimSpace(desc[m[0]:m[1]]))
		desc = desc[:m[0]] + desc[m[1]:]
		matched = true
	}

	if matched {
		t.Visual = strings.TrimSpace(desc)
	}
	return nil
}

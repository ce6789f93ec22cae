package parser

import (
	"github.com/runoshun/tasks-timeline/internal/domain"
)

// DailyNoteStage marks tasks living in daily notes and back-fills their
// missing Start, Scheduled and Created dates from the file name.
type DailyNoteStage struct {
	format *domain.DateFormat
}

// NewDailyNoteStage compiles pattern and creates a DailyNoteStage.
func NewDailyNoteStage(pattern string) (*DailyNoteStage, error) {
	if pattern == "" {
		pattern = domain.DefaultDailyNoteFormat
	}
	format, err := domain.CompileDateFormat(pattern)
	if err != nil {
		return nil, err
	}
	return &DailyNoteStage{format: format}, nil
}

// Name implements Stage.
func (s *DailyNoteStage) Name() string { return StageDailyNote }

// Apply implements Stage.
func (s *DailyNoteStage) Apply(t *domain.Task) error {
	d, err := s.format.Parse(domain.FileTitle(t.Path))
	if err != nil {
		t.DailyNote = false
		return nil
	}

	t.DailyNote = true
	if t.Start == nil {
		t.Start = domain.DatePtr(d)
	}
	if t.Scheduled == nil {
		t.Scheduled = domain.DatePtr(d)
	}
	if t.Created == nil {
		t.Created = domain.DatePtr(d)
	}
	return nil
}

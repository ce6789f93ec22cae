package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/parser"
)

// ParseLineInput contains the parameters for parsing a single line.
type ParseLineInput struct {
	Line string // Markdown list item, e.g. "- [ ] Buy milk 📅 2024-01-05"
	Path string // File the line belongs to; drives daily note inference
}

// ParseLineOutput contains the enriched task.
type ParseLineOutput struct {
	Task *domain.Task
}

// ParseLine enriches one markdown task line without touching the vault.
type ParseLine struct {
	pipeline *Pipeline
}

// NewParseLine creates a new ParseLine use case.
func NewParseLine(pipeline *Pipeline) *ParseLine {
	return &ParseLine{pipeline: pipeline}
}

// Execute parses and enriches the line.
// A line that is not a list item checkbox returns domain.ErrNotTaskLine.
func (uc *ParseLine) Execute(ctx context.Context, in ParseLineInput) (*ParseLineOutput, error) {
	tl, err := parser.ParseTaskLine(in.Line)
	if err != nil {
		return nil, err
	}

	result, err := uc.pipeline.Run(ctx, []*domain.Task{tl.Task(in.Path, 1)})
	if err != nil {
		return nil, err
	}
	if result.Err != nil {
		return nil, fmt.Errorf("parse line: %w", result.Err)
	}
	return &ParseLineOutput{Task: result.Tasks[0]}, nil
}

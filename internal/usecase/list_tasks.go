package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Sort   string     // Sort keys, e.g. "order,-due" (empty = harvest order)
	Filter TaskFilter // Output filter applied after enrichment
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks     []*domain.Task // Enriched, filtered and sorted tasks
	Dropped   []*RecordError // Records that failed in the pipeline
	Warnings  []string       // Non-fatal problems, e.g. an unusable sort
	Harvested int            // Number of records read from the source
}

// ListTasks harvests, enriches, filters and sorts tasks.
type ListTasks struct {
	source   domain.TaskSource
	pipeline *Pipeline
	logger   domain.Logger
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(source domain.TaskSource, pipeline *Pipeline, logger domain.Logger) *ListTasks {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ListTasks{
		source:   source,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Execute runs one harvest and pipeline pass.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	raw, err := uc.source.Harvest(ctx)
	if err != nil {
		return nil, fmt.Errorf("harvest tasks: %w", err)
	}

	result, err := uc.pipeline.Run(ctx, raw)
	if err != nil {
		return nil, err
	}

	out := &ListTasksOutput{
		Tasks:     FilterTasks(result.Tasks, in.Filter),
		Dropped:   result.Errors,
		Harvested: len(raw),
	}

	// An unusable sort keeps the harvest order.
	keys, err := ParseSortKeys(in.Sort)
	if err != nil {
		msg := fmt.Sprintf("sort skipped: %v", err)
		uc.logger.Warn("global", "sort", msg)
		out.Warnings = append(out.Warnings, msg)
	} else {
		SortTasks(out.Tasks, keys)
	}

	for _, e := range result.Errors {
		out.Warnings = append(out.Warnings, e.Error())
	}
	return out, nil
}

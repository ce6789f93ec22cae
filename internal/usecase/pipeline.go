// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/parser"
	"golang.org/x/sync/errgroup"
)

// PipelineOptions configures the enrichment pipeline.
// Fields are ordered to minimize memory padding.
type PipelineOptions struct {
	DailyNoteFormat string          // moment-style daily note pattern ("" = YYYY-MM-DD)
	StatusOrder     []domain.Status // Status ranking for order numbering (empty = skip)
	Workers         int             // Concurrent records (0 = GOMAXPROCS)
	Forward         bool            // Carry unplanned, undated done and overdue tasks onto today
	Links           bool            // Run the link extractor after the marker stage
	CreatedAsStart  bool            // Route [created::] annotations to Start as well
}

// PipelineOptionsFromConfig builds pipeline options from the [pipeline] section.
func PipelineOptionsFromConfig(cfg domain.PipelineConfig) PipelineOptions {
	return PipelineOptions{
		DailyNoteFormat: cfg.DailyNoteFormat,
		StatusOrder:     slices.Clone(cfg.StatusOrder),
		Workers:         cfg.Workers,
		Forward:         cfg.Forward,
		Links:           cfg.Links,
		CreatedAsStart:  cfg.CreatedAsStart,
	}
}

// RecordError reports a record dropped from a pipeline run.
type RecordError struct {
	Err   error
	Path  string
	Stage string
	Line  int
}

// Error implements error.
func (e *RecordError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// PipelineResult is the outcome of one pipeline run.
type PipelineResult struct {
	Err    error          // errors.Join of Errors, nil when every record succeeded
	Tasks  []*domain.Task // Enriched records in input order, failed records omitted
	Errors []*RecordError // One entry per dropped record, in input order
}

// Pipeline enriches raw task records through a fixed sequence of stages.
type Pipeline struct {
	clock   domain.Clock
	logger  domain.Logger
	stages  []parser.Stage
	order   map[domain.Status]int
	opts    PipelineOptions
	workers int
}

// NewPipeline builds a pipeline from opts.
// It returns an error wrapping domain.ErrInvalidDateFormat for an unusable
// daily note pattern, and domain.ErrInvalidStatus for an unknown status in
// the order list.
func NewPipeline(opts PipelineOptions, clock domain.Clock, logger domain.Logger) (*Pipeline, error) {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}

	opts.StatusOrder = slices.Clone(opts.StatusOrder)
	order := make(map[domain.Status]int, len(opts.StatusOrder))
	for i, s := range opts.StatusOrder {
		if !s.IsValid() {
			return nil, fmt.Errorf("status order: %w: %q", domain.ErrInvalidStatus, s)
		}
		if _, dup := order[s]; !dup {
			order[s] = i + 1
		}
	}

	dailyNote, err := parser.NewDailyNoteStage(opts.DailyNoteFormat)
	if err != nil {
		return nil, err
	}

	stages := []parser.Stage{parser.NewMarkerStage(logger)}
	if opts.Links {
		stages = append(stages, parser.NewLinkStage())
	}
	stages = append(stages,
		parser.NewKeyValueStage(logger, opts.CreatedAsStart),
		dailyNote,
		parser.NewTagStage(),
		parser.NewReminderStage(),
	)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pipeline{
		clock:   clock,
		logger:  logger,
		stages:  stages,
		order:   order,
		opts:    opts,
		workers: workers,
	}, nil
}

// StageNames returns the names of the stages in the order they run.
func (p *Pipeline) StageNames() []string {
	stages := p.stagesFor(domain.Date{})
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}

// Run enriches a copy of each record. The input records are not modified.
// A record that fails or panics in any stage is dropped and reported in the
// result; the rest of the batch still completes.
// Run returns ctx.Err() if the context is cancelled before all records are processed.
func (p *Pipeline) Run(ctx context.Context, tasks []*domain.Task) (*PipelineResult, error) {
	stages := p.stagesFor(domain.Today(p.clock))

	out := make([]*domain.Task, len(tasks))
	errs := make([]*RecordError, len(tasks))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			out[i], errs[i] = p.runRecord(task, stages)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &PipelineResult{Tasks: make([]*domain.Task, 0, len(tasks))}
	for i := range tasks {
		if errs[i] != nil {
			result.Errors = append(result.Errors, errs[i])
			continue
		}
		result.Tasks = append(result.Tasks, out[i])
	}
	if len(result.Errors) > 0 {
		joined := make([]error, len(result.Errors))
		for i, e := range result.Errors {
			joined[i] = e
		}
		result.Err = errors.Join(joined...)
	}
	return result, nil
}

// runRecord threads one cloned record through every stage.
func (p *Pipeline) runRecord(task *domain.Task, stages []parser.Stage) (result *domain.Task, recErr *RecordError) {
	if task == nil {
		return nil, &RecordError{Stage: "input", Err: errors.New("nil record")}
	}

	t := task.Clone()
	current := "clone"
	defer func() {
		if r := recover(); r != nil {
			result = nil
			recErr = &RecordError{Path: task.Path, Line: task.Line, Stage: current, Err: fmt.Errorf("panic: %v", r)}
		}
		if recErr != nil {
			p.logger.Error(recErr.Path, recErr.Stage, fmt.Sprintf("line %d: record dropped: %v", recErr.Line, recErr.Err))
		}
	}()

	for _, s := range stages {
		current = s.Name()
		if err := s.Apply(t); err != nil {
			return nil, &RecordError{Path: task.Path, Line: task.Line, Stage: current, Err: err}
		}
	}
	return t, nil
}

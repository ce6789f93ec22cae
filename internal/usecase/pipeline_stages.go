package usecase

import (
	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/parser"
)

// Names of the stages that depend on the run's current day.
const (
	stageClassify = "classify"
	stageForward  = "forward"
	stageOrder    = "order"
)

// Synthetic date keys written by the forward stage.
const (
	ForwardUnplannedKey = "unplanned"
	ForwardUndatedKey   = "done-unplanned"
	ForwardOverdueKey   = "overdue"
)

// stagesFor returns the field stages followed by the day-dependent stages for today.
func (p *Pipeline) stagesFor(today domain.Date) []parser.Stage {
	stages := make([]parser.Stage, 0, len(p.stages)+3)
	stages = append(stages, p.stages...)
	stages = append(stages, classifyStage{today: today})
	if p.opts.Forward {
		stages = append(stages, forwardStage{today: today})
	}
	if len(p.order) > 0 {
		stages = append(stages, orderStage{order: p.order})
	}
	return stages
}

type classifyStage struct {
	today domain.Date
}

func (classifyStage) Name() string { return stageClassify }

func (s classifyStage) Apply(t *domain.Task) error {
	t.Status = domain.ClassifyStatus(t, s.today)
	return nil
}

// forwardStage stamps tasks with today so they surface in a today view.
// Real planning dates are left alone.
type forwardStage struct {
	today domain.Date
}

func (forwardStage) Name() string { return stageForward }

func (s forwardStage) Apply(t *domain.Task) error {
	switch {
	case t.Status == domain.StatusUnplanned:
		t.SetDate(ForwardUnplannedKey, s.today)
	case t.Status == domain.StatusDone && !t.HasDates():
		t.SetDate(ForwardUndatedKey, s.today)
	case t.Status == domain.StatusOverdue && !domain.MatchesDate(t, s.today):
		t.SetDate(ForwardOverdueKey, s.today)
	}
	return nil
}

type orderStage struct {
	order map[domain.Status]int
}

func (orderStage) Name() string { return stageOrder }

func (s orderStage) Apply(t *domain.Task) error {
	if n, ok := s.order[t.Status]; ok {
		t.Order = n
	}
	return nil
}

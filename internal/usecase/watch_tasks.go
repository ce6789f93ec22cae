package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// WatchTasksInput contains the parameters for watching tasks.
type WatchTasksInput struct {
	OnResult func(*ListTasksOutput) // Called after every completed run
	OnError  func(error)            // Called for failed runs and watcher errors (optional)
	List     ListTasksInput
}

// WatchTasks reruns ListTasks whenever the vault changes.
// Runs never overlap: changes arriving during a run collapse into one rerun.
type WatchTasks struct {
	list     *ListTasks
	notifier domain.ChangeNotifier
	logger   domain.Logger
}

// NewWatchTasks creates a new WatchTasks use case.
func NewWatchTasks(list *ListTasks, notifier domain.ChangeNotifier, logger domain.Logger) *WatchTasks {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &WatchTasks{
		list:     list,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute runs once immediately and then after each change until ctx is
// cancelled or the notifier closes. It closes the notifier on return.
func (uc *WatchTasks) Execute(ctx context.Context, in WatchTasksInput) error {
	if in.OnResult == nil {
		return errors.New("watch: OnResult is required")
	}
	defer func() { _ = uc.notifier.Close() }()

	// pending holds at most one queued rerun.
	pending := make(chan struct{}, 1)
	pending <- struct{}{}
	signal := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		changes, errs := uc.notifier.Changes(), uc.notifier.Errors()
		for changes != nil || errs != nil {
			select {
			case <-done:
				return
			case _, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
				signal()
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				uc.logger.Warn("global", "watch", err.Error())
				uc.report(in, err)
			}
		}
		// Notifier closed: wake the loop so it can exit.
		close(pending)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-pending:
			if !ok {
				return nil
			}
			out, err := uc.list.Execute(ctx, in.List)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				uc.logger.Error("global", "watch", err.Error())
				uc.report(in, err)
				continue
			}
			in.OnResult(out)
		}
	}
}

func (uc *WatchTasks) report(in WatchTasksInput, err error) {
	if in.OnError != nil {
		in.OnError(err)
	}
}

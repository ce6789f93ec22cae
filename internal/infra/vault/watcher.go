package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/runoshun/tasks-timeline/internal/domain"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Ensure Watcher implements domain.ChangeNotifier.
var _ domain.ChangeNotifier = (*Watcher)(nil)

// Watcher reports markdown changes anywhere below the vault root.
// Fields are ordered to minimize memory padding.
type Watcher struct {
	fs        *fsnotify.Watcher
	harvester *Harvester
	logger    domain.Logger
	changes   chan struct{}
	errs      chan error
	done      chan struct{}
	wg        sync.WaitGroup
	debounce  time.Duration
	closeOnce sync.Once
}

// NewWatcher starts watching every directory the harvester would walk.
// A non-positive debounce uses DefaultDebounce.
func NewWatcher(h *Harvester, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	info, err := os.Stat(h.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", h.root, domain.ErrVaultNotFound)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fs:        fw,
		harvester: h,
		logger:    h.logger,
		changes:   make(chan struct{}, 1),
		errs:      make(chan error, 8),
		done:      make(chan struct{}),
		debounce:  debounce,
	}
	if err := w.addTree(h.root); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes returns the coalesced change signal channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors returns the watcher error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and closes both channels. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.changes)
		close(w.errs)
	})
	return err
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.harvester.root && w.harvester.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether ev can change the harvest result.
// Newly created directories are added to the watch set.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.harvester.skipDir(filepath.Base(ev.Name)) {
				return false
			}
			if err := w.addTree(ev.Name); err != nil {
				w.sendErr(err)
			}
			return true
		}
	}
	if domain.IsMarkdownPath(ev.Name) {
		return true
	}
	// A removed or renamed directory takes its notes with it.
	return (ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)) && filepath.Ext(ev.Name) == ""
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errs <- err:
	default:
		w.logger.Warn("global", "watch", fmt.Sprintf("dropped watcher error: %v", err))
	}
}

package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/keyloom/pkg/core"
)

// debounceWindow coalesces the burst of events an editor (or an atomic
// rename) produces for a single save.
const debounceWindow = 50 * time.Millisecond

// Watch implements core.Watchable. It watches the parent directories of
// origins, since atomic saves replace the file itself, and emits one event
// per origin per burst of changes. The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context, origins []string) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	targets := make(map[string]struct{}, len(origins))
	dirs := make(map[string]struct{})
	for _, origin := range origins {
		abs, err := filepath.Abs(origin)
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	events := make(chan core.Event, r.config.EventBuffer)
	w := &watchWorker{
		repo:    r,
		watcher: watcher,
		targets: targets,
		events:  events,
		pending: make(map[string]core.EventType),
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watcher panic: %w", err))
		} else {
			r.config.Logger.Error("watcher panic", "error", err)
		}
	}))

	return events, nil
}

type watchWorker struct {
	repo    *Repository
	watcher *fsnotify.Watcher
	targets map[string]struct{}
	events  chan<- core.Event
	pending map[string]core.EventType
}

// run is the event loop. Debouncing happens on this goroutine, so the
// channel is only ever written and closed from here.
func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if w.accept(event) {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.config.Logger.Error("fsnotify error", "error", err)
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(err)
			}

		case <-timer.C:
			if !w.flush(ctx) {
				return nil
			}
		}
	}
}

// accept records event if it concerns a watched origin.
func (w *watchWorker) accept(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if strings.HasPrefix(filepath.Base(name), TempFilePrefix) {
		return false
	}
	if _, ok := w.targets[name]; !ok {
		return false
	}

	w.repo.config.Logger.Debug("event received", "name", name, "op", event.Op.String())

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.pending[name] = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.pending[name] = core.EventDelete
	default:
		return false
	}
	return true
}

// flush emits the pending events. It reports false when ctx ended first.
func (w *watchWorker) flush(ctx context.Context) bool {
	now := time.Now().Unix()
	for origin, typ := range w.pending {
		delete(w.pending, origin)
		select {
		case w.events <- core.Event{Type: typ, Origin: origin, Timestamp: now}:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

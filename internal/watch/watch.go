// Package watch re-infers a dataset's state whenever its file changes on
// disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartframe/internal/logging"
	"github.com/mesh-intelligence/smartframe/internal/session"
	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// Default timings. Editors and exporters often write a file in several
// steps; events are batched until the file has been quiet for Debounce.
const (
	DefaultDebounce = 300 * time.Millisecond
	tickInterval    = 100 * time.Millisecond
)

// LoadFunc reads the dataset at path.
type LoadFunc func(path string) (*frame.Frame, error)

// Stats counts watcher activity.
type Stats struct {
	Events  int
	Reloads int
	Changes int
	Errors  int
}

// Watcher reloads one dataset file into a Session. The Session is owned by
// the watcher while Run is active.
type Watcher struct {
	path     string
	load     LoadFunc
	sess     *session.Session
	logger   *zap.Logger
	debounce time.Duration

	// OnState is called with the new state after each state change.
	OnState func(types.State)

	pending time.Time
	stats   Stats
}

// New returns a watcher for the dataset at path.
func New(path string, load LoadFunc, sess *session.Session, logger *zap.Logger) *Watcher {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Watcher{
		path:     path,
		load:     load,
		sess:     sess,
		logger:   logging.OrNop(logger).With(zap.String("path", path)),
		debounce: DefaultDebounce,
	}
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Stats returns the activity counters.
func (w *Watcher) Stats() Stats { return w.stats }

// Run watches the file's directory until ctx is cancelled. Watching the
// directory rather than the file survives editors that replace the file on
// save.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching dataset")

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, time.Now())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.stats.Errors++
			w.logger.Error("watcher error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

// handleEvent records a pending reload for writes to the watched file and
// reports whether the event was accepted.
func (w *Watcher) handleEvent(event fsnotify.Event, now time.Time) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	w.stats.Events++
	w.pending = now
	return true
}

// flush reloads the file once the pending event has settled.
func (w *Watcher) flush(now time.Time) {
	if w.pending.IsZero() || now.Sub(w.pending) < w.debounce {
		return
	}
	w.pending = time.Time{}
	if err := w.reload(); err != nil {
		w.stats.Errors++
		w.logger.Warn("reload failed", zap.Error(err))
	}
}

func (w *Watcher) reload() error {
	f, err := w.load(w.path)
	if err != nil {
		return err
	}
	w.stats.Reloads++
	w.sess.SetFrame(f)
	state, changed := w.sess.Refresh()
	if !changed {
		return nil
	}
	w.stats.Changes++
	w.logger.Info("dataset state changed", zap.Stringer("state", state))
	if w.OnState != nil {
		w.OnState(state)
	}
	return nil
}

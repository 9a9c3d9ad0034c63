// Package watch drives the sync loop: poll the process table for the
// debuggee, resolve its directory, and hand it to the symbol path
// service. One goroutine, one ticker, no retries beyond the next poll.
package watch

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"sympath/internal/model"
	"sympath/internal/sympath"
)

// Locator is the process-discovery dependency (internal/proc.Directory
// in production).
type Locator interface {
	PathOf(name string) (string, bool)
}

// Updater is the symbol path dependency (internal/sympath.Service in
// production). The service is not internally synchronized, so the
// watcher is its only caller once Run starts; everyone else sees state
// through the Report snapshots the watcher publishes.
type Updater interface {
	UpdateApplicationPath(dir string) error
	Report() sympath.Report
}

// EventKind classifies what a poll did.
type EventKind string

const (
	// EventSynced: the debuggee was found and the variable now points
	// at its directory.
	EventSynced EventKind = "synced"
	// EventUnchanged: the debuggee is where it was last poll; nothing
	// was written.
	EventUnchanged EventKind = "unchanged"
	// EventLost: the debuggee was running last poll and is gone now.
	// The variable keeps its last value; symbols for a dead process
	// are still worth finding.
	EventLost EventKind = "lost"
	// EventIdle: no debuggee, same as last poll.
	EventIdle EventKind = "idle"
	// EventFailed: the update was rejected (directory vanished between
	// resolution and validation, or the store refused the write).
	EventFailed EventKind = "failed"
)

// Event is one poll's outcome, consumed by the TUI and the daemon log.
// Report is the state snapshot taken right after the poll, so consumers
// never have to touch the service themselves.
type Event struct {
	Kind   EventKind
	Path   string // executable path of the debuggee, when found
	Dir    string // its directory, when found
	Err    error  // set for EventFailed
	At     time.Time
	Report sympath.Report
}

// Watcher polls for the configured application and keeps the service in
// sync. Methods are driven from its own Run goroutine except Pause,
// Resume and Events, which are safe from anywhere.
type Watcher struct {
	settings model.Settings
	locator  Locator
	updater  Updater
	clock    clockwork.Clock
	logger   *zap.Logger

	paused  atomic.Bool
	events  chan Event
	latest  atomic.Pointer[Event]
	lastDir string
	tracked bool
}

// New builds a Watcher. Pass clockwork.NewRealClock outside of tests.
func New(settings model.Settings, locator Locator, updater Updater, clock clockwork.Clock, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		settings: settings.Normalized(),
		locator:  locator,
		updater:  updater,
		clock:    clock,
		logger:   logger,
		events:   make(chan Event, 16),
	}
}

// Events exposes the poll outcomes. The channel is buffered and sends
// are dropped when nobody drains it, so a slow or absent consumer never
// stalls the loop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Pause suspends polling without stopping Run.
func (w *Watcher) Pause() { w.paused.Store(true) }

// Resume undoes Pause.
func (w *Watcher) Resume() { w.paused.Store(false) }

// Paused reports whether polling is suspended.
func (w *Watcher) Paused() bool { return w.paused.Load() }

// Latest returns the most recent poll outcome, and false before the
// first poll completes. Safe from any goroutine.
func (w *Watcher) Latest() (Event, bool) {
	ev := w.latest.Load()
	if ev == nil {
		return Event{}, false
	}
	return *ev, true
}

// Run polls until ctx is cancelled. The first poll happens immediately,
// not one interval in.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info("watcher started",
		zap.String("application", w.settings.Application),
		zap.Duration("interval", w.settings.PollInterval))

	ticker := w.clock.NewTicker(w.settings.PollInterval)
	defer ticker.Stop()

	w.poll()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return
		case <-ticker.Chan():
			if w.paused.Load() {
				continue
			}
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	ev := w.SyncOnce()
	ev.Report = w.updater.Report()
	w.publish(ev)
}

// SyncOnce performs a single discover-and-update pass and reports what
// happened. --once mode calls this directly, without Run.
func (w *Watcher) SyncOnce() Event {
	ev := Event{At: w.clock.Now()}

	path, ok := w.locator.PathOf(w.settings.Application)
	if !ok {
		if w.tracked {
			w.tracked = false
			ev.Kind = EventLost
			return ev
		}
		ev.Kind = EventIdle
		return ev
	}

	ev.Path = path
	ev.Dir = filepath.Dir(path)

	if w.tracked && ev.Dir == w.lastDir {
		ev.Kind = EventUnchanged
		return ev
	}

	if err := w.updater.UpdateApplicationPath(ev.Dir); err != nil {
		ev.Kind = EventFailed
		ev.Err = err
		return ev
	}

	w.lastDir = ev.Dir
	w.tracked = true
	ev.Kind = EventSynced
	return ev
}

func (w *Watcher) publish(ev Event) {
	switch ev.Kind {
	case EventSynced:
		w.logger.Info("symbol path synchronized",
			zap.String("executable", ev.Path), zap.String("dir", ev.Dir))
	case EventLost:
		w.logger.Info("debuggee exited", zap.String("application", w.settings.Application))
	case EventFailed:
		w.logger.Warn("sync failed", zap.String("dir", ev.Dir), zap.Error(ev.Err))
	}

	w.latest.Store(&ev)
	select {
	case w.events <- ev:
	default:
	}
}

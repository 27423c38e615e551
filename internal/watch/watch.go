// Package watch delivers filesystem change notifications for a single
// directory through a bounded channel.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

// Monitor states.
const (
	StateIdle int32 = iota
	StateWatching
	StateStopped
)

// eventBuffer bounds undelivered events per monitor; when full, further
// events are dropped rather than blocking the notification source.
const eventBuffer = 256

// Monitor watches one directory and streams change events. A monitor runs
// at most one watch in its lifetime; after Stop it cannot be restarted.
type Monitor struct {
	id      string
	path    string
	state   atomic.Int32
	events  chan types.WatchEvent
	done    chan struct{}
	logger  *zap.Logger
	dropped atomic.Int64
	stopOne sync.Once

	mu      sync.Mutex // guards watcher across Start/Stop
	watcher *fsnotify.Watcher
}

// NewMonitor creates a monitor for the directory at path. The directory
// must exist.
func NewMonitor(path string, logger *zap.Logger) (*Monitor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fserr.FromOS("watch "+path, err)
	}
	if !info.IsDir() {
		return nil, fserr.Newf(fserr.NotADirectory, "%s is not a directory", path)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		id:     uuid.New().String(),
		path:   path,
		events: make(chan types.WatchEvent, eventBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}, nil
}

// ID returns the monitor's identifier.
func (m *Monitor) ID() string { return m.id }

// Path returns the watched directory.
func (m *Monitor) Path() string { return m.path }

// State returns the current lifecycle state.
func (m *Monitor) State() int32 { return m.state.Load() }

// Events returns the delivery channel. It is closed after Stop, once no
// further events will be sent.
func (m *Monitor) Events() <-chan types.WatchEvent { return m.events }

// Dropped reports how many events were discarded because the delivery
// channel was full.
func (m *Monitor) Dropped() int64 { return m.dropped.Load() }

// Start begins watching. It fails when the monitor is not idle.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.CompareAndSwap(StateIdle, StateWatching) {
		return fserr.New(fserr.InvalidArgument, "monitor already started")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.state.Store(StateStopped)
		return fserr.Wrap(fserr.IOFailure, "notification backend unavailable", err)
	}
	if err := watcher.Add(m.path); err != nil {
		watcher.Close()
		m.state.Store(StateStopped)
		return fserr.Wrap(fserr.IOFailure, "cannot watch "+m.path, err)
	}
	m.watcher = watcher
	go m.loop()
	return nil
}

// Stop ends the watch. It is safe to call from any goroutine and more
// than once; later calls are no-ops. Stopping a monitor that never
// started still closes the event channel.
func (m *Monitor) Stop() {
	m.stopOne.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		wasIdle := m.state.Swap(StateStopped) == StateIdle
		close(m.done)
		if m.watcher != nil {
			m.watcher.Close()
		}
		if wasIdle {
			close(m.events)
		}
	})
}

func (m *Monitor) loop() {
	defer close(m.events)
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.deliver(event)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("watch error", zap.String("path", m.path), zap.Error(err))
		}
	}
}

func (m *Monitor) deliver(event fsnotify.Event) {
	action, ok := mapAction(event.Op)
	if !ok {
		return
	}
	name := event.Name
	if rel, err := filepath.Rel(m.path, event.Name); err == nil {
		name = rel
	}
	we := types.WatchEvent{
		FileName: name,
		Action:   action,
	}
	select {
	case m.events <- we:
	case <-m.done:
	default:
		m.dropped.Add(1)
	}
}

// mapAction translates notification flags into the wire taxonomy. Renames
// surface the departure side; the arrival appears as a create.
func mapAction(op fsnotify.Op) (types.WatchAction, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return types.ActionCreated, true
	case op.Has(fsnotify.Remove):
		return types.ActionDeleted, true
	case op.Has(fsnotify.Write):
		return types.ActionModified, true
	case op.Has(fsnotify.Rename):
		return types.ActionMovedFrom, true
	case op.Has(fsnotify.Chmod):
		return types.ActionAttributes, true
	default:
		return "", false
	}
}

package watch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/fserr"
)

// Manager tracks live monitors by identifier. maxMonitors caps how many
// may run at once; zero means no limit.
type Manager struct {
	mu          sync.RWMutex
	monitors    map[string]*Monitor
	maxMonitors int
	logger      *zap.Logger
}

// NewManager creates an empty monitor registry.
func NewManager(maxMonitors int, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		monitors:    make(map[string]*Monitor),
		maxMonitors: maxMonitors,
		logger:      logger,
	}
}

// Open creates and starts a monitor for path, registering it under its ID.
// It fails with Unavailable when the monitor cap is reached.
func (mgr *Manager) Open(path string) (*Monitor, error) {
	mgr.mu.Lock()
	if mgr.maxMonitors > 0 && len(mgr.monitors) >= mgr.maxMonitors {
		mgr.mu.Unlock()
		return nil, fserr.Newf(fserr.Unavailable, "monitor limit reached (%d)", mgr.maxMonitors)
	}
	mgr.mu.Unlock()

	m, err := NewMonitor(path, mgr.logger)
	if err != nil {
		return nil, err
	}
	if err := m.Start(); err != nil {
		return nil, err
	}
	mgr.mu.Lock()
	mgr.monitors[m.ID()] = m
	mgr.mu.Unlock()
	mgr.logger.Info("monitor started", zap.String("id", m.ID()), zap.String("path", path))
	return m, nil
}

// Get returns the monitor registered under id.
func (mgr *Manager) Get(id string) (*Monitor, error) {
	mgr.mu.RLock()
	m, ok := mgr.monitors[id]
	mgr.mu.RUnlock()
	if !ok {
		return nil, fserr.Newf(fserr.NotFound, "no monitor %s", id)
	}
	return m, nil
}

// Close stops the monitor registered under id and removes it.
func (mgr *Manager) Close(id string) error {
	mgr.mu.Lock()
	m, ok := mgr.monitors[id]
	if ok {
		delete(mgr.monitors, id)
	}
	mgr.mu.Unlock()
	if !ok {
		return fserr.Newf(fserr.NotFound, "no monitor %s", id)
	}
	m.Stop()
	mgr.logger.Info("monitor stopped", zap.String("id", id))
	return nil
}

// CloseAll stops every registered monitor.
func (mgr *Manager) CloseAll() {
	mgr.mu.Lock()
	monitors := mgr.monitors
	mgr.monitors = make(map[string]*Monitor)
	mgr.mu.Unlock()
	for _, m := range monitors {
		m.Stop()
	}
}

// Count returns the number of live monitors.
func (mgr *Manager) Count() int {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return len(mgr.monitors)
}

package dispatch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/fserr"
)

// Manager owns sessions keyed by their identifiers. Callers that present
// no session ID get a dedicated fresh session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	root     string
	logger   *zap.Logger
}

// NewManager creates a session registry. root is the starting directory
// for new sessions; empty means the process working directory.
func NewManager(root string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		root:     root,
		logger:   logger,
	}
}

// Create starts a new session and registers it.
func (m *Manager) Create() (*Session, error) {
	s, err := NewSession(m.root, m.logger)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	m.logger.Info("session created", zap.String("id", s.ID()), zap.String("path", s.Current()))
	return s, nil
}

// Get returns the session registered under id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fserr.Newf(fserr.NotFound, "no session %s", id)
	}
	return s, nil
}

// GetOrCreate returns the session under id, or a fresh one when id is
// empty.
func (m *Manager) GetOrCreate(id string) (*Session, error) {
	if id == "" {
		return m.Create()
	}
	return m.Get(id)
}

// Remove drops the session registered under id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Package dispatch routes textual commands to the filesystem engine and
// holds per-session navigation state.
package dispatch

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/paths"
)

// historyCap bounds the navigation history per session.
const historyCap = 100

// Session is one navigation context: a current directory plus the visit
// history that back/forward move through. All access goes through the
// mutex so concurrent dispatches on one session are safe.
type Session struct {
	mu      sync.Mutex
	id      string
	current string
	history []string
	histIdx int
	logger  *zap.Logger
}

// NewSession creates a session rooted at start, or the process working
// directory when start is empty.
func NewSession(start string, logger *zap.Logger) (*Session, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fserr.Wrap(fserr.IOFailure, "working directory unavailable", err)
		}
		start = wd
	}
	resolved, err := paths.Canonicalize(start)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fserr.FromOS("session start "+resolved, err)
	}
	if !info.IsDir() {
		return nil, fserr.Newf(fserr.NotADirectory, "%s is not a directory", resolved)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		id:      uuid.New().String(),
		current: resolved,
		history: []string{resolved},
		histIdx: 0,
		logger:  logger,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Current returns the session's current directory.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// resolve maps a possibly-relative argument onto an absolute path against
// the current directory. Callers must hold the mutex.
func (s *Session) resolve(arg string) string {
	return paths.Resolve(s.current, arg)
}

// visit records a directory change, truncating any forward history.
func (s *Session) visit(dir string) {
	s.history = append(s.history[:s.histIdx+1], dir)
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
	s.histIdx = len(s.history) - 1
	s.current = dir
}

// back moves one step back in history. It reports whether a move happened.
func (s *Session) back() bool {
	if s.histIdx == 0 {
		return false
	}
	s.histIdx--
	s.current = s.history[s.histIdx]
	return true
}

// forward moves one step forward in history.
func (s *Session) forward() bool {
	if s.histIdx >= len(s.history)-1 {
		return false
	}
	s.histIdx++
	s.current = s.history[s.histIdx]
	return true
}

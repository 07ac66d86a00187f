package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chesscore/internal/config"
	"github.com/lgbarn/chesscore/internal/engine"
	"github.com/lgbarn/chesscore/internal/errors"
)

// Manager owns the live sessions.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int

	logFile   io.Writer
	verbosity int
}

// NewManager creates a manager using the server limits and log settings
// of cfg.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: cfg.Server.MaxSessions,
		logFile:     cfg.LogFile,
		verbosity:   cfg.Verbosity,
	}
}

// Create starts a new game from fen, or from the standard start when fen is
// empty.
func (m *Manager) Create(fen string) (*Session, error) {
	game := engine.NewGame()
	if fen != "" {
		var err error
		if game, err = engine.NewGameFromFEN(fen); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("%d sessions open: %w", len(m.sessions), errors.ErrTooManyGames)
	}

	s := newSession(uuid.New().String(), game)
	m.sessions[s.ID] = s
	m.logf(2, "created game %s\n", s.ID)
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
	}
	return s, nil
}

// Delete removes a session and closes its subscriptions.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
	}
	s.closeSubscribers()
	m.logf(2, "deleted game %s\n", id)
	return nil
}

// IDs returns the ids of all sessions in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := maps.Keys(m.sessions)
	m.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) logf(level int, format string, args ...interface{}) {
	if m.logFile != nil && m.verbosity >= level {
		fmt.Fprintf(m.logFile, format, args...)
	}
}

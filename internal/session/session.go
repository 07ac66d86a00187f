// Package session keeps independent games in memory, one per id, and
// serialises access to each of them.
package session

import (
	"sync"
	"time"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/engine"
	"github.com/lgbarn/chesscore/internal/errors"
)

// Snapshot is a consistent copy of a game's observable state.
type Snapshot struct {
	ID        string
	FEN       string
	Turn      chess.Colour
	MoveCount int
	InCheck   [chess.NumColours]bool
	Outcome   [chess.NumColours]chess.Outcome
	Over      bool
	Board     chess.BoardState
	History   []string

	// Informational only: neither side can mate, but the game goes on.
	InsufficientMaterial bool
}

// Session is one game plus the clients watching it.
type Session struct {
	ID      string
	Created time.Time

	mu          sync.Mutex
	game        *engine.Game
	subscribers map[chan Snapshot]struct{}
	closed      bool // set once the manager has dropped the session
}

func newSession(id string, game *engine.Game) *Session {
	return &Session{
		ID:          id,
		Created:     time.Now(),
		game:        game,
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	history := s.game.History()
	moves := make([]string, len(history))
	for i := range history {
		moves[i] = history[i].String()
	}

	snap := Snapshot{
		ID:        s.ID,
		FEN:       s.game.FEN(),
		Turn:      s.game.Turn(),
		MoveCount: s.game.MoveCount(),
		Over:      s.game.IsOver(),
		Board:     s.game.State(),
		History:   moves,
	}
	for c := chess.White; c < chess.NumColours; c++ {
		snap.InCheck[c] = s.game.IsInCheck(c)
		snap.Outcome[c] = s.game.TerminalState(c)
	}
	snap.InsufficientMaterial = s.game.InsufficientMaterial()
	return snap
}

// LegalMoves returns the legal destinations of the piece on sq.
func (s *Session) LegalMoves(sq chess.Square) chess.SquareSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalMoves(sq)
}

// Move tries a move and, when it is accepted, publishes the new state to
// every subscriber. A rejected move changes nothing and publishes nothing.
func (s *Session) Move(from, to chess.Square, promotion chess.Kind) (*engine.MoveRecord, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, Snapshot{}, errors.Wrapf(errors.ErrGameNotFound, "game %s", s.ID)
	}
	rec, err := s.game.TryMove(from, to, promotion)
	if err != nil {
		return nil, Snapshot{}, err
	}
	snap := s.snapshotLocked()
	s.publishLocked(snap)
	return rec, snap, nil
}

// Subscribe registers for state updates after each accepted move. The
// returned function unsubscribes and closes the channel; it is safe to call
// more than once and after the session is deleted. Subscribing to a deleted
// session yields a channel that is already closed.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
	}
}

// closeSubscribers ends every subscription and refuses further moves, used
// when the session is deleted.
func (s *Session) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// publishLocked delivers snap without blocking; a subscriber whose buffer is
// full misses the update and can re-read the state.
func (s *Session) publishLocked(snap Snapshot) {
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Package hashing provides Zobrist position keys and a table of subtree
// counts keyed by them.
package hashing

import (
	"github.com/lgbarn/chesscore/internal/chess"
)

// Zobrist tables: one random value per (kind, colour, square), one per
// moved king or rook, one per en passant file and one for Black to move.
var (
	pieceKeys     [chess.NumKinds][chess.NumColours][chess.NumSquares]uint64
	movedKeys     [chess.NumColours][chess.NumSquares]uint64
	enPassantKeys [chess.BoardSize]uint64
	blackToMove   uint64
)

func init() {
	// Fixed seed so keys are stable across runs
	state := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	for k := range pieceKeys {
		for c := range pieceKeys[k] {
			for sq := range pieceKeys[k][c] {
				pieceKeys[k][c][sq] = next()
			}
		}
	}
	for c := range movedKeys {
		for sq := range movedKeys[c] {
			movedKeys[c][sq] = next()
		}
	}
	for f := range enPassantKeys {
		enPassantKeys[f] = next()
	}
	blackToMove = next()
}

// Key returns the Zobrist key of a position. Two boards with the same key
// have, barring collisions, the same legal moves from here on: the key
// covers placement, side to move, which kings and rooks have moved and a
// pawn that can still be taken en passant.
func Key(board *chess.Board) uint64 {
	var key uint64
	for i := 0; i < chess.NumSquares; i++ {
		p := board.PieceAt(chess.SquareAt(i))
		if p == nil {
			continue
		}
		key ^= pieceKeys[p.Kind][p.Colour][i]
		if p.HasMoved && (p.Kind == chess.King || p.Kind == chess.Rook) {
			key ^= movedKeys[p.Colour][i]
		}
		if p.Kind == chess.Pawn && p.JustDoubleMoved && p.LastMoveTurn == board.MoveCount-1 {
			key ^= enPassantKeys[p.Square.File]
		}
	}
	if board.TurnColour() == chess.Black {
		key ^= blackToMove
	}
	return key
}

type entry struct {
	key   uint64
	depth int
}

// Table stores the node count below a position at a given depth.
type Table struct {
	counts map[entry]uint64
	// maxCapacity limits stored entries (0 = unlimited)
	maxCapacity int
	hits        int
}

// NewTable creates an empty table. maxCapacity of 0 means unlimited.
func NewTable(maxCapacity int) *Table {
	return &Table{
		counts:      make(map[entry]uint64),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the stored count for key at depth.
func (t *Table) Lookup(key uint64, depth int) (uint64, bool) {
	n, ok := t.counts[entry{key, depth}]
	if ok {
		t.hits++
	}
	return n, ok
}

// Store records a count. Once the table is full new entries are dropped.
func (t *Table) Store(key uint64, depth int, nodes uint64) {
	e := entry{key, depth}
	if _, ok := t.counts[e]; !ok && t.IsFull() {
		return
	}
	t.counts[e] = nodes
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (t *Table) IsFull() bool {
	return t.maxCapacity > 0 && len(t.counts) >= t.maxCapacity
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	return len(t.counts)
}

// Hits returns the number of successful lookups.
func (t *Table) Hits() int {
	return t.hits
}

// Reset clears the table.
func (t *Table) Reset() {
	t.counts = make(map[entry]uint64)
	t.hits = 0
}

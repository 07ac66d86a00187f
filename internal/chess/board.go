package chess

import (
	"fmt"

	"github.com/lgbarn/chesscore/internal/errors"
)

// Board represents a chess board with all state needed for the game.
// Each Board owns its pieces; nothing is shared between boards.
type Board struct {
	// The board squares indexed by Square.Index().
	grid [NumSquares]*Piece

	// Half-moves played. Even means White to move.
	MoveCount int

	// Keep track of the two kings for check detection.
	kings [NumColours]*Piece

	// Status recomputed after every completed move.
	InCheck [NumColours]bool
	Outcome [NumColours]Outcome
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// Placement binds a kind and colour to a starting square.
type Placement struct {
	Kind   Kind
	Colour Colour
	Square Square
}

// StandardSetup is the fixed placement sequence of the standard starting position.
var StandardSetup = standardSetup()

func standardSetup() []Placement {
	var out []Placement
	for file := 0; file < BoardSize; file++ {
		out = append(out, Placement{Pawn, White, Sq(file, White.PawnRank())})
	}
	for file := 0; file < BoardSize; file++ {
		out = append(out, Placement{Pawn, Black, Sq(file, Black.PawnRank())})
	}
	backRank := []struct {
		kind  Kind
		files []int
	}{
		{Rook, []int{0, 7}},
		{Knight, []int{1, 6}},
		{Bishop, []int{2, 5}},
		{Queen, []int{3}},
		{King, []int{4}},
	}
	for _, group := range backRank {
		for _, colour := range []Colour{White, Black} {
			for _, file := range group.files {
				out = append(out, Placement{group.kind, colour, Sq(file, colour.HomeRank())})
			}
		}
	}
	return out
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for _, p := range StandardSetup {
		b.Place(NewPiece(p.Kind, p.Colour), p.Square)
	}
}

// Clear empties the board and resets the move counter and status.
func (b *Board) Clear() {
	*b = Board{}
}

// PieceAt returns the piece on sq, or nil.
func (b *Board) PieceAt(sq Square) *Piece {
	return b.grid[sq.Index()]
}

// Place binds a piece to a square, replacing any occupant. It is used for
// setup and for promotion (replace in place).
func (b *Board) Place(piece *Piece, sq Square) {
	if old := b.grid[sq.Index()]; old != nil && old != piece {
		b.forgetKing(old)
	}
	piece.Square = sq
	b.grid[sq.Index()] = piece
	if piece.Kind == King {
		b.kings[piece.Colour] = piece
	}
}

// Remove clears sq and returns its previous occupant (nil if empty).
func (b *Board) Remove(sq Square) *Piece {
	piece := b.grid[sq.Index()]
	b.grid[sq.Index()] = nil
	if piece != nil {
		b.forgetKing(piece)
	}
	return piece
}

// Relocate moves the occupant of from onto to without any rule checks. The
// previous occupant of to, if any, is dropped from the grid and returned.
func (b *Board) Relocate(from, to Square) (*Piece, error) {
	piece := b.grid[from.Index()]
	if piece == nil {
		return nil, errors.Wrapf(errors.ErrNoPieceAtOrigin, "relocate from %s", from)
	}
	captured := b.Remove(to)
	b.grid[from.Index()] = nil
	b.Place(piece, to)
	return captured, nil
}

func (b *Board) forgetKing(piece *Piece) {
	if piece.Kind == King && b.kings[piece.Colour] == piece {
		b.kings[piece.Colour] = nil
	}
}

// King returns the king of the given colour, or nil if there is none.
func (b *Board) King(colour Colour) *Piece {
	return b.kings[colour]
}

// TurnColour returns whose move it is: White on even MoveCount.
func (b *Board) TurnColour() Colour {
	if b.MoveCount%2 == 0 {
		return White
	}
	return Black
}

// Relative returns the square displaced by (dx, dy) from sq. It returns
// ErrOutOfBounds when the result falls off the board; generators treat
// that as the end of a ray.
func (b *Board) Relative(sq Square, dx, dy int) (Square, error) {
	return sq.Offset(dx, dy)
}

// Pieces lists the pieces of a colour in square order.
func (b *Board) Pieces(colour Colour) []*Piece {
	out := make([]*Piece, 0, 16)
	for _, p := range b.grid {
		if p != nil && p.Colour == colour {
			out = append(out, p)
		}
	}
	return out
}

// Copy creates a deep copy of the board; pieces are duplicated so the copy
// can be mutated independently.
func (b *Board) Copy() *Board {
	newBoard := &Board{
		MoveCount: b.MoveCount,
		InCheck:   b.InCheck,
		Outcome:   b.Outcome,
	}
	for i, p := range b.grid {
		if p == nil {
			continue
		}
		clone := *p
		newBoard.grid[i] = &clone
		if clone.Kind == King && b.kings[clone.Colour] == p {
			newBoard.kings[clone.Colour] = &clone
		}
	}
	return newBoard
}

// BoardState captures all board state as a comparable value. Empty squares
// have Kind NoKind.
type BoardState struct {
	Squares   [NumSquares]PieceState
	MoveCount int
	InCheck   [NumColours]bool
	Outcome   [NumColours]Outcome
}

// State returns a snapshot of the board for equality checks.
func (b *Board) State() BoardState {
	s := BoardState{
		MoveCount: b.MoveCount,
		InCheck:   b.InCheck,
		Outcome:   b.Outcome,
	}
	for i, p := range b.grid {
		if p != nil {
			s.Squares[i] = p.State()
		}
	}
	return s
}

// Validate checks the board invariants: every piece's recorded square
// matches the grid and each colour has exactly one king, which is the cached
// one.
func (b *Board) Validate() error {
	var kings [NumColours]int
	for i, p := range b.grid {
		if p == nil {
			continue
		}
		if p.Square.Index() != i {
			return fmt.Errorf("%v recorded on %s but found on %s", p.Kind, p.Square, SquareAt(i))
		}
		if p.Kind == King {
			kings[p.Colour]++
			if b.kings[p.Colour] != p {
				return fmt.Errorf("%v king on %s is not the cached king", p.Colour, p.Square)
			}
		}
	}
	for c := White; c < NumColours; c++ {
		if kings[c] != 1 {
			return fmt.Errorf("%v has %d kings, want 1", c, kings[c])
		}
	}
	return nil
}

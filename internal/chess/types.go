// Package chess provides core chess types and board state.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
	NumColours
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (pawn direction in rank index).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index for the colour.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank returns the rank index pawns of this colour start on.
func (c Colour) PawnRank() int {
	return c.HomeRank() + c.Forward()
}

// PromotionRank returns the rank index on which pawns of this colour promote.
func (c Colour) PromotionRank() int {
	return c.Opposite().HomeRank()
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota // No piece; as a promotion choice it means Queen
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter in either case to a kind.
// It returns NoKind for anything else.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoKind
	}
}

// IsPromotionChoice reports whether a pawn may promote to k.
// NoKind is accepted and stands for the default (Queen).
func (k Kind) IsPromotionChoice() bool {
	switch k {
	case NoKind, Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// Outcome is the terminal state of a position for one colour.
type Outcome int

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "none"
	}
}

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

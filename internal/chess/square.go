package chess

import (
	"math/bits"

	"github.com/lgbarn/chesscore/internal/errors"
)

// Square identifies one of the 64 board cells. File and Rank are 0-7;
// rank 0 is White's back rank. Squares compare by value.
type Square struct {
	File int8
	Rank int8
}

// NewSquare builds a square, rejecting coordinates outside the board.
func NewSquare(file, rank int) (Square, error) {
	if !onBoard(file, rank) {
		return Square{}, errors.Wrapf(errors.ErrOutOfBounds, "square (%d,%d)", file, rank)
	}
	return Square{File: int8(file), Rank: int8(rank)}, nil
}

// Sq builds a square from known-good coordinates. It panics otherwise and is
// meant for constants and tests.
func Sq(file, rank int) Square {
	s, err := NewSquare(file, rank)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseSquare converts algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, errors.Wrapf(errors.ErrInvalidSquare, "%q", s)
	}
	file := int(s[0]) - FileBase
	rank := int(s[1]) - RankBase
	if !onBoard(file, rank) {
		return Square{}, errors.Wrapf(errors.ErrInvalidSquare, "%q", s)
	}
	return Square{File: int8(file), Rank: int8(rank)}, nil
}

// MustParseSquare is ParseSquare for literals; it panics on error.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// String returns the algebraic coordinates of the square.
func (s Square) String() string {
	return string([]byte{byte(FileBase + int(s.File)), byte(RankBase + int(s.Rank))})
}

// Index returns the square's position in 0..63, a1 = 0, h8 = 63.
func (s Square) Index() int {
	return int(s.Rank)*BoardSize + int(s.File)
}

// SquareAt is the inverse of Index.
func SquareAt(index int) Square {
	return Square{File: int8(index % BoardSize), Rank: int8(index / BoardSize)}
}

// Offset returns the square displaced by (dx, dy), or ErrOutOfBounds.
func (s Square) Offset(dx, dy int) (Square, error) {
	file := int(s.File) + dx
	rank := int(s.Rank) + dy
	if !onBoard(file, rank) {
		return Square{}, errors.ErrOutOfBounds
	}
	return Square{File: int8(file), Rank: int8(rank)}, nil
}

// IsLight returns true if the square is a light square.
func (s Square) IsLight() bool {
	return (int(s.File)+int(s.Rank))%2 == 1
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < BoardSize && rank >= 0 && rank < BoardSize
}

// SquareSet is a set of squares stored as a bitboard, bit i = SquareAt(i).
type SquareSet uint64

// SetOf builds a set from the given squares.
func SetOf(squares ...Square) SquareSet {
	var set SquareSet
	for _, sq := range squares {
		set = set.Add(sq)
	}
	return set
}

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	return s | 1<<uint(sq.Index())
}

// Remove returns the set with sq excluded.
func (s SquareSet) Remove(sq Square) SquareSet {
	return s &^ (1 << uint(sq.Index()))
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return s&(1<<uint(sq.Index())) != 0
}

// Union returns the squares in either set.
func (s SquareSet) Union(other SquareSet) SquareSet {
	return s | other
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty reports whether the set has no squares.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// Squares lists the members in ascending index order (a1, b1, ... h8).
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for b := uint64(s); b != 0; b &= b - 1 {
		out = append(out, SquareAt(bits.TrailingZeros64(b)))
	}
	return out
}

// Strings lists the members in coordinate form, in the order of Squares.
func (s SquareSet) Strings() []string {
	squares := s.Squares()
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = sq.String()
	}
	return out
}

package chess

import "unicode"

// Piece is a typed, coloured unit on the board. The board's grid owns it;
// Square is the piece's recorded position and always matches the grid once a
// move has completed.
type Piece struct {
	Kind   Kind
	Colour Colour
	Square Square

	// HasMoved is set on the piece's first move (castling rights depend on it).
	HasMoved bool

	// LastMoveTurn is the board MoveCount at which the piece last moved.
	LastMoveTurn int

	// JustDoubleMoved is set when a pawn's latest move was a two-square advance.
	JustDoubleMoved bool
}

// NewPiece creates an unmoved piece.
func NewPiece(kind Kind, colour Colour) *Piece {
	return &Piece{Kind: kind, Colour: colour}
}

// Letter returns the FEN letter of the piece: uppercase for White.
func (p *Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		return byte(unicode.ToLower(rune(l)))
	}
	return l
}

// String returns e.g. "White Knight on g1".
func (p *Piece) String() string {
	return p.Colour.String() + " " + p.Kind.String() + " on " + p.Square.String()
}

// IsEnemyOf reports whether other is a piece of the opposite colour.
func (p *Piece) IsEnemyOf(other *Piece) bool {
	return other != nil && other.Colour != p.Colour
}

// PieceState is a comparable copy of a piece's fields.
type PieceState struct {
	Kind            Kind
	Colour          Colour
	HasMoved        bool
	LastMoveTurn    int
	JustDoubleMoved bool
}

// State returns the comparable state of the piece.
func (p *Piece) State() PieceState {
	return PieceState{
		Kind:            p.Kind,
		Colour:          p.Colour,
		HasMoved:        p.HasMoved,
		LastMoveTurn:    p.LastMoveTurn,
		JustDoubleMoved: p.JustDoubleMoved,
	}
}

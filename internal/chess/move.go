package chess

import (
	"github.com/lgbarn/chesscore/internal/errors"
)

// Move is a candidate source-destination pair with an optional promotion
// choice. NoKind as Promotion means Queen when the move promotes.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
}

// ParseMove parses coordinate text such as "e2e4" or "e7e8n".
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, errors.Wrapf(errors.ErrInvalidMove, "%q", text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, errors.Wrapf(errors.ErrInvalidMove, "%q: %v", text, err)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, errors.Wrapf(errors.ErrInvalidMove, "%q: %v", text, err)
	}
	move := Move{From: from, To: to}
	if len(text) == 5 {
		move.Promotion = KindFromLetter(text[4])
		if move.Promotion == NoKind || !move.Promotion.IsPromotionChoice() {
			return Move{}, errors.Wrapf(errors.ErrInvalidPromotion, "%q", text)
		}
	}
	return move, nil
}

// String returns the coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(rune(m.Promotion.Letter() + ('a' - 'A')))
	}
	return s
}

package engine

import (
	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/errors"
)

// Game is one game session: a board it owns exclusively plus the moves
// played so far. All mutation goes through TryMove. A Game is not safe for
// concurrent use.
type Game struct {
	board   *chess.Board
	history []MoveRecord
}

// NewGame creates a game in the standard starting position, White to move.
func NewGame() *Game {
	return &Game{board: NewInitialBoard()}
}

// NewGameFromFEN creates a game from a FEN position.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{board: board}, nil
}

// LegalMoves returns the legal destinations for the piece on sq; empty if
// there is no piece or it is not that colour's turn.
func (g *Game) LegalMoves(sq chess.Square) chess.SquareSet {
	return LegalMoves(g.board, sq)
}

// TryMove plays from -> to if it is legal. promotion picks the piece a pawn
// becomes on the last rank; NoKind means Queen and it is ignored for other
// moves. A rejected move leaves the game untouched.
func (g *Game) TryMove(from, to chess.Square, promotion chess.Kind) (*MoveRecord, error) {
	reject := func(err error) error {
		return &errors.MoveError{Err: err, From: from.String(), To: to.String(), Ply: g.board.MoveCount}
	}

	if !promotion.IsPromotionChoice() {
		return nil, reject(errors.ErrInvalidPromotion)
	}
	if g.board.Outcome[g.board.TurnColour()] != chess.Ongoing {
		return nil, reject(errors.ErrGameOver)
	}
	if g.board.PieceAt(from) == nil {
		return nil, reject(errors.ErrNoPieceAtOrigin)
	}
	if !g.LegalMoves(from).Has(to) {
		return nil, reject(errors.ErrIllegalDestination)
	}

	rec, err := ApplyMove(g.board, chess.Move{From: from, To: to, Promotion: promotion})
	if err != nil {
		return nil, err
	}
	g.history = append(g.history, *rec)
	return rec, nil
}

// Play parses a coordinate move such as "e2e4" or "e7e8n" and tries it.
func (g *Game) Play(text string) (*MoveRecord, error) {
	move, err := chess.ParseMove(text)
	if err != nil {
		return nil, err
	}
	return g.TryMove(move.From, move.To, move.Promotion)
}

// PieceAt returns the kind and colour of the piece on sq, if any.
func (g *Game) PieceAt(sq chess.Square) (chess.Kind, chess.Colour, bool) {
	p := g.board.PieceAt(sq)
	if p == nil {
		return chess.NoKind, chess.White, false
	}
	return p.Kind, p.Colour, true
}

// IsInCheck reports whether colour's king is in check after the last move.
func (g *Game) IsInCheck(colour chess.Colour) bool {
	return g.board.InCheck[colour]
}

// TerminalState reports checkmate or stalemate for colour after the last move.
func (g *Game) TerminalState(colour chess.Colour) chess.Outcome {
	return g.board.Outcome[colour]
}

// IsOver returns true once the side to move is checkmated or stalemated.
func (g *Game) IsOver() bool {
	return g.board.Outcome[g.board.TurnColour()] != chess.Ongoing
}

// Turn returns the colour to move.
func (g *Game) Turn() chess.Colour {
	return g.board.TurnColour()
}

// MoveCount returns the number of half-moves played on the board.
func (g *Game) MoveCount() int {
	return g.board.MoveCount
}

// History returns a copy of the moves played through this game.
func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// State returns a comparable snapshot of the board.
func (g *Game) State() chess.BoardState {
	return g.board.State()
}

// Board returns an independent copy of the board.
func (g *Game) Board() *chess.Board {
	return g.board.Copy()
}

// InsufficientMaterial reports whether neither side has mating material.
func (g *Game) InsufficientMaterial() bool {
	return HasInsufficientMaterial(g.board)
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

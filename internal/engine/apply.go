package engine

import (
	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/errors"
)

// MoveRecord describes a completed move.
type MoveRecord struct {
	// The move as played; Promotion is resolved (Queen by default) when the
	// move promoted and NoKind otherwise.
	Move chess.Move

	// Half-move index at which the move was played.
	Ply int

	// The moving piece before any promotion.
	Kind   chess.Kind
	Colour chess.Colour

	// The piece captured (NoKind if none) and where it stood.
	Captured   chess.Kind
	CapturedOn chess.Square

	Castle    bool
	EnPassant bool

	// Status of both colours after the move.
	InCheck [chess.NumColours]bool
	Outcome [chess.NumColours]chess.Outcome
}

// IsCapture returns true if this move captured a piece.
func (r *MoveRecord) IsCapture() bool {
	return r.Captured != chess.NoKind
}

// IsPromotion returns true if this move promoted a pawn.
func (r *MoveRecord) IsPromotion() bool {
	return r.Move.Promotion != chess.NoKind
}

// String returns the move in coordinate form.
func (r *MoveRecord) String() string {
	return r.Move.String()
}

// ApplyMove applies a move to the board and updates the board state. It does
// not check legality; callers validate against LegalMoves first. An empty
// origin is a contract violation and returns ErrNoPieceAtOrigin.
func ApplyMove(board *chess.Board, move chess.Move) (*MoveRecord, error) {
	rec, err := applyMove(board, move)
	if err != nil {
		return nil, err
	}
	refreshStatus(board)
	rec.InCheck = board.InCheck
	rec.Outcome = board.Outcome
	return rec, nil
}

// applyMove performs the board mutation without recomputing status.
func applyMove(board *chess.Board, move chess.Move) (*MoveRecord, error) {
	piece := board.PieceAt(move.From)
	if piece == nil {
		return nil, &errors.MoveError{
			Err:  errors.ErrNoPieceAtOrigin,
			From: move.From.String(),
			To:   move.To.String(),
			Ply:  board.MoveCount,
		}
	}
	if !move.Promotion.IsPromotionChoice() {
		return nil, &errors.MoveError{
			Err:  errors.ErrInvalidPromotion,
			From: move.From.String(),
			To:   move.To.String(),
			Ply:  board.MoveCount,
		}
	}

	rec := &MoveRecord{
		Move:   chess.Move{From: move.From, To: move.To},
		Ply:    board.MoveCount,
		Kind:   piece.Kind,
		Colour: piece.Colour,
	}

	// Handle en passant capture: the victim sits beside the origin
	if sq, ok := enPassantVictim(board, piece, move.To); ok {
		victim := board.Remove(sq)
		rec.Captured = victim.Kind
		rec.CapturedOn = sq
		rec.EnPassant = true
	}

	// Castling moves the rook as part of the same turn
	if rookFrom, rookTo, ok := castleRookMove(board, piece, move.To); ok {
		rook := board.PieceAt(rookFrom)
		if _, err := board.Relocate(rookFrom, rookTo); err != nil {
			return nil, err
		}
		rook.HasMoved = true
		rook.LastMoveTurn = board.MoveCount
		rec.Castle = true
	}

	captured, err := board.Relocate(move.From, move.To)
	if err != nil {
		return nil, err
	}
	if captured != nil {
		rec.Captured = captured.Kind
		rec.CapturedOn = move.To
	}

	if piece.Kind == chess.Pawn {
		piece.JustDoubleMoved = isDoubleStep(move.From, move.To)

		// Handle promotion
		if int(move.To.Rank) == piece.Colour.PromotionRank() {
			kind := move.Promotion
			if kind == chess.NoKind {
				kind = chess.Queen // Default to queen
			}
			promoted := chess.NewPiece(kind, piece.Colour)
			board.Place(promoted, move.To)
			rec.Move.Promotion = kind
			piece = promoted
		}
	}

	piece.HasMoved = true
	piece.LastMoveTurn = board.MoveCount

	board.MoveCount++

	return rec, nil
}

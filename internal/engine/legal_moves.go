package engine

import "github.com/lgbarn/chesscore/internal/chess"

// LegalMoves returns the legal destinations for the piece on sq. It is empty
// when the square is empty or it is not that piece's colour to move.
func LegalMoves(board *chess.Board, sq chess.Square) chess.SquareSet {
	piece := board.PieceAt(sq)
	if piece == nil {
		return 0
	}
	return PseudoLegalMoves(board, piece, false)
}

// HasLegalMoves returns true if the given colour has at least one legal move,
// regardless of whose turn it is.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, piece := range board.Pieces(colour) {
		if !legalMoves(board, piece).IsEmpty() {
			return true
		}
	}
	return false
}

// legalMoves is the turn-independent filtered move set of a piece.
func legalMoves(board *chess.Board, piece *chess.Piece) chess.SquareSet {
	moves := moveShapes(board, piece)
	if piece.Kind == chess.King {
		moves |= castlingMoves(board, piece)
	}
	return filterSafe(board, piece, moves)
}

// filterSafe keeps the candidates after which the mover's own king is not
// attacked. The board is left exactly as it was found.
func filterSafe(board *chess.Board, piece *chess.Piece, candidates chess.SquareSet) chess.SquareSet {
	var safe chess.SquareSet
	for _, to := range candidates.Squares() {
		if leavesKingSafe(board, piece, to) {
			safe = safe.Add(to)
		}
	}
	return safe
}

// leavesKingSafe plays piece to `to` hypothetically and tests the king square.
// When piece is the king, the square tested is its hypothetical one.
func leavesKingSafe(board *chess.Board, piece *chess.Piece, to chess.Square) bool {
	h := tryHypothetical(board, piece, to)
	defer h.undo()

	king := board.King(piece.Colour)
	if king == nil {
		return true
	}
	return !isSquareAttacked(board, king.Square, piece.Colour.Opposite())
}

// hypothetical is a reversible piece placement used by legality checks.
type hypothetical struct {
	board    *chess.Board
	mover    *chess.Piece
	from     chess.Square
	to       chess.Square
	captured *chess.Piece
	victim   *chess.Piece // en passant victim, lifted from its own square
}

// tryHypothetical vacates the mover's square, lifts whatever it would capture
// (including an en passant victim) and puts the mover on `to`.
func tryHypothetical(board *chess.Board, mover *chess.Piece, to chess.Square) *hypothetical {
	h := &hypothetical{board: board, mover: mover, from: mover.Square, to: to}
	if sq, ok := enPassantVictim(board, mover, to); ok {
		h.victim = board.Remove(sq)
	}
	board.Remove(h.from)
	h.captured = board.Remove(to)
	board.Place(mover, to)
	return h
}

// undo restores the squares touched by tryHypothetical.
func (h *hypothetical) undo() {
	h.board.Remove(h.to)
	h.board.Place(h.mover, h.from)
	if h.captured != nil {
		h.board.Place(h.captured, h.to)
	}
	if h.victim != nil {
		h.board.Place(h.victim, h.victim.Square)
	}
}

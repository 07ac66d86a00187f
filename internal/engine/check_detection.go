package engine

import "github.com/lgbarn/chesscore/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	if king == nil {
		return false // No king found
	}
	return isSquareAttacked(board, king.Square, colour.Opposite())
}

// AttackedSquares returns the union of the raw move shapes of every piece
// of the given colour.
func AttackedSquares(board *chess.Board, byColour chess.Colour) chess.SquareSet {
	var attacked chess.SquareSet
	for _, piece := range board.Pieces(byColour) {
		attacked |= PseudoLegalMoves(board, piece, true)
	}
	return attacked
}

// isSquareAttacked returns true if the square is reached by a raw move of the
// given colour. It stops at the first attacker found.
func isSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, piece := range board.Pieces(byColour) {
		if PseudoLegalMoves(board, piece, true).Has(sq) {
			return true
		}
	}
	return false
}

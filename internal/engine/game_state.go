package engine

import "github.com/lgbarn/chesscore/internal/chess"

// Terminal reports whether colour has run out of legal moves: Checkmate if
// it is also in check, Stalemate otherwise. The turn is not consulted, so
// both colours can be evaluated after any move.
func Terminal(board *chess.Board, colour chess.Colour) chess.Outcome {
	if HasLegalMoves(board, colour) {
		return chess.Ongoing
	}
	if IsInCheck(board, colour) {
		return chess.Checkmate
	}
	return chess.Stalemate
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	return Terminal(board, board.TurnColour()) == chess.Checkmate
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	return Terminal(board, board.TurnColour()) == chess.Stalemate
}

// refreshStatus recomputes the check and outcome flags of both colours.
func refreshStatus(board *chess.Board) {
	for colour := chess.White; colour < chess.NumColours; colour++ {
		board.InCheck[colour] = IsInCheck(board, colour)
		board.Outcome[colour] = Terminal(board, colour)
	}
}

package engine

import "github.com/lgbarn/chesscore/internal/chess"

// pawnMoves generates pushes, captures and en passant for a pawn.
func pawnMoves(board *chess.Board, pawn *chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	dir := pawn.Colour.Forward()

	// Forward one, then two from the start rank
	if one, err := board.Relative(pawn.Square, 0, dir); err == nil && board.PieceAt(one) == nil {
		moves = moves.Add(one)
		if int(pawn.Square.Rank) == pawn.Colour.PawnRank() {
			if two, err := board.Relative(pawn.Square, 0, 2*dir); err == nil && board.PieceAt(two) == nil {
				moves = moves.Add(two)
			}
		}
	}

	for _, dx := range []int{-1, 1} {
		to, err := board.Relative(pawn.Square, dx, dir)
		if err != nil {
			continue
		}
		if pawn.IsEnemyOf(board.PieceAt(to)) {
			moves = moves.Add(to)
			continue
		}
		if board.PieceAt(to) == nil && canCaptureEnPassant(board, pawn, dx) {
			moves = moves.Add(to)
		}
	}

	return moves
}

// canCaptureEnPassant reports whether the piece beside pawn (dx = ±1) is an
// enemy pawn that double-moved on the immediately preceding half-move.
func canCaptureEnPassant(board *chess.Board, pawn *chess.Piece, dx int) bool {
	side, err := board.Relative(pawn.Square, dx, 0)
	if err != nil {
		return false
	}
	victim := board.PieceAt(side)
	return pawn.IsEnemyOf(victim) &&
		victim.Kind == chess.Pawn &&
		victim.JustDoubleMoved &&
		victim.LastMoveTurn == board.MoveCount-1
}

// enPassantVictim returns the square of the pawn captured en passant when
// pawn moves to `to`, or false if the move is not an en passant capture.
func enPassantVictim(board *chess.Board, pawn *chess.Piece, to chess.Square) (chess.Square, bool) {
	if pawn.Kind != chess.Pawn || to.File == pawn.Square.File || board.PieceAt(to) != nil {
		return chess.Square{}, false
	}
	dx := int(to.File) - int(pawn.Square.File)
	if !canCaptureEnPassant(board, pawn, dx) {
		return chess.Square{}, false
	}
	return chess.Square{File: to.File, Rank: pawn.Square.Rank}, true
}

// isDoubleStep reports whether a pawn move from -> to is a two-square advance.
func isDoubleStep(from, to chess.Square) bool {
	return from.File == to.File && abs(int(to.Rank)-int(from.Rank)) == 2
}

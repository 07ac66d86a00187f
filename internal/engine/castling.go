package engine

import "github.com/lgbarn/chesscore/internal/chess"

// castlingMoves returns the castling destinations available to king.
// The king must be unmoved and not in check, the squares up to the corner
// rook must be empty and the rook must be an unmoved rook of the same colour.
// Squares the king passes over are not tested for attack; only the
// destination goes through the usual safety filter.
func castlingMoves(board *chess.Board, king *chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	if king.HasMoved || int(king.Square.Rank) != king.Colour.HomeRank() {
		return 0
	}
	if IsInCheck(board, king.Colour) {
		return 0
	}

	for _, dir := range []int{1, -1} {
		rookSq, ok := castlingRook(board, king, dir)
		if !ok {
			continue
		}
		if abs(int(rookSq.File)-int(king.Square.File)) < 3 {
			continue // No room for the king to move two squares
		}
		if to, err := board.Relative(king.Square, 2*dir, 0); err == nil {
			moves = moves.Add(to)
		}
	}
	return moves
}

// castlingRook scans from the king towards the corner in direction dir. It
// returns the corner square if every square between is empty and the corner
// holds an unmoved rook of the king's colour.
func castlingRook(board *chess.Board, king *chess.Piece, dir int) (chess.Square, bool) {
	for i := 1; i < chess.BoardSize; i++ {
		sq, err := board.Relative(king.Square, dir*i, 0)
		if err != nil {
			return chess.Square{}, false
		}
		occupant := board.PieceAt(sq)
		if occupant == nil {
			continue
		}
		atCorner := sq.File == 0 || sq.File == chess.BoardSize-1
		if atCorner && occupant.Kind == chess.Rook && occupant.Colour == king.Colour && !occupant.HasMoved {
			return sq, true
		}
		return chess.Square{}, false
	}
	return chess.Square{}, false
}

// castleRookMove returns the rook relocation implied by a king moving
// from -> to, or false if the move is not a castle.
func castleRookMove(board *chess.Board, king *chess.Piece, to chess.Square) (from, dest chess.Square, ok bool) {
	if king.Kind != chess.King || to.Rank != king.Square.Rank {
		return chess.Square{}, chess.Square{}, false
	}
	dx := int(to.File) - int(king.Square.File)
	if abs(dx) != 2 {
		return chess.Square{}, chess.Square{}, false
	}
	dir := sign(dx)
	rookSq, found := castlingRook(board, king, dir)
	if !found {
		return chess.Square{}, chess.Square{}, false
	}
	dest, err := board.Relative(king.Square, dir, 0)
	if err != nil {
		return chess.Square{}, chess.Square{}, false
	}
	return rookSq, dest, true
}

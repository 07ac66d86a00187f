// Package engine provides chess move generation, legality checking and
// board manipulation.
package engine

import "github.com/lgbarn/chesscore/internal/chess"

var (
	straightDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightJumps  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// PseudoLegalMoves returns the destinations for piece.
//
// With ignoreCheck set it returns the raw move shapes: no turn gate, no
// castling and no king-safety filter. Attack maps are built from this mode
// and it never calls back into the filtered path.
//
// Without ignoreCheck it returns nothing unless it is the piece's turn, and
// otherwise the moves that do not leave the mover's king in check.
func PseudoLegalMoves(board *chess.Board, piece *chess.Piece, ignoreCheck bool) chess.SquareSet {
	if ignoreCheck {
		return moveShapes(board, piece)
	}
	if piece.Colour != board.TurnColour() {
		return 0
	}
	return legalMoves(board, piece)
}

// moveShapes dispatches on the piece kind.
func moveShapes(board *chess.Board, piece *chess.Piece) chess.SquareSet {
	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(board, piece)
	case chess.Knight:
		return stepMoves(board, piece, knightJumps)
	case chess.Bishop:
		return slidingMoves(board, piece, diagonalDirs)
	case chess.Rook:
		return slidingMoves(board, piece, straightDirs)
	case chess.Queen:
		return slidingMoves(board, piece, straightDirs) | slidingMoves(board, piece, diagonalDirs)
	case chess.King:
		return stepMoves(board, piece, kingSteps)
	}
	return 0
}

// slidingMoves walks each ray until the edge or the first occupied square,
// which is included only when it holds an enemy.
func slidingMoves(board *chess.Board, piece *chess.Piece, dirs [][2]int) chess.SquareSet {
	var moves chess.SquareSet
	for _, dir := range dirs {
		for i := 1; i < chess.BoardSize; i++ {
			to, err := board.Relative(piece.Square, dir[0]*i, dir[1]*i)
			if err != nil {
				break
			}
			occupant := board.PieceAt(to)
			if occupant == nil {
				moves = moves.Add(to)
				continue
			}
			if piece.IsEnemyOf(occupant) {
				moves = moves.Add(to)
			}
			break // Blocked
		}
	}
	return moves
}

// stepMoves checks each fixed offset independently (knights and kings).
func stepMoves(board *chess.Board, piece *chess.Piece, offsets [][2]int) chess.SquareSet {
	var moves chess.SquareSet
	for _, offset := range offsets {
		to, err := board.Relative(piece.Square, offset[0], offset[1])
		if err != nil {
			continue
		}
		if occupant := board.PieceAt(to); occupant == nil || piece.IsEnemyOf(occupant) {
			moves = moves.Add(to)
		}
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

package engine

import "github.com/lgbarn/chesscore/internal/chess"

// Material counts the pieces of each kind per colour, kings included.
type Material [chess.NumColours][chess.NumKinds]int

// CountMaterial tallies the pieces on the board.
func CountMaterial(board *chess.Board) Material {
	var m Material
	for colour := chess.White; colour < chess.NumColours; colour++ {
		for _, p := range board.Pieces(colour) {
			m[colour][p.Kind]++
		}
	}
	return m
}

// HasInsufficientMaterial returns true if neither side can possibly
// deliver mate. It is informational: the game is not ended by it.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var minors [chess.NumColours][]*chess.Piece

	for colour := chess.White; colour < chess.NumColours; colour++ {
		for _, p := range board.Pieces(colour) {
			switch p.Kind {
			case chess.King:
				// Kings don't count for material
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			default:
				minors[colour] = append(minors[colour], p)
			}
		}
	}

	white, black := minors[chess.White], minors[chess.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white)+len(black) == 1:
		return true // A lone bishop or knight
	case len(white) == 1 && len(black) == 1:
		return white[0].Kind == chess.Bishop && black[0].Kind == chess.Bishop &&
			white[0].Square.IsLight() == black[0].Square.IsLight()
	}
	return false
}

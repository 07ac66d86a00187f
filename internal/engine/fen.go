package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string. Castling rights become
// the HasMoved flags of the kings and corner rooks; the en passant square marks
// the pawn that just double-moved. The halfmove clock is accepted but not kept.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fenError(fen, "placement", "piece placement", "empty string")
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, fen, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, fen, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, fen, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, fen, parts); err != nil {
		return nil, err
	}
	if err := board.Validate(); err != nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: "placement", Got: err.Error()}
	}

	refreshStatus(board)
	return board, nil
}

func fenError(fen, field, expected, got string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: field, Expected: expected, Got: got}
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, fen, positions string) error {
	rank := chess.BoardSize - 1
	file := 0

	for _, c := range positions {
		switch {
		case c == '/':
			if file != chess.BoardSize {
				return fenError(fen, "placement", "8 files per rank", fmt.Sprintf("%d", file))
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			kind := chess.KindFromLetter(byte(c))
			if kind == chess.NoKind {
				return fenError(fen, "placement", "piece letter", string(c))
			}
			if file >= chess.BoardSize || rank < 0 {
				return fenError(fen, "placement", "square on the board", string(c))
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}

			piece := chess.NewPiece(kind, colour)
			sq := chess.Sq(file, rank)
			switch kind {
			case chess.Pawn:
				piece.HasMoved = rank != colour.PawnRank()
			case chess.King, chess.Rook:
				piece.HasMoved = true // Cleared by castling rights
			}
			board.Place(piece, sq)
			file++
		}
		if file > chess.BoardSize {
			return fenError(fen, "placement", "8 files per rank", fmt.Sprintf("%d", file))
		}
	}
	if rank != 0 || file != chess.BoardSize {
		return fenError(fen, "placement", "8 ranks", positions)
	}
	return nil
}

// parseSideToMove parses the side to move and fullmove fields into MoveCount.
func parseSideToMove(board *chess.Board, fen string, parts []string) error {
	black := false
	if len(parts) >= 2 {
		switch parts[1] {
		case "w":
		case "b":
			black = true
		default:
			return fenError(fen, "side to move", "w or b", parts[1])
		}
	}

	fullmove := 1
	if len(parts) >= 5 {
		if _, err := strconv.Atoi(parts[4]); err != nil {
			return fenError(fen, "halfmove clock", "number", parts[4])
		}
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fenError(fen, "fullmove number", "positive number", parts[5])
		}
		fullmove = n
	}

	board.MoveCount = 2 * (fullmove - 1)
	if black {
		board.MoveCount++
	}
	return nil
}

// castlingCorners maps FEN castling letters to the rook's corner square.
var castlingCorners = map[rune]chess.Square{
	'K': chess.Sq(7, 0),
	'Q': chess.Sq(0, 0),
	'k': chess.Sq(7, 7),
	'q': chess.Sq(0, 7),
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, fen string, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		corner, ok := castlingCorners[c]
		if !ok {
			return fenError(fen, "castling", "KQkq", string(c))
		}
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		rook := board.PieceAt(corner)
		king := board.King(colour)
		if rook == nil || rook.Kind != chess.Rook || rook.Colour != colour ||
			king == nil || int(king.Square.Rank) != colour.HomeRank() {
			return fenError(fen, "castling", "king and rook on home squares", string(c))
		}
		rook.HasMoved = false
		king.HasMoved = false
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, fen string, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	target, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fenError(fen, "en passant", "square", parts[3])
	}

	// The pawn that double-moved belongs to the side that just moved and sits
	// one step beyond the target square.
	mover := board.TurnColour().Opposite()
	pawnSq, err := target.Offset(0, mover.Forward())
	if err != nil {
		return fenError(fen, "en passant", "square behind a pawn", parts[3])
	}
	pawn := board.PieceAt(pawnSq)
	if pawn == nil || pawn.Kind != chess.Pawn || pawn.Colour != mover {
		return fenError(fen, "en passant", "square behind a pawn", parts[3])
	}
	pawn.HasMoved = true
	pawn.JustDoubleMoved = true
	pawn.LastMoveTurn = board.MoveCount - 1
	return nil
}

// BoardToFEN converts a board to a FEN string. The halfmove clock is not
// tracked and is always written as 0.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	fmt.Fprintf(&sb, " 0 %d", board.MoveCount/2+1)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.PieceAt(chess.Sq(file, rank))
			if piece == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.TurnColour() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, c := range "KQkq" {
		corner := castlingCorners[c]
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		king := board.King(colour)
		rook := board.PieceAt(corner)
		if king == nil || king.HasMoved || int(king.Square.Rank) != colour.HomeRank() {
			continue
		}
		if rook == nil || rook.Kind != chess.Rook || rook.Colour != colour || rook.HasMoved {
			continue
		}
		sb.WriteRune(c)
		hasCastling = true
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind a pawn that double-moved on the
// previous half-move.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	mover := board.TurnColour().Opposite()
	for _, p := range board.Pieces(mover) {
		if p.Kind == chess.Pawn && p.JustDoubleMoved && p.LastMoveTurn == board.MoveCount-1 {
			if target, err := p.Square.Offset(0, -mover.Forward()); err == nil {
				sb.WriteString(target.String())
				return
			}
		}
	}
	sb.WriteByte('-')
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	refreshStatus(board)
	return board
}

package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/chesscore/internal/chess"
	chesserrors "github.com/lgbarn/chesscore/internal/errors"
)

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		wantTurn      chess.Colour
		wantMoveCount int
		checks        map[string]chess.PieceState
	}{
		{
			name:          "initial position",
			fen:           InitialFEN,
			wantTurn:      chess.White,
			wantMoveCount: 0,
			checks: map[string]chess.PieceState{
				"e1": {Kind: chess.King, Colour: chess.White},
				"d8": {Kind: chess.Queen, Colour: chess.Black},
				"a2": {Kind: chess.Pawn, Colour: chess.White},
				"h8": {Kind: chess.Rook, Colour: chess.Black},
			},
		},
		{
			name:          "black to move with en passant",
			fen:           "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			wantTurn:      chess.Black,
			wantMoveCount: 1,
			checks: map[string]chess.PieceState{
				"e4": {Kind: chess.Pawn, Colour: chess.White, HasMoved: true, LastMoveTurn: 0, JustDoubleMoved: true},
			},
		},
		{
			name:          "no castling rights marks kings and rooks moved",
			fen:           "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 20",
			wantTurn:      chess.White,
			wantMoveCount: 38,
			checks: map[string]chess.PieceState{
				"e1": {Kind: chess.King, Colour: chess.White, HasMoved: true},
				"a8": {Kind: chess.Rook, Colour: chess.Black, HasMoved: true},
			},
		},
		{
			name:          "partial castling rights",
			fen:           "r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 5",
			wantTurn:      chess.Black,
			wantMoveCount: 9,
			checks: map[string]chess.PieceState{
				"h1": {Kind: chess.Rook, Colour: chess.White},
				"a1": {Kind: chess.Rook, Colour: chess.White, HasMoved: true},
				"a8": {Kind: chess.Rook, Colour: chess.Black},
				"h8": {Kind: chess.Rook, Colour: chess.Black, HasMoved: true},
			},
		},
		{
			name:          "placement only",
			fen:           "4k3/8/8/8/8/8/8/4K3",
			wantTurn:      chess.White,
			wantMoveCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)

			if board.TurnColour() != tt.wantTurn {
				t.Errorf("TurnColour() = %v, want %v", board.TurnColour(), tt.wantTurn)
			}
			if board.MoveCount != tt.wantMoveCount {
				t.Errorf("MoveCount = %d, want %d", board.MoveCount, tt.wantMoveCount)
			}
			for name, want := range tt.checks {
				p := board.PieceAt(sq(name))
				if p == nil {
					t.Errorf("%s is empty, want %v", name, want)
					continue
				}
				if p.State() != want {
					t.Errorf("%s = %+v, want %+v", name, p.State(), want)
				}
			}
		})
	}
}

func TestNewBoardFromFEN_Errors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"empty", "", "placement"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", "placement"},
		{"nine files", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"short rank", "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"bad piece letter", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"missing king", "8/8/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"two kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", "placement"},
		{"bad side to move", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", "side to move"},
		{"bad castling letter", "4k3/8/8/8/8/8/8/4K2R w X - 0 1", "castling"},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1", "castling"},
		{"bad en passant square", "4k3/8/8/8/8/8/8/4K3 b - e9 0 1", "en passant"},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 b - e3 0 1", "en passant"},
		{"bad halfmove clock", "4k3/8/8/8/8/8/8/4K3 w - - x 1", "halfmove clock"},
		{"zero fullmove number", "4k3/8/8/8/8/8/8/4K3 w - - 0 0", "fullmove number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromFEN(tt.fen)
			if !errors.Is(err, chesserrors.ErrInvalidFEN) {
				t.Fatalf("error = %v, want %v", err, chesserrors.ErrInvalidFEN)
			}
			var parseErr *chesserrors.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error %T is not a ParseError", err)
			}
			if parseErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", parseErr.Field, tt.field)
			}
			if parseErr.Input != tt.fen {
				t.Errorf("Input = %q, want %q", parseErr.Input, tt.fen)
			}
		})
	}
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 5",
		"4k3/8/8/8/8/8/8/4K2R b K - 0 12",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board := mustBoard(t, fen)
			if got := BoardToFEN(board); got != fen {
				t.Errorf("BoardToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestBoardToFEN_AfterMoves(t *testing.T) {
	tests := []struct {
		moves []string
		want  string
	}{
		{nil, InitialFEN},
		{[]string{"e2e4"}, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{[]string{"e2e4", "c7c5"}, "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2"},
		{[]string{"e2e4", "c7c5", "g1f3"}, "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 0 2"},
		{[]string{"g1f3", "g8f6", "h1g1"}, "rnbqkb1r/pppppppp/5n2/8/8/5N2/PPPPPPPP/RNBQKBR1 b Qkq - 0 2"},
	}

	for _, tt := range tests {
		g := NewGame()
		mustPlay(t, g, tt.moves...)
		if got := g.FEN(); got != tt.want {
			t.Errorf("after %v: FEN() = %q, want %q", tt.moves, got, tt.want)
		}
	}
}

func TestNewInitialBoard(t *testing.T) {
	board := NewInitialBoard()
	if board == nil {
		t.Fatal("NewInitialBoard() returned nil")
	}

	parsed, err := NewBoardFromFEN(InitialFEN)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(InitialFEN) error: %v", err)
	}
	if board.State().Squares != parsed.State().Squares {
		t.Error("SetupInitialPosition differs from the FEN start position")
	}
	if got := BoardToFEN(board); got != InitialFEN {
		t.Errorf("BoardToFEN(NewInitialBoard()) = %q; want %q", got, InitialFEN)
	}
	if board.InCheck[chess.White] || board.InCheck[chess.Black] {
		t.Error("start position reported in check")
	}
	if got := len(GenerateMoves(board)); got != 20 {
		t.Errorf("start position has %d moves; want 20", got)
	}
}

package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lgbarn/chesscore/internal/hashing"
)

var perftPositions = []struct {
	name  string
	fen   string
	nodes []uint64 // Indexed by depth-1
}{
	{"start", InitialFEN, []uint64{20, 400, 8902}},
	{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
	{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48}},
}

func TestPerft(t *testing.T) {
	for _, pos := range perftPositions {
		t.Run(pos.name, func(t *testing.T) {
			board := mustBoard(t, pos.fen)
			for i, want := range pos.nodes {
				depth := i + 1
				if testing.Short() && depth > 2 {
					break
				}
				if got := Perft(board, depth); got != want {
					t.Errorf("Perft(%d) = %d, want %d", depth, got, want)
				}
			}
			if err := board.Validate(); err != nil {
				t.Errorf("board damaged by perft: %v", err)
			}
		})
	}
}

func TestPerft_DepthZero(t *testing.T) {
	if got := Perft(NewInitialBoard(), 0); got != 1 {
		t.Errorf("Perft(0) = %d, want 1", got)
	}
}

func TestPerftDivide(t *testing.T) {
	board := NewInitialBoard()

	entries := PerftDivide(board, 2)
	if len(entries) != 20 {
		t.Fatalf("PerftDivide returned %d root moves, want 20", len(entries))
	}
	var total uint64
	for i, e := range entries {
		if e.Nodes != 20 {
			t.Errorf("%s: %d nodes, want 20", e.Move, e.Nodes)
		}
		if i > 0 && entries[i-1].Move.String() >= e.Move.String() {
			t.Errorf("entries not sorted: %s before %s", entries[i-1].Move, e.Move)
		}
		total += e.Nodes
	}
	if total != 400 {
		t.Errorf("total = %d, want 400", total)
	}
}

func TestParallelPerft(t *testing.T) {
	board := mustBoard(t, perftPositions[1].fen)
	before := board.State()

	serial := PerftDivide(board, 3)
	for _, workers := range []int{1, 4} {
		parallel := ParallelPerftDivide(board, 3, workers, nil)
		if diff := cmp.Diff(serial, parallel); diff != "" {
			t.Errorf("workers=%d: divide mismatch (-serial +parallel):\n%s", workers, diff)
		}
	}
	if got := ParallelPerft(board, 3, 4, nil); got != 2812 {
		t.Errorf("ParallelPerft(3) = %d, want 2812", got)
	}
	if got := ParallelPerft(board, 1, 4, nil); got != 14 {
		t.Errorf("ParallelPerft(1) = %d, want 14", got)
	}
	if diff := cmp.Diff(before, board.State()); diff != "" {
		t.Errorf("board changed (-before +after):\n%s", diff)
	}
}

func TestPerftCached(t *testing.T) {
	for _, pos := range perftPositions {
		t.Run(pos.name, func(t *testing.T) {
			board := mustBoard(t, pos.fen)
			table := hashing.NewTable(0)
			for depth, want := range pos.nodes {
				if got := PerftCached(board, depth+1, table); got != want {
					t.Errorf("PerftCached(%d) = %d, want %d", depth+1, got, want)
				}
			}
		})
	}

	// A second run is answered from the table
	table := hashing.NewTable(0)
	if got := PerftCached(NewInitialBoard(), 3, table); got != 8902 {
		t.Fatalf("PerftCached(3) = %d, want 8902", got)
	}
	if table.Len() != 21 {
		t.Errorf("Len() = %d, want 21 (root plus one entry per reply)", table.Len())
	}
	if got := PerftCached(NewInitialBoard(), 3, table); got != 8902 || table.Hits() != 1 {
		t.Errorf("second run = %d with %d hits, want 8902 with 1", got, table.Hits())
	}

	// A full table still counts correctly
	if got := PerftCached(NewInitialBoard(), 3, hashing.NewTable(1)); got != 8902 {
		t.Errorf("PerftCached with a one-entry table = %d, want 8902", got)
	}
}

func TestParallelPerft_SharedCache(t *testing.T) {
	board := mustBoard(t, perftPositions[1].fen)
	table := hashing.NewThreadSafeTable(0)

	serial := PerftDivide(board, 3)
	parallel := ParallelPerftDivide(board, 3, 4, table)
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("divide mismatch (-serial +parallel):\n%s", diff)
	}
	if got := ParallelPerft(board, 3, 4, table); got != 2812 {
		t.Errorf("ParallelPerft(3) = %d, want 2812", got)
	}
}

func TestGenerateMoves_Promotions(t *testing.T) {
	board := mustBoard(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	var got []string
	for _, m := range GenerateMoves(board) {
		if m.From == sq("a7") {
			got = append(got, m.String())
		}
	}
	want := []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("a7 moves mismatch (-want +got):\n%s", diff)
	}
}

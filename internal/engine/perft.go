package engine

import (
	"sort"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/hashing"
	"github.com/lgbarn/chesscore/internal/worker"
)

var promotionKinds = []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// GenerateMoves lists every legal move for the side to move. A pawn reaching
// the last rank yields one move per promotion choice.
func GenerateMoves(board *chess.Board) []chess.Move {
	var moves []chess.Move
	for _, piece := range board.Pieces(board.TurnColour()) {
		promotes := piece.Kind == chess.Pawn
		for _, to := range PseudoLegalMoves(board, piece, false).Squares() {
			if promotes && int(to.Rank) == piece.Colour.PromotionRank() {
				for _, kind := range promotionKinds {
					moves = append(moves, chess.Move{From: piece.Square, To: to, Promotion: kind})
				}
				continue
			}
			moves = append(moves, chess.Move{From: piece.Square, To: to})
		}
	}
	return moves
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(board *chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := GenerateMoves(board)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, move := range moves {
		child := board.Copy()
		if _, err := applyMove(child, move); err != nil {
			continue
		}
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  chess.Move
	Nodes uint64
}

// PerftDivide counts nodes below each root move, sorted by move text.
func PerftDivide(board *chess.Board, depth int) []DivideEntry {
	var out []DivideEntry
	for _, move := range GenerateMoves(board) {
		child := board.Copy()
		if _, err := applyMove(child, move); err != nil {
			continue
		}
		out = append(out, DivideEntry{Move: move, Nodes: Perft(child, depth-1)})
	}
	sortDivide(out)
	return out
}

func sortDivide(entries []DivideEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move.String() < entries[j].Move.String()
	})
}

// PerftCache stores subtree counts keyed by position and depth. It must be
// safe for concurrent use when shared by the parallel functions.
type PerftCache interface {
	Lookup(key uint64, depth int) (uint64, bool)
	Store(key uint64, depth int, nodes uint64)
}

// PerftCached is Perft with subtree counts shared through cache.
// Transpositions reached by different move orders are expanded once.
func PerftCached(board *chess.Board, depth int, cache PerftCache) uint64 {
	if depth <= 1 || cache == nil {
		return Perft(board, depth)
	}
	key := hashing.Key(board)
	if nodes, ok := cache.Lookup(key, depth); ok {
		return nodes
	}

	var nodes uint64
	for _, move := range GenerateMoves(board) {
		child := board.Copy()
		if _, err := applyMove(child, move); err != nil {
			continue
		}
		nodes += PerftCached(child, depth-1, cache)
	}
	cache.Store(key, depth, nodes)
	return nodes
}

// ParallelPerftDivide is PerftDivide with the root moves spread over a
// worker pool. Each worker expands its own copy of the board. A nil cache
// disables subtree sharing.
func ParallelPerftDivide(board *chess.Board, depth, workers int, cache PerftCache) []DivideEntry {
	moves := GenerateMoves(board)
	items := make([]worker.WorkItem, 0, len(moves))
	for i, move := range moves {
		items = append(items, worker.WorkItem{
			Board: board.Copy(),
			Move:  move,
			Depth: depth - 1,
			Index: i,
		})
	}

	pool := worker.NewPool(rootMoveExpander(cache),
		worker.WithWorkers(workers),
		worker.WithBufferSize(len(items)+1),
	)

	out := make([]DivideEntry, 0, len(items))
	for _, r := range pool.Run(items) {
		if r.Error != nil {
			continue
		}
		out = append(out, DivideEntry{Move: r.Move, Nodes: r.Nodes})
	}
	sortDivide(out)
	return out
}

// ParallelPerft is Perft with the root moves spread over a worker pool.
func ParallelPerft(board *chess.Board, depth, workers int, cache PerftCache) uint64 {
	if depth <= 1 {
		return Perft(board, depth)
	}
	var nodes uint64
	for _, e := range ParallelPerftDivide(board, depth, workers, cache) {
		nodes += e.Nodes
	}
	return nodes
}

func rootMoveExpander(cache PerftCache) worker.ProcessFunc {
	return func(item worker.WorkItem) worker.ProcessResult {
		result := worker.ProcessResult{Move: item.Move, Index: item.Index}
		if _, err := applyMove(item.Board, item.Move); err != nil {
			result.Error = err
			return result
		}
		result.Nodes = PerftCached(item.Board, item.Depth, cache)
		return result
	}
}

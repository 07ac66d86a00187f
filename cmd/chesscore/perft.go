package main

import (
	"fmt"
	"time"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/config"
	"github.com/lgbarn/chesscore/internal/engine"
	"github.com/lgbarn/chesscore/internal/hashing"
)

// startBoard returns the position named by fen, or the standard start.
func startBoard(fen string) (*chess.Board, error) {
	if fen == "" {
		return engine.NewInitialBoard(), nil
	}
	return engine.NewBoardFromFEN(fen)
}

// runPerft prints the leaf count of the move tree, and with -divide the
// count below each root move.
func runPerft(cfg *config.Config) error {
	board, err := startBoard(cfg.StartFEN)
	if err != nil {
		return err
	}

	depth, workers := cfg.Perft.Depth, cfg.Perft.Workers
	start := time.Now()

	var cache engine.PerftCache
	var table *hashing.ThreadSafeTable
	if cfg.Perft.HashEntries > 0 {
		table = hashing.NewThreadSafeTable(cfg.Perft.HashEntries)
		cache = table
	}

	var nodes uint64
	if cfg.Perft.Divide {
		for _, e := range engine.ParallelPerftDivide(board, depth, workers, cache) {
			fmt.Fprintf(cfg.OutputFile, "%s: %d\n", e.Move, e.Nodes)
			nodes += e.Nodes
		}
		fmt.Fprintln(cfg.OutputFile)
	} else {
		nodes = engine.ParallelPerft(board, depth, workers, cache)
	}
	fmt.Fprintf(cfg.OutputFile, "Nodes searched: %d\n", nodes)

	if cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "perft %d with %d workers took %v\n", depth, workers, time.Since(start))
		if table != nil {
			fmt.Fprintf(cfg.LogFile, "hash table: %d entries, %d hits\n", table.Len(), table.Hits())
		}
	}
	return nil
}

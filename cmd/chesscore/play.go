package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/config"
	"github.com/lgbarn/chesscore/internal/engine"
)

// runPlay reads one command per line from in until the game ends, the input
// runs out or the player quits. Rejected moves are reported and skipped.
func runPlay(cfg *config.Config, in io.Reader) error {
	g := engine.NewGame()
	if cfg.StartFEN != "" {
		var err error
		if g, err = engine.NewGameFromFEN(cfg.StartFEN); err != nil {
			return err
		}
	}

	out := cfg.OutputFile
	printStatus(out, g)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "fen":
			fmt.Fprintln(out, g.FEN())
			continue
		}

		if sq, err := chess.ParseSquare(line); err == nil {
			fmt.Fprintf(out, "%s: %s\n", sq, strings.Join(g.LegalMoves(sq).Strings(), " "))
			continue
		}

		rec, err := g.Play(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			if cfg.Verbosity > 1 {
				fmt.Fprintf(cfg.LogFile, "rejected %q: %v\n", line, err)
			}
			continue
		}
		if cfg.Verbosity > 1 {
			fmt.Fprintf(cfg.LogFile, "ply %d: %s\n", rec.Ply, rec)
		}

		printStatus(out, g)
		if g.IsOver() {
			return nil
		}
	}
	return scanner.Err()
}

// printStatus writes the position and whose turn it is, or how the game ended.
func printStatus(w io.Writer, g *engine.Game) {
	fmt.Fprintln(w, g.FEN())

	turn := g.Turn()
	switch g.TerminalState(turn) {
	case chess.Checkmate:
		fmt.Fprintf(w, "Checkmate, %s wins\n", turn.Opposite())
	case chess.Stalemate:
		fmt.Fprintln(w, "Stalemate")
	default:
		if g.IsInCheck(turn) {
			fmt.Fprintf(w, "%s to move (check)\n", turn)
		} else {
			fmt.Fprintf(w, "%s to move\n", turn)
		}
		if g.InsufficientMaterial() {
			fmt.Fprintln(w, "Insufficient material: neither side can mate")
		}
	}
}

package testutil

import (
	"testing"

	"github.com/lgbarn/chesscore/internal/engine"
)

// MustGame creates a game from a FEN string; an empty string means the
// standard start. It calls t.Fatal if the FEN is rejected.
func MustGame(t testing.TB, fen string) *engine.Game {
	t.Helper()
	if fen == "" {
		return engine.NewGame()
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load test position %q: %v", fen, err)
	}
	return g
}

// MustPlay plays coordinate moves in order and returns the last record.
// It calls t.Fatal on the first rejected move.
func MustPlay(t testing.TB, g *engine.Game, moves ...string) *engine.MoveRecord {
	t.Helper()
	var rec *engine.MoveRecord
	for i, m := range moves {
		var err error
		if rec, err = g.Play(m); err != nil {
			t.Fatalf("move %d (%s) rejected: %v", i+1, m, err)
		}
	}
	return rec
}

// FoolsMate is the shortest game ending in checkmate.
var FoolsMate = []string{"f2f3", "e7e5", "g2g4", "d8h4"}

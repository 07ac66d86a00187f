package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chesscore/internal/errors"
)

// MaxPerftDepth bounds the depth accepted from the command line.
const MaxPerftDepth = 10

// DefaultHashEntries is the default size of the perft transposition table.
const DefaultHashEntries = 1 << 20

// PerftConfig holds settings for move-tree counting.
type PerftConfig struct {
	// Depth is the number of half-moves to expand (0 = perft disabled)
	Depth int

	// Divide prints the node count below each root move
	Divide bool

	// Workers is the number of goroutines expanding root moves
	Workers int

	// HashEntries caps the shared table of subtree counts (0 = no table)
	HashEntries int
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		Workers:     runtime.NumCPU(),
		HashEntries: DefaultHashEntries,
	}
}

// Validate checks that the perft configuration is valid.
func (p *PerftConfig) Validate() error {
	if p.Depth < 0 || p.Depth > MaxPerftDepth {
		return fmt.Errorf("perft depth %d outside 0..%d: %w", p.Depth, MaxPerftDepth, errors.ErrInvalidConfig)
	}
	if p.Workers < 1 {
		return fmt.Errorf("perft workers (%d) must be at least 1: %w", p.Workers, errors.ErrInvalidConfig)
	}
	if p.HashEntries < 0 {
		return fmt.Errorf("hash entries (%d) is negative: %w", p.HashEntries, errors.ErrInvalidConfig)
	}
	return nil
}

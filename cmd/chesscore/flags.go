// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chesscore/internal/config"
)

var (
	// Starting position
	startFEN = flag.String("fen", "", "Starting position in FEN (default: standard start)")

	// Perft
	perftDepth = flag.Int("perft", 0, "Count leaf positions of the move tree to depth N")
	divide     = flag.Bool("divide", false, "With -perft, print the count below each root move")
	workers    = flag.Int("workers", 0, "Number of perft worker goroutines (0 = auto-detect based on CPU cores)")
	hashSize   = flag.Int("hash", -1, "Perft transposition table entries (0 = disabled, default 1048576)")

	// Server
	serve        = flag.Bool("serve", false, "Serve games over HTTP and WebSocket")
	listenAddr   = flag.String("addr", "", "Listen address for -serve (default :3000)")
	allowOrigins = flag.String("origins", "", "CORS allowed origins, comma separated (default *)")
	maxGames     = flag.Int("maxgames", -1, "Maximum number of live games (0 = no limit, default 1000)")

	// Output and logging
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	appendLog  = flag.String("L", "", "Append diagnostics to log file")
	verbose    = flag.Bool("v", false, "Log every request and move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.StartFEN = *startFEN
	applyPerftFlags(cfg)
	applyServerFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyPerftFlags configures the perft run.
func applyPerftFlags(cfg *config.Config) {
	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Divide = *divide
	if *workers > 0 {
		cfg.Perft.Workers = *workers
	}
	if *hashSize >= 0 {
		cfg.Perft.HashEntries = *hashSize
	}
}

// applyServerFlags overrides the server defaults that were given.
func applyServerFlags(cfg *config.Config) {
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *allowOrigins != "" {
		cfg.Server.AllowOrigins = *allowOrigins
	}
	if *maxGames >= 0 {
		cfg.Server.MaxSessions = *maxGames
	}
}

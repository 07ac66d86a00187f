// chesscore plays, counts and serves two-player chess games.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chesscore/internal/config"
	"github.com/lgbarn/chesscore/internal/server"
	"github.com/lgbarn/chesscore/internal/session"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chesscore version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch {
	case *serve:
		err = runServer(cfg)
	case cfg.Perft.Depth > 0:
		err = runPerft(cfg)
	default:
		err = runPlay(cfg, os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// runServer serves games until interrupted.
func runServer(cfg *config.Config) error {
	srv := server.New(cfg, session.NewManager(cfg))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		if cfg.Verbosity > 0 {
			fmt.Fprintf(cfg.LogFile, "Shutting down\n")
		}
		if err := srv.Shutdown(); err != nil {
			fmt.Fprintf(cfg.LogFile, "Shutdown: %v\n", err)
		}
	}()

	return srv.Listen()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chesscore [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays, counts and serves two-player chess games.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes:\n")
	fmt.Fprintf(os.Stderr, "  (none)     Read coordinate moves (e2e4, e7e8n) from stdin\n")
	fmt.Fprintf(os.Stderr, "  -perft N   Count leaf positions to depth N\n")
	fmt.Fprintf(os.Stderr, "  -serve     HTTP API under /api/games, WebSocket under /ws/games/:id\n")
	fmt.Fprintf(os.Stderr, "\nInteractive commands:\n")
	fmt.Fprintf(os.Stderr, "  e2         List legal destinations of the piece on e2\n")
	fmt.Fprintf(os.Stderr, "  fen        Print the current position\n")
	fmt.Fprintf(os.Stderr, "  quit       Leave\n")
}

// Package config provides configuration for the chesscore command and
// HTTP server.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chesscore/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=startup and errors, 2=every request and move

	// StartFEN is the position play and perft begin from (empty = standard start)
	StartFEN string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	Server *ServerConfig
	Perft  *PerftConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Server:     NewServerConfig(),
		Perft:      NewPerftConfig(),
	}
}

// SetOutput sets the writer for command output.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the writer for log output.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Perft.Validate()
}

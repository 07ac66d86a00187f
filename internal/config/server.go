package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore/internal/errors"
)

// ServerConfig holds settings for the HTTP and WebSocket adapter.
type ServerConfig struct {
	// ListenAddr is the address the server binds to
	ListenAddr string

	// AllowOrigins is the CORS origin list, comma separated
	AllowOrigins string

	// MaxSessions caps the number of live games (0 = no limit)
	MaxSessions int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:   ":3000",
		AllowOrigins: "*",
		MaxSessions:  1000,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	if strings.TrimSpace(s.ListenAddr) == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.MaxSessions < 0 {
		return fmt.Errorf("max sessions (%d) is negative: %w", s.MaxSessions, errors.ErrInvalidConfig)
	}
	return nil
}

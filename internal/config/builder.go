package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithListenAddr sets the server bind address.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddr = addr
	return b
}

// WithAllowOrigins sets the CORS origin list.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithMaxSessions caps the number of live games.
func (b *ConfigBuilder) WithMaxSessions(n int) *ConfigBuilder {
	b.cfg.Server.MaxSessions = n
	return b
}

// WithPerft sets the perft depth and divide mode.
func (b *ConfigBuilder) WithPerft(depth int, divide bool) *ConfigBuilder {
	b.cfg.Perft.Depth = depth
	b.cfg.Perft.Divide = divide
	return b
}

// WithPerftWorkers sets the number of perft goroutines.
func (b *ConfigBuilder) WithPerftWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithPerftHash sets the perft transposition table size (0 disables it).
func (b *ConfigBuilder) WithPerftHash(entries int) *ConfigBuilder {
	b.cfg.Perft.HashEntries = entries
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// Package config provides configuration for the chessrules command.
package config

import (
	"io"
	"os"
)

// OutputFormat represents different move notation formats.
type OutputFormat int

const (
	SAN   OutputFormat = iota // Standard Algebraic Notation
	LALG                      // Long algebraic (e2e4)
	HALG                      // Hyphenated long algebraic (e2-e4, e4xd5)
	ELALG                     // Enhanced long algebraic (Ng1f3)
	UCI                       // UCI format (same as LALG, lowercase promotion)
)

// String returns the flag spelling of a format.
func (f OutputFormat) String() string {
	switch f {
	case SAN:
		return "san"
	case LALG:
		return "lalg"
	case HALG:
		return "halg"
	case ELALG:
		return "elalg"
	case UCI:
		return "uci"
	default:
		return "unknown"
	}
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	Output OutputConfig
	Game   GameConfig
	Perft  PerftConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     *NewOutputConfig(),
		Game:       *NewGameConfig(),
		Perft:      *NewPerftConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Game.Validate(); err != nil {
		return err
	}
	return c.Perft.Validate()
}

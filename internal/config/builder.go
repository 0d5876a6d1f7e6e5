package config

import (
	"io"

	"github.com/lgbarn/chessrules-go/internal/clock"
)

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

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithBoard enables the text diagram of the final position.
func (b *ConfigBuilder) WithBoard(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowBoard = enabled
	return b
}

// WithSVG writes an SVG diagram of the final position to path.
func (b *ConfigBuilder) WithSVG(path string) *ConfigBuilder {
	b.cfg.Output.SVGFile = path
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Game.StartFEN = fen
	return b
}

// WithMoves sets the move list to play.
func (b *ConfigBuilder) WithMoves(moves string) *ConfigBuilder {
	b.cfg.Game.Moves = moves
	return b
}

// WithECOFile sets the opening book used to classify the game.
func (b *ConfigBuilder) WithECOFile(path string) *ConfigBuilder {
	b.cfg.Game.ECOFile = path
	return b
}

// WithTimeMode sets the clock control.
func (b *ConfigBuilder) WithTimeMode(mode clock.TimeMode) *ConfigBuilder {
	b.cfg.Game.TimeMode = mode
	return b
}

// WithPerft enables a node count to depth, optionally divided by root move.
func (b *ConfigBuilder) WithPerft(depth int, divide bool) *ConfigBuilder {
	b.cfg.Perft.Depth = depth
	b.cfg.Perft.Divide = divide
	return b
}

// WithWorkers sets the number of perft workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithTableSize sets the number of cached perft subtree counts.
func (b *ConfigBuilder) WithTableSize(n int) *ConfigBuilder {
	b.cfg.Perft.TableSize = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// KeepChecks controls whether check symbols are kept.
func (b *ConfigBuilder) KeepChecks(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepChecks = keep
	return b
}

// KeepMoveNumbers controls whether move numbers are kept.
func (b *ConfigBuilder) KeepMoveNumbers(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepMoveNumbers = keep
	return b
}

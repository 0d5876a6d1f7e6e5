package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format specifies the move notation format (SAN, LALG, etc.)
	Format OutputFormat

	// MaxLineLength is the maximum line length for move list output
	MaxLineLength uint

	// JSONFormat enables a JSON game record instead of PGN
	JSONFormat bool

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool

	// KeepResults controls whether the game result is included
	KeepResults bool

	// KeepChecks controls whether check symbols (+, #) are included
	KeepChecks bool

	// ShowBoard prints a text diagram of the final position
	ShowBoard bool

	// ShowFEN prints the FEN of the final position
	ShowFEN bool

	// SVGFile, when set, receives an SVG diagram of the final position
	SVGFile string

	// SVGSquareSize is the side of one square in the SVG diagram
	SVGSquareSize int

	// FlipBoard draws diagrams from Black's side
	FlipBoard bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          SAN,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		KeepChecks:      true,
		SVGSquareSize:   60,
	}
}

// ParseOutputFormat parses a format name such as "san" or "uci".
func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, f := range []OutputFormat{SAN, LALG, HALG, ELALG, UCI} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return SAN, fmt.Errorf("unknown output format %q: %w", s, errors.ErrInvalidConfig)
}

// Validate checks that the output configuration is usable.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < 20 {
		return fmt.Errorf("line length %d is too short: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	if o.SVGSquareSize <= 0 {
		return fmt.Errorf("svg square size %d: %w", o.SVGSquareSize, errors.ErrInvalidConfig)
	}
	return nil
}

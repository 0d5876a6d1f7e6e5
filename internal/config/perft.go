package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// PerftConfig holds settings for move-generation node counts.
type PerftConfig struct {
	// Depth is the search depth in plies; 0 disables perft
	Depth int

	// Divide prints the node count below each root move
	Divide bool

	// Workers is the number of goroutines counting root moves
	Workers int

	// TableSize is the number of cached subtree counts; 0 disables the cache
	TableSize int
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		Workers:   runtime.NumCPU(),
		TableSize: 1 << 20,
	}
}

// Validate checks that the perft configuration is valid.
func (p *PerftConfig) Validate() error {
	if p.Depth < 0 {
		return fmt.Errorf("perft depth %d: %w", p.Depth, errors.ErrInvalidConfig)
	}
	if p.Workers < 1 {
		return fmt.Errorf("perft workers %d: %w", p.Workers, errors.ErrInvalidConfig)
	}
	if p.TableSize < 0 {
		return fmt.Errorf("perft table size %d: %w", p.TableSize, errors.ErrInvalidConfig)
	}
	return nil
}

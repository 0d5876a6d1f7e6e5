package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/clock"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// GameConfig holds settings for the game being played.
type GameConfig struct {
	// StartFEN is the starting position; empty means the standard position
	StartFEN string

	// Moves is the move list to play, in SAN or UCI
	Moves string

	// TimeMode selects the clock control
	TimeMode clock.TimeMode

	// Resign names the player who resigns once the moves are played
	// ("white" or "black"); empty means nobody resigns
	Resign string

	// Tags are roster values carried over from an input PGN record, plus
	// the opening classification when ECOFile is set
	Tags map[string]string

	// ECOFile is a PGN file of opening lines used to classify the game
	ECOFile string
}

// NewGameConfig creates a GameConfig with default values.
// All fields use Go zero values: standard position, untimed, no resignation.
func NewGameConfig() *GameConfig {
	return &GameConfig{}
}

// Validate checks that the game configuration is valid.
func (g *GameConfig) Validate() error {
	switch g.Resign {
	case "", "white", "black":
	default:
		return fmt.Errorf("resigning player %q: %w", g.Resign, errors.ErrInvalidConfig)
	}
	return nil
}

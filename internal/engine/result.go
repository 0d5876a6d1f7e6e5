package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// EndReason says why a game concluded.
type EndReason int

const (
	Checkmate EndReason = iota
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
	ThreefoldRepetition
	Timeout
	Resignation
)

// String returns a human-readable reason.
func (r EndReason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	case ThreefoldRepetition:
		return "threefold repetition"
	case Timeout:
		return "timeout"
	case Resignation:
		return "resignation"
	}
	return "unknown"
}

// Result is the outcome of a concluded game. Winner is NoColour for draws.
type Result struct {
	Winner chess.Colour
	Reason EndReason
}

// Win creates a decisive result.
func Win(winner chess.Colour, reason EndReason) Result {
	return Result{Winner: winner, Reason: reason}
}

// Draw creates a drawn result.
func Draw(reason EndReason) Result {
	return Result{Winner: chess.NoColour, Reason: reason}
}

// IsDraw reports whether nobody won.
func (r Result) IsDraw() bool {
	return r.Winner == chess.NoColour
}

// String returns the PGN result token.
func (r Result) String() string {
	switch r.Winner {
	case chess.White:
		return "1-0"
	case chess.Black:
		return "0-1"
	}
	return "1/2-1/2"
}

// Description returns e.g. "White wins by checkmate" or "Draw by stalemate".
func (r Result) Description() string {
	if r.IsDraw() {
		return fmt.Sprintf("Draw by %s", r.Reason)
	}
	return fmt.Sprintf("%s wins by %s", r.Winner, r.Reason)
}

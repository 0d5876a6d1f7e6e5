package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrInvalidSquare", ErrInvalidSquare, ErrInvalidSquare},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrAmbiguousMove", ErrAmbiguousMove, ErrAmbiguousMove},
		{"ErrGameOver", ErrGameOver, ErrGameOver},
		{"ErrWrongPlayer", ErrWrongPlayer, ErrWrongPlayer},
		{"ErrParseFailure", ErrParseFailure, ErrParseFailure},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrGameOver, ErrIllegalMove) {
		t.Error("errors.Is(ErrGameOver, ErrIllegalMove) = true, want false")
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to parse position: %w", ErrInvalidFEN)

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Errorf("errors.Is(wrapped, ErrInvalidFEN) = false, want true")
	}
}

// TestGameError_Error verifies the error message format
func TestGameError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GameError
		contains []string
	}{
		{
			name: "full context",
			err: &GameError{
				Err:      ErrIllegalMove,
				GameID:   "5a0c",
				PlyNum:   12,
				MoveText: "Nxe5",
				File:     "moves.txt",
				Line:     42,
			},
			contains: []string{"game 5a0c", "ply 12", "Nxe5", "moves.txt", "42", "illegal move"},
		},
		{
			name: "minimal context",
			err: &GameError{
				Err:    ErrParseFailure,
				PlyNum: 1,
			},
			contains: []string{"ply 1", "parse failure"},
		},
		{
			name:     "no context",
			err:      &GameError{Err: ErrGameOver},
			contains: []string{"game is over"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("GameError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestGameError_Unwrap verifies that GameError properly implements Unwrap
func TestGameError_Unwrap(t *testing.T) {
	gameErr := &GameError{
		Err:  ErrInvalidFEN,
		File: "start.fen",
	}

	unwrapped := errors.Unwrap(gameErr)
	if !errors.Is(unwrapped, ErrInvalidFEN) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrInvalidFEN)
	}

	if !errors.Is(gameErr, ErrInvalidFEN) {
		t.Error("errors.Is(gameErr, ErrInvalidFEN) = false, want true")
	}
}

// TestGameError_As verifies that errors.As works with GameError
func TestGameError_As(t *testing.T) {
	gameErr := &GameError{
		Err:      ErrIllegalMove,
		PlyNum:   24,
		MoveText: "O-O-O",
	}

	wrapped := fmt.Errorf("replay failed: %w", gameErr)

	var extractedErr *GameError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract GameError")
	}

	if extractedErr.PlyNum != 24 {
		t.Errorf("extractedErr.PlyNum = %d, want 24", extractedErr.PlyNum)
	}
	if extractedErr.MoveText != "O-O-O" {
		t.Errorf("extractedErr.MoveText = %q, want %q", extractedErr.MoveText, "O-O-O")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrInvalidFEN,
		File:     "positions.fen",
		Line:     100,
		Column:   15,
		Expected: "side to move",
		Got:      "x",
	}

	msg := err.Error()

	if !containsIgnoreCase(msg, "positions.fen") {
		t.Errorf("ParseError.Error() should contain filename, got %q", msg)
	}
	if !containsIgnoreCase(msg, "100") {
		t.Errorf("ParseError.Error() should contain line number, got %q", msg)
	}
	if !containsIgnoreCase(msg, "expected side to move, got x") {
		t.Errorf("ParseError.Error() should contain expected/got, got %q", msg)
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{
		Err:  ErrParseFailure,
		File: "moves.txt",
		Line: 1,
	}

	if !errors.Is(parseErr, ErrParseFailure) {
		t.Error("errors.Is(parseErr, ErrParseFailure) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", msg)
	}

	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "move %d by %s", 15, "white")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "move 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

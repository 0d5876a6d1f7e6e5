package engine

import (
	stderrors "errors"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestParseFEN_Initial(t *testing.T) {
	setup, err := ParseFEN(InitialFEN)
	if err != nil {
		t.Fatalf("ParseFEN(InitialFEN) error: %v", err)
	}
	testutil.AssertTrue(t, setup.Board.Equal(chess.Initial()), "board equals Initial()")
	testutil.AssertEqual(t, setup.ToMove, chess.White)
	testutil.AssertEqual(t, setup.HalfmoveClock, 0)
	testutil.AssertEqual(t, setup.FullmoveNumber, 1)
}

func TestFEN_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"initial position", InitialFEN},
		{"after 1.e4", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"en passant available", "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"},
		{"partial castling rights", "r3k2r/8/8/8/8/8/8/R3K2R b Kq - 3 12"},
		{"no castling rights", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1"},
		{"bare kings", "8/8/4k3/8/8/3K4/8/8 w - - 57 90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN() error: %v", err)
			}
			got := FEN(setup.Board, setup.ToMove, setup.HalfmoveClock, setup.FullmoveNumber)
			testutil.AssertEqual(t, got, tt.fen)
		})
	}
}

func TestParseFEN_Defaults(t *testing.T) {
	setup, err := ParseFEN("4k3/8/8/8/8/8/8/4K3")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, setup.ToMove, chess.White)
	testutil.AssertEqual(t, setup.FullmoveNumber, 1)
	testutil.AssertFalse(t, setup.Board.CastleRightKS(chess.White), "castling without a rights field")
}

func TestParseFEN_CastlingRights(t *testing.T) {
	setup, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")
	testutil.AssertNoError(t, err)
	b := setup.Board
	testutil.AssertTrue(t, b.CastleRightKS(chess.White), "CastleRightKS(White)")
	testutil.AssertFalse(t, b.CastleRightQS(chess.White), "CastleRightQS(White)")
	testutil.AssertFalse(t, b.CastleRightKS(chess.Black), "CastleRightKS(Black)")
	testutil.AssertTrue(t, b.CastleRightQS(chess.Black), "CastleRightQS(Black)")
}

func TestParseFEN_EnPassant(t *testing.T) {
	setup, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	testutil.AssertNoError(t, err)
	skip, ok := setup.Board.PawnSkipPosition(chess.Black)
	testutil.AssertTrue(t, ok, "black skip recorded")
	testutil.AssertEqual(t, skip.String(), "d6")
	testutil.AssertTrue(t, setup.Board.CanCaptureEnPassant(chess.White), "CanCaptureEnPassant(White)")
}

func TestParseFEN_Errors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty string", ""},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1"},
		{"rank too long", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank too short", "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece letter", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"non-ASCII piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/R\u014eBQKBNR w KQkq - 0 1"},
		{"pawn on back rank", "4k2P/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad side to move", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"bad castling letter", "4k3/8/8/8/8/8/8/4K3 w X - 0 1"},
		{"castling right without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1"},
		{"en passant off the board", "4k3/8/8/8/8/8/8/4K3 w - z9 0 1"},
		{"en passant without double step", "4k3/8/8/8/8/8/8/4K3 w - d6 0 1"},
		{"bad halfmove clock", "4k3/8/8/8/8/8/8/4K3 w - - abc 1"},
		{"zero fullmove number", "4k3/8/8/8/8/8/8/4K3 w - - 0 0"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4RK2 w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			if !stderrors.Is(err, errors.ErrInvalidFEN) {
				t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestNewGameFromFEN_Error(t *testing.T) {
	g, err := NewGameFromFEN("not a fen")
	testutil.AssertError(t, err)
	testutil.AssertNil(t, g)
}

func TestNewGameFromFEN_Checkmated(t *testing.T) {
	g, err := NewGameFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertNoError(t, err)
	result, over := g.Result()
	testutil.AssertTrue(t, over, "mated position starts concluded")
	testutil.AssertEqual(t, result, Win(chess.Black, Checkmate))
}

func TestSignature(t *testing.T) {
	t.Run("unusable en passant square is dropped", func(t *testing.T) {
		g := NewGame()
		playMoves(t, g, "e4")
		testutil.AssertContains(t, g.FEN(), "KQkq e3")
		testutil.AssertEqual(t, g.Signature(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq -")
	})

	t.Run("usable en passant square is kept", func(t *testing.T) {
		g := NewGame()
		playMoves(t, g, "e4 a6 e5 d5")
		testutil.AssertContains(t, g.Signature(), "KQkq d6")
	})

	t.Run("castling rights distinguish positions", func(t *testing.T) {
		a, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		b, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1")
		if Signature(a.Board, chess.White) == Signature(b.Board, chess.White) {
			t.Error("positions with different castling rights share a signature")
		}
	})
}

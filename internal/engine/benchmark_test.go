package engine

import (
	"testing"
)

var benchFENs = map[string]string{
	"Initial":   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"Castling":  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkParseFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ParseFEN(fen)
			}
		})
	}
}

func BenchmarkFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			setup, _ := ParseFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				FEN(setup.Board, setup.ToMove, setup.HalfmoveClock, setup.FullmoveNumber)
			}
		})
	}
}

func BenchmarkSignature(b *testing.B) {
	setup, _ := ParseFEN(benchFENs["Complex"])
	for i := 0; i < b.N; i++ {
		Signature(setup.Board, setup.ToMove)
	}
}

func BenchmarkAllLegalMovesFor(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			game, _ := NewGameFromFEN(fen)
			player := game.CurrentPlayer()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				game.AllLegalMovesFor(player)
			}
		})
	}
}

func BenchmarkFindMove(b *testing.B) {
	cases := map[string]string{
		"SAN":      "Nxf7",
		"UCI":      "d5e6",
		"Castling": "O-O",
	}
	game, _ := NewGameFromFEN(benchFENs["Complex"])
	for name, text := range cases {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				game.FindMove(text)
			}
		})
	}
}

func BenchmarkPlayGame(b *testing.B) {
	moves := SplitMoves("1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 5. O-O Be7 6. Re1 b5 7. Bb3 d6 8. c3 O-O 9. h3")
	for i := 0; i < b.N; i++ {
		game := NewGame()
		for _, text := range moves {
			game.Play(text, nil)
		}
	}
}

package perft

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

const (
	kiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4 = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

func mustSetup(t *testing.T, fen string) *engine.Setup {
	t.Helper()
	setup, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return setup
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  uint64
		long  bool
	}{
		{"initial depth 0", engine.InitialFEN, 0, 1, false},
		{"initial depth 1", engine.InitialFEN, 1, 20, false},
		{"initial depth 2", engine.InitialFEN, 2, 400, false},
		{"initial depth 3", engine.InitialFEN, 3, 8902, false},
		{"initial depth 4", engine.InitialFEN, 4, 197281, true},
		{"kiwipete depth 1", kiwipete, 1, 48, false},
		{"kiwipete depth 2", kiwipete, 2, 2039, false},
		{"kiwipete depth 3", kiwipete, 3, 97862, true},
		{"position 3 depth 1", position3, 1, 14, false},
		{"position 3 depth 2", position3, 2, 191, false},
		{"position 3 depth 3", position3, 3, 2812, false},
		{"position 3 depth 4", position3, 4, 43238, true},
		{"position 4 depth 1", position4, 1, 6, false},
		{"position 4 depth 2", position4, 2, 264, false},
		{"position 4 depth 3", position4, 3, 9467, true},
		{"position 5 depth 1", position5, 1, 44, false},
		{"position 5 depth 2", position5, 2, 1486, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.long && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			setup := mustSetup(t, tt.fen)
			before := setup.Board.Copy()
			if got := Count(setup.Board, setup.ToMove, tt.depth); got != tt.want {
				t.Errorf("Count(depth %d) = %d, want %d", tt.depth, got, tt.want)
			}
			testutil.AssertTrue(t, before.Equal(setup.Board), "Count left the board unchanged")
		})
	}
}

func TestDivide(t *testing.T) {
	setup := mustSetup(t, kiwipete)
	entries, total, err := Divide(setup.Board, setup.ToMove, 2, 4)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, total, uint64(2039))
	testutil.AssertEqual(t, len(entries), 48)

	sorted := sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	testutil.AssertTrue(t, sorted, "entries sorted by move")

	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	testutil.AssertEqual(t, sum, total)

	// Workers must agree with the sequential count.
	serial, serialTotal, err := Divide(setup.Board, setup.ToMove, 2, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, serialTotal, total)
	if diff := cmp.Diff(serial, entries); diff != "" {
		t.Errorf("divide differs between 1 and 4 workers (-serial +parallel):\n%s", diff)
	}
}

func TestCountWithTable(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  uint64
		long  bool
	}{
		{"initial depth 4", engine.InitialFEN, 4, 197281, false},
		{"kiwipete depth 3", kiwipete, 3, 97862, false},
		{"position 3 depth 5", position3, 5, 674624, true},
		{"position 4 depth 3", position4, 3, 9467, false},
		{"position 5 depth 3", position5, 3, 62379, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.long && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			setup := mustSetup(t, tt.fen)
			table := hashing.NewThreadSafeNodeTable(0)
			if got := CountWithTable(setup.Board, setup.ToMove, tt.depth, table); got != tt.want {
				t.Errorf("CountWithTable(depth %d) = %d, want %d", tt.depth, got, tt.want)
			}
			// A second count is answered from the root entry.
			hits := table.Hits()
			testutil.AssertEqual(t, CountWithTable(setup.Board, setup.ToMove, tt.depth, table), tt.want)
			testutil.AssertEqual(t, table.Hits(), hits+1)
		})
	}
}

func TestCountWithTable_Capacity(t *testing.T) {
	table := hashing.NewThreadSafeNodeTable(10)
	got := CountWithTable(chess.Initial(), chess.White, 3, table)
	testutil.AssertEqual(t, got, uint64(8902))
	testutil.AssertTrue(t, table.IsFull(), "a small table fills up")
	testutil.AssertEqual(t, table.Len(), 10)
}

func TestDivideWithTable(t *testing.T) {
	setup := mustSetup(t, engine.InitialFEN)
	want, wantTotal, err := Divide(setup.Board, setup.ToMove, 3, 1)
	testutil.AssertNoError(t, err)

	table := hashing.NewThreadSafeNodeTable(0)
	got, total, err := DivideWithTable(setup.Board, setup.ToMove, 3, 4, table)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, total, wantTotal)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("divide differs with a shared table (-plain +table):\n%s", diff)
	}
	testutil.AssertTrue(t, table.Len() > 0, "root moves stored their subtrees")
}

func TestDivide_InvalidDepth(t *testing.T) {
	_, _, err := Divide(chess.Initial(), chess.White, 0, 1)
	testutil.AssertError(t, err)
}

func TestDivide_NoMoves(t *testing.T) {
	setup := mustSetup(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	entries, total, err := Divide(setup.Board, setup.ToMove, 3, 2)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, total, uint64(0))
	testutil.AssertEqual(t, len(entries), 0)
}

// oracleMoves returns the sorted UCI moves notnil/chess finds for fen.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := nchess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejected FEN %q: %v", fen, err)
	}
	game := nchess.NewGame(opt)
	pos := game.Position()
	var moves []string
	for _, m := range game.ValidMoves() {
		moves = append(moves, nchess.UCINotation{}.Encode(pos, m))
	}
	sort.Strings(moves)
	return moves
}

func ourMoves(b *chess.Board, mover chess.Colour) []string {
	var moves []string
	for _, m := range b.LegalMovesFor(mover) {
		moves = append(moves, m.UCI())
	}
	sort.Strings(moves)
	return moves
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for _, fen := range []string{engine.InitialFEN, kiwipete, position3, position4, position5} {
		t.Run(fen, func(t *testing.T) {
			setup := mustSetup(t, fen)
			if diff := cmp.Diff(oracleMoves(t, fen), ourMoves(setup.Board, setup.ToMove)); diff != "" {
				t.Errorf("legal moves differ (-oracle +ours):\n%s", diff)
			}
		})
	}
}

func TestRandomPlayoutsMatchOracle(t *testing.T) {
	games, plies := 20, 120
	if testing.Short() {
		games, plies = 4, 60
	}
	rng := rand.New(rand.NewSource(20240101))

	for g := 0; g < games; g++ {
		setup := mustSetup(t, engine.InitialFEN)
		board, mover := setup.Board, setup.ToMove
		halfmove := 0

		for ply := 0; ply < plies; ply++ {
			fen := engine.FEN(board, mover, halfmove, ply/2+1)
			want := oracleMoves(t, fen)
			got := ourMoves(board, mover)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("game %d ply %d, %s: legal moves differ (-oracle +ours):\n%s", g, ply, fen, diff)
			}
			if len(got) == 0 {
				break
			}

			legal := board.LegalMovesFor(mover)
			move := legal[rng.Intn(len(legal))]
			Play(board, move, mover)
			mover = mover.Opponent()
		}
	}
}

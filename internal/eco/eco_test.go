package eco

import (
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/parser"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

const testECOData = `
[ECO "B90"]
[Opening "Sicilian"]
[Variation "Najdorf"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *

[ECO "C50"]
[Opening "Giuoco Piano"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *

[ECO "D35"]
[Opening "QGD"]
[Variation "exchange variation"]

1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 *
`

const basePGNTags = `[Event "Test"]
[Site "Test"]
[Date "2024.01.01"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "*"]

`

const sicilianNajdorfPGN = basePGNTags + `1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *`

const giuocoPianoPGN = basePGNTags + `1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *`

const noMatchPGN = basePGNTags + `1. a3 *`

const extendedSicilianPGN = basePGNTags + `1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 6. Be2 e5 7. Nb3 *`

// Reaches the Najdorf position with a different move order.
const transposedSicilianPGN = basePGNTags + `1. Nf3 c5 2. e4 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *`

// playPGN parses the first game of pgn and plays its moves on a new game.
func playPGN(tb testing.TB, pgn string) *engine.GameState {
	tb.Helper()
	record, err := parser.NewParser(strings.NewReader(pgn), nil).ParseGame()
	if err != nil || record == nil {
		tb.Fatalf("failed to parse test game: %v\n%s", err, pgn)
	}

	game := engine.NewGame()
	if fen := record.Tag("FEN"); fen != "" {
		if game, err = engine.NewGameFromFEN(fen); err != nil {
			tb.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
		}
	}
	for _, text := range record.Moves {
		if err := game.Play(text, nil); err != nil {
			tb.Fatalf("Play(%q) error: %v", text, err)
		}
	}
	return game
}

func newTestClassifier(t *testing.T) *ECOClassifier {
	t.Helper()
	ec := NewECOClassifier()
	if err := ec.LoadFromReader(strings.NewReader(testECOData)); err != nil {
		t.Fatalf("failed to load ECO data: %v", err)
	}
	return ec
}

func TestECOClassifierLoad(t *testing.T) {
	ec := newTestClassifier(t)

	if got := ec.EntriesLoaded(); got != 3 {
		t.Errorf("EntriesLoaded() = %d; want 3", got)
	}
}

func TestECOClassifierLoadSkipsBadEntries(t *testing.T) {
	ec := NewECOClassifier()
	data := `[Opening "No code"]

1. e4 *

[ECO "A00"]
[Opening "Nothing playable"]

1. Ke2 *

[ECO "C20"]
[Opening "King's Pawn"]

1. e4 e5 *

[ECO "C20"]
[Opening "Duplicate"]

1. e4 e5 *
`
	testutil.AssertNoError(t, ec.LoadFromReader(strings.NewReader(data)))
	testutil.AssertEqual(t, ec.EntriesLoaded(), 1)
}

func TestECOClassifySicilian(t *testing.T) {
	ec := newTestClassifier(t)
	game := playPGN(t, sicilianNajdorfPGN)

	match := ec.ClassifyGame(game)
	if match == nil {
		t.Fatal("ClassifyGame() returned nil; want match")
	}

	if match.ECOCode != "B90" {
		t.Errorf("ECOCode = %q; want B90", match.ECOCode)
	}
	if match.Opening != "Sicilian" {
		t.Errorf("Opening = %q; want Sicilian", match.Opening)
	}
	if match.Variation != "Najdorf" {
		t.Errorf("Variation = %q; want Najdorf", match.Variation)
	}
}

func TestECOClassifyItalian(t *testing.T) {
	ec := newTestClassifier(t)
	game := playPGN(t, giuocoPianoPGN)

	match := ec.ClassifyGame(game)
	if match == nil {
		t.Fatal("ClassifyGame() returned nil; want match")
	}

	if match.ECOCode != "C50" {
		t.Errorf("ECOCode = %q; want C50", match.ECOCode)
	}
	if match.Opening != "Giuoco Piano" {
		t.Errorf("Opening = %q; want Giuoco Piano", match.Opening)
	}
}

func TestECOAddTags(t *testing.T) {
	ec := newTestClassifier(t)
	game := playPGN(t, sicilianNajdorfPGN)
	tags := map[string]string{"Event": "Test"}

	if !ec.AddECOTags(game, tags) {
		t.Error("AddECOTags() = false; want true")
	}

	if got := tags["ECO"]; got != "B90" {
		t.Errorf("Tags[ECO] = %q; want B90", got)
	}
	if got := tags["Opening"]; got != "Sicilian" {
		t.Errorf("Tags[Opening] = %q; want Sicilian", got)
	}
	if got := tags["Variation"]; got != "Najdorf" {
		t.Errorf("Tags[Variation] = %q; want Najdorf", got)
	}
	if _, ok := tags["SubVariation"]; ok {
		t.Error("SubVariation should not be set for an entry without one")
	}
	if got := tags["Event"]; got != "Test" {
		t.Errorf("Tags[Event] = %q; want it untouched", got)
	}
}

func TestECONoMatch(t *testing.T) {
	ec := newTestClassifier(t)
	game := playPGN(t, noMatchPGN)

	match := ec.ClassifyGame(game)
	if match != nil {
		t.Errorf("ClassifyGame() = %q; want nil", match.ECOCode)
	}

	tags := map[string]string{}
	if ec.AddECOTags(game, tags) || len(tags) != 0 {
		t.Errorf("AddECOTags() set %v; want nothing", tags)
	}
}

func TestECOPartialMatch(t *testing.T) {
	ec := newTestClassifier(t)
	game := playPGN(t, extendedSicilianPGN)

	match := ec.ClassifyGame(game)
	if match == nil {
		t.Fatal("ClassifyGame() returned nil; want match for extended game")
	}

	if match.ECOCode != "B90" {
		t.Errorf("ECOCode = %q; want B90", match.ECOCode)
	}
}

func TestECOTransposition(t *testing.T) {
	ec := newTestClassifier(t)
	game := playPGN(t, transposedSicilianPGN)

	match := ec.ClassifyGame(game)
	if match == nil {
		t.Fatal("ClassifyGame() returned nil; want the position match")
	}
	testutil.AssertEqual(t, match.ECOCode, "B90")
}

func TestECOEmptyClassifier(t *testing.T) {
	game := playPGN(t, sicilianNajdorfPGN)
	testutil.AssertNil(t, NewECOClassifier().ClassifyGame(game))
}

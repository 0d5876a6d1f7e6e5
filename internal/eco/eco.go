// Package eco provides ECO (Encyclopaedia of Chess Openings) classification.
package eco

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/parser"
)

// ECOHalfMoveLimit is the maximum distance from an ECO line for a match.
const ECOHalfMoveLimit = 6

// ECOTableSize is the size of the ECO hash table.
const ECOTableSize = 4096

// ECOTags are the tags AddECOTags may set, in output order.
var ECOTags = []string{"ECO", "Opening", "Variation", "SubVariation"}

// ECOEntry represents a single ECO classification entry.
type ECOEntry struct {
	ECOCode        string // e.g., "B33"
	Opening        string // e.g., "Sicilian"
	Variation      string // e.g., "Sveshnikov"
	SubVariation   string
	RequiredHash   uint64 // Position hash for matching
	CumulativeHash uint64 // Cumulative hash of all moves
	HalfMoves      int    // Number of half-moves to reach this position
	Next           *ECOEntry
}

// ECOClassifier provides ECO classification for chess games.
type ECOClassifier struct {
	table         [ECOTableSize]*ECOEntry
	maxHalfMoves  int
	entriesLoaded int
}

// NewECOClassifier creates a new ECO classifier.
func NewECOClassifier() *ECOClassifier {
	return &ECOClassifier{
		maxHalfMoves: ECOHalfMoveLimit,
	}
}

// LoadFromFile loads ECO data from a PGN file.
func (ec *ECOClassifier) LoadFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return ec.LoadFromReader(file)
}

// LoadFromReader loads ECO data from a reader.
func (ec *ECOClassifier) LoadFromReader(r io.Reader) error {
	games, err := parser.NewParser(r, nil).ParseAllGames()
	if err != nil {
		return fmt.Errorf("error parsing ECO file: %w", err)
	}

	for _, game := range games {
		ec.addECOEntry(game)
	}

	return nil
}

// addECOEntry replays a line from the ECO file and adds its final position
// to the table.
func (ec *ECOClassifier) addECOEntry(game *parser.Game) {
	ecoCode := game.Tag("ECO")
	if ecoCode == "" {
		return // Skip entries without ECO code
	}

	line := engine.NewGame()
	var cumulativeHash, posHash uint64
	halfMoves := 0

	for _, text := range game.Moves {
		if err := line.Play(text, nil); err != nil {
			// Move failed, stop here
			break
		}
		halfMoves++
		posHash = hashing.ZobristHash(line.Board(), line.CurrentPlayer())
		cumulativeHash ^= posHash
	}

	if halfMoves == 0 {
		return // No moves in this entry
	}

	entry := &ECOEntry{
		ECOCode:        ecoCode,
		Opening:        game.Tag("Opening"),
		Variation:      game.Tag("Variation"),
		SubVariation:   game.Tag("SubVariation"),
		RequiredHash:   posHash,
		CumulativeHash: cumulativeHash,
		HalfMoves:      halfMoves,
	}

	// Check for collision
	ix := entry.RequiredHash % ECOTableSize
	for existing := ec.table[ix]; existing != nil; existing = existing.Next {
		if existing.RequiredHash == entry.RequiredHash &&
			existing.HalfMoves == entry.HalfMoves &&
			existing.CumulativeHash == entry.CumulativeHash {
			// Collision - skip this entry
			return
		}
	}

	entry.Next = ec.table[ix]
	ec.table[ix] = entry
	ec.entriesLoaded++

	if halfMoves+ECOHalfMoveLimit > ec.maxHalfMoves {
		ec.maxHalfMoves = halfMoves + ECOHalfMoveLimit
	}
}

// ClassifyGame finds the best ECO match for a game by replaying its history
// from the starting position. Returns the ECO entry or nil if no match found.
func (ec *ECOClassifier) ClassifyGame(game *engine.GameState) *ECOEntry {
	if ec.entriesLoaded == 0 {
		return nil
	}

	setup, err := engine.ParseFEN(game.StartFEN())
	if err != nil {
		return nil
	}
	board := setup.Board

	var bestMatch *ECOEntry
	var cumulativeHash uint64
	halfMoves := 0

	for _, rec := range game.MoveHistory() {
		move := *rec.Move
		board.ClearPawnSkipPosition(rec.Player)
		move.Execute(board)
		halfMoves++

		// Don't bother checking if we're past max ECO depth
		if halfMoves > ec.maxHalfMoves {
			break
		}

		posHash := hashing.ZobristHash(board, rec.Player.Opponent())
		cumulativeHash ^= posHash

		if match := ec.findMatch(posHash, cumulativeHash, halfMoves); match != nil {
			bestMatch = match
		}
	}

	return bestMatch
}

// findMatch looks up a position in the ECO table.
func (ec *ECOClassifier) findMatch(posHash, cumulativeHash uint64, halfMoves int) *ECOEntry {
	ix := posHash % ECOTableSize
	var possible *ECOEntry

	for entry := ec.table[ix]; entry != nil; entry = entry.Next {
		if entry.RequiredHash == posHash {
			// Exact match on position and cumulative hash
			if entry.HalfMoves == halfMoves && entry.CumulativeHash == cumulativeHash {
				return entry
			}
			// Partial match within limit
			if abs(halfMoves-entry.HalfMoves) <= ECOHalfMoveLimit {
				possible = entry
			}
		}
	}

	return possible
}

// AddECOTags classifies game and stores the ECO, Opening, Variation and
// SubVariation values of the match in tags.
func (ec *ECOClassifier) AddECOTags(game *engine.GameState, tags map[string]string) bool {
	match := ec.ClassifyGame(game)
	if match == nil {
		return false
	}

	values := []string{match.ECOCode, match.Opening, match.Variation, match.SubVariation}
	for i, tag := range ECOTags {
		if values[i] != "" {
			tags[tag] = values[i]
		}
	}

	return true
}

// EntriesLoaded returns the number of ECO entries loaded.
func (ec *ECOClassifier) EntriesLoaded() int {
	return ec.entriesLoaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

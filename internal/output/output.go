// Package output provides game record formatting in various notations.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/eco"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// sevenTagRoster lists the PGN tags written for every game, in order.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame outputs a game record as PGN.
func OutputGame(game *engine.GameState, cfg *config.Config) {
	w := cfg.OutputFile

	outputTags(game, cfg.Game.Tags, w)

	// Blank line between tags and moves
	fmt.Fprintln(w)

	outputMoves(game, cfg, w)

	// Blank line between games
	fmt.Fprintln(w)
}

// outputTags outputs the seven tag roster plus the setup and termination tags.
// Roster values other than Result may come from tags; the rest default to "?".
func outputTags(game *engine.GameState, tags map[string]string, w io.Writer) {
	for _, tag := range sevenTagRoster {
		value := "?"
		switch {
		case tag == "Result":
			value = GameResult(game)
		case tags[tag] != "":
			value = tags[tag]
		case tag == "Date":
			value = "????.??.??"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}

	fmt.Fprintf(w, "[GameId \"%s\"]\n", game.ID())
	for _, tag := range eco.ECOTags {
		if value := tags[tag]; value != "" {
			fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
		}
	}
	if fen := game.StartFEN(); fen != engine.InitialFEN {
		fmt.Fprintf(w, "[SetUp \"1\"]\n")
		fmt.Fprintf(w, "[FEN \"%s\"]\n", escapeTagValue(fen))
	}
	if result, over := game.Result(); over {
		fmt.Fprintf(w, "[Termination \"%s\"]\n", escapeTagValue(result.Description()))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// GameResult returns the PGN result token, "*" while the game is in progress.
func GameResult(game *engine.GameState) string {
	if result, over := game.Result(); over {
		return result.String()
	}
	return "*"
}

// outputMoves outputs the move list with move numbers and the result.
func outputMoves(game *engine.GameState, cfg *config.Config, w io.Writer) {
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	replay := newReplay(game)
	for i, rec := range game.MoveHistory() {
		if cfg.Output.KeepMoveNumbers {
			if replay.toMove == chess.White {
				ow.Write(fmt.Sprintf("%d.", replay.moveNum))
			} else if i == 0 {
				// Black to move at start
				ow.Write(fmt.Sprintf("%d...", replay.moveNum))
			}
		}

		ow.Write(formatMove(rec, replay.board, cfg.Output))
		replay.apply(rec)
	}

	if cfg.Output.KeepResults {
		ow.Write(GameResult(game))
	}

	ow.NewLine()
}

// replay tracks the position while walking a game's history from its start.
type replay struct {
	board    *chess.Board
	toMove   chess.Colour
	moveNum  int
	halfmove int
}

func newReplay(game *engine.GameState) *replay {
	setup, err := engine.ParseFEN(game.StartFEN())
	if err != nil {
		return &replay{board: chess.Initial(), toMove: chess.White, moveNum: 1}
	}
	return &replay{
		board:    setup.Board,
		toMove:   setup.ToMove,
		moveNum:  setup.FullmoveNumber,
		halfmove: setup.HalfmoveClock,
	}
}

// apply plays rec on the replay board. The move is copied so the game's own
// record is left untouched.
func (r *replay) apply(rec engine.Record) {
	move := *rec.Move
	r.board.ClearPawnSkipPosition(rec.Player)
	if move.Execute(r.board) {
		r.halfmove = 0
	} else {
		r.halfmove++
	}
	if r.toMove == chess.Black {
		r.moveNum++
	}
	r.toMove = r.toMove.Opponent()
}

// fen returns the FEN of the replayed position.
func (r *replay) fen() string {
	return engine.FEN(r.board, r.toMove, r.halfmove, r.moveNum)
}

// formatMove formats a move in the configured notation against the board it
// is played from.
func formatMove(rec engine.Record, board *chess.Board, cfg config.OutputConfig) string {
	switch cfg.Format {
	case config.LALG:
		return formatLongAlgebraic(rec.Move, board, false, false)
	case config.HALG:
		return formatLongAlgebraic(rec.Move, board, true, false)
	case config.ELALG:
		return formatLongAlgebraic(rec.Move, board, false, true)
	case config.UCI:
		return rec.Move.UCI()
	default:
		if !cfg.KeepChecks {
			return strings.TrimRight(rec.SAN, "+#")
		}
		return rec.SAN
	}
}

// formatLongAlgebraic formats a move in long algebraic notation.
func formatLongAlgebraic(move *chess.Move, board *chess.Board, hyphenated bool, enhanced bool) string {
	switch move.Type {
	case chess.CastleKS:
		return chess.CastleKSNotation
	case chess.CastleQS:
		return chess.CastleQSNotation
	}

	var sb strings.Builder

	// Piece letter for enhanced notation
	moving := board.At(move.From)
	if enhanced && moving != nil {
		sb.WriteString(moving.Kind.Letter())
	}

	sb.WriteString(move.From.String())

	// Separator for hyphenated notation
	if hyphenated {
		if isCapture(move, board) {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('-')
		}
	}

	sb.WriteString(move.To.String())

	if move.Type == chess.PawnPromotion {
		sb.WriteByte('=')
		sb.WriteString(move.Promotion.Letter())
	}

	return sb.String()
}

// isCapture reports whether move takes a piece on board.
func isCapture(move *chess.Move, board *chess.Board) bool {
	return move.Type == chess.EnPassant || !board.IsEmpty(move.To)
}

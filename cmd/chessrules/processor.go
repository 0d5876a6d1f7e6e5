// processor.go - Game playback, record output and node counting
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/clock"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/eco"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/parser"
	"github.com/lgbarn/chessrules-go/internal/perft"
	"github.com/lgbarn/chessrules-go/internal/render"
)

// run plays the configured game, then either counts nodes from the final
// position or writes the game record.
func run(ctx context.Context, cfg *config.Config) error {
	game, err := playGame(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Game.ECOFile != "" {
		if err := classifyOpening(game, cfg); err != nil {
			return err
		}
	}

	if cfg.Verbosity > 0 {
		reportSummary(game, cfg)
	}

	if cfg.Perft.Depth > 0 {
		return runPerft(game, cfg)
	}
	return writeGame(game, cfg)
}

// playGame creates the game described by cfg and plays its move list.
func playGame(ctx context.Context, cfg *config.Config) (*engine.GameState, error) {
	game := engine.NewGame()
	if cfg.Game.StartFEN != "" {
		var err error
		game, err = engine.NewGameFromFEN(cfg.Game.StartFEN)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Verbosity > 1 {
		game.OnMoveCompleted(func(ev engine.MoveEvent) {
			fmt.Fprintf(cfg.LogFile, "ply %d: %s plays %s\n", ev.Ply, ev.Record.Player, ev.Record.SAN)
		})
	}
	if cfg.Verbosity > 0 {
		game.OnGameOver(func(result engine.Result) {
			fmt.Fprintf(cfg.LogFile, "%s\n", result.Description())
		})
	}

	clk := startClock(ctx, game, cfg)
	if clk != nil {
		defer clk.Stop()
	}

	if err := playMoves(game, engine.SplitMoves(cfg.Game.Moves), clk); err != nil {
		return game, err
	}

	if cfg.Game.Resign != "" {
		player := chess.White
		if cfg.Game.Resign == "black" {
			player = chess.Black
		}
		if err := game.HandleSurrender(player); err != nil {
			return game, err
		}
	}
	return game, nil
}

// startClock starts the configured time control with the game's player to
// move on turn. It returns nil for untimed games.
func startClock(ctx context.Context, game *engine.GameState, cfg *config.Config) *clock.Clock {
	if cfg.Game.TimeMode == clock.None {
		return nil
	}
	clk := clock.New(cfg.Game.TimeMode, clock.WithFirstPlayer(game.CurrentPlayer()))
	clk.OnTimeout(func(c chess.Colour) {
		game.HandleTimeOut(c) //nolint:errcheck // the game may already be over
	})
	clk.Start(ctx)
	return clk
}

// playMoves plays each move in turn, switching the clock after every move.
// clk may be nil for untimed games.
func playMoves(game *engine.GameState, moves []string, clk *clock.Clock) error {
	var timer engine.Clock
	if clk != nil {
		timer = clk
	}
	for _, text := range moves {
		if err := game.Play(text, timer); err != nil {
			return err
		}
		if clk != nil {
			clk.SwitchTurn()
		}
	}
	return nil
}

// reportSummary logs the game identifier, length and state.
func reportSummary(game *engine.GameState, cfg *config.Config) {
	state := "in progress, " + game.CurrentPlayer().String() + " to move"
	if result, over := game.Result(); over {
		state = result.String()
	}
	fmt.Fprintf(cfg.LogFile, "Game %s: %d ply, %s\n", game.ID(), len(game.MoveHistory()), state)
}

// writeGame writes the game record and the requested views of the final position.
func writeGame(game *engine.GameState, cfg *config.Config) error {
	gw := output.NewGameWriter(cfg.OutputFile, cfg)
	if err := gw.WriteGame(game); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}

	if cfg.Output.ShowBoard {
		fmt.Fprint(cfg.OutputFile, output.BoardDiagram(game.Board(), cfg.Output.FlipBoard))
	}
	if cfg.Output.ShowFEN {
		fmt.Fprintln(cfg.OutputFile, game.FEN())
	}
	if cfg.Output.SVGFile != "" {
		return writeSVG(game, cfg)
	}
	return nil
}

// writeSVG draws the final position to cfg.Output.SVGFile, highlighting the
// last move.
func writeSVG(game *engine.GameState, cfg *config.Config) error {
	opts := render.Options{
		SquareSize:  cfg.Output.SVGSquareSize,
		Flip:        cfg.Output.FlipBoard,
		Coordinates: true,
	}
	if history := game.MoveHistory(); len(history) > 0 {
		last := history[len(history)-1].Move
		opts.Highlight = []chess.Position{last.From, last.To}
	}

	file, err := os.Create(cfg.Output.SVGFile)
	if err != nil {
		return fmt.Errorf("creating SVG file %s: %w", cfg.Output.SVGFile, err)
	}
	if err := render.SVG(file, game.Board(), opts); err != nil {
		file.Close() //nolint:errcheck,gosec // G104: write error takes precedence
		return err
	}
	return file.Close()
}

// runPerft counts leaf nodes from the game's current position.
func runPerft(game *engine.GameState, cfg *config.Config) error {
	board, mover := game.Board(), game.CurrentPlayer()
	start := time.Now()

	var table *hashing.ThreadSafeNodeTable
	if cfg.Perft.TableSize > 0 {
		table = hashing.NewThreadSafeNodeTable(cfg.Perft.TableSize)
	}

	var nodes uint64
	if cfg.Perft.Divide {
		entries, total, err := perft.DivideWithTable(board, mover, cfg.Perft.Depth, cfg.Perft.Workers, table)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cfg.OutputFile, "%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Fprintln(cfg.OutputFile)
		nodes = total
	} else {
		nodes = perft.CountWithTable(board, mover, cfg.Perft.Depth, table)
	}
	fmt.Fprintf(cfg.OutputFile, "Nodes searched: %d\n", nodes)

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "perft(%d) took %s\n", cfg.Perft.Depth, time.Since(start).Round(time.Millisecond))
		if table != nil {
			fmt.Fprintf(cfg.LogFile, "node table: %d entries, %d hits\n", table.Len(), table.Hits())
		}
	}
	return nil
}

// loadMovesFile reads a move list, ignoring blank lines and '#' comments.
func loadMovesFile(path string) (string, error) {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return "", fmt.Errorf("opening moves file %s: %w", path, err)
	}
	defer file.Close()

	var moves []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(stripComment(scanner.Text())); line != "" {
			moves = append(moves, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading moves file %s: %w", path, err)
	}
	return strings.Join(moves, " "), nil
}

// classifyOpening adds the ECO classification of game to cfg.Game.Tags.
func classifyOpening(game *engine.GameState, cfg *config.Config) error {
	classifier := eco.NewECOClassifier()
	if err := classifier.LoadFromFile(cfg.Game.ECOFile); err != nil {
		return err
	}
	if cfg.Game.Tags == nil {
		cfg.Game.Tags = make(map[string]string)
	}
	if !classifier.AddECOTags(game, cfg.Game.Tags) && cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "No ECO match among %d lines\n", classifier.EntriesLoaded())
	}
	return nil
}

// applyPGNFile takes the start position, roster tags and moves from the first
// game of a PGN file. An explicit -fen wins over the file's FEN tag, and the
// file's moves are played before any -moves.
func applyPGNFile(cfg *config.Config, path string) error {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return fmt.Errorf("opening PGN file %s: %w", path, err)
	}
	defer file.Close()

	game, err := parser.NewParser(file, cfg).ParseGame()
	if err != nil {
		return errors.Wrapf(err, "PGN file %s", path)
	}
	if game == nil {
		return &errors.ParseError{
			Err:      errors.ErrParseFailure,
			File:     path,
			Expected: "a PGN game",
			Got:      "end of input",
		}
	}

	if fen := game.Tag("FEN"); fen != "" && cfg.Game.StartFEN == "" {
		cfg.Game.StartFEN = fen
	}
	cfg.Game.Tags = game.Tags
	cfg.Game.Moves = joinMoves(strings.Join(game.Moves, " "), cfg.Game.Moves)
	return nil
}

// stripComment removes a '#' comment from line. A '#' directly after a move
// is a mate marker, so a comment must start the line or follow whitespace.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

// joinMoves appends more moves to a move list.
func joinMoves(moves, more string) string {
	if moves == "" {
		return more
	}
	if more == "" {
		return moves
	}
	return moves + " " + more
}

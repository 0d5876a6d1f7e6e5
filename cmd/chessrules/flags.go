// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/clock"
	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Game options
	startFEN  = flag.String("fen", "", "Starting position in FEN (default: standard position)")
	moveList  = flag.String("moves", "", "Moves to play in SAN or UCI, e.g. \"1. e4 e5 2. Nf3\"")
	movesFile = flag.String("i", "", "Read the moves to play from this file ('#' starts a comment)")
	pgnFile   = flag.String("pgn", "", "Replay the first game of this PGN file")
	ecoFile   = flag.String("e", "", "Classify the opening using the ECO lines in this PGN file")
	timeMode  = flag.String("time", "none", "Time control: none, blitz, rapid, standard")
	resign    = flag.String("resign", "", "Player who resigns once the moves are played: white or black")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length")
	outputFormat = flag.String("W", "", "Move format: san, lalg, halg, elalg, uci")
	jsonOutput   = flag.Bool("J", false, "Output the game record in JSON format")
	noResults    = flag.Bool("noresults", false, "Don't output the result")
	noChecks     = flag.Bool("nochecks", false, "Don't output check and mate markers")
	noNumbers    = flag.Bool("nonumbers", false, "Don't output move numbers")

	// Position output
	showBoard = flag.Bool("board", false, "Print a diagram of the final position")
	showFEN   = flag.Bool("showfen", false, "Print the FEN of the final position")
	svgFile   = flag.String("svg", "", "Write an SVG diagram of the final position to this file")
	svgSize   = flag.Int("svgsize", 60, "Square size in pixels for -svg")
	flipBoard = flag.Bool("flip", false, "Draw diagrams from Black's side")

	// Perft
	perftDepth = flag.Int("perft", 0, "Count leaf nodes to this depth from the final position")
	divide     = flag.Bool("divide", false, "With -perft, print the count below each root move")
	workers    = flag.Int("workers", runtime.NumCPU(), "Goroutines used by -perft -divide")
	hashSize   = flag.Int("hash", 1<<20, "Cached subtree counts for -perft (0 disables the cache)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Log every move as it is played")

	quiet   = flag.Bool("s", false, "Silent mode (no game summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyGameFlags(cfg); err != nil {
		return err
	}
	applyContentFlags(cfg)
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}
	applyPositionFlags(cfg)
	applyPerftFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return nil
}

// applyGameFlags configures the starting position, moves and clock.
func applyGameFlags(cfg *config.Config) error {
	cfg.Game.StartFEN = *startFEN
	cfg.Game.Moves = *moveList
	cfg.Game.Resign = *resign
	cfg.Game.ECOFile = *ecoFile

	if *pgnFile != "" {
		if err := applyPGNFile(cfg, *pgnFile); err != nil {
			return err
		}
	}

	if *movesFile != "" {
		moves, err := loadMovesFile(*movesFile)
		if err != nil {
			return err
		}
		cfg.Game.Moves = joinMoves(cfg.Game.Moves, moves)
	}

	mode, err := clock.ParseTimeMode(*timeMode)
	if err != nil {
		return err
	}
	cfg.Game.TimeMode = mode
	return nil
}

// applyContentFlags configures content output settings.
func applyContentFlags(cfg *config.Config) {
	cfg.Output.KeepResults = !*noResults
	cfg.Output.KeepChecks = !*noChecks
	cfg.Output.KeepMoveNumbers = !*noNumbers
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.MaxLineLength = uint(*lineLength)
}

// applyOutputFormatFlags configures the move format.
func applyOutputFormatFlags(cfg *config.Config) error {
	if *outputFormat == "" {
		cfg.Output.Format = config.SAN
		return nil
	}
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	return nil
}

// applyPositionFlags configures the final-position diagrams.
func applyPositionFlags(cfg *config.Config) {
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.ShowFEN = *showFEN
	cfg.Output.SVGFile = *svgFile
	cfg.Output.SVGSquareSize = *svgSize
	cfg.Output.FlipBoard = *flipBoard
}

// applyPerftFlags configures node counting.
func applyPerftFlags(cfg *config.Config) {
	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Divide = *divide
	cfg.Perft.Workers = *workers
	cfg.Perft.TableSize = *hashSize
}

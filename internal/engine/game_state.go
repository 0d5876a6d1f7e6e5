package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// fiftyMovePlies is the number of plies without a capture or pawn move that
// draws the game.
const fiftyMovePlies = 100

// repetitionLimit is the number of occurrences of a position that draws the game.
const repetitionLimit = 3

// Record is one entry of the move history.
type Record struct {
	Move   *chess.Move
	SAN    string // includes "+" or "#" when the move checks or mates
	Player chess.Colour
}

// MoveEvent is delivered to move listeners once per completed move.
type MoveEvent struct {
	GameID uuid.UUID
	Ply    int
	Record Record
	// Result is non-nil when this move concluded the game.
	Result *Result
}

// GameState is the turn and result state machine of one game. All methods
// are safe for concurrent use; listeners run after the internal lock is
// released and may call back into the game.
type GameState struct {
	mu sync.Mutex

	id      uuid.UUID
	board   *chess.Board
	current chess.Colour
	history []Record

	// Plies since the last capture or pawn move.
	noProgress int
	// Full-move number and mover of the starting position.
	startFullmove int
	startPlayer   chess.Colour
	startFEN      string

	signature   string
	repetitions map[string]int

	result *Result

	moveListeners []func(MoveEvent)
	endListeners  []func(Result)
}

// NewGame starts a game from the standard initial position.
func NewGame() *GameState {
	return newGameState(chess.Initial(), chess.White, 0, 1)
}

// NewGameFromFEN starts a game from a FEN position. A position that is
// already terminal (mate, stalemate, dead material, exhausted halfmove
// clock) starts concluded.
func NewGameFromFEN(fen string) (*GameState, error) {
	setup, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := newGameState(setup.Board, setup.ToMove, setup.HalfmoveClock, setup.FullmoveNumber)
	g.checkForGameOver()
	return g, nil
}

func newGameState(board *chess.Board, toMove chess.Colour, halfmove, fullmove int) *GameState {
	g := &GameState{
		id:            uuid.New(),
		board:         board,
		current:       toMove,
		noProgress:    halfmove,
		startFullmove: fullmove,
		startPlayer:   toMove,
		startFEN:      FEN(board, toMove, halfmove, fullmove),
		repetitions:   make(map[string]int),
	}
	g.recordPosition()
	return g
}

// ID returns the game's unique identifier.
func (g *GameState) ID() uuid.UUID {
	return g.id
}

// OnMoveCompleted registers fn to be called after every successful MakeMove.
func (g *GameState) OnMoveCompleted(fn func(MoveEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.moveListeners = append(g.moveListeners, fn)
}

// OnGameOver registers fn to be called once when the game concludes, by any
// route including timeout and resignation.
func (g *GameState) OnGameOver(fn func(Result)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endListeners = append(g.endListeners, fn)
}

// Board returns a copy of the live board.
func (g *GameState) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}

// CurrentPlayer returns the player to move.
func (g *GameState) CurrentPlayer() chess.Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// MoveNumber returns the full-move number of the next move.
func (g *GameState) MoveNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moveNumber()
}

func (g *GameState) moveNumber() int {
	offset := 0
	if g.startPlayer == chess.Black {
		offset = 1
	}
	return g.startFullmove + (len(g.history)+offset)/2
}

// NoProgressCount returns the plies played since the last capture or pawn move.
func (g *GameState) NoProgressCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.noProgress
}

// IsGameOver reports whether the game has concluded.
func (g *GameState) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result != nil
}

// Result returns the outcome once the game has concluded.
func (g *GameState) Result() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

// MoveHistory returns the moves played so far, oldest first.
func (g *GameState) MoveHistory() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	history := make([]Record, len(g.history))
	copy(history, g.history)
	return history
}

// StartFEN returns the FEN of the position the game started from.
func (g *GameState) StartFEN() string {
	return g.startFEN
}

// FEN returns the live position in Forsyth-Edwards Notation.
func (g *GameState) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return FEN(g.board, g.current, g.noProgress, g.moveNumber())
}

// Signature returns the repetition key of the live position.
func (g *GameState) Signature() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.signature
}

// Repetitions returns how often the live position has occurred since the
// last capture or pawn move.
func (g *GameState) Repetitions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.repetitions[g.signature]
}

// LegalMovesForPiece returns the legal moves of the piece at pos. It is empty
// when pos is empty, holds an opponent piece, or the game is over.
func (g *GameState) LegalMovesForPiece(pos chess.Position) []*chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result != nil || !chess.IsInside(pos) {
		return nil
	}
	piece := g.board.At(pos)
	if piece == nil || piece.Colour != g.current {
		return nil
	}
	return g.board.LegalMovesAt(pos)
}

// AllLegalMovesFor returns every legal move of player, or nil once the game is over.
func (g *GameState) AllLegalMovesFor(player chess.Colour) []*chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result != nil {
		return nil
	}
	return g.board.LegalMovesFor(player)
}

// MakeMove plays move for player. The move must come from the current legal
// move set; it is not validated here. clock may be nil for untimed games.
func (g *GameState) MakeMove(move *chess.Move, clock Clock, player chess.Colour) error {
	g.mu.Lock()
	if g.result != nil {
		g.mu.Unlock()
		return fmt.Errorf("move %s: %w", move, errors.ErrGameOver)
	}
	if player != g.current {
		g.mu.Unlock()
		return fmt.Errorf("%s cannot move while %s is to play: %w", player, g.current, errors.ErrWrongPlayer)
	}

	// Notation is rendered before execution so disambiguation and capture
	// markers see the position the move is played from.
	san := move.Notation(g.board)

	g.board.ClearPawnSkipPosition(player)
	if move.Execute(g.board) {
		g.noProgress = 0
		clear(g.repetitions)
	} else {
		g.noProgress++
	}

	if clock != nil && clock.IsCurrentPlayerOutOfTime() {
		result := Win(player.Opponent(), Timeout)
		g.result = &result
	} else {
		g.current = g.current.Opponent()
		g.recordPosition()
		g.checkForGameOver()
		san += g.checkSuffix()
	}

	record := Record{Move: move, SAN: san, Player: player}
	g.history = append(g.history, record)

	event := MoveEvent{GameID: g.id, Ply: len(g.history), Record: record}
	if g.result != nil {
		result := *g.result
		event.Result = &result
	}
	moveListeners := append([]func(MoveEvent){}, g.moveListeners...)
	endListeners := g.endListenersFor(event.Result != nil)
	g.mu.Unlock()

	for _, fn := range moveListeners {
		fn(event)
	}
	for _, fn := range endListeners {
		fn(*event.Result)
	}
	return nil
}

// HandleTimeOut concludes the game with a win for player's opponent.
func (g *GameState) HandleTimeOut(player chess.Colour) error {
	return g.conclude(Win(player.Opponent(), Timeout))
}

// HandleSurrender concludes the game with a win for player's opponent.
func (g *GameState) HandleSurrender(player chess.Colour) error {
	return g.conclude(Win(player.Opponent(), Resignation))
}

func (g *GameState) conclude(result Result) error {
	g.mu.Lock()
	if g.result != nil {
		g.mu.Unlock()
		return fmt.Errorf("%s: %w", result.Reason, errors.ErrGameOver)
	}
	g.result = &result
	listeners := g.endListenersFor(true)
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(result)
	}
	return nil
}

func (g *GameState) endListenersFor(over bool) []func(Result) {
	if !over {
		return nil
	}
	return append([]func(Result){}, g.endListeners...)
}

// recordPosition recomputes the signature of the live position and counts it.
func (g *GameState) recordPosition() {
	g.signature = Signature(g.board, g.current)
	g.repetitions[g.signature]++
}

// checkForGameOver applies the termination rules in priority order for the
// player now to move. The first rule that fires decides the result.
func (g *GameState) checkForGameOver() {
	var result Result
	switch {
	case !g.board.HasLegalMoves(g.current):
		if g.board.IsInCheck(g.current) {
			result = Win(g.current.Opponent(), Checkmate)
		} else {
			result = Draw(Stalemate)
		}
	case g.board.InsufficientMaterial():
		result = Draw(InsufficientMaterial)
	case g.noProgress >= fiftyMovePlies:
		result = Draw(FiftyMoveRule)
	case g.repetitions[g.signature] >= repetitionLimit:
		result = Draw(ThreefoldRepetition)
	default:
		return
	}
	g.result = &result
}

// checkSuffix returns "#" for mate, "+" for check, else "".
func (g *GameState) checkSuffix() string {
	if !g.board.IsInCheck(g.current) {
		return ""
	}
	if g.result != nil && g.result.Reason == Checkmate {
		return "#"
	}
	return "+"
}

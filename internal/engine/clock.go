package engine

// Clock is the time control a game consults after each move. The caller
// switches the clock's turn once MakeMove returns, so during MakeMove the
// clock's current player is still the mover.
type Clock interface {
	IsCurrentPlayerOutOfTime() bool
}

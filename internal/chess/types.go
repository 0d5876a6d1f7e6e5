// Package chess provides the board model, piece move generation and move execution.
package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	NoColour Colour = iota // Used for drawn results
	White
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "None"
}

// Opponent returns the opposite colour. NoColour has no opponent.
func (c Colour) Opponent() Colour {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColour
}

// Kind represents a chess piece type.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the SAN letter of a piece kind (uppercase). Pawns have none.
func (k Kind) Letter() string {
	letters := []string{"", "N", "B", "R", "Q", "K"}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return "?"
}

// PromotionKinds lists the kinds a pawn may promote to, weakest first.
var PromotionKinds = []Kind{Knight, Bishop, Rook, Queen}

// BoardSize is the number of rows and columns.
const BoardSize = 8

// Position is a board coordinate. Row 0 is Black's home rank, row 7 is White's.
// Positions outside the board are valid values; use IsInside before indexing.
type Position struct {
	Row    int
	Column int
}

// Pos is shorthand for Position{row, column}.
func Pos(row, column int) Position {
	return Position{Row: row, Column: column}
}

// SquareColor returns White for even (row+column), Black otherwise.
func (p Position) SquareColor() Colour {
	if (p.Row+p.Column)%2 == 0 {
		return White
	}
	return Black
}

// Step returns the position reached by moving once in direction d.
func (p Position) Step(d Direction) Position {
	return Position{Row: p.Row + d.RowDelta, Column: p.Column + d.ColumnDelta}
}

// File returns the file letter ('a'-'h').
func (p Position) File() byte {
	return byte('a' + p.Column)
}

// Rank returns the rank digit ('1'-'8').
func (p Position) Rank() byte {
	return byte('0' + BoardSize - p.Row)
}

// String returns the algebraic coordinate, e.g. "e4".
func (p Position) String() string {
	if !IsInside(p) {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
	}
	return string([]byte{p.File(), p.Rank()})
}

// ParseSquare converts an algebraic coordinate such as "e4" into a Position.
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("square %q: %w", s, errors.ErrInvalidSquare)
	}
	return Position{Row: BoardSize - int(s[1]-'0'), Column: int(s[0] - 'a')}, nil
}

// IsInside reports whether both coordinates are in [0,8).
func IsInside(p Position) bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Column >= 0 && p.Column < BoardSize
}

// Direction is an offset between two positions.
type Direction struct {
	RowDelta    int
	ColumnDelta int
}

// Compass directions. North points towards row 0 (Black's side).
var (
	North     = Direction{RowDelta: -1, ColumnDelta: 0}
	South     = Direction{RowDelta: 1, ColumnDelta: 0}
	East      = Direction{RowDelta: 0, ColumnDelta: 1}
	West      = Direction{RowDelta: 0, ColumnDelta: -1}
	NorthEast = North.Add(East)
	NorthWest = North.Add(West)
	SouthEast = South.Add(East)
	SouthWest = South.Add(West)
)

// Add combines two directions.
func (d Direction) Add(o Direction) Direction {
	return Direction{RowDelta: d.RowDelta + o.RowDelta, ColumnDelta: d.ColumnDelta + o.ColumnDelta}
}

// Times scales a direction.
func (d Direction) Times(n int) Direction {
	return Direction{RowDelta: d.RowDelta * n, ColumnDelta: d.ColumnDelta * n}
}

// Forward returns the direction pawns of colour c advance in.
func Forward(c Colour) Direction {
	if c == White {
		return North
	}
	return South
}

// HomeRow returns the back-rank row of colour c.
func HomeRow(c Colour) int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

var (
	straightDirs = []Direction{North, South, East, West}
	diagonalDirs = []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	allDirs      = append(append([]Direction{}, straightDirs...), diagonalDirs...)
	knightDirs   = []Direction{
		North.Times(2).Add(East), North.Times(2).Add(West),
		South.Times(2).Add(East), South.Times(2).Add(West),
		East.Times(2).Add(North), East.Times(2).Add(South),
		West.Times(2).Add(North), West.Times(2).Add(South),
	}
)

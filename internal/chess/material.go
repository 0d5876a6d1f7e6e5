package chess

// Counting tallies pieces by colour and kind.
type Counting struct {
	white      [King + 1]int
	black      [King + 1]int
	TotalCount int
}

// Increment records one piece.
func (c *Counting) Increment(colour Colour, kind Kind) {
	if colour == White {
		c.white[kind]++
	} else {
		c.black[kind]++
	}
	c.TotalCount++
}

// White returns the number of white pieces of the given kind.
func (c *Counting) White(kind Kind) int {
	return c.white[kind]
}

// Black returns the number of black pieces of the given kind.
func (c *Counting) Black(kind Kind) int {
	return c.black[kind]
}

// CountPieces tallies every piece on the board.
func (b *Board) CountPieces() Counting {
	var counting Counting
	for _, pos := range b.PiecePositions() {
		piece := b.At(pos)
		counting.Increment(piece.Colour, piece.Kind)
	}
	return counting
}

// InsufficientMaterial reports whether neither side can ever mate.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (bishops on same-coloured squares)
func (b *Board) InsufficientMaterial() bool {
	counting := b.CountPieces()
	return isKingVKing(counting) || isKingBishopVKing(counting) ||
		isKingKnightVKing(counting) || b.isKingBishopVKingBishop(counting)
}

func isKingVKing(c Counting) bool {
	return c.TotalCount == 2
}

func isKingBishopVKing(c Counting) bool {
	return c.TotalCount == 3 && (c.White(Bishop) == 1 || c.Black(Bishop) == 1)
}

func isKingKnightVKing(c Counting) bool {
	return c.TotalCount == 3 && (c.White(Knight) == 1 || c.Black(Knight) == 1)
}

func (b *Board) isKingBishopVKingBishop(c Counting) bool {
	if c.TotalCount != 4 || c.White(Bishop) != 1 || c.Black(Bishop) != 1 {
		return false
	}
	whiteBishop, _ := b.findPiece(White, Bishop)
	blackBishop, _ := b.findPiece(Black, Bishop)
	return whiteBishop.SquareColor() == blackBishop.SquareColor()
}

func (b *Board) findPiece(c Colour, kind Kind) (Position, bool) {
	for _, pos := range b.PiecePositionsFor(c) {
		if b.At(pos).Kind == kind {
			return pos, true
		}
	}
	return Position{}, false
}

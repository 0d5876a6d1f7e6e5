package chess

// Board is the 8x8 grid of optional pieces plus the per-player pawn-skip
// memory used for en passant. Castling rights and material status are derived
// on demand, never cached.
type Board struct {
	// squares[row][column]; nil means empty.
	squares [BoardSize][BoardSize]*Piece

	// The square each player's pawn passed over on its latest two-square
	// advance, indexed by Colour. nil when there is none.
	pawnSkips [3]*Position
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Initial returns a board set up for the start of a game.
func Initial() *Board {
	b := NewBoard()
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range backRank {
		b.squares[HomeRow(Black)][col] = NewPiece(Black, kind)
		b.squares[HomeRow(White)][col] = NewPiece(White, kind)
		b.squares[pawnStartRow(Black)][col] = NewPiece(Black, Pawn)
		b.squares[pawnStartRow(White)][col] = NewPiece(White, Pawn)
	}
	return b
}

// At returns the piece at pos, or nil. pos must be inside the board.
func (b *Board) At(pos Position) *Piece {
	return b.squares[pos.Row][pos.Column]
}

// Set places a piece (or nil) at pos. pos must be inside the board.
func (b *Board) Set(pos Position, p *Piece) {
	b.squares[pos.Row][pos.Column] = p
}

// IsEmpty reports whether no piece stands at pos.
func (b *Board) IsEmpty(pos Position) bool {
	return b.At(pos) == nil
}

// PawnSkipPosition returns the square colour's pawn skipped on its latest
// double advance, if that skip is still current.
func (b *Board) PawnSkipPosition(c Colour) (Position, bool) {
	if skip := b.pawnSkips[c]; skip != nil {
		return *skip, true
	}
	return Position{}, false
}

// SetPawnSkipPosition records colour's skip square; nil clears it.
func (b *Board) SetPawnSkipPosition(c Colour, pos *Position) {
	if pos == nil {
		b.pawnSkips[c] = nil
		return
	}
	skip := *pos
	b.pawnSkips[c] = &skip
}

// ClearPawnSkipPosition forgets colour's skip square.
func (b *Board) ClearPawnSkipPosition(c Colour) {
	b.pawnSkips[c] = nil
}

// PiecePositions returns every occupied square in row-major order.
func (b *Board) PiecePositions() []Position {
	var positions []Position
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.squares[row][col] != nil {
				positions = append(positions, Pos(row, col))
			}
		}
	}
	return positions
}

// PiecePositionsFor returns the squares occupied by colour's pieces.
func (b *Board) PiecePositionsFor(c Colour) []Position {
	var positions []Position
	for _, pos := range b.PiecePositions() {
		if b.At(pos).Colour == c {
			positions = append(positions, pos)
		}
	}
	return positions
}

// King returns the position of colour's king.
func (b *Board) King(c Colour) (Position, bool) {
	return b.findPiece(c, King)
}

// IsInCheck reports whether any opponent piece attacks colour's king.
func (b *Board) IsInCheck(c Colour) bool {
	for _, pos := range b.PiecePositionsFor(c.Opponent()) {
		if b.At(pos).CanCaptureOpponentKing(pos, b) {
			return true
		}
	}
	return false
}

// IsSquareAttacked reports whether a piece of colour by could capture on pos.
func (b *Board) IsSquareAttacked(pos Position, by Colour) bool {
	for _, from := range b.PiecePositionsFor(by) {
		for _, to := range b.At(from).attackedSquares(from, b) {
			if to == pos {
				return true
			}
		}
	}
	return false
}

// Copy returns a deep copy sharing no pieces or skip positions with b.
func (b *Board) Copy() *Board {
	c := NewBoard()
	for _, pos := range b.PiecePositions() {
		c.Set(pos, b.At(pos).Copy())
	}
	for colour, skip := range b.pawnSkips {
		c.SetPawnSkipPosition(Colour(colour), skip)
	}
	return c
}

// Equal reports whether two boards hold the same pieces, flags and skip squares.
func (b *Board) Equal(o *Board) bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p, q := b.squares[row][col], o.squares[row][col]
			if (p == nil) != (q == nil) || (p != nil && *p != *q) {
				return false
			}
		}
	}
	for i := range b.pawnSkips {
		s, t := b.pawnSkips[i], o.pawnSkips[i]
		if (s == nil) != (t == nil) || (s != nil && *s != *t) {
			return false
		}
	}
	return true
}

// LegalMovesFor returns every legal move of colour's pieces.
func (b *Board) LegalMovesFor(c Colour) []*Move {
	var legal []*Move
	for _, pos := range b.PiecePositionsFor(c) {
		legal = append(legal, b.LegalMovesAt(pos)...)
	}
	return legal
}

// LegalMovesAt returns the legal moves of the piece at pos, nil if pos is empty.
func (b *Board) LegalMovesAt(pos Position) []*Move {
	piece := b.At(pos)
	if piece == nil {
		return nil
	}
	var legal []*Move
	for _, m := range piece.GetMoves(pos, b) {
		if m.IsLegal(b) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether colour has at least one legal move.
func (b *Board) HasLegalMoves(c Colour) bool {
	for _, pos := range b.PiecePositionsFor(c) {
		for _, m := range b.At(pos).GetMoves(pos, b) {
			if m.IsLegal(b) {
				return true
			}
		}
	}
	return false
}

// isUnmovedKingAndRook reports whether an unmoved king and rook of the same
// colour stand on the given squares.
func (b *Board) isUnmovedKingAndRook(kingPos, rookPos Position) bool {
	king, rook := b.At(kingPos), b.At(rookPos)
	if king == nil || rook == nil {
		return false
	}
	return king.Kind == King && rook.Kind == Rook && king.Colour == rook.Colour &&
		!king.HasMoved && !rook.HasMoved
}

// CastleRightKS reports whether colour keeps its king-side castling right.
func (b *Board) CastleRightKS(c Colour) bool {
	if c != White && c != Black {
		return false
	}
	row := HomeRow(c)
	return b.isUnmovedKingAndRook(Pos(row, 4), Pos(row, 7))
}

// CastleRightQS reports whether colour keeps its queen-side castling right.
func (b *Board) CastleRightQS(c Colour) bool {
	if c != White && c != Black {
		return false
	}
	row := HomeRow(c)
	return b.isUnmovedKingAndRook(Pos(row, 4), Pos(row, 0))
}

// CanCaptureEnPassant reports whether colour has a legal en passant capture
// onto the opponent's current skip square.
func (b *Board) CanCaptureEnPassant(c Colour) bool {
	skip, ok := b.PawnSkipPosition(c.Opponent())
	if !ok {
		return false
	}
	behind := Forward(c.Opponent())
	for _, side := range []Direction{East, West} {
		from := skip.Step(behind.Add(side))
		if !IsInside(from) {
			continue
		}
		piece := b.At(from)
		if piece == nil || piece.Colour != c || piece.Kind != Pawn {
			continue
		}
		if NewEnPassantMove(from, skip).IsLegal(b) {
			return true
		}
	}
	return false
}

// IsAmbiguousMove reports whether another piece of the moving piece's kind
// and colour can pseudo-legally reach to.
func (b *Board) IsAmbiguousMove(moving *Piece, from, to Position) bool {
	return len(b.GetAmbiguousPositions(moving, from, to)) > 0
}

// GetAmbiguousPositions returns the squares of the other same-kind,
// same-colour pieces that can pseudo-legally reach to.
func (b *Board) GetAmbiguousPositions(moving *Piece, from, to Position) []Position {
	var positions []Position
	for _, pos := range b.PiecePositionsFor(moving.Colour) {
		piece := b.At(pos)
		if piece.Kind != moving.Kind || pos == from {
			continue
		}
		for _, m := range piece.GetMoves(pos, b) {
			if m.To == to {
				positions = append(positions, pos)
				break
			}
		}
	}
	return positions
}

// IsSameFile reports whether one of the ambiguous pieces shares from's file.
func (b *Board) IsSameFile(moving *Piece, from, to Position) bool {
	for _, pos := range b.GetAmbiguousPositions(moving, from, to) {
		if pos.Column == from.Column {
			return true
		}
	}
	return false
}

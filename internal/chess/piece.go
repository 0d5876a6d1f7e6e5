package chess

// Piece is one chess man. The Kind tag selects its movement rules; HasMoved
// feeds castling-rights derivation. Pieces never reference a board.
type Piece struct {
	Kind     Kind
	Colour   Colour
	HasMoved bool
}

// NewPiece creates an unmoved piece.
func NewPiece(colour Colour, kind Kind) *Piece {
	return &Piece{Kind: kind, Colour: colour}
}

// Copy returns an independent copy of the piece.
func (p *Piece) Copy() *Piece {
	c := *p
	return &c
}

// String returns e.g. "White Knight".
func (p *Piece) String() string {
	return p.Colour.String() + " " + p.Kind.String()
}

// GetMoves returns the pseudo-legal moves of the piece standing at from.
// Blocking and occupancy are respected; leaving the own king in check is not.
func (p *Piece) GetMoves(from Position, b *Board) []*Move {
	switch p.Kind {
	case Pawn:
		return p.pawnMoves(from, b)
	case Knight:
		return p.stepMoves(from, b, knightDirs)
	case Bishop:
		return p.slideMoves(from, b, diagonalDirs)
	case Rook:
		return p.slideMoves(from, b, straightDirs)
	case Queen:
		return p.slideMoves(from, b, allDirs)
	case King:
		return append(p.stepMoves(from, b, allDirs), p.castleMoves(from, b)...)
	}
	return nil
}

// CanCaptureOpponentKing reports whether the enemy king stands on one of the
// piece's capture squares. It is cheaper than GetMoves and never considers castling.
func (p *Piece) CanCaptureOpponentKing(from Position, b *Board) bool {
	for _, to := range p.attackedSquares(from, b) {
		if target := b.At(to); target != nil && target.Kind == King && target.Colour != p.Colour {
			return true
		}
	}
	return false
}

// attackedSquares returns the squares the piece could capture on.
func (p *Piece) attackedSquares(from Position, b *Board) []Position {
	switch p.Kind {
	case Pawn:
		var squares []Position
		for _, side := range []Direction{East, West} {
			if to := from.Step(Forward(p.Colour).Add(side)); IsInside(to) {
				squares = append(squares, to)
			}
		}
		return squares
	case Knight:
		return p.stepTargets(from, b, knightDirs)
	case Bishop:
		return p.slideTargets(from, b, diagonalDirs)
	case Rook:
		return p.slideTargets(from, b, straightDirs)
	case Queen:
		return p.slideTargets(from, b, allDirs)
	case King:
		return p.stepTargets(from, b, allDirs)
	}
	return nil
}

// canMoveTo reports whether pos is on the board and not held by a friendly piece.
func (p *Piece) canMoveTo(pos Position, b *Board) bool {
	if !IsInside(pos) {
		return false
	}
	target := b.At(pos)
	return target == nil || target.Colour != p.Colour
}

// stepTargets returns the single-step destinations for knights and kings.
func (p *Piece) stepTargets(from Position, b *Board, dirs []Direction) []Position {
	var squares []Position
	for _, dir := range dirs {
		if to := from.Step(dir); p.canMoveTo(to, b) {
			squares = append(squares, to)
		}
	}
	return squares
}

// slideTargets walks every ray until the edge or a blocker. An enemy blocker
// is included, a friendly one is not.
func (p *Piece) slideTargets(from Position, b *Board, dirs []Direction) []Position {
	var squares []Position
	for _, dir := range dirs {
		for to := from.Step(dir); IsInside(to); to = to.Step(dir) {
			target := b.At(to)
			if target == nil {
				squares = append(squares, to)
				continue
			}
			if target.Colour != p.Colour {
				squares = append(squares, to)
			}
			break
		}
	}
	return squares
}

func (p *Piece) stepMoves(from Position, b *Board, dirs []Direction) []*Move {
	return movesTo(from, b, p.stepTargets(from, b, dirs))
}

func (p *Piece) slideMoves(from Position, b *Board, dirs []Direction) []*Move {
	return movesTo(from, b, p.slideTargets(from, b, dirs))
}

// movesTo turns destinations into Normal or Capture moves.
func movesTo(from Position, b *Board, targets []Position) []*Move {
	moves := make([]*Move, 0, len(targets))
	for _, to := range targets {
		if b.IsEmpty(to) {
			moves = append(moves, NewNormalMove(from, to))
		} else {
			moves = append(moves, NewCaptureMove(from, to))
		}
	}
	return moves
}

func (p *Piece) pawnMoves(from Position, b *Board) []*Move {
	var moves []*Move
	forward := Forward(p.Colour)

	// Advances
	one := from.Step(forward)
	if IsInside(one) && b.IsEmpty(one) {
		moves = append(moves, p.pawnMovesTo(from, one, NewNormalMove)...)

		two := one.Step(forward)
		if from.Row == pawnStartRow(p.Colour) && IsInside(two) && b.IsEmpty(two) {
			moves = append(moves, NewDoublePawnMove(from, two))
		}
	}

	// Captures, including en passant onto the opponent's skip square
	skip, hasSkip := b.PawnSkipPosition(p.Colour.Opponent())
	for _, side := range []Direction{East, West} {
		to := from.Step(forward.Add(side))
		if !IsInside(to) {
			continue
		}
		if hasSkip && to == skip && b.IsEmpty(to) {
			moves = append(moves, NewEnPassantMove(from, to))
			continue
		}
		if target := b.At(to); target != nil && target.Colour != p.Colour {
			moves = append(moves, p.pawnMovesTo(from, to, NewCaptureMove)...)
		}
	}
	return moves
}

// pawnMovesTo expands a move onto the last rank into the four promotions.
func (p *Piece) pawnMovesTo(from, to Position, build func(from, to Position) *Move) []*Move {
	if to.Row != HomeRow(p.Colour.Opponent()) {
		return []*Move{build(from, to)}
	}
	moves := make([]*Move, 0, len(PromotionKinds))
	for _, kind := range PromotionKinds {
		moves = append(moves, NewPromotionMove(from, to, kind))
	}
	return moves
}

// pawnStartRow returns the row pawns of colour c start on.
func pawnStartRow(c Colour) int {
	if c == White {
		return BoardSize - 2
	}
	return 1
}

// castleMoves yields castling when the rights hold, the squares between king
// and rook are empty, the king is not in check and does not cross an attacked
// square. The destination square is verified by Move.IsLegal.
func (p *Piece) castleMoves(from Position, b *Board) []*Move {
	var moves []*Move
	if b.CastleRightKS(p.Colour) && p.canCastleThrough(from, b, East, 2) {
		moves = append(moves, NewCastleMove(CastleKS, from))
	}
	if b.CastleRightQS(p.Colour) && p.canCastleThrough(from, b, West, 3) {
		moves = append(moves, NewCastleMove(CastleQS, from))
	}
	return moves
}

func (p *Piece) canCastleThrough(from Position, b *Board, dir Direction, between int) bool {
	for i := 1; i <= between; i++ {
		if !b.IsEmpty(from.Step(dir.Times(i))) {
			return false
		}
	}
	if b.IsInCheck(p.Colour) {
		return false
	}
	return !b.IsSquareAttacked(from.Step(dir), p.Colour.Opponent())
}

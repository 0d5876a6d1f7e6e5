package chess

import "strings"

// MoveType tags the seven move variants.
type MoveType int

const (
	Normal MoveType = iota
	Capture
	DoublePawn
	EnPassant
	CastleKS
	CastleQS
	PawnPromotion
)

// String returns the variant name.
func (t MoveType) String() string {
	names := []string{"Normal", "Capture", "DoublePawn", "EnPassant", "CastleKS", "CastleQS", "PawnPromotion"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Castling tokens used in move notation.
const (
	CastleKSNotation = "O-O"
	CastleQSNotation = "O-O-O"
)

// Move is one move of any variant. Origin and destination are fixed at
// construction; the board is always passed in explicitly, so a move can be
// simulated on a disposable copy.
type Move struct {
	Type MoveType
	From Position
	To   Position

	// Promotion is the chosen kind for PawnPromotion moves.
	Promotion Kind

	// promoted is the piece created by the last Execute of a PawnPromotion.
	promoted *Piece
}

// NewNormalMove creates a quiet move.
func NewNormalMove(from, to Position) *Move {
	return &Move{Type: Normal, From: from, To: to}
}

// NewCaptureMove creates a capture onto an occupied square.
func NewCaptureMove(from, to Position) *Move {
	return &Move{Type: Capture, From: from, To: to}
}

// NewDoublePawnMove creates a two-square pawn advance.
func NewDoublePawnMove(from, to Position) *Move {
	return &Move{Type: DoublePawn, From: from, To: to}
}

// NewEnPassantMove creates an en passant capture onto the empty skip square to.
func NewEnPassantMove(from, to Position) *Move {
	return &Move{Type: EnPassant, From: from, To: to}
}

// NewPromotionMove creates a pawn move onto the last rank promoting to kind.
func NewPromotionMove(from, to Position, kind Kind) *Move {
	return &Move{Type: PawnPromotion, From: from, To: to, Promotion: kind}
}

// NewCastleMove creates a castling move for the king standing at kingPos.
// t must be CastleKS or CastleQS.
func NewCastleMove(t MoveType, kingPos Position) *Move {
	dir := East
	if t == CastleQS {
		dir = West
	}
	return &Move{Type: t, From: kingPos, To: kingPos.Step(dir.Times(2))}
}

// Promoted returns the piece created by the last execution of a promotion.
func (m *Move) Promoted() *Piece {
	return m.promoted
}

// capturePos returns the square of the pawn removed by an en passant capture.
func (m *Move) capturePos() Position {
	return Position{Row: m.From.Row, Column: m.To.Column}
}

// rookSquares returns the rook's origin and destination for a castling move.
func (m *Move) rookSquares() (from, to Position) {
	if m.Type == CastleKS {
		return Pos(m.From.Row, BoardSize-1), m.From.Step(East)
	}
	return Pos(m.From.Row, 0), m.From.Step(West)
}

// Execute plays the move on b and reports whether it was a capture or a
// pawn move, i.e. whether it resets the fifty-move counter.
func (m *Move) Execute(b *Board) bool {
	switch m.Type {
	case Normal:
		captured := !b.IsEmpty(m.To)
		piece := b.At(m.From)
		movePiece(b, m.From, m.To)
		return captured || piece.Kind == Pawn

	case Capture:
		movePiece(b, m.From, m.To)
		return true

	case DoublePawn:
		piece := b.At(m.From)
		movePiece(b, m.From, m.To)
		skip := m.From.Step(Forward(piece.Colour))
		b.SetPawnSkipPosition(piece.Colour, &skip)
		return true

	case EnPassant:
		movePiece(b, m.From, m.To)
		b.Set(m.capturePos(), nil)
		return true

	case CastleKS, CastleQS:
		rookFrom, rookTo := m.rookSquares()
		movePiece(b, m.From, m.To)
		movePiece(b, rookFrom, rookTo)
		return false

	case PawnPromotion:
		pawn := b.At(m.From)
		b.Set(m.From, nil)
		piece := NewPiece(pawn.Colour, m.Promotion)
		piece.HasMoved = true
		b.Set(m.To, piece)
		m.promoted = piece
		return true
	}
	return false
}

// movePiece moves the piece at from onto to, replacing any occupant.
func movePiece(b *Board, from, to Position) {
	piece := b.At(from)
	b.Set(to, piece)
	b.Set(from, nil)
	piece.HasMoved = true
}

// IsLegal plays the move on a copy of b and reports whether the mover's king
// is safe afterwards.
func (m *Move) IsLegal(b *Board) bool {
	player := b.At(m.From).Colour
	boardCopy := b.Copy()
	m.Execute(boardCopy)
	return !boardCopy.IsInCheck(player)
}

// Notation renders the move in algebraic notation against the board it is
// about to be played on. Check markers are not included.
func (m *Move) Notation(b *Board) string {
	switch m.Type {
	case CastleKS:
		return CastleKSNotation
	case CastleQS:
		return CastleQSNotation
	}

	moving := b.At(m.From)
	target := b.At(m.To)

	var sb strings.Builder
	sb.WriteString(moving.Kind.Letter())

	isCapture := (target != nil && target.Colour != moving.Colour) || m.Type == EnPassant
	if moving.Kind == Pawn {
		if isCapture {
			sb.WriteByte(m.From.File())
		}
	} else {
		sb.WriteString(m.disambiguation(b, moving))
	}

	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())

	if m.Type == PawnPromotion {
		sb.WriteByte('=')
		sb.WriteString(m.Promotion.Letter())
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or both when another piece of
// the same kind can reach the destination.
func (m *Move) disambiguation(b *Board, moving *Piece) string {
	others := b.GetAmbiguousPositions(moving, m.From, m.To)
	if len(others) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, pos := range others {
		sameFile = sameFile || pos.Column == m.From.Column
		sameRank = sameRank || pos.Row == m.From.Row
	}
	switch {
	case !sameFile:
		return string(m.From.File())
	case !sameRank:
		return string(m.From.Rank())
	}
	return m.From.String()
}

// UCI returns the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m *Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Type == PawnPromotion {
		s += strings.ToLower(m.Promotion.Letter())
	}
	return s
}

// String returns the UCI form.
func (m *Move) String() string {
	return m.UCI()
}

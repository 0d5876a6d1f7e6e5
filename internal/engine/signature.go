package engine

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Signature returns the repetition key of a position: placement, side to
// move, castling rights and the en passant square. The en passant square is
// only included when toMove can actually capture onto it, so positions that
// differ only in an unusable skip square count as the same.
func Signature(board *chess.Board, toMove chess.Colour) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, toMove)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	if skip, ok := board.PawnSkipPosition(toMove.Opponent()); ok && board.CanCaptureEnPassant(toMove) {
		sb.WriteString(skip.String())
	} else {
		sb.WriteByte('-')
	}

	return sb.String()
}

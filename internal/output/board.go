package output

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// BoardDiagram renders b as text, rank 8 at the top unless flipped. Pieces
// use their FEN letters and empty squares a dot.
func BoardDiagram(b *chess.Board, flip bool) string {
	var sb strings.Builder
	for i := 0; i < chess.BoardSize; i++ {
		row := i
		if flip {
			row = chess.BoardSize - 1 - i
		}
		sb.WriteByte(chess.Pos(row, 0).Rank())
		sb.WriteByte(' ')
		for j := 0; j < chess.BoardSize; j++ {
			col := j
			if flip {
				col = chess.BoardSize - 1 - j
			}
			sb.WriteByte(' ')
			if p := b.At(chess.Pos(row, col)); p != nil {
				sb.WriteByte(engine.PieceToFENLetter(p))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for j := 0; j < chess.BoardSize; j++ {
		col := j
		if flip {
			col = chess.BoardSize - 1 - j
		}
		sb.WriteByte(' ')
		sb.WriteByte(chess.Pos(0, col).File())
	}
	sb.WriteByte('\n')
	return sb.String()
}

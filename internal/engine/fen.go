// Package engine provides the game state machine on top of the chess board model:
// legal-move queries, move application, termination rules and FEN import/export.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN piece characters (always English, uppercase for White).
var fenPieceChars = map[chess.Kind]byte{
	chess.Pawn:   'P',
	chess.Knight: 'N',
	chess.Bishop: 'B',
	chess.Rook:   'R',
	chess.Queen:  'Q',
	chess.King:   'K',
}

// Setup is a position decoded from FEN.
type Setup struct {
	Board          *chess.Board
	ToMove         chess.Colour
	HalfmoveClock  int
	FullmoveNumber int
}

// ConvertFENCharToKind converts a FEN character to a piece kind.
func ConvertFENCharToKind(c byte) (chess.Kind, bool) {
	upper := byte(unicode.ToUpper(rune(c)))
	for kind, letter := range fenPieceChars {
		if letter == upper {
			return kind, true
		}
	}
	return 0, false
}

// PieceToFENLetter returns the FEN letter for a piece, lowercase for Black.
func PieceToFENLetter(p *chess.Piece) byte {
	letter := fenPieceChars[p.Kind]
	if p.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// ParseFEN decodes a FEN string. Missing trailing fields default to
// White to move, no castling, no en passant, clocks 0 and 1.
func ParseFEN(fen string) (*Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	setup := &Setup{Board: chess.NewBoard(), ToMove: chess.White, FullmoveNumber: 1}

	if err := parsePiecePositions(setup.Board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(setup, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(setup.Board, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(setup, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(setup, parts); err != nil {
		return nil, err
	}
	if setup.Board.IsInCheck(setup.ToMove.Opponent()) {
		return nil, fmt.Errorf("side not to move is in check: %w", errors.ErrInvalidFEN)
	}
	return setup, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	kings := map[chess.Colour]int{}
	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			if c > unicode.MaxASCII {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			kind, ok := ConvertFENCharToKind(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col >= chess.BoardSize {
				return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			if kind == chess.Pawn && (row == 0 || row == chess.BoardSize-1) {
				return fmt.Errorf("pawn on back rank: %w", errors.ErrInvalidFEN)
			}

			piece := chess.NewPiece(colour, kind)
			// Kings and rooks count as moved until a castling right says otherwise.
			piece.HasMoved = kind == chess.King || kind == chess.Rook
			board.Set(chess.Pos(row, col), piece)
			if kind == chess.King {
				kings[colour]++
			}
			col++
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}

	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("each side needs exactly one king: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(setup *Setup, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		setup.ToMove = chess.White
	case "b":
		setup.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights maps the castling field onto has-moved flags: a right
// clears the flag on its king and rook, which must stand on their home squares.
func parseCastlingRights(board *chess.Board, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		var colour chess.Colour
		var rookCol int
		switch c {
		case 'K':
			colour, rookCol = chess.White, chess.BoardSize-1
		case 'Q':
			colour, rookCol = chess.White, 0
		case 'k':
			colour, rookCol = chess.Black, chess.BoardSize-1
		case 'q':
			colour, rookCol = chess.Black, 0
		default:
			return fmt.Errorf("invalid castling right: %c: %w", c, errors.ErrInvalidFEN)
		}

		row := chess.HomeRow(colour)
		king, rook := board.At(chess.Pos(row, 4)), board.At(chess.Pos(row, rookCol))
		if king == nil || king.Kind != chess.King || king.Colour != colour ||
			rook == nil || rook.Kind != chess.Rook || rook.Colour != colour {
			return fmt.Errorf("castling right %c without king and rook at home: %w", c, errors.ErrInvalidFEN)
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The square becomes
// the pawn-skip position of the player who just moved.
func parseEnPassant(setup *Setup, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	skip, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square: %v: %w", err, errors.ErrInvalidFEN)
	}

	mover := setup.ToMove.Opponent()
	pawnPos := skip.Step(chess.Forward(mover))
	pawn := setup.Board.At(pawnPos)
	if skip.Row != chess.HomeRow(mover)+2*chess.Forward(mover).RowDelta || !setup.Board.IsEmpty(skip) ||
		pawn == nil || pawn.Kind != chess.Pawn || pawn.Colour != mover {
		return fmt.Errorf("en passant square %s does not follow a double step: %w", parts[3], errors.ErrInvalidFEN)
	}
	setup.Board.SetPawnSkipPosition(mover, &skip)
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(setup *Setup, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		setup.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		setup.FullmoveNumber = n
	}
	return nil
}

// FEN encodes a position. The en passant field names the opponent's current
// skip square, whether or not a capture onto it is possible.
func FEN(board *chess.Board, toMove chess.Colour, halfmove, fullmove int) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, toMove)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	if skip, ok := board.PawnSkipPosition(toMove.Opponent()); ok {
		sb.WriteString(skip.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", halfmove, fullmove)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.At(chess.Pos(row, col))
			if piece == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, toMove chess.Colour) {
	if toMove == chess.Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	if board.CastleRightKS(chess.White) {
		sb.WriteByte('K')
		hasCastling = true
	}
	if board.CastleRightQS(chess.White) {
		sb.WriteByte('Q')
		hasCastling = true
	}
	if board.CastleRightKS(chess.Black) {
		sb.WriteByte('k')
		hasCastling = true
	}
	if board.CastleRightQS(chess.Black) {
		sb.WriteByte('q')
		hasCastling = true
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

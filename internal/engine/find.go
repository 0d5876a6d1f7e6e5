package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// NormalizeMoveText strips annotation suffixes ("+", "#", "!", "?") and maps
// zero-style castling ("0-0") onto the letter form.
func NormalizeMoveText(text string) string {
	text = strings.TrimRight(strings.TrimSpace(text), "+#!?")
	switch text {
	case "0-0":
		return chess.CastleKSNotation
	case "0-0-0":
		return chess.CastleQSNotation
	}
	return text
}

// resultTokens end a move list.
var resultTokens = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}

// SplitMoves tokenizes a move list such as "1. e4 e5 2. Nf3 {develops} Nc6",
// dropping move numbers, brace comments and result tokens.
func SplitMoves(text string) []string {
	var sb strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '{':
			depth++
			sb.WriteByte(' ')
		case r == '}' && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}

	var moves []string
	for _, field := range strings.Fields(sb.String()) {
		if resultTokens[field] {
			continue
		}
		if digits := strings.TrimLeft(field, "0123456789"); digits != field && strings.HasPrefix(digits, ".") {
			field = strings.TrimLeft(digits, ".")
		}
		if field != "" {
			moves = append(moves, field)
		}
	}
	return moves
}

// FindMove resolves move text in SAN ("Nf3", "exd6", "e8=Q", "O-O") or UCI
// ("g1f3", "e7e8q") form against the current player's legal moves.
func (g *GameState) FindMove(text string) (*chess.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result != nil {
		return nil, fmt.Errorf("move %q: %w", text, errors.ErrGameOver)
	}

	normalized := NormalizeMoveText(text)
	if normalized == "" {
		return nil, fmt.Errorf("empty move text: %w", errors.ErrParseFailure)
	}

	legal := g.board.LegalMovesFor(g.current)
	matches := matchMoves(legal, func(m *chess.Move) bool { return m.UCI() == normalized })
	if len(matches) == 0 {
		matches = matchMoves(legal, func(m *chess.Move) bool { return sanMatches(m.Notation(g.board), normalized) })
	}
	if len(matches) == 0 {
		// Notation disambiguates against pinned pieces too, so text from
		// other tools ("Nd2" beside a pinned knight) is matched by its parts.
		if san, ok := parseSAN(normalized); ok {
			matches = matchMoves(legal, func(m *chess.Move) bool { return san.matches(g.board, m) })
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q for %s: %w", text, g.current, errors.ErrIllegalMove)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("%q matches %d moves: %w", text, len(matches), errors.ErrAmbiguousMove)
}

// sanMatches compares rendered notation with user text. A promotion may be
// written without the '=' sign.
func sanMatches(san, text string) bool {
	if san == text {
		return true
	}
	return strings.Contains(san, "=") && strings.Replace(san, "=", "", 1) == text
}

// sanPieceKinds maps SAN piece letters to kinds. Pawns have no letter.
var sanPieceKinds = map[byte]chess.Kind{
	'N': chess.Knight,
	'B': chess.Bishop,
	'R': chess.Rook,
	'Q': chess.Queen,
	'K': chess.King,
}

// sanMove is SAN move text split into its parts.
type sanMove struct {
	kind      chess.Kind
	fromFile  int // -1 when not given
	fromRow   int // -1 when not given
	to        chess.Position
	promotion chess.Kind // Pawn when not given
}

// parseSAN splits text such as "Nbd2", "R1e2", "exd6", "Ng1-f3" or "e8=Q"
// into piece letter, origin hints, destination and promotion. Check and
// annotation suffixes must already be stripped.
func parseSAN(text string) (sanMove, bool) {
	san := sanMove{kind: chess.Pawn, fromFile: -1, fromRow: -1, promotion: chess.Pawn}
	if text == "" {
		return san, false
	}
	if kind, ok := sanPieceKinds[text[0]]; ok {
		san.kind = kind
		text = text[1:]
	}

	// A square ends in a digit, so a trailing letter names a promotion.
	if n := len(text); n > 0 && (text[n-1] < '1' || text[n-1] > '8') {
		kind, ok := sanPieceKinds[strings.ToUpper(text[n-1:])[0]]
		if !ok || kind == chess.King || san.kind != chess.Pawn {
			return san, false
		}
		san.promotion = kind
		text = strings.TrimSuffix(text[:n-1], "=")
	}

	if len(text) < 2 {
		return san, false
	}
	to, err := chess.ParseSquare(text[len(text)-2:])
	if err != nil {
		return san, false
	}
	san.to = to

	hints := strings.TrimRight(text[:len(text)-2], "x-")
	if len(hints) > 2 {
		return san, false
	}
	for i := 0; i < len(hints); i++ {
		switch c := hints[i]; {
		case c >= 'a' && c <= 'h' && san.fromFile < 0:
			san.fromFile = int(c - 'a')
		case c >= '1' && c <= '8' && san.fromRow < 0:
			san.fromRow = chess.BoardSize - int(c-'0')
		default:
			return san, false
		}
	}
	return san, true
}

// matches reports whether m, a legal move on board, fits every part of san.
// Castling is only matched by its own notation, and a pawn capture must name
// its file.
func (san sanMove) matches(board *chess.Board, m *chess.Move) bool {
	if m.Type == chess.CastleKS || m.Type == chess.CastleQS {
		return false
	}
	piece := board.At(m.From)
	if piece == nil || piece.Kind != san.kind || m.To != san.to {
		return false
	}
	if san.fromFile >= 0 && m.From.Column != san.fromFile {
		return false
	}
	if san.fromRow >= 0 && m.From.Row != san.fromRow {
		return false
	}
	if san.kind == chess.Pawn && san.fromFile < 0 && m.From.Column != m.To.Column {
		return false
	}
	if m.Type == chess.PawnPromotion {
		return m.Promotion == san.promotion
	}
	return san.promotion == chess.Pawn
}

func matchMoves(moves []*chess.Move, keep func(*chess.Move) bool) []*chess.Move {
	var matches []*chess.Move
	for _, m := range moves {
		if keep(m) {
			matches = append(matches, m)
		}
	}
	return matches
}

// Play resolves text and makes the move for the current player. Failures are
// reported as a GameError carrying the ply number and move text.
func (g *GameState) Play(text string, clock Clock) error {
	ply := len(g.MoveHistory()) + 1
	move, err := g.FindMove(text)
	if err == nil {
		err = g.MakeMove(move, clock, g.CurrentPlayer())
	}
	if err != nil {
		return &errors.GameError{
			Err:      err,
			GameID:   g.id.String(),
			PlyNum:   ply,
			MoveText: text,
		}
	}
	return nil
}

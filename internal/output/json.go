package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// JSONGame represents a game record in JSON format.
type JSONGame struct {
	ID          string            `json:"id"`
	Moves       []JSONMove        `json:"moves,omitempty"`
	Result      string            `json:"result"`
	Termination string            `json:"termination,omitempty"`
	PlyCount    int               `json:"plyCount"`
	InitialFEN  string            `json:"initialFEN,omitempty"`
	FinalFEN    string            `json:"finalFEN"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// OutputGameJSON outputs a single game in JSON format.
func OutputGameJSON(game *engine.GameState, cfg *config.Config) error {
	enc := json.NewEncoder(cfg.OutputFile)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(game, cfg))
}

// OutputGamesJSON outputs multiple games as a JSON array.
func OutputGamesJSON(games []*engine.GameState, cfg *config.Config, w io.Writer) error {
	jsonGames := make([]*JSONGame, len(games))
	for i, game := range games {
		jsonGames[i] = GameToJSON(game, cfg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&JSONOutput{Games: jsonGames})
}

// GameToJSON converts a game record to JSON format.
func GameToJSON(game *engine.GameState, cfg *config.Config) *JSONGame {
	history := game.MoveHistory()
	jg := &JSONGame{
		ID:       game.ID().String(),
		Result:   GameResult(game),
		PlyCount: len(history),
		FinalFEN: game.FEN(),
		Tags:     cfg.Game.Tags,
	}
	if fen := game.StartFEN(); fen != engine.InitialFEN {
		jg.InitialFEN = fen
	}
	if result, over := game.Result(); over {
		jg.Termination = result.Reason.String()
	}

	replay := newReplay(game)
	jg.Moves = make([]JSONMove, 0, len(history))
	for _, rec := range history {
		jm := convertSingleMove(rec, replay)
		replay.apply(rec)

		// FEN after the move when requested
		if cfg.Output.ShowFEN {
			jm.FEN = replay.fen()
		}
		jg.Moves = append(jg.Moves, jm)
	}

	return jg
}

// convertSingleMove converts a single move to JSON format. The replay board
// must hold the position the move is played from.
func convertSingleMove(rec engine.Record, r *replay) JSONMove {
	move := rec.Move
	jm := JSONMove{
		SAN:   rec.SAN,
		UCI:   move.UCI(),
		Color: strings.ToLower(rec.Player.String()),
		From:  move.From.String(),
		To:    move.To.String(),
	}

	if r.toMove == chess.White {
		jm.MoveNumber = r.moveNum
	}
	if moving := r.board.At(move.From); moving != nil {
		jm.Piece = pieceTypeName(moving.Kind)
	}

	if move.Type == chess.EnPassant {
		jm.Captured = pieceTypeName(chess.Pawn)
	} else if captured := r.board.At(move.To); captured != nil && move.Type != chess.CastleKS && move.Type != chess.CastleQS {
		jm.Captured = pieceTypeName(captured.Kind)
	}

	if move.Type == chess.PawnPromotion {
		jm.Promotion = pieceTypeName(move.Promotion)
	}

	return jm
}

// pieceTypeName returns the piece kind as a lowercase word.
func pieceTypeName(k chess.Kind) string {
	return strings.ToLower(k.String())
}

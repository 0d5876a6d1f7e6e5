package parser

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Game is one PGN game record: its tags and the main line of its movetext.
type Game struct {
	// Tags in the order they appeared
	Tags     map[string]string
	TagOrder []string

	// Moves holds the main-line move text without numbers or annotations
	Moves []string

	// Result is the terminating result token, empty when missing
	Result string

	// Line numbers of the record within the input
	StartLine uint
	EndLine   uint
}

// Tag returns the value of a tag, or "" when absent.
func (g *Game) Tag(name string) string {
	return g.Tags[name]
}

func (g *Game) setTag(name, value string) {
	if _, ok := g.Tags[name]; !ok {
		g.TagOrder = append(g.TagOrder, name)
	}
	g.Tags[name] = value
}

// Parser parses PGN input into Game records.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	ravLevel     uint
	log          io.Writer
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, diagnostics are discarded.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	lexer := NewLexer(r, cfg)
	return &Parser{
		lexer: lexer,
		log:   lexer.log,
	}
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*Game, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()

	game := &Game{Tags: make(map[string]string), StartLine: p.lexer.LineNumber()}

	for p.parseTag(game) {
	}
	p.skipComments()

	// Skip any initial NAGs (non-standard but sometimes present)
	for p.currentToken.Type == NAGToken {
		p.nextToken()
	}

	game.Moves = p.parseMoveList()
	p.skipComments()
	game.Result = p.parseResult()
	game.EndLine = p.lexer.LineNumber()

	if err := p.lexer.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN at line %d: %v: %w", p.lexer.LineNumber(), err, errors.ErrParseFailure)
	}

	if game.Result != "" {
		if r := game.Tag("Result"); r == "" || r == "?" {
			game.setTag("Result", game.Result)
		}
	}

	if p.currentToken.Type == EOFToken && game.Moves == nil && len(game.Tags) == 0 {
		return nil, nil
	}

	return game, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult:
			return
		default:
			p.nextToken()
		}
	}
}

// parseTag parses a single tag.
func (p *Parser) parseTag(game *Game) bool {
	switch p.currentToken.Type {
	case TagToken:
		tagName := p.currentToken.Text
		p.nextToken()

		if p.currentToken.Type == StringToken {
			game.setTag(tagName, p.currentToken.Text)
			p.nextToken()
		} else {
			fmt.Fprintf(p.log, "Missing tag string for %s.\n", tagName)
		}
		return true

	case StringToken:
		fmt.Fprintf(p.log, "Missing tag name for %s.\n", p.currentToken.Text)
		p.nextToken()
		return true
	}
	return false
}

// parseMoveList parses a list of moves, returning their text. Variations
// are parsed and dropped.
func (p *Parser) parseMoveList() []string {
	var moves []string
	for {
		p.parseOptMoveNumber()
		if p.currentToken.Type != MoveToken {
			return moves
		}
		moves = append(moves, p.currentToken.Text)
		p.nextToken()
		p.skipAnnotations()

		for p.parseVariant() {
			p.skipAnnotations()
		}
	}
}

// parseOptMoveNumber skips an optional move number.
func (p *Parser) parseOptMoveNumber() {
	for p.currentToken.Type == MoveNumber {
		p.nextToken()
	}
}

// skipAnnotations skips check symbols, NAGs and comments after a move.
func (p *Parser) skipAnnotations() {
	for {
		switch p.currentToken.Type {
		case CheckSymbol, NAGToken, CommentToken:
			p.nextToken()
		default:
			return
		}
	}
}

// skipComments skips zero or more comments.
func (p *Parser) skipComments() {
	for p.currentToken.Type == CommentToken {
		p.nextToken()
	}
}

// parseVariant parses and discards a single variation.
func (p *Parser) parseVariant() bool {
	if p.currentToken.Type != RAVStart {
		return false
	}

	p.ravLevel++
	p.nextToken()
	p.skipComments()

	if moves := p.parseMoveList(); moves == nil {
		fmt.Fprintf(p.log, "Missing move list in variation.\n")
	}
	p.parseResult()
	p.skipComments()

	if p.currentToken.Type == RAVEnd {
		p.nextToken()
	} else {
		fmt.Fprintf(p.log, "Missing ')' to close variation.\n")
	}
	p.ravLevel--
	return true
}

// parseResult parses a game result.
func (p *Parser) parseResult() string {
	if p.currentToken.Type != TerminatingResult {
		return ""
	}
	result := p.currentToken.Text
	if p.ravLevel == 0 {
		// Set to NoToken to help skip between games
		p.currentToken = &Token{Type: NoToken}
	} else {
		p.nextToken()
	}
	return result
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Game, error) {
	var games []*Game
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			return games, nil
		}
		games = append(games, game)
	}
}

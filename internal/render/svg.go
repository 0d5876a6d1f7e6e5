// Package render draws board diagrams.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Square colours and styles.
const (
	lightSquare     = "fill:#f0d9b5"
	darkSquare      = "fill:#b58863"
	highlightSquare = "fill:#cdd26a;fill-opacity:0.8"
	labelStyle      = "font-family:sans-serif;fill:#404040"
)

// DefaultSquareSize is the edge length of one square in pixels.
const DefaultSquareSize = 60

// Options controls the diagram.
type Options struct {
	SquareSize int
	// Highlight squares are tinted, e.g. the last move's origin and destination.
	Highlight []chess.Position
	// Flip draws the board from Black's side.
	Flip bool
	// Coordinates adds file letters and rank digits along the edges.
	Coordinates bool
}

var glyphs = map[chess.Colour][chess.King + 1]string{
	chess.White: {"♙", "♘", "♗", "♖", "♕", "♔"},
	chess.Black: {"♟", "♞", "♝", "♜", "♛", "♚"},
}

// Glyph returns the Unicode chess symbol for p.
func Glyph(p *chess.Piece) string {
	return glyphs[p.Colour][p.Kind]
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// SVG writes a diagram of b to w.
func SVG(w io.Writer, b *chess.Board, opts Options) error {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}
	margin := 0
	if opts.Coordinates {
		margin = size / 2
	}
	edge := size*chess.BoardSize + 2*margin

	highlighted := make(map[chess.Position]bool, len(opts.Highlight))
	for _, pos := range opts.Highlight {
		highlighted[pos] = true
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(edge, edge)
	canvas.Title("chess board")

	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			pos := chess.Pos(row, col)
			x, y := screen(pos, opts.Flip, size, margin)

			style := darkSquare
			if pos.SquareColor() == chess.White {
				style = lightSquare
			}
			canvas.Rect(x, y, size, size, style)
			if highlighted[pos] {
				canvas.Rect(x, y, size, size, highlightSquare)
			}

			if piece := b.At(pos); piece != nil {
				canvas.Text(x+size/2, y+size*4/5, Glyph(piece),
					fmt.Sprintf("font-size:%dpx;text-anchor:middle", size*4/5))
			}
		}
	}

	if opts.Coordinates {
		drawCoordinates(canvas, opts.Flip, size, margin)
	}

	canvas.End()
	return ew.err
}

// screen returns the top-left pixel of pos.
func screen(pos chess.Position, flip bool, size, margin int) (int, int) {
	row, col := pos.Row, pos.Column
	if flip {
		row, col = chess.BoardSize-1-row, chess.BoardSize-1-col
	}
	return margin + col*size, margin + row*size
}

func drawCoordinates(canvas *svg.SVG, flip bool, size, margin int) {
	style := fmt.Sprintf("%s;font-size:%dpx;text-anchor:middle", labelStyle, margin*2/3)
	bottom := margin + chess.BoardSize*size + margin*2/3
	for i := 0; i < chess.BoardSize; i++ {
		file := chess.Pos(chess.BoardSize-1, i)
		x, _ := screen(file, flip, size, margin)
		canvas.Text(x+size/2, bottom, string(file.File()), style)

		rank := chess.Pos(i, 0)
		_, y := screen(rank, flip, size, margin)
		canvas.Text(margin/2, y+size/2+margin/4, string(rank.Rank()), style)
	}
}

package render

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestSVG_InitialBoard(t *testing.T) {
	var buf bytes.Buffer
	err := SVG(&buf, chess.Initial(), Options{})
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertContains(t, out, "<svg")
	testutil.AssertContains(t, out, `width="480"`)
	testutil.AssertContains(t, out, "</svg>")
	testutil.AssertEqual(t, strings.Count(out, "<rect"), 64)
	testutil.AssertEqual(t, strings.Count(out, "♙"), 8, "white pawns")
	testutil.AssertEqual(t, strings.Count(out, "♚"), 1, "black king")
	testutil.AssertNotContains(t, out, highlightSquare)
}

func TestSVG_Highlight(t *testing.T) {
	var buf bytes.Buffer
	err := SVG(&buf, chess.Initial(), Options{
		SquareSize: 40,
		Highlight:  []chess.Position{chess.Pos(6, 4), chess.Pos(4, 4)},
	})
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertContains(t, out, `width="320"`)
	testutil.AssertEqual(t, strings.Count(out, highlightSquare), 2)
}

func TestSVG_Coordinates(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, SVG(&buf, chess.NewBoard(), Options{SquareSize: 40, Coordinates: true}))

	out := buf.String()
	testutil.AssertContains(t, out, `width="360"`)
	testutil.AssertContains(t, out, ">a</text>")
	testutil.AssertContains(t, out, ">8</text>")
}

func TestScreen(t *testing.T) {
	x, y := screen(chess.Pos(0, 0), false, 10, 0)
	testutil.AssertEqual(t, []int{x, y}, []int{0, 0})

	x, y = screen(chess.Pos(0, 0), true, 10, 5)
	testutil.AssertEqual(t, []int{x, y}, []int{75, 75})
}

func TestGlyph(t *testing.T) {
	testutil.AssertEqual(t, Glyph(chess.NewPiece(chess.White, chess.Knight)), "♘")
	testutil.AssertEqual(t, Glyph(chess.NewPiece(chess.Black, chess.Queen)), "♛")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, stderrors.New("disk full")
}

func TestSVG_WriteError(t *testing.T) {
	err := SVG(failingWriter{}, chess.Initial(), Options{})
	testutil.AssertError(t, err)
}

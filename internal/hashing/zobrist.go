// Package hashing provides Zobrist position keys and a transposition table of
// node counts keyed by them.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// zobristSeed fixes the key tables so hashes are stable across runs.
const zobristSeed = 0x5eed

const numSquares = chess.BoardSize * chess.BoardSize

type zobristKeys struct {
	// Indexed by colour, kind and square.
	pieces    [chess.Black + 1][chess.King + 1][numSquares]uint64
	blackMove uint64
	// White KS, White QS, Black KS, Black QS.
	castling  [4]uint64
	enPassant [chess.BoardSize]uint64
}

var zobrist = newZobristKeys(zobristSeed)

func newZobristKeys(seed int64) *zobristKeys {
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // G404: keys need to be reproducible, not secret
	k := &zobristKeys{}
	for c := range k.pieces {
		for p := range k.pieces[c] {
			for sq := range k.pieces[c][p] {
				k.pieces[c][p][sq] = r.Uint64()
			}
		}
	}
	k.blackMove = r.Uint64()
	for i := range k.castling {
		k.castling[i] = r.Uint64()
	}
	for i := range k.enPassant {
		k.enPassant[i] = r.Uint64()
	}
	return k
}

// ZobristHash returns the 64-bit key of board with toMove to play. It covers
// the same features as the repetition signature: placement, side to move,
// castling rights and an en passant square toMove can capture onto.
func ZobristHash(board *chess.Board, toMove chess.Colour) uint64 {
	var hash uint64
	for _, pos := range board.PiecePositions() {
		p := board.At(pos)
		hash ^= zobrist.pieces[p.Colour][p.Kind][pos.Row*chess.BoardSize+pos.Column]
	}

	if toMove == chess.Black {
		hash ^= zobrist.blackMove
	}

	rights := [4]bool{
		board.CastleRightKS(chess.White),
		board.CastleRightQS(chess.White),
		board.CastleRightKS(chess.Black),
		board.CastleRightQS(chess.Black),
	}
	for i, ok := range rights {
		if ok {
			hash ^= zobrist.castling[i]
		}
	}

	if skip, ok := board.PawnSkipPosition(toMove.Opponent()); ok && board.CanCaptureEnPassant(toMove) {
		hash ^= zobrist.enPassant[skip.Column]
	}
	return hash
}

// Package perft counts move-generation tree nodes, the standard way to
// verify a move generator against published totals.
package perft

import (
	"fmt"
	"sort"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Entry is the node count below one root move.
type Entry struct {
	Move  string // UCI form
	Nodes uint64
}

// Play makes move for mover on b the way a game does: mover's own stale
// pawn-skip square is forgotten first.
func Play(b *chess.Board, move *chess.Move, mover chess.Colour) {
	b.ClearPawnSkipPosition(mover)
	move.Execute(b)
}

// Count returns the number of leaf nodes depth plies below board with mover
// to play. board is not modified.
func Count(board *chess.Board, mover chess.Colour, depth int) uint64 {
	return count(board, mover, depth, nil)
}

// CountWithTable is Count with subtree totals cached in table, so positions
// reached by transposition are only searched once.
func CountWithTable(board *chess.Board, mover chess.Colour, depth int, table *hashing.ThreadSafeNodeTable) uint64 {
	return count(board, mover, depth, table)
}

func count(board *chess.Board, mover chess.Colour, depth int, table *hashing.ThreadSafeNodeTable) uint64 {
	if depth <= 0 {
		return 1
	}
	if depth == 1 {
		return uint64(len(board.LegalMovesFor(mover)))
	}

	var hash uint64
	var signature string
	if table != nil {
		hash, signature = hashing.ZobristHash(board, mover), engine.Signature(board, mover)
		if nodes, ok := table.Lookup(hash, signature, depth); ok {
			return nodes
		}
	}

	var nodes uint64
	for _, m := range board.LegalMovesFor(mover) {
		child := board.Copy()
		Play(child, m, mover)
		nodes += count(child, mover.Opponent(), depth-1, table)
	}

	if table != nil {
		table.Store(hash, signature, depth, nodes)
	}
	return nodes
}

// Divide counts the nodes below each root move, searching root moves in
// parallel on the given number of workers. Entries are sorted by move.
func Divide(board *chess.Board, mover chess.Colour, depth, workers int) ([]Entry, uint64, error) {
	return DivideWithTable(board, mover, depth, workers, nil)
}

// DivideWithTable is Divide with the workers sharing one node table. table
// may be nil.
func DivideWithTable(board *chess.Board, mover chess.Colour, depth, workers int, table *hashing.ThreadSafeNodeTable) ([]Entry, uint64, error) {
	if depth < 1 {
		return nil, 0, fmt.Errorf("divide depth %d: %w", depth, errors.ErrInvalidConfig)
	}

	moves := board.LegalMovesFor(mover)
	if len(moves) == 0 {
		return nil, 0, nil
	}

	search := func(item worker.WorkItem) worker.ProcessResult {
		return searchRootMove(item, table)
	}
	pool := worker.NewPoolWithOptions(search,
		worker.WithWorkers(workers),
		worker.WithBufferSize(len(moves)),
	)
	pool.Start()
	for i, m := range moves {
		pool.Submit(worker.WorkItem{Board: board.Copy(), Move: m, Mover: mover, Depth: depth - 1, Index: i})
	}
	go pool.Close()

	entries := make([]Entry, 0, len(moves))
	var total uint64
	for result := range pool.Results() {
		if result.Error != nil {
			return nil, 0, result.Error
		}
		entries = append(entries, Entry{Move: result.Move.UCI(), Nodes: result.Nodes})
		total += result.Nodes
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	return entries, total, nil
}

// searchRootMove plays the item's move on its own board and counts below it.
func searchRootMove(item worker.WorkItem, table *hashing.ThreadSafeNodeTable) worker.ProcessResult {
	Play(item.Board, item.Move, item.Mover)
	return worker.ProcessResult{
		Index: item.Index,
		Move:  item.Move,
		Nodes: count(item.Board, item.Mover.Opponent(), item.Depth, table),
	}
}

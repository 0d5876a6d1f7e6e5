// Package worker provides a worker pool for parallel position searches.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// WorkItem is one root move to be searched below. Board is owned by the
// item; workers may mutate it freely.
type WorkItem struct {
	Board *chess.Board
	Move  *chess.Move
	Mover chess.Colour // player making Move
	Depth int          // remaining plies after Move
	Index int          // Original index for tracking
}

// ProcessResult represents the result of processing a work item.
type ProcessResult struct {
	Index int
	Move  *chess.Move
	Nodes uint64
	Error error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel position searches.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool{
		numWorkers:  numWorkers,
		bufferSize:  bufferSize,
		workChan:    make(chan WorkItem, bufferSize),
		resultChan:  make(chan ProcessResult, bufferSize),
		processFunc: processFunc,
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// processFunc is required; other settings have sensible defaults.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if atomic.LoadInt32(&p.stopFlag) != 0 {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

package hashing

import "sync"

// ThreadSafeNodeTable wraps NodeTable with mutex protection for concurrent access.
type ThreadSafeNodeTable struct {
	table *NodeTable
	mu    sync.RWMutex
}

// NewThreadSafeNodeTable creates a new thread-safe table.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeNodeTable(maxCapacity int) *ThreadSafeNodeTable {
	return &ThreadSafeNodeTable{
		table: NewNodeTable(maxCapacity),
	}
}

// Lookup returns the cached count for a position at depth.
func (t *ThreadSafeNodeTable) Lookup(hash uint64, signature string, depth int) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Lookup(hash, signature, depth)
}

// Store records a count.
func (t *ThreadSafeNodeTable) Store(hash uint64, signature string, depth int, nodes uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Store(hash, signature, depth, nodes)
}

// Hits returns the number of successful lookups.
func (t *ThreadSafeNodeTable) Hits() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Hits()
}

// Len returns the number of stored entries.
func (t *ThreadSafeNodeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Len()
}

// IsFull returns true if the table has reached its capacity limit.
func (t *ThreadSafeNodeTable) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.IsFull()
}

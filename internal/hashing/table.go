package hashing

// Entry is one cached node count.
type Entry struct {
	// Signature is the exact position key; it separates positions whose
	// Zobrist hashes collide.
	Signature string
	Depth     int
	Nodes     uint64
}

// NodeTable caches node counts by position and remaining depth.
type NodeTable struct {
	// table stores entries by Zobrist hash
	table map[uint64][]Entry
	// maxCapacity limits stored entries (0 = unlimited)
	maxCapacity int
	size        int
	hits        int
}

// NewNodeTable creates an empty table.
// maxCapacity of 0 means unlimited capacity.
func NewNodeTable(maxCapacity int) *NodeTable {
	return &NodeTable{
		table:       make(map[uint64][]Entry),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the cached count for a position at depth.
func (t *NodeTable) Lookup(hash uint64, signature string, depth int) (uint64, bool) {
	for _, e := range t.table[hash] {
		if e.Depth == depth && e.Signature == signature {
			t.hits++
			return e.Nodes, true
		}
	}
	return 0, false
}

// Store records a count. It returns false when the table is full or the
// entry is already present.
func (t *NodeTable) Store(hash uint64, signature string, depth int, nodes uint64) bool {
	if t.IsFull() {
		return false
	}
	for _, e := range t.table[hash] {
		if e.Depth == depth && e.Signature == signature {
			return false
		}
	}
	t.table[hash] = append(t.table[hash], Entry{Signature: signature, Depth: depth, Nodes: nodes})
	t.size++
	return true
}

// Hits returns the number of successful lookups.
func (t *NodeTable) Hits() int {
	return t.hits
}

// Len returns the number of stored entries.
func (t *NodeTable) Len() int {
	return t.size
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (t *NodeTable) IsFull() bool {
	return t.maxCapacity > 0 && t.size >= t.maxCapacity
}

// Reset clears the table.
func (t *NodeTable) Reset() {
	t.table = make(map[uint64][]Entry)
	t.size = 0
	t.hits = 0
}

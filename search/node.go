package search

// node is one frontier entry: a graph index paired with the world-frame
// state reached there and the costs accumulated along the way. The index
// may be tile-extended; it is folded with NormIndex at expansion time.
type node struct {
	index         int
	state         []float64
	motionCost    float64
	heuristicCost float64
}

// totalCost orders the frontier: accumulated motion cost plus the
// admissible estimate of the remainder.
func (n *node) totalCost() float64 { return n.motionCost + n.heuristicCost }

// historyEntry remembers the best known arrival at a quantized state and
// the frontier node it was reached from. Absent entries read as an
// infinite best cost.
type historyEntry struct {
	parent   node
	bestCost float64
}

// nodeQueue is a min-heap of *node ordered by ascending totalCost. The
// engine uses lazy decrease-key: cheaper rediscoveries push duplicates,
// and stale entries are discarded against the visited set when popped.
type nodeQueue []*node

// Len returns the number of items in the heap.
func (q nodeQueue) Len() int { return len(q) }

// Less defines the comparison: smaller totalCost means higher priority.
// Ties are left to heap order; no secondary key is applied.
func (q nodeQueue) Less(i, j int) bool { return q[i].totalCost() < q[j].totalCost() }

// Swap swaps two elements in the heap.
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type *node.
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*node)) }

// Pop removes and returns the last element of the heap slice.
// Called by heap.Pop after it has moved the minimum there.
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}

package search

import "sync"

// expand generates the successor nodes of n serially. Filtering is silent:
// a destination without an edge, with an already-visited end state, or
// with a primitive the collision check rejects simply produces no child.
func (s *Searcher) expand(n *node) []*node {
	// The stored index may point into a neighboring tile; edges leave from
	// the canonical vertex.
	cur := s.g.NormIndex(n.index)

	rows := s.g.TiledVertexCount()
	children := make([]*node, 0, rows/4+1)
	var to int
	for to = 0; to < rows; to++ {
		if c, ok := s.child(n, cur, to); ok {
			children = append(children, c)
		}
	}

	return children
}

// child applies the per-edge expansion rules for the transition cur->to
// and builds the successor node when all of them pass.
func (s *Searcher) child(n *node, cur, to int) (*node, bool) {
	// 1) The transition must exist in the lattice.
	mp, ok := s.g.Transition(cur, to)
	if !ok {
		return nil, false
	}

	// 2) Anchor the canonical primitive at the node's world state.
	world := mp.Translated(n.state)

	// 3) Skip end states already closed. This is a read-only pre-filter;
	//    the pop-time check against visited stays authoritative.
	if _, seen := s.visited[s.quant.Key(world.EndState)]; seen {
		return nil, false
	}

	// 4) Skip primitives the collision check rejects.
	if s.opts.Collision != nil && !s.opts.Collision(world) {
		return nil, false
	}

	// 5) Successor: the tiled destination index, the translated end state,
	//    the accumulated motion cost, and a fresh heuristic estimate.
	return &node{
		index:         to,
		state:         world.EndState,
		motionCost:    n.motionCost + world.Cost,
		heuristicCost: s.opts.Heuristic(world.EndState, s.goal),
	}, true
}

// expandParallel generates the same successor set as expand using worker
// goroutines. The destination range is split into contiguous chunks, each
// worker fills a private buffer, and the buffers are concatenated after
// the join. Workers only read shared state (graph, visited set, heuristic,
// collision check), so no locking is involved; the visited map is not
// written between the calls to expand within one pop cycle.
func (s *Searcher) expandParallel(n *node) []*node {
	cur := s.g.NormIndex(n.index)
	rows := s.g.TiledVertexCount()

	// 1) Clamp the worker count to the work available; a single worker
	//    degenerates to the serial loop.
	workers := s.opts.Workers
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		return s.expand(n)
	}

	// 2) Fan out over contiguous chunks with per-worker private buffers.
	buffers := make([][]*node, workers)
	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	var w int
	for w = 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > rows {
			hi = rows
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(slot, lo, hi int) {
			defer wg.Done()
			var buf []*node
			for to := lo; to < hi; to++ {
				if c, ok := s.child(n, cur, to); ok {
					buf = append(buf, c)
				}
			}
			buffers[slot] = buf
		}(w, lo, hi)
	}

	// 3) Join, then concatenate in chunk order.
	wg.Wait()
	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	out := make([]*node, 0, total)
	for _, b := range buffers {
		out = append(out, b...)
	}

	return out
}

// Package search provides a precise, cancellable best-first search engine
// over precomputed motion-primitive graphs.
//
// Overview:
//
//   - The engine plans through a core.Graph lattice: from a world-frame
//     start state it repeatedly anchors canonical primitives at the state
//     reached so far, scoring each successor by accumulated motion cost
//     plus an admissible heuristic estimate of the remainder.
//   - Continuous states are folded onto quantization cells (core.Quantizer)
//     for identity: the visited set and the arrival history are keyed by
//     StateKey, so states within one cell are explored at most once.
//   - The frontier is a binary min-heap with lazy decrease-key: finding a
//     cheaper arrival pushes a duplicate entry, and outdated entries are
//     dropped when popped against the visited set.
//   - The goal test is proximity-based and runs on the frontier minimum
//     before popping: a search ends as soon as the cheapest frontier node
//     sits within the distance threshold of the goal position, without
//     expanding that node.
//
// Expansion:
//
//   - Serial by default. With WithParallel, the destination index range is
//     split into contiguous chunks processed by worker goroutines writing
//     into private buffers that are concatenated after the join. Both
//     modes generate the same successor set; only its order may differ,
//     which the cost-ordered frontier absorbs.
//   - The per-edge rules filter silently: missing edges, end states whose
//     cell is already closed, and primitives rejected by the collision
//     check produce no successor and no error.
//
// Results and diagnostics:
//
//   - Search returns a Result: the world-frame primitive path (empty
//     unless the goal was reached), its cost, an Outcome tag, the number
//     of closed states, and per-phase Timings (pop / expand / push).
//   - Exhaustion and cancellation are not errors. Both return empty paths
//     with nil error and are distinguished by Outcome alone.
//   - VisitedStates exposes the states closed by the last call, one
//     representative per quantization cell.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:          New received a nil graph.
//   - ErrStartIndexRange:   the configured start vertex does not exist.
//   - ErrDimensionMismatch: start or goal does not match the graph's
//     state dimension.
//   - ErrBadThreshold:      negative goal distance threshold.
//   - ErrBadResolution:     (via panic) non-positive quantization step.
//   - ErrBadWorkers:        (via panic) non-positive worker count.
//   - ErrBadHeuristic:      (via panic) invalid heuristic constructor
//     arguments.
//
// Concurrency:
//
//   - A Searcher runs one Search at a time; per-call bookkeeping lives on
//     the Searcher between calls so VisitedStates can inspect it.
//   - A read-only core.Graph may back any number of Searchers running
//     concurrently. Heuristic and CollisionFunc must be safe for
//     concurrent use when parallel expansion is enabled.
//
// Complexity:
//
//   - Time:  O((V + E) log V) heap work over the quantized state space,
//     plus the cost of heuristic and collision evaluations per edge.
//   - Space: O(V + E) for the frontier, visited set, and history.
//
// Example usage:
//
//	s, err := search.New(g,
//	    search.WithHeuristic(search.MinTimeHeuristic(g.SpatialDim(), 2.0)),
//	    search.WithCollisionCheck(vm.Checker(0.1)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := s.Search(ctx, start, goal, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Outcome == search.OutcomeReached {
//	    fmt.Printf("path: %d primitives, cost %.2f\n", len(res.Primitives), res.Cost)
//	}
//
// See also:
//
//   - core: the Primitive, Graph, and Quantizer types the engine consumes.
//   - voxel: an occupancy-map CollisionFunc implementation.
package search

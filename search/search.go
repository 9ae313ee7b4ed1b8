// Package search implements best-first search over precomputed
// motion-primitive graphs.
//
// The engine walks a core.Graph lattice from an arbitrary world-frame
// start state toward a goal state, anchoring canonical primitives at each
// reached state and ordering the frontier by accumulated motion cost plus
// an admissible heuristic. State identity is quantized: states in the same
// quantization cell are one state for visited/history bookkeeping.
//
// Notes on implementation choices:
//
//   - Lazy decrease-key: cheaper rediscoveries push duplicate frontier
//     entries; stale ones are discarded against the visited set on pop.
//   - The goal proximity test peeks at the frontier minimum before popping,
//     so the goal node itself is never expanded.
//   - Expansion is side-effect free and may fan out over goroutines; all
//     bookkeeping writes stay on the calling goroutine.
package search

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/shaoyifei96/motion-primitive/core"
)

// Searcher runs best-first searches over one motion-primitive graph. The
// graph, heuristic, and collision check are bound once at construction and
// shared read-only across calls; visited/history bookkeeping is rebuilt
// per call.
//
// A Searcher serves one Search call at a time. To search one graph from
// several goroutines, give each its own Searcher.
type Searcher struct {
	g     *core.Graph
	opts  Options
	quant core.Quantizer

	// Per-call state, reset by Search.
	goal      []float64
	threshold float64
	visited   map[core.StateKey][]float64
	history   map[core.StateKey]historyEntry
	timings   Timings
}

// New builds a Searcher over g.
//
// Validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. the configured start vertex must lie in [0, VertexCount)
//     (ErrStartIndexRange).
func New(g *core.Graph, opts ...Option) (*Searcher, error) {
	// 1) Build and validate Options.
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}

	// 2) The start anchor must name a canonical vertex.
	if cfg.StartIndex < 0 || cfg.StartIndex >= g.VertexCount() {
		return nil, fmt.Errorf("%w: index=%d, vertices span [0,%d)", ErrStartIndexRange, cfg.StartIndex, g.VertexCount())
	}

	return &Searcher{
		g:     g,
		opts:  cfg,
		quant: core.NewQuantizer(cfg.Step),
	}, nil
}

// Search looks for a cost-minimal primitive sequence from start to within
// threshold of goal (Euclidean distance over the leading position
// components, strict comparison).
//
// Returns:
//
//   - A Result whose Primitives hold the world-frame path when the goal
//     was reached, with Cost, Expanded, and Timings filled in either way.
//   - An error only for precondition violations: start or goal not
//     matching the graph's state dimension (ErrDimensionMismatch), or a
//     negative threshold (ErrBadThreshold). An empty search space is not
//     an error: exhaustion and cancellation return empty results tagged
//     by Outcome.
//
// ctx is polled once per loop iteration; nil means context.Background().
func (s *Searcher) Search(ctx context.Context, start, goal []float64, threshold float64) (*Result, error) {
	// 1) Fail fast on malformed inputs.
	if len(start) != s.g.StateDim() {
		return nil, fmt.Errorf("%w: start has %d components, graph wants %d", ErrDimensionMismatch, len(start), s.g.StateDim())
	}
	if len(goal) != s.g.StateDim() {
		return nil, fmt.Errorf("%w: goal has %d components, graph wants %d", ErrDimensionMismatch, len(goal), s.g.StateDim())
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadThreshold, threshold)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// 2) Reset per-call bookkeeping.
	s.goal = append([]float64(nil), goal...)
	s.threshold = threshold
	s.visited = make(map[core.StateKey][]float64)
	s.history = make(map[core.StateKey]historyEntry)
	s.timings = Timings{}

	if s.opts.Verbose {
		fmt.Printf("search: graph %dx%d, edges=%d, primitives=%d\n",
			s.g.TiledVertexCount(), s.g.VertexCount(), s.g.EdgeCount(), s.g.PrimitiveCount())
	}

	// 3) Trivial pre-check: the start may already satisfy the goal test.
	if s.nearGoal(start) {
		return s.result(nil, 0, OutcomeTrivial), nil
	}

	// 4) Seed the frontier with the sentinel start node. Its zero motion
	//    cost doubles as the stop marker during path recovery.
	pq := make(nodeQueue, 0, s.g.VertexCount())
	heap.Init(&pq)
	heap.Push(&pq, &node{
		index:         s.opts.StartIndex,
		state:         append([]float64(nil), start...),
		motionCost:    0,
		heuristicCost: s.opts.Heuristic(start, s.goal),
	})

	// 5) Main loop: peek, pop, close, expand, filter, push.
	var (
		top      *node
		n        *node
		children []*node
		mark     time.Time
	)
	for pq.Len() > 0 {
		// 5a) Honor cancellation between iterations.
		select {
		case <-ctx.Done():
			if s.opts.Verbose {
				fmt.Printf("search: cancelled, visited=%d, frontier=%d\n", len(s.visited), pq.Len())
			}

			return s.result(nil, 0, OutcomeCancelled), nil
		default:
		}

		// 5b) Goal test on the frontier minimum before popping. The
		//     winning node is returned without ever being expanded.
		top = pq[0]
		if s.nearGoal(top.state) {
			if s.opts.Verbose {
				fmt.Printf("search: reached goal, cost=%v, visited=%d, history=%d, frontier=%d\n",
					top.motionCost, len(s.visited), len(s.history), pq.Len())
			}

			return s.result(s.recoverPath(top), top.motionCost, OutcomeReached), nil
		}

		// 5c) Pop the cheapest node.
		mark = time.Now()
		n = heap.Pop(&pq).(*node)
		s.timings.Pop += time.Since(mark)

		// 5d) Discard stale duplicates left behind by lazy decrease-key,
		//     then close the state.
		key := s.quant.Key(n.state)
		if _, seen := s.visited[key]; seen {
			continue
		}
		s.visited[key] = n.state

		// 5e) Generate successors.
		mark = time.Now()
		if s.opts.Parallel {
			children = s.expandParallel(n)
		} else {
			children = s.expand(n)
		}
		s.timings.Expand += time.Since(mark)

		// 5f) Keep only strict improvements over the best known arrival
		//     at each quantized state, then push them.
		mark = time.Now()
		for _, c := range children {
			ck := s.quant.Key(c.state)
			best := math.Inf(1)
			if e, ok := s.history[ck]; ok {
				best = e.bestCost
			}
			if c.motionCost < best {
				s.history[ck] = historyEntry{parent: *n, bestCost: c.motionCost}
				heap.Push(&pq, c)
			}
		}
		s.timings.Push += time.Since(mark)
	}

	// 6) Frontier exhausted without reaching the goal.
	if s.opts.Verbose {
		fmt.Printf("search: exhausted, visited=%d, history=%d\n", len(s.visited), len(s.history))
	}

	return s.result(nil, 0, OutcomeExhausted), nil
}

// nearGoal is the goal proximity test: Euclidean distance over the leading
// position components, strictly below the call's threshold.
func (s *Searcher) nearGoal(state []float64) bool {
	sd := s.g.SpatialDim()

	return floats.Distance(state[:sd], s.goal[:sd], 2) < s.threshold
}

// recoverPath rebuilds the world-frame primitive sequence ending at goal
// by walking history parents back to the sentinel (motion cost zero). Each
// hop re-fetches the canonical transition from the parent's folded index
// to the child's tiled index and anchors it at the parent's state. The
// sentinel itself contributes no primitive.
func (s *Searcher) recoverPath(goal *node) []core.Primitive {
	var prims []core.Primitive
	curr := *goal
	for curr.motionCost != 0 {
		prev := s.history[s.quant.Key(curr.state)].parent

		// Edge existence is guaranteed by the expansion filter that
		// admitted curr in the first place.
		mp, _ := s.g.Transition(s.g.NormIndex(prev.index), curr.index)
		prims = append(prims, mp.Translated(prev.state))
		curr = prev
	}

	// Parents were collected goal-first; flip to start-first.
	for i, j := 0, len(prims)-1; i < j; i, j = i+1, j-1 {
		prims[i], prims[j] = prims[j], prims[i]
	}

	return prims
}

// result assembles a Result carrying the shared per-call diagnostics.
func (s *Searcher) result(prims []core.Primitive, cost float64, outcome Outcome) *Result {
	return &Result{
		Primitives: prims,
		Cost:       cost,
		Outcome:    outcome,
		Expanded:   len(s.visited),
		Timings:    s.timings,
	}
}

// VisitedStates returns a copy of the representative states closed by the
// most recent Search call, one per quantization cell, in no particular
// order. Before the first call it returns an empty slice.
func (s *Searcher) VisitedStates() [][]float64 {
	out := make([][]float64, 0, len(s.visited))
	for _, st := range s.visited {
		out = append(out, append([]float64(nil), st...))
	}

	return out
}

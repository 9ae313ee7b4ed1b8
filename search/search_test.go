// Package search_test contains unit tests for the best-first planner.
// These tests validate input validation, optimality on small hand-built
// lattices, lazy rediscovery handling, quantized deduplication, start-pose
// overrides, cancellation, and the serial/parallel equivalence of results.
package search_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shaoyifei96/motion-primitive/core"
	"github.com/shaoyifei96/motion-primitive/search"
)

// hop builds a unit-duration primitive between two 1-D states with the
// given cost. Trajectories fall back to linear interpolation (no Poly).
func hop(t *testing.T, from, to, cost float64) core.Primitive {
	t.Helper()
	p, err := core.NewPrimitive(1, []float64{from}, []float64{to}, cost, 1, nil)
	if err != nil {
		t.Fatalf("NewPrimitive(%v→%v): %v", from, to, err)
	}

	return p
}

// lineGraph builds the 1-D lattice 0 → 1 → 2 with unit-cost hops.
func lineGraph(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(1, 1, [][]float64{{0}, {1}, {2}})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if err = g.AddPrimitive(0, 1, hop(t, 0, 1, 1)); err != nil {
		t.Fatalf("AddPrimitive(0,1): %v", err)
	}
	if err = g.AddPrimitive(1, 2, hop(t, 1, 2, 1)); err != nil {
		t.Fatalf("AddPrimitive(1,2): %v", err)
	}

	return g
}

// diamondGraph builds a lattice with a tempting direct edge and a cheaper
// two-hop detour:
//
//	0 ──cost 10──▶ 2 ──cost 1──▶ 3
//	0 ──cost 1──▶ 1 ──cost 1──▶ 2
//
// Vertex i sits at state [i].
func diamondGraph(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(1, 1, [][]float64{{0}, {1}, {2}, {3}})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	edges := []struct {
		from, to int
		cost     float64
	}{
		{0, 2, 10},
		{0, 1, 1},
		{1, 2, 1},
		{2, 3, 1},
	}
	var e struct {
		from, to int
		cost     float64
	}
	for _, e = range edges {
		if err = g.AddPrimitive(e.from, e.to, hop(t, float64(e.from), float64(e.to), e.cost)); err != nil {
			t.Fatalf("AddPrimitive(%d,%d): %v", e.from, e.to, err)
		}
	}

	return g
}

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestNew_NilGraph(t *testing.T) {
	// A nil graph must be rejected at construction time.
	_, err := search.New(nil)
	if !errors.Is(err, search.ErrNilGraph) {
		t.Fatalf("Expected ErrNilGraph, got %v", err)
	}
}

func TestNew_StartIndexOutOfRange(t *testing.T) {
	// WithStartIndex must be validated against the canonical vertex count.
	_, err := search.New(lineGraph(t), search.WithStartIndex(3))
	if !errors.Is(err, search.ErrStartIndexRange) {
		t.Fatalf("Expected ErrStartIndexRange for index 3, got %v", err)
	}
	_, err = search.New(lineGraph(t), search.WithStartIndex(-1))
	if !errors.Is(err, search.ErrStartIndexRange) {
		t.Fatalf("Expected ErrStartIndexRange for index -1, got %v", err)
	}
}

func TestSearch_DimensionMismatch(t *testing.T) {
	// Start and goal poses must match the graph's state dimension.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Search(context.Background(), []float64{0, 0}, []float64{2}, 0.5)
	if !errors.Is(err, search.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch for bad start, got %v", err)
	}
	_, err = s.Search(context.Background(), []float64{0}, []float64{2, 0}, 0.5)
	if !errors.Is(err, search.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch for bad goal, got %v", err)
	}
}

func TestSearch_NegativeThreshold(t *testing.T) {
	// Negative goal thresholds are meaningless and must be rejected.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Search(context.Background(), []float64{0}, []float64{2}, -0.5)
	if !errors.Is(err, search.ErrBadThreshold) {
		t.Fatalf("Expected ErrBadThreshold, got %v", err)
	}
}

func TestOptionPanics(t *testing.T) {
	// Nonsense configuration values panic when the option is applied
	// rather than silently misconfigure the planner.
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic, got none", name)
			}
		}()
		fn()
	}
	assertPanics("WithWorkers(0)", func() {
		_, _ = search.New(lineGraph(t), search.WithWorkers(0))
	})
	assertPanics("WithResolution(-1)", func() {
		_, _ = search.New(lineGraph(t), search.WithResolution(-1))
	})
	assertPanics("MinTimeHeuristic(0,1)", func() { search.MinTimeHeuristic(0, 1) })
	assertPanics("MinTimeHeuristic(1,0)", func() { search.MinTimeHeuristic(1, 0) })
}

// ------------------------------------------------------------------------
// 2. Basic Functionality: Path correctness on small lattices.
// ------------------------------------------------------------------------

func TestSearch_LineGraph(t *testing.T) {
	// Planning 0 → 2 on the line lattice must return exactly two hops
	// whose endpoints chain together into a continuous trajectory.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeReached {
		t.Fatalf("Expected OutcomeReached, got %v", res.Outcome)
	}
	if len(res.Primitives) != 2 {
		t.Fatalf("Expected 2 primitives, got %d", len(res.Primitives))
	}
	if res.Cost != 2.0 {
		t.Errorf("Expected cost 2.0, got %v", res.Cost)
	}
	// The goal pose is detected on peek, so only vertices 0 and 1 close.
	if res.Expanded != 2 {
		t.Errorf("Expected 2 expansions, got %d", res.Expanded)
	}

	// Continuity: each hop starts where the previous one ended.
	if got := res.Primitives[0].StartState[0]; got != 0 {
		t.Errorf("hop 0 starts at %v, want 0", got)
	}
	if got := res.Primitives[0].EndState[0]; got != 1 {
		t.Errorf("hop 0 ends at %v, want 1", got)
	}
	if got := res.Primitives[1].StartState[0]; got != 1 {
		t.Errorf("hop 1 starts at %v, want 1", got)
	}
	if got := res.Primitives[1].EndState[0]; got != 2 {
		t.Errorf("hop 1 ends at %v, want 2", got)
	}
}

func TestSearch_TrivialStart(t *testing.T) {
	// A start pose already inside the goal region returns an empty plan
	// without expanding anything.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{0.3}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeTrivial {
		t.Fatalf("Expected OutcomeTrivial, got %v", res.Outcome)
	}
	if len(res.Primitives) != 0 {
		t.Errorf("Expected empty plan, got %d primitives", len(res.Primitives))
	}
	if res.Cost != 0 || res.Expanded != 0 {
		t.Errorf("Expected zero cost and zero expansions, got cost=%v expanded=%d", res.Cost, res.Expanded)
	}
}

func TestSearch_TrivialThresholdIsStrict(t *testing.T) {
	// The goal test uses a strict inequality: a start exactly on the
	// threshold boundary is NOT trivially done.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{0.5}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome == search.OutcomeTrivial {
		t.Fatalf("Distance exactly at threshold must not be trivial")
	}
}

func TestSearch_Unreachable(t *testing.T) {
	// A goal no lattice state can approach exhausts the frontier.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{9}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeExhausted {
		t.Fatalf("Expected OutcomeExhausted, got %v", res.Outcome)
	}
	if len(res.Primitives) != 0 {
		t.Errorf("Expected no primitives, got %d", len(res.Primitives))
	}
	if res.Expanded != 3 {
		t.Errorf("Expected all 3 states expanded, got %d", res.Expanded)
	}
}

// ------------------------------------------------------------------------
// 3. Lazy rediscovery: cheaper routes win, stale entries never re-expand.
// ------------------------------------------------------------------------

func TestSearch_CheaperRediscoveryWins(t *testing.T) {
	// The diamond lattice pushes vertex 2 twice: once at cost 10 via the
	// direct edge, once at cost 2 via the detour. The plan must follow
	// the detour.
	s, err := search.New(diamondGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{3}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeReached {
		t.Fatalf("Expected OutcomeReached, got %v", res.Outcome)
	}
	if res.Cost != 3.0 {
		t.Errorf("Expected cost 3.0 via the detour, got %v", res.Cost)
	}
	if len(res.Primitives) != 3 {
		t.Fatalf("Expected 3 primitives, got %d", len(res.Primitives))
	}
	// Vertices 0, 1 and 2 close before the goal is peeked at vertex 3.
	if res.Expanded != 3 {
		t.Errorf("Expected 3 expansions, got %d", res.Expanded)
	}
}

func TestSearch_StaleEntrySkippedOnPop(t *testing.T) {
	// With an unreachable goal the diamond lattice drains completely.
	// Vertex 2 is pushed twice but must close exactly once: the cost-10
	// copy is discarded when popped against the visited set.
	s, err := search.New(diamondGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{9}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeExhausted {
		t.Fatalf("Expected OutcomeExhausted, got %v", res.Outcome)
	}
	if res.Expanded != 4 {
		t.Errorf("Expected 4 expansions (one per state), got %d", res.Expanded)
	}
}

func TestSearch_QuantizedDeduplication(t *testing.T) {
	// Two vertices 0.004 apart share a quantization cell at the default
	// 0.01 resolution, so only the cheaper one may close.
	g, err := core.NewGraph(1, 1, [][]float64{{0}, {1}, {1.004}})
	if err != nil {
		t.Fatal(err)
	}
	if err = g.AddPrimitive(0, 1, hop(t, 0, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if err = g.AddPrimitive(0, 2, hop(t, 0, 1.004, 2)); err != nil {
		t.Fatal(err)
	}

	s, err := search.New(g)
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{9}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Expanded != 2 {
		t.Errorf("Expected 2 expansions (cells deduplicated), got %d", res.Expanded)
	}

	// A finer resolution separates the cells again.
	s, err = search.New(g, search.WithResolution(0.001))
	if err != nil {
		t.Fatal(err)
	}
	res, err = s.Search(context.Background(), []float64{0}, []float64{9}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Expanded != 3 {
		t.Errorf("Expected 3 expansions at fine resolution, got %d", res.Expanded)
	}
}

// ------------------------------------------------------------------------
// 4. Configuration: start-index overrides, heuristics, diagnostics.
// ------------------------------------------------------------------------

func TestSearch_WithStartIndex(t *testing.T) {
	// Seeding the search at vertex 1 skips the first hop entirely.
	s, err := search.New(lineGraph(t), search.WithStartIndex(1))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{1}, []float64{2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeReached {
		t.Fatalf("Expected OutcomeReached, got %v", res.Outcome)
	}
	if len(res.Primitives) != 1 || res.Cost != 1.0 {
		t.Errorf("Expected a single unit-cost hop, got %d primitives at cost %v",
			len(res.Primitives), res.Cost)
	}
}

func TestSearch_MinTimeHeuristicKeepsOptimality(t *testing.T) {
	// An admissible heuristic must not change the returned cost.
	s, err := search.New(diamondGraph(t), search.WithHeuristic(search.MinTimeHeuristic(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{3}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 3.0 {
		t.Errorf("Expected cost 3.0 with heuristic, got %v", res.Cost)
	}
}

func TestSearch_VisitedStates(t *testing.T) {
	// VisitedStates reports one pose per closed cell and is detached
	// from the planner's internal bookkeeping.
	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{9}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	visited := s.VisitedStates()
	if len(visited) != res.Expanded {
		t.Fatalf("Expected %d visited states, got %d", res.Expanded, len(visited))
	}
	seen := map[float64]bool{}
	var v []float64
	for _, v = range visited {
		seen[v[0]] = true
	}
	var want float64
	for _, want = range []float64{0, 1, 2} {
		if !seen[want] {
			t.Errorf("Expected state [%v] among visited poses", want)
		}
	}

	// Mutating the returned slices must not corrupt the planner.
	visited[0][0] = math.NaN()
	if n := len(s.VisitedStates()); n != res.Expanded {
		t.Errorf("Visited pose count changed after caller mutation: %d", n)
	}
}

func TestSearch_TimingsPopulated(t *testing.T) {
	// A non-trivial run accumulates non-negative phase timings.
	s, err := search.New(diamondGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{3}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Timings.Pop < 0 || res.Timings.Expand < 0 || res.Timings.Push < 0 {
		t.Errorf("Negative phase timings: %+v", res.Timings)
	}
}

// ------------------------------------------------------------------------
// 5. Cancellation and parallel equivalence.
// ------------------------------------------------------------------------

func TestSearch_Cancelled(t *testing.T) {
	// A context cancelled before the first pop aborts the run cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := search.New(lineGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(ctx, []float64{0}, []float64{2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeCancelled {
		t.Fatalf("Expected OutcomeCancelled, got %v", res.Outcome)
	}
	if len(res.Primitives) != 0 || res.Expanded != 0 {
		t.Errorf("Expected no work done, got %d primitives and %d expansions",
			len(res.Primitives), res.Expanded)
	}
}

func TestSearch_ParallelMatchesSerial(t *testing.T) {
	// Concurrent expansion changes only the wall clock, never the plan.
	goals := [][]float64{{3}, {9}}
	var goal []float64
	for _, goal = range goals {
		serial, err := search.New(diamondGraph(t))
		if err != nil {
			t.Fatal(err)
		}
		parallel, err := search.New(diamondGraph(t), search.WithParallel(), search.WithWorkers(3))
		if err != nil {
			t.Fatal(err)
		}

		sres, err := serial.Search(context.Background(), []float64{0}, goal, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		pres, err := parallel.Search(context.Background(), []float64{0}, goal, 0.5)
		if err != nil {
			t.Fatal(err)
		}

		if sres.Outcome != pres.Outcome {
			t.Errorf("goal %v: outcome mismatch: serial=%v parallel=%v", goal, sres.Outcome, pres.Outcome)
		}
		if sres.Cost != pres.Cost {
			t.Errorf("goal %v: cost mismatch: serial=%v parallel=%v", goal, sres.Cost, pres.Cost)
		}
		if len(sres.Primitives) != len(pres.Primitives) {
			t.Errorf("goal %v: plan length mismatch: serial=%d parallel=%d",
				goal, len(sres.Primitives), len(pres.Primitives))
		}
		if sres.Expanded != pres.Expanded {
			t.Errorf("goal %v: expansion count mismatch: serial=%d parallel=%d",
				goal, sres.Expanded, pres.Expanded)
		}
	}
}

// ------------------------------------------------------------------------
// 6. Tiled lattices: destination indices fold back onto canonical sources.
// ------------------------------------------------------------------------

// tiledLine builds a single-vertex lattice spanning three tiles. Its one
// edge leads from the canonical vertex to the copy one tile over, so a walk
// re-anchors the same unit primitive tile after tile.
func tiledLine(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(1, 1, [][]float64{{0}}, core.WithTiling(3))
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if err = g.AddPrimitive(0, 1, hop(t, 0, 1, 1)); err != nil {
		t.Fatalf("AddPrimitive(0,1): %v", err)
	}

	return g
}

func TestSearch_TiledWalkCrossesTiles(t *testing.T) {
	// Planning 0 → 3 on the tiled line must chain the single canonical
	// primitive three times, each hop anchored one tile further out.
	s, err := search.New(tiledLine(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{3}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeReached {
		t.Fatalf("Expected OutcomeReached, got %v", res.Outcome)
	}
	if res.Cost != 3.0 {
		t.Errorf("Expected cost 3.0, got %v", res.Cost)
	}
	if len(res.Primitives) != 3 {
		t.Fatalf("Expected 3 primitives, got %d", len(res.Primitives))
	}
	// States [0], [1] and [2] close; the goal pose is detected on peek.
	if res.Expanded != 3 {
		t.Errorf("Expected 3 expansions, got %d", res.Expanded)
	}
	var i int
	for i = range res.Primitives {
		if got := res.Primitives[i].StartState[0]; got != float64(i) {
			t.Errorf("hop %d starts at %v, want %d", i, got, i)
		}
		if got := res.Primitives[i].EndState[0]; got != float64(i+1) {
			t.Errorf("hop %d ends at %v, want %d", i, got, i+1)
		}
	}
}

func TestSearch_TiledWalkAlternatesVertices(t *testing.T) {
	// Two canonical vertices half a tile apart, two tiles. Vertex 0 reaches
	// vertex 1 inside its own tile; vertex 1 reaches vertex 0 of the next
	// tile (destination index 2). A walk to [2] therefore alternates
	// between the vertices, and every second hop leaves from a node whose
	// stored index lies in the far tile and must fold back to canonical 0,
	// both while expanding and while the plan is rebuilt.
	g, err := core.NewGraph(1, 1, [][]float64{{0}, {0.5}}, core.WithTiling(2))
	if err != nil {
		t.Fatal(err)
	}
	if err = g.AddPrimitive(0, 1, hop(t, 0, 0.5, 1)); err != nil {
		t.Fatal(err)
	}
	if err = g.AddPrimitive(1, 2, hop(t, 0.5, 1, 1)); err != nil {
		t.Fatal(err)
	}

	s, err := search.New(g)
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(context.Background(), []float64{0}, []float64{2}, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != search.OutcomeReached {
		t.Fatalf("Expected OutcomeReached, got %v", res.Outcome)
	}
	if res.Cost != 4.0 {
		t.Errorf("Expected cost 4.0, got %v", res.Cost)
	}
	if len(res.Primitives) != 4 {
		t.Fatalf("Expected 4 primitives, got %d", len(res.Primitives))
	}
	if res.Expanded != 4 {
		t.Errorf("Expected 4 expansions, got %d", res.Expanded)
	}
	var i int
	for i = range res.Primitives {
		if got := res.Primitives[i].StartState[0]; got != 0.5*float64(i) {
			t.Errorf("hop %d starts at %v, want %v", i, got, 0.5*float64(i))
		}
		if got := res.Primitives[i].EndState[0]; got != 0.5*float64(i+1) {
			t.Errorf("hop %d ends at %v, want %v", i, got, 0.5*float64(i+1))
		}
	}
}

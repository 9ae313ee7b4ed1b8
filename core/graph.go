package core

import "fmt"

// noEdge marks an empty entry in the dense edge matrix.
const noEdge = -1

// Graph is a precomputed motion-primitive lattice. Vertices are canonical
// states sampled near the origin; edges are primitives connecting them. The
// edge matrix is dense and directed: rows span the tiled destination index
// space [0, TiledVertexCount), columns span the canonical source space
// [0, VertexCount), and an entry holds the primitive index for that
// transition or nothing.
//
// Tiled destination indices are laid out tile-major: index i refers to
// canonical vertex i % VertexCount in tile i / VertexCount. NormIndex
// performs exactly that fold.
//
// A Graph is mutable through AddPrimitive during construction and must be
// treated as read-only once handed to a search. Read methods are safe for
// concurrent use on a read-only graph.
type Graph struct {
	spatialDim int
	controlDim int
	stateDim   int

	numTiles int
	tiled    bool

	dispersion float64
	rho        float64
	maxState   []float64

	vertices  [][]float64 // canonical states, one row per vertex
	edges     [][]int     // edges[to][from] = primitive index, or noEdge
	prims     []Primitive
	edgeCount int
}

// NewGraph builds an empty graph over the given canonical vertex states.
// The full state dimension is spatialDim * controlDim, and every vertex
// must have exactly that length. Vertex slices are copied.
//
// Validation (in order):
//  1. spatialDim and controlDim must be positive (ErrBadDimension).
//  2. vertices must be non-empty (ErrNoVertices).
//  3. every vertex must have stateDim components (ErrDimensionMismatch).
func NewGraph(spatialDim, controlDim int, vertices [][]float64, opts ...GraphOption) (*Graph, error) {
	// 1) Dimensions first; everything else is sized from them.
	if spatialDim <= 0 || controlDim <= 0 {
		return nil, fmt.Errorf("%w: spatial=%d control=%d", ErrBadDimension, spatialDim, controlDim)
	}

	// 2) An empty lattice cannot anchor a search.
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}

	g := &Graph{
		spatialDim: spatialDim,
		controlDim: controlDim,
		stateDim:   spatialDim * controlDim,
		numTiles:   1,
	}

	// 3) Apply functional options before allocation; WithTiling changes the
	//    number of destination rows.
	var opt GraphOption
	for _, opt = range opts {
		opt(g)
	}

	// 4) Validate and copy the vertex states.
	g.vertices = make([][]float64, len(vertices))
	for i, v := range vertices {
		if len(v) != g.stateDim {
			return nil, fmt.Errorf("%w: vertex %d has %d components, want %d", ErrDimensionMismatch, i, len(v), g.stateDim)
		}
		g.vertices[i] = append([]float64(nil), v...)
	}

	// 5) Allocate the dense edge matrix, all entries empty.
	rows := len(vertices) * g.numTiles
	g.edges = make([][]int, rows)
	var r, c int
	for r = 0; r < rows; r++ {
		row := make([]int, len(vertices))
		for c = range row {
			row[c] = noEdge
		}
		g.edges[r] = row
	}

	return g, nil
}

// AddPrimitive wires the transition from canonical vertex `from` to tiled
// destination `to` with primitive p. The primitive is stored as given
// (its slices are not copied again; NewPrimitive already copied them).
//
// Validation (in order):
//  1. from must lie in [0, VertexCount) and to in [0, TiledVertexCount)
//     (ErrVertexRange).
//  2. both of p's boundary states must have the graph's state dimension,
//     and p.SpatialDim must match its spatial dimension
//     (ErrDimensionMismatch).
//  3. p.Cost must be non-negative (ErrNegativeCost).
//  4. the (from, to) slot must be empty (ErrDuplicateEdge).
//
// Steps 2 and 3 re-check what NewPrimitive already enforced: hand-built
// Primitive literals bypass it.
func (g *Graph) AddPrimitive(from, to int, p Primitive) error {
	// 1) Index ranges.
	if from < 0 || from >= len(g.vertices) {
		return fmt.Errorf("%w: from=%d, sources span [0,%d)", ErrVertexRange, from, len(g.vertices))
	}
	if to < 0 || to >= len(g.edges) {
		return fmt.Errorf("%w: to=%d, destinations span [0,%d)", ErrVertexRange, to, len(g.edges))
	}

	// 2) Dimension agreement with the lattice, on both boundary states;
	//    a hand-built literal may disagree with itself.
	if len(p.StartState) != g.stateDim {
		return fmt.Errorf("%w: primitive start state has %d components, graph wants %d", ErrDimensionMismatch, len(p.StartState), g.stateDim)
	}
	if len(p.EndState) != g.stateDim {
		return fmt.Errorf("%w: primitive end state has %d components, graph wants %d", ErrDimensionMismatch, len(p.EndState), g.stateDim)
	}
	if p.SpatialDim != g.spatialDim {
		return fmt.Errorf("%w: primitive spatial dim %d, graph wants %d", ErrDimensionMismatch, p.SpatialDim, g.spatialDim)
	}

	// 3) Cost sign, re-checked for hand-built primitives.
	if p.Cost < 0 {
		return fmt.Errorf("%w: cost=%v", ErrNegativeCost, p.Cost)
	}

	// 4) One primitive per directed transition.
	if g.edges[to][from] != noEdge {
		return fmt.Errorf("%w: %d->%d", ErrDuplicateEdge, from, to)
	}

	g.prims = append(g.prims, p)
	g.edges[to][from] = len(g.prims) - 1
	g.edgeCount++

	return nil
}

// NormIndex folds a tiled destination index back to its canonical vertex
// index. i must be non-negative.
func (g *Graph) NormIndex(i int) int { return i % len(g.vertices) }

// HasEdge reports whether the transition from canonical vertex `from` to
// tiled destination `to` exists. Out-of-range indices simply have no edge.
func (g *Graph) HasEdge(from, to int) bool {
	if from < 0 || from >= len(g.vertices) || to < 0 || to >= len(g.edges) {
		return false
	}

	return g.edges[to][from] != noEdge
}

// Transition returns the canonical-frame primitive for the transition from
// canonical vertex `from` to tiled destination `to`, and whether that edge
// exists. The returned value shares backing arrays with the graph; use
// Translated or Clone before modifying it.
func (g *Graph) Transition(from, to int) (Primitive, bool) {
	if from < 0 || from >= len(g.vertices) || to < 0 || to >= len(g.edges) {
		return Primitive{}, false
	}
	id := g.edges[to][from]
	if id == noEdge {
		return Primitive{}, false
	}

	return g.prims[id], true
}

// Vertex returns a copy of the canonical state of vertex i. i must lie in
// [0, VertexCount).
func (g *Graph) Vertex(i int) []float64 {
	return append([]float64(nil), g.vertices[i]...)
}

// SpatialDim returns the number of position components per state.
func (g *Graph) SpatialDim() int { return g.spatialDim }

// ControlDim returns the number of derivative levels per axis (position,
// velocity, ... up to the control space input).
func (g *Graph) ControlDim() int { return g.controlDim }

// StateDim returns the full state dimension, spatialDim * controlDim.
func (g *Graph) StateDim() int { return g.stateDim }

// VertexCount returns the number of canonical vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// TiledVertexCount returns the number of destination rows in the edge
// matrix, VertexCount * NumTiles.
func (g *Graph) TiledVertexCount() int { return len(g.edges) }

// NumTiles returns the number of tiles spanned by destination indices.
func (g *Graph) NumTiles() int { return g.numTiles }

// Tiled reports whether the graph spans more than one tile.
func (g *Graph) Tiled() bool { return g.tiled }

// Dispersion returns the dispersion radius recorded at generation time.
func (g *Graph) Dispersion() float64 { return g.dispersion }

// Rho returns the effort weight recorded at generation time.
func (g *Graph) Rho() float64 { return g.rho }

// MaxState returns a copy of the recorded per-derivative state bounds, or
// nil when none were recorded.
func (g *Graph) MaxState() []float64 {
	if g.maxState == nil {
		return nil
	}

	return append([]float64(nil), g.maxState...)
}

// PrimitiveCount returns the number of stored primitives.
func (g *Graph) PrimitiveCount() int { return len(g.prims) }

// EdgeCount returns the number of wired transitions.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Package core declares the shared types and sentinel errors of the
// motion-primitive data layer: Primitive, Graph, Quantizer, StateKey,
// and the GraphOption configuration hooks.
package core

import "errors"

// Sentinel errors returned by the core data layer.
var (
	// ErrBadDimension indicates a non-positive spatial or control dimension.
	ErrBadDimension = errors.New("core: spatial and control dimensions must be positive")

	// ErrDimensionMismatch indicates that a state vector, vertex, origin, or
	// polynomial row has the wrong length for the declared dimensions.
	ErrDimensionMismatch = errors.New("core: state dimension mismatch")

	// ErrNoVertices indicates that NewGraph was called with no vertices.
	ErrNoVertices = errors.New("core: graph needs at least one vertex")

	// ErrVertexRange indicates a vertex index outside its valid range.
	// Sources range over [0, VertexCount), destinations over
	// [0, TiledVertexCount).
	ErrVertexRange = errors.New("core: vertex index out of range")

	// ErrNegativeCost indicates a primitive with a negative traversal cost.
	// Best-first search over the graph requires non-negative costs.
	ErrNegativeCost = errors.New("core: primitive cost must be non-negative")

	// ErrBadDuration indicates a primitive with a negative trajectory time.
	ErrBadDuration = errors.New("core: primitive duration must be non-negative")

	// ErrDuplicateEdge indicates that AddPrimitive was called twice for the
	// same (from, to) pair.
	ErrDuplicateEdge = errors.New("core: edge already present")

	// ErrBadTileCount indicates a non-positive tile count.
	ErrBadTileCount = errors.New("core: tile count must be positive")

	// ErrGraphSchema indicates that a JSON graph description does not match
	// the documented schema or violates a graph invariant.
	ErrGraphSchema = errors.New("core: invalid graph description")
)

// GraphOption configures a Graph during NewGraph, before any primitive is
// added.
type GraphOption func(*Graph)

// WithTiling declares that the destination index space spans numTiles
// copies of the vertex set. The edge matrix is allocated with
// numTiles * VertexCount destination rows. numTiles must be positive;
// invalid values panic with ErrBadTileCount.
func WithTiling(numTiles int) GraphOption {
	return func(g *Graph) {
		if numTiles <= 0 {
			panic(ErrBadTileCount.Error())
		}
		g.numTiles = numTiles
		g.tiled = numTiles > 1
	}
}

// WithDispersion records the dispersion radius the lattice was generated
// with. The value is metadata; the search does not consume it.
func WithDispersion(d float64) GraphOption {
	return func(g *Graph) {
		g.dispersion = d
	}
}

// WithRho records the effort weight used by the cost function during graph
// generation. The value is metadata; the search does not consume it.
func WithRho(rho float64) GraphOption {
	return func(g *Graph) {
		g.rho = rho
	}
}

// WithMaxState records the per-derivative state bounds the lattice was
// sampled under. The slice is copied.
func WithMaxState(maxState []float64) GraphOption {
	return func(g *Graph) {
		g.maxState = append([]float64(nil), maxState...)
	}
}

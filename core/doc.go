// Package core provides the data layer for motion-primitive graph planning:
// the Primitive motion segment, the precomputed primitive Graph, the state
// Quantizer, and a JSON codec for graph descriptions.
//
// Overview:
//
//   - A Primitive is one canonical-frame motion between two full states
//     (position plus derivatives). It carries a non-negative traversal cost,
//     a trajectory duration, and optional per-axis position polynomials.
//   - A Graph is a dense lattice of canonical vertex states connected by
//     primitives. Adjacency is directed and asymmetric: an edge from vertex
//     u to vertex w says nothing about the reverse motion.
//   - Tiling extends the destination index space beyond the canonical
//     vertex set, so a lattice sampled around the origin can reach copies of
//     itself in neighboring tiles. NormIndex folds a tiled index back to its
//     canonical vertex.
//   - A Quantizer maps continuous states to discrete, comparable StateKeys
//     by fixed-resolution scaling and truncation. Two states within the same
//     quantization cell share a key; key equality is the single notion of
//     state identity used by search bookkeeping and by the voxel package's
//     occupancy cells.
//
// Canonical frame and translation:
//
//   - Graph primitives are stored in the canonical frame, anchored at their
//     vertex states near the origin. Translated produces a world-frame copy
//     anchored at an arbitrary position; only the leading SpatialDim
//     components of the states and the constant polynomial coefficients
//     shift. The stored canonical copy is never mutated.
//
// Construction:
//
//   - NewGraph validates dimensions up front and allocates the edge matrix;
//     AddPrimitive wires one transition at a time, rejecting out-of-range
//     indices, dimension disagreements, negative costs, and duplicates.
//   - Load / LoadFile decode the JSON description written by the graph
//     generation pipeline and rebuild the Graph through the same validating
//     path, so a decoded graph satisfies the same invariants as a
//     hand-built one.
//
// Concurrency:
//
//   - A Graph is mutable during construction and read-only afterwards. All
//     read methods are safe for concurrent use once construction is done;
//     interleaving AddPrimitive with readers is a caller error.
//   - Primitive values returned by Transition share backing arrays with the
//     graph. Translated and Clone return deep copies safe to modify.
//
// Error handling (sentinel errors):
//
//   - ErrBadDimension:      non-positive spatial or control dimension.
//   - ErrDimensionMismatch: a state, vertex, or polynomial row has the
//     wrong length for the declared dimensions.
//   - ErrNoVertices:        NewGraph called with an empty vertex set.
//   - ErrVertexRange:       a vertex index is outside its valid range.
//   - ErrNegativeCost:      a primitive declares a negative cost.
//   - ErrBadDuration:       a primitive declares a negative duration.
//   - ErrDuplicateEdge:     AddPrimitive called twice for one (from, to).
//   - ErrBadTileCount:      a non-positive tile count.
//   - ErrGraphSchema:       a JSON graph description violates the schema.
//
// See also:
//
//   - search: the best-first engine that consumes Graphs.
//   - voxel: an occupancy map built on Quantizer cells.
package core

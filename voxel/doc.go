// Package voxel provides a sparse occupancy grid over quantized position
// cells, intended as the collision oracle behind motion-primitive search.
//
// Overview:
//
//   - A Map folds world positions onto cells with a core.Quantizer whose
//     step is the cell edge length. Add marks cells occupied; Occupied
//     answers point queries in O(1).
//   - Blocked samples a primitive's positions at a fixed time step
//     (always including the end pose) and reports whether any sample hits
//     an occupied cell. Checker wraps that test into the traversability
//     callback shape the search engine consumes.
//
// The sampling step trades fidelity for speed: steps larger than the cell
// size can hop over thin obstacles, so pick a step whose travelled
// distance per sample stays below the map resolution.
//
// A Map is built once and then queried read-only; concurrent queries on a
// read-only map are safe, which parallel frontier expansion relies on.
package voxel

// Package motionprimitive is a planning toolkit for lattice-based motion:
// load a precomputed motion-primitive graph, drop in an occupancy map, and
// search for cost-optimal, dynamically feasible primitive sequences.
//
// What lives here?
//
//	A small, focused library organized under three subpackages:
//		core/   - Primitive and Graph types, state quantization, JSON graph I/O
//		search/ - cancellable best-first search with serial or parallel expansion
//		voxel/  - sparse occupancy grid usable as the search's collision check
//
// The planning model:
//
//   - Offline, a lattice generator samples vertex states around the origin
//     and connects them with motion primitives: short, dynamically feasible
//     trajectories with known cost, duration, and position polynomials.
//   - Online, the search anchors those canonical primitives at whatever
//     world state it has reached so far, checks them against an occupancy
//     map, and chains them toward the goal in best-first order.
//
// Quick ASCII example:
//
//	start ──mp₃──▶ ○ ──mp₁──▶ ○ ──mp₇──▶ goal
//
//	three primitives stitched into one feasible trajectory.
//
// Highlights:
//
//   - Quantized state identity: nearby states collapse into one search node
//   - Lazy decrease-key frontier: no priority updates, stale entries skipped
//   - Context cancellation, outcome tags, and per-phase timing counters
//   - Parallel expansion that provably matches the serial successor set
//
//	go get github.com/shaoyifei96/motion-primitive
package motionprimitive

package search

import "gonum.org/v1/gonum/floats"

// ZeroHeuristic estimates zero remaining cost everywhere, reducing the
// search to uniform-cost order. Always admissible.
func ZeroHeuristic(_, _ []float64) float64 { return 0 }

// MinTimeHeuristic returns the straight-line flight-time estimate: the
// Euclidean distance between the leading spatialDim position components of
// state and goal, divided by maxVelocity. Admissible whenever primitive
// costs are trajectory times and no primitive exceeds maxVelocity.
//
// spatialDim and maxVelocity must be positive; invalid values panic with
// ErrBadHeuristic.
func MinTimeHeuristic(spatialDim int, maxVelocity float64) Heuristic {
	if spatialDim <= 0 || maxVelocity <= 0 {
		panic(ErrBadHeuristic.Error())
	}

	return func(state, goal []float64) float64 {
		return floats.Distance(state[:spatialDim], goal[:spatialDim], 2) / maxVelocity
	}
}

// Package voxel implements an in-memory occupancy map over quantized
// position cells, usable as a collision check for primitive search.
package voxel

import (
	"errors"
	"fmt"

	"github.com/shaoyifei96/motion-primitive/core"
)

// Sentinel errors returned by the voxel map.
var (
	// ErrBadDimension indicates a non-positive spatial dimension.
	ErrBadDimension = errors.New("voxel: spatial dimension must be positive")

	// ErrBadResolution indicates a non-positive cell edge length.
	ErrBadResolution = errors.New("voxel: resolution must be positive")

	// ErrDimensionMismatch indicates a point whose length does not match
	// the map's spatial dimension.
	ErrDimensionMismatch = errors.New("voxel: point dimension mismatch")
)

// Map is a sparse voxel occupancy grid. Positions are folded onto cells by
// a core.Quantizer whose step is the cell edge length; a cell is either
// occupied or free. The zero cell layout matches the quantizer's
// truncation toward zero.
//
// A Map is mutable through Add/AddAll and must be treated as read-only
// once handed to a search; queries on a read-only map are safe for
// concurrent use.
type Map struct {
	dim      int
	quant    core.Quantizer
	occupied map[core.StateKey]struct{}
}

// NewMap builds an empty occupancy map for positions of spatialDim
// components with the given cell edge length.
func NewMap(spatialDim int, resolution float64) (*Map, error) {
	if spatialDim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadDimension, spatialDim)
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadResolution, resolution)
	}

	return &Map{
		dim:      spatialDim,
		quant:    core.NewQuantizer(resolution),
		occupied: make(map[core.StateKey]struct{}),
	}, nil
}

// SpatialDim returns the number of position components per point.
func (m *Map) SpatialDim() int { return m.dim }

// Resolution returns the cell edge length.
func (m *Map) Resolution() float64 { return m.quant.Step }

// Len returns the number of occupied cells.
func (m *Map) Len() int { return len(m.occupied) }

// Add marks the cell containing point as occupied.
func (m *Map) Add(point []float64) error {
	if len(point) != m.dim {
		return fmt.Errorf("%w: point has %d components, map wants %d", ErrDimensionMismatch, len(point), m.dim)
	}
	m.occupied[m.quant.Key(point)] = struct{}{}

	return nil
}

// AddAll marks the cells containing every given point as occupied.
func (m *Map) AddAll(points [][]float64) error {
	for i, p := range points {
		if err := m.Add(p); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}

	return nil
}

// Occupied reports whether the cell containing point is occupied. Keys
// encode the point length, so a point of the wrong dimension matches no
// occupied cell.
func (m *Map) Occupied(point []float64) bool {
	_, ok := m.occupied[m.quant.Key(point)]

	return ok
}

// Blocked reports whether any position sampled along p at the given time
// step lands in an occupied cell. The end pose is always sampled. A
// non-positive step falls back to core.DefaultSampleStep.
func (m *Map) Blocked(p core.Primitive, step float64) bool {
	for _, pos := range p.SampledPositions(step) {
		if m.Occupied(pos) {
			return true
		}
	}

	return false
}

// Checker adapts the map into a primitive traversability test: it returns
// true for primitives whose sampled positions stay clear of occupied
// cells. The returned function matches search.CollisionFunc and is safe
// for concurrent use once the map is read-only.
func (m *Map) Checker(step float64) func(p core.Primitive) bool {
	if step <= 0 {
		step = core.DefaultSampleStep
	}

	return func(p core.Primitive) bool {
		return !m.Blocked(p, step)
	}
}

package core

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// DefaultSampleStep is the sampling interval, in trajectory time, used by
// SampledPositions when the caller passes a non-positive step.
const DefaultSampleStep = 0.1

// Primitive is one precomputed motion between two full states. States hold
// the position in their leading SpatialDim components followed by
// higher-order derivatives (velocity, acceleration, ...), flattened axis by
// axis. Poly, when present, holds one position polynomial per spatial axis
// with coefficients ordered from the highest degree down to the constant
// term.
//
// A Primitive is a value; copies made by assignment share the backing
// arrays of their slices. Use Clone or Translated for an independent copy.
type Primitive struct {
	// SpatialDim is the number of leading position components.
	SpatialDim int

	// Cost is the non-negative traversal cost charged by the search.
	Cost float64

	// Duration is the trajectory time from StartState to EndState.
	Duration float64

	// StartState and EndState are full states of equal length.
	StartState []float64
	EndState   []float64

	// Poly holds SpatialDim rows of polynomial coefficients, or nil for
	// primitive families that do not store polynomials.
	Poly [][]float64
}

// NewPrimitive validates and builds a Primitive. All slices are copied, so
// the caller keeps ownership of its arguments.
//
// Validation (in order):
//  1. spatialDim must be positive (ErrBadDimension).
//  2. start and end must have equal length, at least spatialDim
//     (ErrDimensionMismatch).
//  3. cost must be non-negative (ErrNegativeCost).
//  4. duration must be non-negative (ErrBadDuration).
//  5. poly, if non-nil, must have exactly spatialDim non-empty rows
//     (ErrDimensionMismatch).
func NewPrimitive(spatialDim int, start, end []float64, cost, duration float64, poly [][]float64) (Primitive, error) {
	// 1) Dimensions must make sense before anything else is inspected.
	if spatialDim <= 0 {
		return Primitive{}, fmt.Errorf("%w: spatial dimension %d", ErrBadDimension, spatialDim)
	}

	// 2) The two boundary states describe the same state space.
	if len(start) != len(end) {
		return Primitive{}, fmt.Errorf("%w: start has %d components, end has %d", ErrDimensionMismatch, len(start), len(end))
	}
	if len(start) < spatialDim {
		return Primitive{}, fmt.Errorf("%w: state has %d components, need at least %d positions", ErrDimensionMismatch, len(start), spatialDim)
	}

	// 3) Non-negative cost keeps best-first expansion order admissible.
	if cost < 0 {
		return Primitive{}, fmt.Errorf("%w: cost=%v", ErrNegativeCost, cost)
	}

	// 4) Trajectory time cannot run backwards.
	if duration < 0 {
		return Primitive{}, fmt.Errorf("%w: duration=%v", ErrBadDuration, duration)
	}

	// 5) One polynomial row per spatial axis, when polynomials are stored.
	var polyCopy [][]float64
	if poly != nil {
		if len(poly) != spatialDim {
			return Primitive{}, fmt.Errorf("%w: %d polynomial rows for %d spatial axes", ErrDimensionMismatch, len(poly), spatialDim)
		}
		polyCopy = make([][]float64, spatialDim)
		for i, row := range poly {
			if len(row) == 0 {
				return Primitive{}, fmt.Errorf("%w: polynomial row %d is empty", ErrDimensionMismatch, i)
			}
			polyCopy[i] = append([]float64(nil), row...)
		}
	}

	return Primitive{
		SpatialDim: spatialDim,
		Cost:       cost,
		Duration:   duration,
		StartState: append([]float64(nil), start...),
		EndState:   append([]float64(nil), end...),
		Poly:       polyCopy,
	}, nil
}

// StateDim returns the full state dimension (positions plus derivatives).
func (p Primitive) StateDim() int { return len(p.StartState) }

// StartPosition returns a copy of the leading SpatialDim components of the
// start state.
func (p Primitive) StartPosition() []float64 {
	return append([]float64(nil), p.StartState[:p.SpatialDim]...)
}

// EndPosition returns a copy of the leading SpatialDim components of the
// end state.
func (p Primitive) EndPosition() []float64 {
	return append([]float64(nil), p.EndState[:p.SpatialDim]...)
}

// Clone returns a deep copy sharing no memory with the receiver.
func (p Primitive) Clone() Primitive {
	cp := p
	cp.StartState = append([]float64(nil), p.StartState...)
	cp.EndState = append([]float64(nil), p.EndState...)
	if p.Poly != nil {
		cp.Poly = make([][]float64, len(p.Poly))
		for i, row := range p.Poly {
			cp.Poly[i] = append([]float64(nil), row...)
		}
	}

	return cp
}

// Translated returns a deep copy of the primitive anchored at origin: the
// leading SpatialDim components of both states shift by the delta from the
// stored start position to origin, and the constant coefficient of each
// polynomial row shifts by the same delta. Higher-order state components
// and non-constant coefficients are untouched, and the receiver is never
// mutated.
//
// origin must provide at least SpatialDim components; shorter slices panic.
func (p Primitive) Translated(origin []float64) Primitive {
	cp := p.Clone()

	// 1) Per-axis displacement from the canonical anchor to the new origin.
	delta := make([]float64, p.SpatialDim)
	floats.SubTo(delta, origin[:p.SpatialDim], p.StartState[:p.SpatialDim])

	// 2) Shift the position components of both boundary states.
	floats.Add(cp.StartState[:p.SpatialDim], delta)
	floats.Add(cp.EndState[:p.SpatialDim], delta)

	// 3) The constant term is the position at t=0; it follows the shift.
	if cp.Poly != nil {
		for d := 0; d < p.SpatialDim; d++ {
			row := cp.Poly[d]
			row[len(row)-1] += delta[d]
		}
	}

	return cp
}

// Position evaluates the primitive's position at trajectory time t.
//
// With polynomials stored, each axis is evaluated by Horner's rule. Without
// them, the position is interpolated linearly from start to end over
// [0, Duration]; t is clamped to that interval, and a zero-duration
// primitive reports its start position for all t.
func (p Primitive) Position(t float64) []float64 {
	pos := make([]float64, p.SpatialDim)

	if p.Poly != nil {
		for d := 0; d < p.SpatialDim; d++ {
			pos[d] = horner(p.Poly[d], t)
		}

		return pos
	}

	// Linear fallback for primitive families without stored polynomials.
	frac := 0.0
	switch {
	case p.Duration <= 0:
		frac = 0
	case t >= p.Duration:
		frac = 1
	case t > 0:
		frac = t / p.Duration
	}
	for d := 0; d < p.SpatialDim; d++ {
		pos[d] = p.StartState[d] + frac*(p.EndState[d]-p.StartState[d])
	}

	return pos
}

// SampledPositions returns the positions at t = 0, step, 2*step, ... below
// Duration, plus the final position at t = Duration. A non-positive step
// falls back to DefaultSampleStep. A zero-duration primitive yields the
// single start position.
func (p Primitive) SampledPositions(step float64) [][]float64 {
	if step <= 0 {
		step = DefaultSampleStep
	}

	// 1) Interior samples strictly before the end of the trajectory.
	samples := make([][]float64, 0, int(p.Duration/step)+2)
	for t := 0.0; t < p.Duration; t += step {
		samples = append(samples, p.Position(t))
	}

	// 2) The end pose is always included so the terminal state is covered.
	samples = append(samples, p.Position(p.Duration))

	return samples
}

// horner evaluates a polynomial with coefficients ordered from the highest
// degree down to the constant term.
func horner(coeffs []float64, t float64) float64 {
	var acc float64
	for _, c := range coeffs {
		acc = acc*t + c
	}

	return acc
}

package core

import "encoding/binary"

// DefaultStep is the quantization cell size used when a Quantizer carries a
// non-positive Step. One centimeter-scale cell per hundredth of a unit
// matches the resolution the planning graphs are generated at.
const DefaultStep = 0.01

// StateKey is the canonical identity of a quantized state. Keys are plain
// comparable strings, so they serve directly as map keys. Two states map to
// the same key exactly when every component lands in the same quantization
// cell; states of different lengths never share a key.
type StateKey string

// Quantizer folds continuous states onto a fixed grid. Each component is
// scaled by 1/Step and truncated toward zero, so the cell around the origin
// absorbs values from both sides (e.g. -0.004 and +0.004 share a cell at
// the default step). The zero value quantizes at DefaultStep.
type Quantizer struct {
	// Step is the cell edge length. Non-positive values fall back to
	// DefaultStep.
	Step float64
}

// NewQuantizer returns a Quantizer with the given cell size. Non-positive
// steps fall back to DefaultStep.
func NewQuantizer(step float64) Quantizer {
	if step <= 0 {
		step = DefaultStep
	}

	return Quantizer{Step: step}
}

// Cells returns the integer cell coordinates of v, one per component.
// Truncation is toward zero, matching an integer cast.
func (q Quantizer) Cells(v []float64) []int64 {
	scale := q.scale()
	cells := make([]int64, len(v))
	for i, x := range v {
		cells[i] = int64(x * scale)
	}

	return cells
}

// Key returns the canonical StateKey of v: the cell coordinates packed as
// little-endian 64-bit words. The mapping is total and deterministic, and
// equal keys imply component-wise equal cells.
func (q Quantizer) Key(v []float64) StateKey {
	scale := q.scale()
	buf := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[8*i:], uint64(int64(x*scale)))
	}

	return StateKey(buf)
}

func (q Quantizer) scale() float64 {
	if q.Step <= 0 {
		return 1 / DefaultStep
	}

	return 1 / q.Step
}

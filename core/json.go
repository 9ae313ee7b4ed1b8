package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// graphJSON is the on-disk description of a Graph, as written by the graph
// generation pipeline.
//
// Schema:
//
//	{
//	  "spatial_dim":     2,            // position components per state
//	  "control_space_q": 2,            // derivative levels per axis
//	  "tiling":          true,         // mirrors num_tiles > 1
//	  "num_tiles":       9,            // destination tiles (default 1)
//	  "dispersion":      0.4,          // generation metadata
//	  "rho":             1.0,          // generation metadata
//	  "max_state":       [...],        // optional per-derivative bounds
//	  "vertices":        [[...], ...], // canonical states, one per vertex
//	  "edges":           [[-1, 0], ...],
//	  "mps":             [{...}, ...]
//	}
//
// "edges" is the dense destination-by-source matrix: vertices*num_tiles
// rows of vertices entries, each entry an index into "mps" or -1. One mps
// entry may be referenced by several matrix cells; the decoded graph stores
// an independent primitive per wired transition.
type graphJSON struct {
	SpatialDim int             `json:"spatial_dim"`
	ControlDim int             `json:"control_space_q"`
	Tiling     bool            `json:"tiling"`
	NumTiles   int             `json:"num_tiles"`
	Dispersion float64         `json:"dispersion"`
	Rho        float64         `json:"rho"`
	MaxState   []float64       `json:"max_state,omitempty"`
	Vertices   [][]float64     `json:"vertices"`
	Edges      [][]int         `json:"edges"`
	Prims      []primitiveJSON `json:"mps"`
}

// primitiveJSON mirrors one "mps" entry.
type primitiveJSON struct {
	Cost     float64     `json:"cost"`
	TrajTime float64     `json:"traj_time"`
	Start    []float64   `json:"start_state"`
	End      []float64   `json:"end_state"`
	Poly     [][]float64 `json:"polys,omitempty"`
}

// Load decodes a JSON graph description from r and rebuilds the Graph
// through NewGraph and AddPrimitive, so every invariant enforced on a
// hand-built graph holds for a decoded one. Schema violations are reported
// as ErrGraphSchema.
func Load(r io.Reader) (*Graph, error) {
	// 1) Decode the raw description.
	var dto graphJSON
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGraphSchema, err)
	}

	// 2) Tile count defaults to one; WithTiling rejects non-positive
	//    counts by panicking, so the loader screens them first.
	numTiles := dto.NumTiles
	if numTiles == 0 {
		numTiles = 1
	}
	if numTiles < 0 {
		return nil, fmt.Errorf("%w: num_tiles=%d", ErrGraphSchema, dto.NumTiles)
	}

	// 3) Rebuild the empty lattice.
	g, err := NewGraph(dto.SpatialDim, dto.ControlDim, dto.Vertices,
		WithTiling(numTiles),
		WithDispersion(dto.Dispersion),
		WithRho(dto.Rho),
		WithMaxState(dto.MaxState),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGraphSchema, err)
	}

	// 4) The edge matrix must cover the full destination-by-source space.
	if len(dto.Edges) != g.TiledVertexCount() {
		return nil, fmt.Errorf("%w: %d edge rows, want %d", ErrGraphSchema, len(dto.Edges), g.TiledVertexCount())
	}

	// 5) Wire every non-empty matrix cell through the validating path.
	var from, to, id int
	for to = range dto.Edges {
		row := dto.Edges[to]
		if len(row) != g.VertexCount() {
			return nil, fmt.Errorf("%w: edge row %d has %d entries, want %d", ErrGraphSchema, to, len(row), g.VertexCount())
		}
		for from = range row {
			id = row[from]
			if id == noEdge {
				continue
			}
			if id < 0 || id >= len(dto.Prims) {
				return nil, fmt.Errorf("%w: edge %d->%d references primitive %d of %d", ErrGraphSchema, from, to, id, len(dto.Prims))
			}

			mp := dto.Prims[id]
			p, err := NewPrimitive(dto.SpatialDim, mp.Start, mp.End, mp.Cost, mp.TrajTime, mp.Poly)
			if err != nil {
				return nil, fmt.Errorf("%w: primitive %d: %v", ErrGraphSchema, id, err)
			}
			if err = g.AddPrimitive(from, to, p); err != nil {
				return nil, fmt.Errorf("%w: edge %d->%d: %v", ErrGraphSchema, from, to, err)
			}
		}
	}

	return g, nil
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("core: open graph description: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// MarshalJSON encodes the graph in the same schema Load accepts. Each wired
// transition is written as its own "mps" entry, in edge insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	dto := graphJSON{
		SpatialDim: g.spatialDim,
		ControlDim: g.controlDim,
		Tiling:     g.tiled,
		NumTiles:   g.numTiles,
		Dispersion: g.dispersion,
		Rho:        g.rho,
		MaxState:   g.maxState,
		Vertices:   g.vertices,
		Edges:      g.edges,
		Prims:      make([]primitiveJSON, len(g.prims)),
	}
	for i, p := range g.prims {
		dto.Prims[i] = primitiveJSON{
			Cost:     p.Cost,
			TrajTime: p.Duration,
			Start:    p.StartState,
			End:      p.EndState,
			Poly:     p.Poly,
		}
	}

	return json.Marshal(dto)
}

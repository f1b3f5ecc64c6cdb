// Package codec converts block store contents to and from the compact JSON
// scene format. Export writes one object per block with single-letter keys and
// default-valued flags omitted; Import accepts the same shape plus verbose
// legacy aliases and normalizes everything to one canonical record form before
// any domain logic runs.
package codec

import (
	"encoding/json"
	"fmt"
	"math"

	"block-editor/internal/block"
	"block-editor/internal/grid"
	"block-editor/internal/material"
)

// Record is the canonical normalized form of one persisted block. P holds the
// persisted position (X/Z center, Y = base elevation + baseline offset); S is
// the size in grid units. Flag fields carry their canonical defaults when the
// source omitted them (Anchored defaults to true; see DESIGN.md).
type Record struct {
	P [3]float64
	S [3]int
	C *material.RGB
	M string

	Editable     bool
	Transparency float64
	CanCollide   bool
	Anchored     bool
}

// wireBlock is the JSON shape of one exported block. Pointer flag fields are
// set only when the value differs from its default, which keeps the exported
// document minimal.
type wireBlock struct {
	P [3]float64 `json:"P"`
	S [3]int     `json:"S"`
	C []float64  `json:"C,omitempty"`
	M string     `json:"M,omitempty"`
	E *bool      `json:"E,omitempty"`
	T *float64   `json:"T,omitempty"`
	K *bool      `json:"K,omitempty"`
	A *bool      `json:"A,omitempty"`
}

// round3 rounds color components to 3 decimals for export.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// normColor maps a color triple to the normalized 0..1 range: any component
// above 1 means the triple is 0..255 and the whole triple is divided by 255.
func normColor(c material.RGB) material.RGB {
	if c.R > 1 || c.G > 1 || c.B > 1 {
		c.R /= 255
		c.G /= 255
		c.B /= 255
	}
	c.R = round3(c.R)
	c.G = round3(c.G)
	c.B = round3(c.B)
	return c
}

// Export serializes the store's blocks, in insertion order, to the compact
// JSON array.
func Export(s *block.Store) ([]byte, error) {
	blocks := s.All()
	out := make([]wireBlock, 0, len(blocks))
	for _, b := range blocks {
		w := wireBlock{
			P: [3]float64{
				math.Round(b.Center[0]),
				math.Round(grid.ToExternalY(b.Center[1], float64(b.Size[1]))),
				math.Round(b.Center[2]),
			},
			S: b.Size,
			M: s.MaterialOf(b),
		}
		if c := s.ColorOf(b); c != nil {
			n := normColor(*c)
			w.C = []float64{n.R, n.G, n.B}
		}
		if b.Editable {
			v := true
			w.E = &v
		}
		if b.Transparency != 0 {
			v := b.Transparency
			w.T = &v
		}
		if !b.CanCollide {
			v := false
			w.K = &v
		}
		if !b.Anchored {
			v := false
			w.A = &v
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}

// Import parses raw and normalizes it into canonical records. A parse failure
// or a non-array top level returns an error and touches nothing; entries
// missing P or S are skipped silently (defensive, not an error).
func Import(raw []byte) ([]Record, error) {
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("scene import: %w", err)
	}
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		if rec, ok := normalizeEntry(e); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Apply replaces the store's contents with the given records. The existing
// blocks are fully cleared before the first record is recreated: Clear returns
// only once the store is empty, so the destructive replace cannot interleave.
// Placement reapplies the baseline offset compensation exactly once per block.
func Apply(records []Record, s *block.Store) {
	s.Clear()
	for _, rec := range records {
		at := block.Pos{
			X:     rec.P[0],
			BaseY: grid.BaseFromExternalY(rec.P[1]),
			Z:     rec.P[2],
		}
		b := s.Place(at, rec.S, block.Look{Color: rec.C, MaterialName: rec.M})
		b.Editable = rec.Editable
		b.Transparency = rec.Transparency
		b.CanCollide = rec.CanCollide
		b.Anchored = rec.Anchored
	}
}

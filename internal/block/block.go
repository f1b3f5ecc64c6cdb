package block

import (
	"github.com/google/uuid"

	"block-editor/internal/material"
)

// DefaultColor is the near-white look used when a block is placed with neither
// an explicit color nor a material.
var DefaultColor = material.RGB{R: 0.93, G: 0.93, B: 0.93}

// Block is a placed rectangular prism. Center is the internal world-space
// center (the baseline offset is already folded in via grid.ToInternalY at
// placement time); Size is in grid units, each axis >= 1.
//
// Color is nil when the block uses a bare material look; it is set when a tint
// was explicitly supplied or computed at placement. Material is the name
// reference into the material registry, "" when none. A block may carry both
// (material plus tint).
type Block struct {
	ID     string
	Center [3]float64
	Size   [3]int

	Color    *material.RGB
	Material string

	Editable     bool
	Transparency float64
	CanCollide   bool
	Anchored     bool
}

// newBlock returns a block with default flags (editable false, transparency 0,
// canCollide true, anchored true).
func newBlock() *Block {
	return &Block{
		ID:         uuid.NewString(),
		CanCollide: true,
		Anchored:   true,
	}
}

// Pos is an external placement position: world X/Z plus the base elevation
// (before the baseline offset is applied).
type Pos struct {
	X, BaseY, Z float64
}

// Look carries the appearance arguments of a placement: an explicit tint, a
// material reference, or neither. Color takes precedence as the recorded tint;
// a material reference without Color (a Def, a name, or both) means the bare
// material look, whose tint is never recorded so the block keeps following the
// registry.
type Look struct {
	Color        *material.RGB
	Def          *material.Def
	MaterialName string
}

// resolve returns the concrete display color and whether it is recorded on the
// block as an explicit tint. Any material reference without an explicit color
// is a bare material look: the color is resolved from the registry at draw
// time instead of being recorded, so export/import cycles cannot turn a bare
// material into a tinted one.
func (l Look) resolve() (material.RGB, bool) {
	if l.Color != nil {
		return *l.Color, true
	}
	if l.Def != nil {
		return l.Def.Base, false
	}
	if l.MaterialName != "" {
		return DefaultColor, false
	}
	return DefaultColor, true
}

// materialName returns the material reference to record, if any.
func (l Look) materialName() string {
	if l.MaterialName != "" {
		return l.MaterialName
	}
	if l.Def != nil {
		return l.Def.Name
	}
	return ""
}

// DisplayColor returns the color a block renders with: its tint when present,
// otherwise the base color of its material (resolved by the caller), otherwise
// the default near-white.
func (b *Block) DisplayColor(reg *material.Registry) material.RGB {
	if b.Color != nil {
		return *b.Color
	}
	if b.Material != "" && reg != nil {
		if d, ok := reg.Lookup(b.Material); ok {
			return d.Base
		}
	}
	return DefaultColor
}

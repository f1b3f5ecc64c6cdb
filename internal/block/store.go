package block

import (
	"math"

	"block-editor/internal/geom"
	"block-editor/internal/grid"
	"block-editor/internal/material"
)

// baseEps is the tolerance when comparing base elevations of neighbors.
const baseEps = 1e-6

// Store is the single owner of all placed blocks. Iteration order is insertion
// order, which is also export order. All mutation happens on the UI event
// thread; the store itself does no locking.
type Store struct {
	blocks []*Block
	byID   map[string]*Block

	onChange func()
	onRemove func(*Block)
	releaser func(*Block) error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Block)}
}

// SetOnChange registers the listener fired after any mutation (place, remove,
// clear). The session uses it to refresh the exported JSON text.
func (s *Store) SetOnChange(fn func()) { s.onChange = fn }

// SetOnRemove registers the listener fired for each removed block, before the
// change hook. The session uses it to drop a removed selection and any resize
// handles referencing the block.
func (s *Store) SetOnRemove(fn func(*Block)) { s.onRemove = fn }

// SetReleaser registers the hook that releases a removed block's visual
// resources (meshes, textures). Release errors are ignored: cleanup failure
// must never abort a deletion or clear.
func (s *Store) SetReleaser(fn func(*Block) error) { s.releaser = fn }

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Place constructs a block at the given base position and adds it to the store.
// It never fails: size is clamped to >= 1 per axis, X/Z and the base elevation
// are snapped to multiples of the block's own size (self-consistent grid), and
// the vertical baseline offset is applied exactly once via grid.ToInternalY.
func (s *Store) Place(at Pos, size [3]int, look Look) *Block {
	for i := range size {
		if size[i] < 1 {
			size[i] = 1
		}
	}

	b := newBlock()
	b.Size = size
	b.Center[0] = grid.Snap(at.X, float64(size[0])*grid.Unit)
	b.Center[2] = grid.Snap(at.Z, float64(size[2])*grid.Unit)
	baseY := grid.Snap(at.BaseY, float64(size[1])*grid.Unit)
	b.Center[1] = grid.ToInternalY(baseY, float64(size[1]))

	color, recorded := look.resolve()
	if recorded {
		c := color
		b.Color = &c
	}
	b.Material = look.materialName()

	s.blocks = append(s.blocks, b)
	s.byID[b.ID] = b
	s.changed()
	return b
}

// Remove deletes the block from the store and releases its visual resources.
// Removing a block that is not in the store is a guarded no-op.
func (s *Store) Remove(b *Block) {
	if b == nil {
		return
	}
	if _, ok := s.byID[b.ID]; !ok {
		return
	}
	delete(s.byID, b.ID)
	for i, cur := range s.blocks {
		if cur == b {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			break
		}
	}
	s.release(b)
	if s.onRemove != nil {
		s.onRemove(b)
	}
	s.changed()
}

// Clear removes every block with the same per-block cleanup as Remove. The
// store is fully empty before Clear returns, which is what lets an import
// guarantee clear-then-recreate ordering.
func (s *Store) Clear() {
	if len(s.blocks) == 0 {
		return
	}
	removed := s.blocks
	s.blocks = nil
	s.byID = make(map[string]*Block)
	for _, b := range removed {
		s.release(b)
		if s.onRemove != nil {
			s.onRemove(b)
		}
	}
	s.changed()
}

func (s *Store) release(b *Block) {
	if s.releaser == nil {
		return
	}
	_ = s.releaser(b) // cleanup failure never aborts removal
}

// Len returns the number of blocks.
func (s *Store) Len() int { return len(s.blocks) }

// Get returns the block with the given id, or nil.
func (s *Store) Get(id string) *Block { return s.byID[id] }

// All returns the blocks in insertion order. The slice is a copy; the blocks
// are the store's own (the store remains their single owner).
func (s *Store) All() []*Block {
	out := make([]*Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// ColorOf returns the recorded tint of a block (nil when the block uses a bare
// material look). MaterialOf returns the material name, "" when none. The
// codec reads block appearance only through these.
func (s *Store) ColorOf(b *Block) *material.RGB { return b.Color }

// MaterialOf returns the block's material name reference.
func (s *Store) MaterialOf(b *Block) string { return b.Material }

// Hit is a ray intersection with a block.
type Hit struct {
	Block  *Block
	Dist   float32
	Normal geom.Vec3
	Point  geom.Vec3
}

// Bounds returns the block's AABB in world space.
func Bounds(b *Block) geom.Box {
	return geom.BoxAt(
		geom.Vec3{float32(b.Center[0]), float32(b.Center[1]), float32(b.Center[2])},
		geom.Vec3{float32(b.Size[0]), float32(b.Size[1]), float32(b.Size[2])},
	)
}

// FindByRay returns the nearest block whose bounding box the ray intersects.
// A miss is a normal outcome, reported via ok.
func (s *Store) FindByRay(r geom.Ray) (Hit, bool) {
	best := Hit{Dist: float32(math.Inf(1))}
	for _, b := range s.blocks {
		dist, normal, ok := r.HitBox(Bounds(b))
		if !ok || dist >= best.Dist {
			continue
		}
		best = Hit{Block: b, Dist: dist, Normal: normal, Point: r.PointAt(dist)}
	}
	if best.Block == nil {
		return Hit{}, false
	}
	return best, true
}

// BaseY returns a block's base elevation (external convention, before the
// baseline offset).
func BaseY(b *Block) float64 {
	return grid.BaseFromExternalY(grid.ToExternalY(b.Center[1], float64(b.Size[1])))
}

// HasCardinalNeighbor reports whether any block occupies one of the four
// cardinal cells around the target footprint at the same base elevation. Side
// placement requires at least one such neighbor; without it the scene would
// grow diagonally from near-edge hits.
func (s *Store) HasCardinalNeighbor(at Pos, size [3]int) bool {
	probes := [4][2]float64{
		{at.X + float64(size[0])*grid.Unit, at.Z},
		{at.X - float64(size[0])*grid.Unit, at.Z},
		{at.X, at.Z + float64(size[2])*grid.Unit},
		{at.X, at.Z - float64(size[2])*grid.Unit},
	}
	for _, b := range s.blocks {
		if math.Abs(BaseY(b)-at.BaseY) > baseEps {
			continue
		}
		halfX := float64(b.Size[0]) * grid.Unit / 2
		halfZ := float64(b.Size[2]) * grid.Unit / 2
		for _, p := range probes {
			if math.Abs(p[0]-b.Center[0]) <= halfX+baseEps &&
				math.Abs(p[1]-b.Center[2]) <= halfZ+baseEps {
				return true
			}
		}
	}
	return false
}

// OccupiedAt reports whether any block's footprint covers the given X/Z point
// at the same base elevation. Used to refuse stacking a new block into a cell
// that already holds one.
func (s *Store) OccupiedAt(at Pos) bool {
	for _, b := range s.blocks {
		if math.Abs(BaseY(b)-at.BaseY) > baseEps {
			continue
		}
		halfX := float64(b.Size[0]) * grid.Unit / 2
		halfZ := float64(b.Size[2]) * grid.Unit / 2
		if math.Abs(at.X-b.Center[0]) < halfX-baseEps &&
			math.Abs(at.Z-b.Center[2]) < halfZ-baseEps {
			return true
		}
	}
	return false
}

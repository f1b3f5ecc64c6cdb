// Package interact interprets pointer rays against the scene: selection,
// placement, deletion, paint marking, and the resize ("grow") drag. The
// machine mutates the scene only through the session and its block store, and
// always returns to a consistent state (Idle or Selected) after any handled
// failure; a raycast miss is a normal outcome, never an error.
package interact

import (
	"block-editor/internal/block"
	"block-editor/internal/geom"
	"block-editor/internal/grid"
	"block-editor/internal/session"
)

// State is the pointer machine state.
type State int

const (
	StateIdle State = iota
	StateSelected
	StatePainting
	StateResizeDragging
)

// dragFallbackDist is the distance along the view ray used when a drag's
// ground projection misses (looking above the horizon). The drag continues
// from that point instead of aborting.
const dragFallbackDist = 40

type dragState struct {
	axis   int // 0=X, 1=Y, 2=Z
	dir    int // +1 or -1
	origin *block.Block
	steps  int
}

// Machine is the pointer interaction state machine. One machine drives one
// session; both live on the UI event thread.
type Machine struct {
	s     *session.Session
	state State

	marked map[string]bool // paint markers by block id, one per block per drag

	handlesFor *block.Block // block currently showing grow handles, nil when hidden

	drag         dragState
	cameraLocked bool
}

// NewMachine returns a machine bound to the session: the session routes paint
// marker and handle cleanup (mode transitions, block removal) through it.
func NewMachine(s *session.Session) *Machine {
	m := &Machine{s: s, marked: make(map[string]bool)}
	s.Bind(m)
	return m
}

// State returns the current machine state.
func (m *Machine) State() State { return m.state }

// CameraLocked reports whether camera rotate/pan must be suspended (true for
// the duration of a resize drag).
func (m *Machine) CameraLocked() bool { return m.cameraLocked }

// IsMarked reports whether the block carries a paint marker.
func (m *Machine) IsMarked(b *block.Block) bool {
	if b == nil {
		return false
	}
	return m.marked[b.ID]
}

// MarkedCount returns the number of paint-marked blocks.
func (m *Machine) MarkedCount() int { return len(m.marked) }

// ClearPaintMarkers removes all paint markers.
func (m *Machine) ClearPaintMarkers() { m.marked = make(map[string]bool) }

// RemoveGrowHandles hides the grow handles. An in-progress drag is cancelled
// and the camera lock released.
func (m *Machine) RemoveGrowHandles() {
	m.handlesFor = nil
	if m.state == StateResizeDragging {
		m.endDrag()
	}
}

// DropHandlesFor clears handles and any drag referencing a removed block.
func (m *Machine) DropHandlesFor(b *block.Block) {
	if m.handlesFor == b {
		m.handlesFor = nil
	}
	if m.state == StateResizeDragging && m.drag.origin == b {
		m.endDrag()
	}
	delete(m.marked, b.ID)
}

// endDrag resets drag state unconditionally: the camera lock is always
// released, whatever ended the drag.
func (m *Machine) endDrag() {
	m.drag = dragState{}
	m.cameraLocked = false
	if m.s.Selected() != nil {
		m.state = StateSelected
	} else {
		m.state = StateIdle
	}
}

// PointerDown interprets a pointer press. Behavior follows the tool mode and,
// in priority order: grow-handle grab, rescale select/paint, then
// place/destroy/select raycast against blocks and ground.
func (m *Machine) PointerDown(ray geom.Ray) {
	// Mutual exclusion: while a drag is in progress no second selection or
	// drag can start.
	if m.state == StateResizeDragging {
		return
	}

	if m.s.Mode() == session.ModeRescale && m.s.Selected() != nil && m.handlesFor == m.s.Selected() {
		if h, ok := m.hitHandle(ray); ok {
			m.drag = dragState{axis: h.Axis, dir: h.Dir, origin: m.s.Selected()}
			m.cameraLocked = true
			m.state = StateResizeDragging
			return
		}
	}

	hit, hitBlock := m.s.Store().FindByRay(ray)

	if m.s.Mode() == session.ModeRescale && hitBlock {
		if hit.Block == m.s.Selected() {
			// Second click on the already-selected block reveals the handles.
			m.handlesFor = hit.Block
			m.state = StateSelected
			return
		}
		m.s.SetSelected(hit.Block)
		m.ClearPaintMarkers()
		m.marked[hit.Block.ID] = true
		m.handlesFor = nil
		m.state = StatePainting
		return
	}

	groundPoint, groundHit := ray.HitGround()

	if hitBlock && (!groundHit || hit.Dist <= ray.Origin.Sub(groundPoint).Len()) {
		m.pointerDownOnBlock(hit)
		return
	}
	if groundHit && m.s.PlaceMode() {
		size := m.s.CurrentSize()
		m.s.PlaceBlockAt(float64(groundPoint.X()), 0, float64(groundPoint.Z()),
			size[0], size[1], size[2], m.s.CurrentLook())
		return
	}
	// Miss: silent no-op.
}

func (m *Machine) pointerDownOnBlock(hit block.Hit) {
	b := hit.Block

	switch m.s.Mode() {
	case session.ModeDestroy:
		m.s.RemoveBlock(b)
		return
	case session.ModePaint:
		if c := m.s.ColorOverride(); c != nil {
			cp := *c
			b.Color = &cp
			m.s.UpdateJSON()
		}
		return
	case session.ModeMaterial:
		if name := m.s.SelectedMaterial(); name != "" {
			b.Material = name
			if c := m.s.ColorOverride(); c != nil {
				cp := *c
				b.Color = &cp
			}
			m.s.UpdateJSON()
		}
		return
	}

	face, axis, dir := geom.ClassifyFace(hit.Normal)
	if m.s.PlaceMode() {
		switch face {
		case geom.FaceTop:
			m.placeOnTop(hit)
			return
		case geom.FaceSide:
			m.placeBeside(b, axis, dir)
			return
		}
	}

	// Default: select. Handles are never revealed outside rescale mode.
	m.s.SetSelected(b)
	m.state = StateSelected
}

// placeOnTop places a new block directly above the clicked block, inheriting
// its top as the new base elevation.
func (m *Machine) placeOnTop(hit block.Hit) {
	b := hit.Block
	size := m.s.CurrentSize()
	baseY := block.BaseY(b) + float64(b.Size[1])*grid.Unit
	at := block.Pos{X: float64(hit.Point.X()), BaseY: baseY, Z: float64(hit.Point.Z())}
	at.X = grid.Snap(at.X, float64(size[0])*grid.Unit)
	at.Z = grid.Snap(at.Z, float64(size[2])*grid.Unit)
	if m.s.Store().OccupiedAt(at) {
		return
	}
	m.s.PlaceBlockAt(at.X, at.BaseY, at.Z, size[0], size[1], size[2], m.s.CurrentLook())
}

// placeBeside places a new block adjacent to the clicked block along the
// outward side normal. The target base elevation comes from snapping the
// clicked block's base to the new block's own vertical grid, and the placement
// is rejected silently unless at least one cardinal neighbor already sits next
// to the target cell at that elevation. This is what keeps near-edge hits from
// growing the scene diagonally or floating it off existing geometry.
func (m *Machine) placeBeside(b *block.Block, axis, dir int) {
	size := m.s.CurrentSize()
	at := block.Pos{
		X:     b.Center[0],
		BaseY: grid.Snap(block.BaseY(b), float64(size[1])*grid.Unit),
		Z:     b.Center[2],
	}
	offset := (float64(b.Size[axis])/2 + float64(size[axis])/2) * grid.Unit
	if axis == 0 {
		at.X += float64(dir) * offset
	} else {
		at.Z += float64(dir) * offset
	}
	at.X = grid.Snap(at.X, float64(size[0])*grid.Unit)
	at.Z = grid.Snap(at.Z, float64(size[2])*grid.Unit)
	if m.s.Store().OccupiedAt(at) {
		return
	}
	if !m.s.Store().HasCardinalNeighbor(at, size) {
		return
	}
	m.s.PlaceBlockAt(at.X, at.BaseY, at.Z, size[0], size[1], size[2], m.s.CurrentLook())
}

// PointerMove handles drag motion: paint marking while Painting, preview
// stepping while ResizeDragging. Anything else ignores motion.
func (m *Machine) PointerMove(ray geom.Ray) {
	switch m.state {
	case StatePainting:
		if hit, ok := m.s.Store().FindByRay(ray); ok {
			// Idempotent per block: a block is marked once per drag.
			m.marked[hit.Block.ID] = true
		}
	case StateResizeDragging:
		m.drag.steps = m.dragSteps(ray)
	}
}

// dragSteps projects the pointer onto the ground plane (or the fixed-distance
// fallback point when the ground is missed) and converts the signed
// displacement along the locked axis into a whole number of preview steps.
func (m *Machine) dragSteps(ray geom.Ray) int {
	if m.drag.origin == nil {
		return 0
	}
	point, ok := ray.HitGround()
	if !ok {
		point = ray.PointAt(dragFallbackDist)
	}
	origin := m.drag.origin.Center
	var disp float64
	switch m.drag.axis {
	case 0:
		disp = (float64(point.X()) - origin[0]) * float64(m.drag.dir)
	case 1:
		disp = (float64(point.Y()) - origin[1]) * float64(m.drag.dir)
	default:
		disp = (float64(point.Z()) - origin[2]) * float64(m.drag.dir)
	}
	span := m.stepSpan()
	if span <= 0 || disp <= 0 {
		return 0
	}
	return int(disp / span)
}

// stepSpan is the world-space distance between consecutive grown blocks: the
// origin block's own span along the dragged axis (for unit blocks this equals
// the global grid unit).
func (m *Machine) stepSpan() float64 {
	return float64(m.drag.origin.Size[m.drag.axis]) * grid.Unit
}

// PreviewCenters returns the centers of the not-yet-committed preview blocks
// of the current drag, in step order. Empty outside a drag.
func (m *Machine) PreviewCenters() [][3]float64 {
	if m.state != StateResizeDragging || m.drag.origin == nil {
		return nil
	}
	span := m.stepSpan()
	out := make([][3]float64, 0, m.drag.steps)
	for i := 1; i <= m.drag.steps; i++ {
		c := m.drag.origin.Center
		c[m.drag.axis] += float64(m.drag.dir) * span * float64(i)
		out = append(out, c)
	}
	return out
}

// PreviewSize returns the size previewed blocks render with (the drag
// origin's size). Zero value outside a drag.
func (m *Machine) PreviewSize() [3]int {
	if m.state != StateResizeDragging || m.drag.origin == nil {
		return [3]int{}
	}
	return m.drag.origin.Size
}

// PointerUp ends the current gesture. Painting returns to Selected with the
// markers left visible; ResizeDragging commits the previewed blocks and
// releases the camera lock unconditionally.
func (m *Machine) PointerUp(ray geom.Ray) {
	switch m.state {
	case StatePainting:
		if m.s.Selected() != nil {
			m.state = StateSelected
		} else {
			m.state = StateIdle
		}
	case StateResizeDragging:
		defer m.endDrag() // lock release and state reset even if commit bails
		m.commitGrow()
	}
}

package interact

import (
	"block-editor/internal/block"
	"block-editor/internal/geom"
	"block-editor/internal/grid"
)

// HandleRadius is the pick radius of a grow handle; handles sit at
// half-size + HandleRadius from the block center along each axis.
const HandleRadius = 0.25

// Handle is one of the six directional grow handles of a selected block.
type Handle struct {
	Axis   int // 0=X, 1=Y, 2=Z
	Dir    int // +1 or -1
	Center [3]float64
}

// Handles returns the six grow handles of the block currently showing them,
// positioned from its live center and size. Empty when no handles are shown.
func (m *Machine) Handles() []Handle {
	b := m.handlesFor
	if b == nil {
		return nil
	}
	out := make([]Handle, 0, 6)
	for axis := 0; axis < 3; axis++ {
		for _, dir := range []int{1, -1} {
			c := b.Center
			c[axis] += float64(dir) * (float64(b.Size[axis])*grid.Unit/2 + HandleRadius)
			out = append(out, Handle{Axis: axis, Dir: dir, Center: c})
		}
	}
	return out
}

// hitHandle returns the nearest handle the ray touches, if any.
func (m *Machine) hitHandle(ray geom.Ray) (Handle, bool) {
	var best Handle
	bestDist := float32(-1)
	for _, h := range m.Handles() {
		center := geom.Vec3{float32(h.Center[0]), float32(h.Center[1]), float32(h.Center[2])}
		box := geom.BoxAt(center, geom.Vec3{2 * HandleRadius, 2 * HandleRadius, 2 * HandleRadius})
		if dist, _, ok := ray.HitBox(box); ok && (bestDist < 0 || dist < bestDist) {
			best = h
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}

// commitGrow places a real block for each preview step of the finished drag,
// reusing the origin block's material and tint. The session's color and
// material overrides are swapped to the origin's for the duration of the
// batch and restored afterwards, so the grown run matches the dragged block
// rather than the current palette selection.
func (m *Machine) commitGrow() {
	origin := m.drag.origin
	if origin == nil || m.drag.steps <= 0 {
		return
	}

	savedColor := m.s.ColorOverride()
	savedMaterial := m.s.SelectedMaterial()
	m.s.SetColorOverride(origin.Color)
	m.s.SetSelectedMaterial(origin.Material)
	defer func() {
		m.s.SetColorOverride(savedColor)
		m.s.SetSelectedMaterial(savedMaterial)
	}()

	span := m.stepSpan()
	originBase := block.BaseY(origin)
	for i := 1; i <= m.drag.steps; i++ {
		at := block.Pos{X: origin.Center[0], BaseY: originBase, Z: origin.Center[2]}
		switch m.drag.axis {
		case 0:
			at.X += float64(m.drag.dir) * span * float64(i)
		case 1:
			at.BaseY += float64(m.drag.dir) * span * float64(i)
		default:
			at.Z += float64(m.drag.dir) * span * float64(i)
		}
		if m.s.Store().OccupiedAt(at) {
			continue
		}
		m.s.PlaceBlockAt(at.X, at.BaseY, at.Z,
			origin.Size[0], origin.Size[1], origin.Size[2], m.s.CurrentLook())
	}
}

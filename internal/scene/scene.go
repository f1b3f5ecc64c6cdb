// Package scene owns the 3D camera and the editor grid. Draw renders between
// BeginMode3D and EndMode3D and hands the inner frame to a callback, so block
// rendering stays with the caller. Based on raylib examples/core/core_3d_camera_free.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"block-editor/internal/geom"
	"block-editor/internal/grid"
	"block-editor/internal/session"
)

const (
	gridExtent    = 50
	gridMinorStep = 1
	gridMajorStep = 10
	axisLineAlpha = 220

	// Minor/major line alpha per grid mode.
	gridMinorAlpha       = 50
	gridMajorAlpha       = 120
	gridTranslucentMinor = 20
	gridTranslucentMajor = 48

	wheelZoomStep = 0.8
)

// Scene holds the 3D camera and draws the editor grid. The camera stays under
// user control except while a resize drag holds the camera lock.
type Scene struct {
	Camera   rl.Camera3D
	GridMode session.GridMode
}

// New returns a scene with a perspective camera looking at the origin.
// Camera: position (10,10,10), target (0,0,0), up (0,1,0), fovy 45 degrees.
func New() *Scene {
	s := &Scene{}
	s.Camera.Position = rl.NewVector3(10, 10, 10)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Update runs once per frame. The cursor stays visible for picking; the camera
// moves only while the right mouse button is held (raylib free camera) or the
// wheel zooms. locked suspends all camera motion for the duration of a resize
// drag so the drag owns the pointer.
func (s *Scene) Update(locked bool) {
	if locked {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
		return
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		dir := rl.Vector3Normalize(rl.Vector3Subtract(s.Camera.Target, s.Camera.Position))
		step := rl.Vector3Scale(dir, wheel*wheelZoomStep)
		s.Camera.Position = rl.Vector3Add(s.Camera.Position, step)
	}
}

// MouseRay returns the picking ray under the mouse cursor in world space.
func (s *Scene) MouseRay() geom.Ray {
	r := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
	return geom.Ray{
		Origin: geom.Vec3{r.Position.X, r.Position.Y, r.Position.Z},
		Dir:    geom.Vec3{r.Direction.X, r.Direction.Y, r.Direction.Z},
	}
}

// Draw renders the 3D scene: the grid per GridMode, then drawWorld inside the
// same 3D mode. Call after ClearBackground and before the 2D overlay.
func (s *Scene) Draw(drawWorld func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridMode != session.GridHidden {
		drawEditorGrid(s.GridMode == session.GridTranslucent)
	}
	if drawWorld != nil {
		drawWorld()
	}
	rl.EndMode3D()
}

// drawEditorGrid draws the grid on the block baseline plane with major/minor
// lines and axis lines. Reuses start/end vectors to avoid per-frame
// allocations in the hot loop.
func drawEditorGrid(translucent bool) {
	minorAlpha, majorAlpha := uint8(gridMinorAlpha), uint8(gridMajorAlpha)
	if translucent {
		minorAlpha, majorAlpha = gridTranslucentMinor, gridTranslucentMajor
	}
	minor := rl.NewColor(128, 128, 128, minorAlpha)
	major := rl.NewColor(160, 160, 160, majorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	// Blocks rest on the baseline plane, so the grid is drawn there rather
	// than at world Y=0.
	planeY := float32(grid.BaselineOffset)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), planeY, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), planeY, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), planeY, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), planeY, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), planeY, 0
	end.X, end.Y, end.Z = float32(gridExtent), planeY, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, planeY, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, planeY, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"block-editor/internal/block"
	"block-editor/internal/interact"
	"block-editor/internal/material"
)

var (
	selectionColor = rl.NewColor(255, 161, 0, 255)  // orange outline
	markerColor    = rl.NewColor(255, 230, 60, 255) // paint markers
	previewColor   = rl.NewColor(90, 220, 120, 200) // uncommitted resize blocks

	handleColors = [3]rl.Color{
		rl.NewColor(220, 80, 80, 255), // X
		rl.NewColor(80, 220, 80, 255), // Y
		rl.NewColor(80, 80, 220, 255), // Z
	}
)

// wireInflate keeps outlines from z-fighting with block faces.
const wireInflate = 0.02

// statusFontSize and statusPadding size the bottom-left status line.
const statusFontSize = 20
const statusPadding = 12

func (e *editor) draw() {
	cam := e.scn.Camera
	e.prims.SetView(
		[3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z},
		[3]float32{0.5, 1, 0.5},
	)
	e.scn.Draw(e.drawWorld)
	e.drawStatus()
	e.term.Draw()
	e.dbg.Draw()
}

func (e *editor) drawWorld() {
	for _, b := range e.sess.Store().All() {
		e.drawBlock(b)
	}

	if sel := e.sess.Selected(); sel != nil {
		pos, scale := placement(sel)
		e.prims.DrawBlockWires(pos, inflate(scale), selectionColor)
	}
	for _, h := range e.machine.Handles() {
		pos := [3]float32{float32(h.Center[0]), float32(h.Center[1]), float32(h.Center[2])}
		e.prims.DrawHandle(pos, interact.HandleRadius, handleColors[h.Axis])
	}
	if centers := e.machine.PreviewCenters(); len(centers) > 0 {
		size := e.machine.PreviewSize()
		scale := [3]float32{float32(size[0]), float32(size[1]), float32(size[2])}
		for _, c := range centers {
			pos := [3]float32{float32(c[0]), float32(c[1]), float32(c[2])}
			e.prims.DrawBlockWires(pos, scale, previewColor)
		}
	}
}

func (e *editor) drawBlock(b *block.Block) {
	pos, scale := placement(b)
	alpha := uint8((1 - b.Transparency) * 255)

	drawn := false
	if b.Material != "" {
		if def, ok := e.sess.Materials().Lookup(b.Material); ok {
			if tex, ok := e.prims.TextureFor(def); ok {
				tint := rl.NewColor(255, 255, 255, alpha)
				if b.Color != nil {
					tint = toColor(*b.Color, alpha)
				}
				e.prims.DrawBlockTextured(pos, scale, tint, tex)
				drawn = true
			}
		}
	}
	if !drawn {
		e.prims.DrawBlock(pos, scale, toColor(b.DisplayColor(e.sess.Materials()), alpha))
	}

	if e.machine.IsMarked(b) {
		e.prims.DrawBlockWires(pos, inflate(scale), markerColor)
	}
}

// drawStatus renders the bottom-left status line: tool mode, placement state,
// block count, and the last session status message.
func (e *editor) drawStatus() {
	text := "tool: " + e.sess.Mode().String()
	if e.sess.PlaceMode() {
		text += "  place: on"
	}
	if m := e.sess.SelectedMaterial(); m != "" {
		text += "  material: " + m
	}
	if s := e.sess.Status(); s != "" {
		text += "  | " + s
	}
	y := int32(rl.GetScreenHeight()) - statusFontSize - statusPadding
	rl.DrawText(text, statusPadding, y, statusFontSize, rl.LightGray)
}

func placement(b *block.Block) (pos, scale [3]float32) {
	pos = [3]float32{float32(b.Center[0]), float32(b.Center[1]), float32(b.Center[2])}
	scale = [3]float32{float32(b.Size[0]), float32(b.Size[1]), float32(b.Size[2])}
	return pos, scale
}

func inflate(scale [3]float32) [3]float32 {
	return [3]float32{scale[0] + wireInflate, scale[1] + wireInflate, scale[2] + wireInflate}
}

func toColor(c material.RGB, alpha uint8) rl.Color {
	return rl.NewColor(uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), alpha)
}

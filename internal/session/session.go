// Package session holds the editor's mutable state in one explicit object: the
// block store, the current selection, tool and grid modes, and the color and
// material overrides. Interaction handlers receive the session by reference;
// there is no ambient global scene state.
package session

import (
	"fmt"

	"block-editor/internal/block"
	"block-editor/internal/codec"
	"block-editor/internal/material"
)

// Interactor is the part of the pointer interaction layer the session needs to
// reach during mode transitions: clearing paint markers and removing grow
// handles when the rescale tool is left.
type Interactor interface {
	ClearPaintMarkers()
	RemoveGrowHandles()
	DropHandlesFor(*block.Block)
}

// Session owns the single block store and all editor-wide interaction state.
// All methods run on the UI event thread.
type Session struct {
	store     *block.Store
	materials *material.Registry

	mode      Mode
	gridMode  GridMode
	placeMode bool

	selected         *block.Block
	colorOverride    *material.RGB
	selectedMaterial string
	currentSize      [3]int

	jsonText string
	status   string

	interactor Interactor
}

// New returns a session owning the given store. The session registers itself
// for store change and removal events: any mutation refreshes the exported
// JSON, and removing the selected block clears the selection.
func New(store *block.Store, materials *material.Registry) *Session {
	s := &Session{store: store, materials: materials, currentSize: [3]int{1, 1, 1}}
	store.SetOnChange(s.UpdateJSON)
	store.SetOnRemove(s.blockRemoved)
	s.UpdateJSON()
	return s
}

// Bind attaches the interaction layer. Optional: a headless session (remote
// transport, tests) works without one.
func (s *Session) Bind(i Interactor) { s.interactor = i }

// Store returns the block store. Callers mutate blocks only through the store
// and the session; the store stays the single owner.
func (s *Session) Store() *block.Store { return s.store }

// Materials returns the immutable material registry.
func (s *Session) Materials() *material.Registry { return s.materials }

func (s *Session) blockRemoved(b *block.Block) {
	if s.selected == b {
		s.selected = nil
	}
	if s.interactor != nil {
		s.interactor.DropHandlesFor(b)
	}
}

// Mode returns the current tool mode.
func (s *Session) Mode() Mode { return s.mode }

// SetToolMode switches the tool mode. Leaving rescale clears paint markers and
// removes resize handles; entering any mode never auto-selects a block.
func (s *Session) SetToolMode(m Mode) {
	if s.mode == m {
		return
	}
	leaving := s.mode
	s.mode = m
	if leaving == ModeRescale && s.interactor != nil {
		s.interactor.ClearPaintMarkers()
		s.interactor.RemoveGrowHandles()
	}
}

// GridMode returns the current grid display mode.
func (s *Session) GridMode() GridMode { return s.gridMode }

// SetGridMode sets how the ground grid is drawn.
func (s *Session) SetGridMode(g GridMode) { s.gridMode = g }

// PlaceMode reports whether pointer clicks place blocks.
func (s *Session) PlaceMode() bool { return s.placeMode }

// SetPlaceMode enables or disables placement on pointer clicks.
func (s *Session) SetPlaceMode(on bool) { s.placeMode = on }

// Selected returns the selected block, or nil. At most one block is selected
// at any time.
func (s *Session) Selected() *block.Block { return s.selected }

// SetSelected selects the given block (nil deselects).
func (s *Session) SetSelected(b *block.Block) { s.selected = b }

// ColorOverride returns the current color override, or nil.
func (s *Session) ColorOverride() *material.RGB { return s.colorOverride }

// SetColorOverride sets the color applied to subsequent placements and paint
// clicks; nil clears it.
func (s *Session) SetColorOverride(c *material.RGB) {
	if c == nil {
		s.colorOverride = nil
		return
	}
	cp := *c
	s.colorOverride = &cp
}

// SelectedMaterial returns the current material selection, "" when none.
func (s *Session) SelectedMaterial() string { return s.selectedMaterial }

// SetSelectedMaterial sets the material applied to subsequent placements;
// "" clears it. Unknown names are kept as-is and simply fail registry lookup
// at use, rendering with the default look.
func (s *Session) SetSelectedMaterial(name string) { s.selectedMaterial = name }

// CurrentSize returns the size used for pointer placements.
func (s *Session) CurrentSize() [3]int { return s.currentSize }

// SetCurrentSize sets the size used for pointer placements, clamped to >= 1
// per axis.
func (s *Session) SetCurrentSize(sx, sy, sz int) {
	size := [3]int{sx, sy, sz}
	for i := range size {
		if size[i] < 1 {
			size[i] = 1
		}
	}
	s.currentSize = size
}

// CurrentLook composes the placement appearance from the session's color
// override and selected material.
func (s *Session) CurrentLook() block.Look {
	look := block.Look{Color: s.colorOverride, MaterialName: s.selectedMaterial}
	if s.selectedMaterial != "" && s.materials != nil {
		if d, ok := s.materials.Lookup(s.selectedMaterial); ok {
			look.Def = &d
		}
	}
	return look
}

// PlaceBlockAt places a block at the given base position with the given size
// and appearance. This is the single placement entry point used by pointer
// handlers, the resize commit, imports, and the remote transport.
func (s *Session) PlaceBlockAt(x, baseY, z float64, sx, sy, sz int, look block.Look) *block.Block {
	return s.store.Place(block.Pos{X: x, BaseY: baseY, Z: z}, [3]int{sx, sy, sz}, look)
}

// RemoveBlock deletes a block; selection and handles referencing it are
// cleared through the store's removal hook.
func (s *Session) RemoveBlock(b *block.Block) { s.store.Remove(b) }

// Clear removes all blocks.
func (s *Session) Clear() { s.store.Clear() }

// SetBlockTransparency sets a block's transparency (0..1); nil resets it to
// opaque.
func (s *Session) SetBlockTransparency(b *block.Block, v *float64) {
	if b == nil {
		return
	}
	if v == nil {
		b.Transparency = 0
	} else {
		t := *v
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		b.Transparency = t
	}
	s.UpdateJSON()
}

// RemoveGrowHandles removes any visible resize handles.
func (s *Session) RemoveGrowHandles() {
	if s.interactor != nil {
		s.interactor.RemoveGrowHandles()
	}
}

// UpdateJSON refreshes the exported JSON text from the store.
func (s *Session) UpdateJSON() {
	raw, err := codec.Export(s.store)
	if err != nil {
		s.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	s.jsonText = string(raw)
}

// ExportedJSON returns the current exported JSON text. After a failed import
// it holds the raw text that was offered, so the user can fix it by hand.
func (s *Session) ExportedJSON() string { return s.jsonText }

// Status returns the last status line ("" when the previous operation
// succeeded).
func (s *Session) Status() string { return s.status }

// ImportJSON parses and applies a scene document, replacing the store's
// contents. On parse failure nothing is mutated: the raw text is kept in the
// JSON view for manual editing and the failure is reported via Status. On
// success the store is cleared and rebuilt, and the JSON text is re-exported
// from the recreated blocks.
func (s *Session) ImportJSON(raw string) error {
	records, err := codec.Import([]byte(raw))
	if err != nil {
		s.jsonText = raw
		s.status = fmt.Sprintf("import failed: %v", err)
		return err
	}
	codec.Apply(records, s.store)
	s.status = ""
	s.UpdateJSON()
	return nil
}

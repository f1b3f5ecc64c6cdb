package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"block-editor/internal/block"
	"block-editor/internal/material"
)

type fakeInteractor struct {
	markersCleared int
	handlesRemoved int
	droppedFor     []*block.Block
}

func (f *fakeInteractor) ClearPaintMarkers()            { f.markersCleared++ }
func (f *fakeInteractor) RemoveGrowHandles()            { f.handlesRemoved++ }
func (f *fakeInteractor) DropHandlesFor(b *block.Block) { f.droppedFor = append(f.droppedFor, b) }

func newSession() (*Session, *fakeInteractor) {
	s := New(block.NewStore(), material.Load())
	fi := &fakeInteractor{}
	s.Bind(fi)
	return s, fi
}

func TestNewSessionExportsEmptyScene(t *testing.T) {
	s, _ := newSession()
	assert.Equal(t, "[]", s.ExportedJSON())
	assert.Equal(t, ModeNone, s.Mode(), "default tool mode is none")
	assert.Equal(t, GridNormal, s.GridMode())
	assert.False(t, s.PlaceMode())
}

func TestPlaceRefreshesJSON(t *testing.T) {
	s, _ := newSession()
	s.PlaceBlockAt(0, 0, 0, 1, 1, 1, block.Look{})
	assert.Contains(t, s.ExportedJSON(), `"P":[0,1,0]`)
}

func TestLeavingRescaleClearsMarkersAndHandles(t *testing.T) {
	s, fi := newSession()
	s.SetToolMode(ModeRescale)
	assert.Zero(t, fi.markersCleared)

	s.SetToolMode(ModePaint)
	assert.Equal(t, 1, fi.markersCleared)
	assert.Equal(t, 1, fi.handlesRemoved)

	// Switching between non-rescale modes does not clear again.
	s.SetToolMode(ModeDestroy)
	assert.Equal(t, 1, fi.markersCleared)

	// No mode transition ever auto-selects.
	assert.Nil(t, s.Selected())
}

func TestRemovingSelectedBlockClearsSelection(t *testing.T) {
	s, fi := newSession()
	b := s.PlaceBlockAt(0, 0, 0, 1, 1, 1, block.Look{})
	s.SetSelected(b)

	s.RemoveBlock(b)
	assert.Nil(t, s.Selected())
	require.Len(t, fi.droppedFor, 1)
	assert.Same(t, b, fi.droppedFor[0])
}

func TestImportJSONFailureKeepsRawText(t *testing.T) {
	s, _ := newSession()
	s.PlaceBlockAt(0, 0, 0, 1, 1, 1, block.Look{})
	before := s.Store().Len()

	err := s.ImportJSON(`{not json`)
	require.Error(t, err)
	assert.Equal(t, before, s.Store().Len(), "failed import must not mutate the store")
	assert.Equal(t, `{not json`, s.ExportedJSON(), "raw text kept for manual editing")
	assert.True(t, strings.HasPrefix(s.Status(), "import failed"))
}

func TestImportJSONSuccess(t *testing.T) {
	s, _ := newSession()
	s.PlaceBlockAt(9, 0, 9, 1, 1, 1, block.Look{})

	err := s.ImportJSON(`[{"P":[0,1,0],"S":[3,3,3],"C":[1,0,0]}]`)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Store().Len())
	assert.Empty(t, s.Status())
	assert.JSONEq(t, `[{"P":[0,1,0],"S":[3,3,3],"C":[1,0,0]}]`, s.ExportedJSON())
}

func TestSetBlockTransparency(t *testing.T) {
	s, _ := newSession()
	b := s.PlaceBlockAt(0, 0, 0, 1, 1, 1, block.Look{})

	v := 1.5
	s.SetBlockTransparency(b, &v)
	assert.Equal(t, 1.0, b.Transparency, "clamped to 0..1")
	assert.Contains(t, s.ExportedJSON(), `"T":1`)

	s.SetBlockTransparency(b, nil)
	assert.Zero(t, b.Transparency)
	assert.NotContains(t, s.ExportedJSON(), `"T"`)

	s.SetBlockTransparency(nil, &v) // guarded no-op
}

func TestCurrentLook(t *testing.T) {
	s, _ := newSession()

	look := s.CurrentLook()
	assert.Nil(t, look.Color)
	assert.Nil(t, look.Def)

	red := material.RGB{R: 1, G: 0, B: 0}
	s.SetColorOverride(&red)
	s.SetSelectedMaterial("stone")
	look = s.CurrentLook()
	require.NotNil(t, look.Color)
	assert.Equal(t, red, *look.Color)
	require.NotNil(t, look.Def, "known material resolves its definition")
	assert.Equal(t, "stone", look.Def.Name)

	// Unknown material: name kept, definition unresolved.
	s.SetSelectedMaterial("unobtainium")
	look = s.CurrentLook()
	assert.Nil(t, look.Def)
	assert.Equal(t, "unobtainium", look.MaterialName)

	s.SetColorOverride(nil)
	assert.Nil(t, s.ColorOverride())
}

func TestModeParsing(t *testing.T) {
	for _, name := range []string{"none", "rescale", "paint", "material", "setting", "place", "destroy"} {
		assert.Equal(t, name, ParseMode(name).String())
	}
	assert.Equal(t, ModeNone, ParseMode("bogus"))

	for _, name := range []string{"normal", "translucent", "hidden"} {
		assert.Equal(t, name, ParseGridMode(name).String())
	}
	assert.Equal(t, GridNormal, ParseGridMode("bogus"))
}

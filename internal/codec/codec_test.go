package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"block-editor/internal/block"
	"block-editor/internal/material"
)

func TestRoundTrip(t *testing.T) {
	s := block.NewStore()
	red := material.RGB{R: 1, G: 0, B: 0}
	s.Place(block.Pos{X: 0, BaseY: 0, Z: 0}, [3]int{1, 1, 1}, block.Look{Color: &red})
	s.Place(block.Pos{X: 4, BaseY: 0, Z: -2}, [3]int{2, 2, 2}, block.Look{MaterialName: "stone"})
	b := s.Place(block.Pos{X: -3, BaseY: 3, Z: 3}, [3]int{3, 1, 3}, block.Look{})
	b.Editable = true
	b.Transparency = 0.5
	b.CanCollide = false
	b.Anchored = false

	first, err := Export(s)
	require.NoError(t, err)

	records, err := Import(first)
	require.NoError(t, err)
	require.Len(t, records, 3)

	s2 := block.NewStore()
	Apply(records, s2)
	second, err := Export(s2)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second), "import(export(store)) must reproduce the export")
}

func TestExportOmitsDefaults(t *testing.T) {
	s := block.NewStore()
	s.Place(block.Pos{}, [3]int{1, 1, 1}, block.Look{MaterialName: "stone"})

	raw, err := Export(s)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	e := entries[0]

	// A bare material look records no tint, so C joins the flag keys in being
	// absent.
	for _, key := range []string{"C", "E", "T", "K", "A"} {
		assert.NotContains(t, e, key)
	}
	assert.Contains(t, e, "P")
	assert.Contains(t, e, "S")
	assert.Equal(t, "stone", e["M"])
}

func TestExportBareMaterialOmitsColor(t *testing.T) {
	s := block.NewStore()
	def := material.Def{Name: "wood", Base: material.RGB{R: 0.5, G: 0.4, B: 0.2}}
	s.Place(block.Pos{}, [3]int{1, 1, 1}, block.Look{Def: &def})

	raw, err := Export(s)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], "C", "bare material look must not export a color")
	assert.Equal(t, "wood", entries[0]["M"])
}

func TestBareMaterialSurvivesRoundTrip(t *testing.T) {
	s := block.NewStore()
	def := material.Def{Name: "wood", Base: material.RGB{R: 0.5, G: 0.4, B: 0.2}}
	s.Place(block.Pos{}, [3]int{1, 1, 1}, block.Look{Def: &def})

	first, err := Export(s)
	require.NoError(t, err)

	records, err := Import(first)
	require.NoError(t, err)
	require.Len(t, records, 1)

	s2 := block.NewStore()
	Apply(records, s2)
	require.Equal(t, 1, s2.Len())
	b := s2.All()[0]
	assert.Nil(t, b.Color, "reimport must not turn a bare material into a tinted one")
	assert.Equal(t, "wood", b.Material)

	second, err := Export(s2)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.NotContains(t, string(second), `"C"`)
}

func TestImportLegacyAliases(t *testing.T) {
	raw := []byte(`[
		{"Position":[2,1,2],"Size":[1,1,1],"Color":{"R":255,"G":128,"B":0},"Editable":true},
		{"P":[0,1,0],"S":[1,1,1],"C":[0.2,0.4,0.6],"CanCollide":false,"Anchored":false,"Transparency":0.25}
	]`)
	records, err := Import(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// 0..255 object color divided down to 0..1 and rounded to 3 decimals.
	require.NotNil(t, records[0].C)
	assert.Equal(t, material.RGB{R: 1, G: 0.502, B: 0}, *records[0].C)
	assert.True(t, records[0].Editable)
	assert.True(t, records[0].CanCollide)
	assert.True(t, records[0].Anchored)

	require.NotNil(t, records[1].C)
	assert.Equal(t, material.RGB{R: 0.2, G: 0.4, B: 0.6}, *records[1].C)
	assert.False(t, records[1].CanCollide)
	assert.False(t, records[1].Anchored)
	assert.Equal(t, 0.25, records[1].Transparency)
}

func TestImportSkipsEntriesMissingPositionOrSize(t *testing.T) {
	raw := []byte(`[
		{"S":[1,1,1]},
		{"P":[0,1,0]},
		{"P":[0,1,0],"S":[1,1,1]},
		{"P":"garbage","S":[1,1,1]}
	]`)
	records, err := Import(raw)
	require.NoError(t, err)
	assert.Len(t, records, 1, "only the complete entry survives normalization")
}

func TestImportMalformed(t *testing.T) {
	for _, raw := range []string{`{not json`, `{"a":1}`, `"string"`} {
		_, err := Import([]byte(raw))
		assert.Error(t, err, "input %q", raw)
	}
}

func TestApplyReplacesExistingBlocks(t *testing.T) {
	s := block.NewStore()
	s.Place(block.Pos{X: 9, BaseY: 0, Z: 9}, [3]int{1, 1, 1}, block.Look{})
	s.Place(block.Pos{X: 7, BaseY: 0, Z: 9}, [3]int{1, 1, 1}, block.Look{})

	records, err := Import([]byte(`[{"P":[0,1,0],"S":[3,3,3],"C":[1,0,0]}]`))
	require.NoError(t, err)
	Apply(records, s)

	require.Equal(t, 1, s.Len(), "import is replace-all, not merge")
	b := s.All()[0]
	assert.Equal(t, [3]float64{0, 2.5, 0}, b.Center, "center per baseline convention")
	assert.Equal(t, [3]int{3, 3, 3}, b.Size)

	raw, err := Export(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"P":[0,1,0],"S":[3,3,3],"C":[1,0,0]}]`, string(raw))
}

func TestGroundPlacementExportsBaselineY(t *testing.T) {
	s := block.NewStore()
	s.Place(block.Pos{X: 0, BaseY: 0, Z: 0}, [3]int{1, 1, 1}, block.Look{})

	raw, err := Export(s)
	require.NoError(t, err)

	var entries []struct {
		P [3]float64 `json:"P"`
	}
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, float64(1), entries[0].P[1], "base 0 + baseline offset 1")
}

func TestSizeClampOnImport(t *testing.T) {
	records, err := Import([]byte(`[{"P":[0,1,0],"S":[0,-2,5]}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, [3]int{1, 1, 5}, records[0].S)
}

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"block-editor/internal/block"
	"block-editor/internal/material"
)

func TestValidateExportedDocument(t *testing.T) {
	s := block.NewStore()
	tint := material.RGB{R: 0.4, G: 0.5, B: 0.6}
	s.Place(block.Pos{X: 0, BaseY: 0, Z: 0}, [3]int{1, 1, 1}, block.Look{Color: &tint})
	b := s.Place(block.Pos{X: 2, BaseY: 0, Z: 0}, [3]int{2, 1, 1}, block.Look{MaterialName: "stone"})
	b.Transparency = 0.3
	b.Anchored = false

	raw, err := Export(s)
	require.NoError(t, err)
	assert.NoError(t, Validate(raw), "every exported document must satisfy the published schema")
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not an array", `{"P":[0,1,0],"S":[1,1,1]}`},
		{"missing size", `[{"P":[0,1,0]}]`},
		{"color out of range", `[{"P":[0,1,0],"S":[1,1,1],"C":[255,0,0]}]`},
		{"size below one", `[{"P":[0,1,0],"S":[0,1,1]}]`},
		{"legacy aliases are not strict", `[{"Position":[0,1,0],"Size":[1,1,1]}]`},
		{"not json", `{oops`},
	}
	for _, c := range cases {
		assert.Error(t, Validate([]byte(c.raw)), c.name)
	}
}

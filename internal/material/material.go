package material

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// RGB is a normalized color triple (each component 0..1).
type RGB struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// Def describes one material: a texture reference plus the base appearance used
// when a block carries no tint of its own.
type Def struct {
	Name    string `yaml:"name"`
	Texture string `yaml:"texture,omitempty"`
	Base    RGB    `yaml:"base"`
}

// registryPaths are tried in order so the material file is found whether run
// from repo root or cmd/editor.
var registryPaths = []string{
	"assets/materials.yaml",
	"../../assets/materials.yaml",
}

// builtinDefs is the compiled-in registry used when no materials file exists.
var builtinDefs = []Def{
	{Name: "stone", Texture: "textures/stone.png", Base: RGB{0.55, 0.55, 0.58}},
	{Name: "wood", Texture: "textures/wood.png", Base: RGB{0.52, 0.37, 0.22}},
	{Name: "brick", Texture: "textures/brick.png", Base: RGB{0.64, 0.26, 0.22}},
	{Name: "grass", Texture: "textures/grass.png", Base: RGB{0.33, 0.55, 0.27}},
	{Name: "sand", Texture: "textures/sand.png", Base: RGB{0.86, 0.79, 0.58}},
	{Name: "glass", Texture: "textures/glass.png", Base: RGB{0.75, 0.88, 0.92}},
}

// Registry maps material names to definitions. Loaded once at startup and
// never mutated afterwards; blocks hold only a name reference into it.
type Registry struct {
	defs  map[string]Def
	names []string
}

// Load reads the materials file from the first path in registryPaths that
// exists. A missing or invalid file falls back to the built-in set; materials
// are cosmetic and their absence is never an error.
func Load() *Registry {
	for _, p := range registryPaths {
		data, err := os.ReadFile(filepath.Clean(p))
		if err != nil {
			continue
		}
		if r, err := FromYAML(data); err == nil {
			return r
		}
	}
	return newRegistry(builtinDefs)
}

// FromYAML builds a registry from a YAML document of the form:
//
//	materials:
//	  - name: stone
//	    texture: textures/stone.png
//	    base: {r: 0.55, g: 0.55, b: 0.58}
func FromYAML(data []byte) (*Registry, error) {
	var doc struct {
		Materials []Def `yaml:"materials"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("materials yaml: %w", err)
	}
	if len(doc.Materials) == 0 {
		return nil, fmt.Errorf("materials yaml: no materials defined")
	}
	return newRegistry(doc.Materials), nil
}

func newRegistry(defs []Def) *Registry {
	r := &Registry{defs: make(map[string]Def, len(defs))}
	for _, d := range defs {
		if d.Name == "" {
			continue
		}
		if _, dup := r.defs[d.Name]; dup {
			continue
		}
		r.defs[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	sort.Strings(r.names)
	return r
}

// Lookup returns the definition for name.
func (r *Registry) Lookup(name string) (Def, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns all material names in sorted order. The returned slice is a
// copy; the registry itself stays immutable.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

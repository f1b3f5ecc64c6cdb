package material

import "testing"

func TestFromYAML(t *testing.T) {
	data := []byte(`
materials:
  - name: stone
    texture: textures/stone.png
    base: {r: 0.5, g: 0.5, b: 0.5}
  - name: lava
    base: {r: 1, g: 0.3, b: 0}
`)
	r, err := FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	d, ok := r.Lookup("stone")
	if !ok {
		t.Fatal("stone not found")
	}
	if d.Texture != "textures/stone.png" || d.Base != (RGB{0.5, 0.5, 0.5}) {
		t.Errorf("stone def = %+v", d)
	}
	if _, ok := r.Lookup("obsidian"); ok {
		t.Error("unknown material should not resolve")
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "lava" || names[1] != "stone" {
		t.Errorf("Names() = %v", names)
	}
}

func TestFromYAMLErrors(t *testing.T) {
	if _, err := FromYAML([]byte("{not yaml")); err == nil {
		t.Error("invalid yaml should fail")
	}
	if _, err := FromYAML([]byte("materials: []")); err == nil {
		t.Error("empty material list should fail")
	}
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	// No assets/ directory in the test working dir, so Load uses the built-in set.
	r := Load()
	if _, ok := r.Lookup("stone"); !ok {
		t.Fatal("builtin registry should define stone")
	}
	if len(r.Names()) == 0 {
		t.Fatal("builtin registry should not be empty")
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	r := Load()
	names := r.Names()
	if len(names) == 0 {
		t.Fatal("expected names")
	}
	names[0] = "mutated"
	if r.Names()[0] == "mutated" {
		t.Error("Names must return a copy")
	}
}

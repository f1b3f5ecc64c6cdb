package codec

import "block-editor/internal/material"

// Alias resolution is centralized here: every accepted spelling of every field
// maps onto the canonical Record before placement logic sees it.

// field returns the first present key among the given spellings.
func field(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// normalizeEntry maps one loosely-shaped imported object onto a Record.
// ok is false when the entry lacks a usable position or size.
func normalizeEntry(m map[string]any) (Record, bool) {
	rec := Record{CanCollide: true, Anchored: true}

	pv, ok := field(m, "P", "Position")
	if !ok {
		return Record{}, false
	}
	p, ok := floats3(pv)
	if !ok {
		return Record{}, false
	}
	rec.P = p

	sv, ok := field(m, "S", "Size")
	if !ok {
		return Record{}, false
	}
	sf, ok := floats3(sv)
	if !ok {
		return Record{}, false
	}
	for i, v := range sf {
		n := int(v + 0.5)
		if n < 1 {
			n = 1
		}
		rec.S[i] = n
	}

	if cv, ok := field(m, "C", "Color"); ok {
		if c, ok := colorOf(cv); ok {
			n := normColor(c)
			rec.C = &n
		}
	}
	if mv, ok := field(m, "M", "Material"); ok {
		if s, ok := mv.(string); ok {
			rec.M = s
		}
	}
	if ev, ok := field(m, "E", "Editable"); ok {
		rec.Editable = boolOf(ev, false)
	}
	if tv, ok := field(m, "T", "Transparency"); ok {
		if t, ok := numOf(tv); ok {
			rec.Transparency = clamp01(t)
		}
	}
	if kv, ok := field(m, "K", "CanCollide"); ok {
		rec.CanCollide = boolOf(kv, true)
	}
	if av, ok := field(m, "A", "Anchored"); ok {
		rec.Anchored = boolOf(av, true)
	}
	return rec, true
}

// floats3 coerces a JSON value into a 3-number array.
func floats3(v any) ([3]float64, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 3 {
		return [3]float64{}, false
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		n, ok := numOf(arr[i])
		if !ok {
			return [3]float64{}, false
		}
		out[i] = n
	}
	return out, true
}

// colorOf accepts a color as a 3-number array or as an {R,G,B} object
// (upper- or lowercase keys). Range normalization happens in normColor.
func colorOf(v any) (material.RGB, bool) {
	if arr, ok := floats3(v); ok {
		return material.RGB{R: arr[0], G: arr[1], B: arr[2]}, true
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return material.RGB{}, false
	}
	r, rok := field(obj, "R", "r")
	g, gok := field(obj, "G", "g")
	b, bok := field(obj, "B", "b")
	if !rok || !gok || !bok {
		return material.RGB{}, false
	}
	rn, ok1 := numOf(r)
	gn, ok2 := numOf(g)
	bn, ok3 := numOf(b)
	if !ok1 || !ok2 || !ok3 {
		return material.RGB{}, false
	}
	return material.RGB{R: rn, G: gn, B: bn}, true
}

func numOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func boolOf(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package grid

import (
	"math"
	"testing"
)

func TestSnap(t *testing.T) {
	cases := []struct {
		v, unit, want float64
	}{
		{0, 1, 0},
		{0.4, 1, 0},
		{0.6, 1, 1},
		{-0.6, 1, -1},
		{2.9, 3, 3},
		{4.4, 3, 3},
		{4.6, 3, 6},
		{7.2, 2, 8},
		{-7.2, 2, -8},
	}
	for _, c := range cases {
		if got := Snap(c.v, c.unit); got != c.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", c.v, c.unit, got, c.want)
		}
	}
}

func TestSnapFallbackUnit(t *testing.T) {
	// Zero, negative, and NaN units fall back to the global Unit.
	for _, unit := range []float64{0, -2, math.NaN()} {
		if got := Snap(1.4, unit); got != 1 {
			t.Errorf("Snap(1.4, %v) = %v, want 1", unit, got)
		}
	}
}

func TestSnapIdempotent(t *testing.T) {
	for v := -25.0; v <= 25.0; v += 0.37 {
		for _, unit := range []float64{0.5, 1, 2, 3} {
			once := Snap(v, unit)
			if twice := Snap(once, unit); twice != once {
				t.Fatalf("Snap not idempotent: Snap(%v,%v)=%v, re-snap=%v", v, unit, once, twice)
			}
		}
	}
}

func TestBaselineRoundTrip(t *testing.T) {
	for _, base := range []float64{0, 1, 3, -2} {
		for _, size := range []float64{1, 2, 3, 5} {
			center := ToInternalY(base, size)
			ext := ToExternalY(center, size)
			if got := BaseFromExternalY(ext); got != base {
				t.Errorf("base %v size %v: round trip gave %v", base, size, got)
			}
		}
	}
}

func TestBaselineScenarioValues(t *testing.T) {
	// Ground placement, unit block: base 0 + offset 1 + half-size 0.5 internal,
	// persisted Y 1.
	center := ToInternalY(0, 1)
	if center != 1.5 {
		t.Fatalf("ToInternalY(0,1) = %v, want 1.5", center)
	}
	if ext := ToExternalY(center, 1); ext != 1 {
		t.Fatalf("ToExternalY(1.5,1) = %v, want 1", ext)
	}

	// Imported P=[0,1,0], S=3: same persisted Y comes back out.
	base := BaseFromExternalY(1)
	center = ToInternalY(base, 3)
	if center != 2.5 {
		t.Fatalf("imported center = %v, want 2.5", center)
	}
	if ext := ToExternalY(center, 3); ext != 1 {
		t.Fatalf("re-export gave Y %v, want 1", ext)
	}
}

package geom

import "testing"

func TestHitBoxEntryFace(t *testing.T) {
	box := BoxAt(Vec3{0, 0, 0}, Vec3{2, 2, 2})

	cases := []struct {
		name   string
		ray    Ray
		dist   float32
		normal Vec3
	}{
		{"from +X", Ray{Origin: Vec3{5, 0, 0}, Dir: Vec3{-1, 0, 0}}, 4, Vec3{1, 0, 0}},
		{"from -X", Ray{Origin: Vec3{-5, 0, 0}, Dir: Vec3{1, 0, 0}}, 4, Vec3{-1, 0, 0}},
		{"from above", Ray{Origin: Vec3{0, 6, 0}, Dir: Vec3{0, -1, 0}}, 5, Vec3{0, 1, 0}},
		{"from +Z", Ray{Origin: Vec3{0, 0, 3}, Dir: Vec3{0, 0, -1}}, 2, Vec3{0, 0, 1}},
	}
	for _, c := range cases {
		dist, normal, ok := c.ray.HitBox(box)
		if !ok {
			t.Errorf("%s: expected hit", c.name)
			continue
		}
		if dist != c.dist {
			t.Errorf("%s: dist = %v, want %v", c.name, dist, c.dist)
		}
		if normal != c.normal {
			t.Errorf("%s: normal = %v, want %v", c.name, normal, c.normal)
		}
	}
}

func TestHitBoxMisses(t *testing.T) {
	box := BoxAt(Vec3{0, 0, 0}, Vec3{2, 2, 2})

	// Parallel ray offset outside the slab.
	if _, _, ok := (Ray{Origin: Vec3{5, 5, 0}, Dir: Vec3{-1, 0, 0}}).HitBox(box); ok {
		t.Error("offset parallel ray should miss")
	}
	// Box behind the origin.
	if _, _, ok := (Ray{Origin: Vec3{5, 0, 0}, Dir: Vec3{1, 0, 0}}).HitBox(box); ok {
		t.Error("box behind ray should miss")
	}
	// Origin inside the box.
	if _, _, ok := (Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{1, 0, 0}}).HitBox(box); ok {
		t.Error("ray starting inside should not report a hit")
	}
}

func TestHitGround(t *testing.T) {
	p, ok := (Ray{Origin: Vec3{2, 4, 2}, Dir: Vec3{0, -1, 0}}).HitGround()
	if !ok || p != (Vec3{2, 1, 2}) {
		t.Fatalf("straight down: got %v ok=%v", p, ok)
	}

	if _, ok := (Ray{Origin: Vec3{0, 4, 0}, Dir: Vec3{1, 0, 0}}).HitGround(); ok {
		t.Error("horizontal ray should miss the ground")
	}
	if _, ok := (Ray{Origin: Vec3{0, 4, 0}, Dir: Vec3{0, 1, 0}}).HitGround(); ok {
		t.Error("upward ray should miss the ground")
	}
}

func TestClassifyFace(t *testing.T) {
	if f, _, _ := ClassifyFace(Vec3{0, 1, 0}); f != FaceTop {
		t.Error("straight up should be a top face")
	}
	if f, axis, dir := ClassifyFace(Vec3{1, 0, 0}); f != FaceSide || axis != 0 || dir != 1 {
		t.Errorf("+X side misclassified: %v axis=%d dir=%d", f, axis, dir)
	}
	if f, axis, dir := ClassifyFace(Vec3{0, 0, -1}); f != FaceSide || axis != 2 || dir != -1 {
		t.Errorf("-Z side misclassified: %v axis=%d dir=%d", f, axis, dir)
	}
	// Near-diagonal horizontal normal: dominant axis strong enough but the
	// off-axis component exceeds the tolerance.
	if f, _, _ := ClassifyFace(Vec3{0.995, 0, 0.0999}); f != FaceNone {
		t.Error("near-diagonal normal should be rejected")
	}
	// Bottom face is never a placement target.
	if f, _, _ := ClassifyFace(Vec3{0, -1, 0}); f != FaceNone {
		t.Error("bottom face should be rejected")
	}
}

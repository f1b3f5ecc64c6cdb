package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"block-editor/internal/grid"
)

// Vec3 is the vector type used by hit testing. Alias of mgl32.Vec3 so callers
// can use mathgl operations directly.
type Vec3 = mgl32.Vec3

// Ray is a world-space ray. Dir should be normalized; HitBox and HitGround
// return distances in units of Dir's length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// BoxAt returns the AABB of a box centered at center with the given full size
// per axis. Zero size components are treated as 1 (same guard as a unit cube).
func BoxAt(center, size Vec3) Box {
	sx, sy, sz := size.X(), size.Y(), size.Z()
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	half := Vec3{sx * 0.5, sy * 0.5, sz * 0.5}
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// PointAt returns the point at parameter t along the ray.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// HitBox intersects the ray with an AABB using the slab method and returns the
// entry distance and the outward normal of the entered face. ok is false when
// the ray misses or the box is entirely behind the origin. A ray starting
// inside the box reports no hit (the pointer always comes from the camera,
// outside the scene geometry).
func (r Ray) HitBox(b Box) (dist float32, normal Vec3, ok bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	axis := -1
	sign := float32(0)

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Dir[i]
		if d == 0 {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[i] - o) / d
		t2 := (b.Max[i] - o) / d
		entrySign := float32(-1) // entering through the min face
		if t1 > t2 {
			t1, t2 = t2, t1
			entrySign = 1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
			sign = entrySign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, Vec3{}, false
		}
	}
	if tmin <= 0 || axis < 0 {
		return 0, Vec3{}, false
	}
	normal[axis] = sign
	return tmin, normal, true
}

// HitGround intersects the ray with the baseline plane blocks rest on (the
// same plane the editor grid is drawn on). ok is false when the ray is
// parallel to the plane or points away from it; callers fall back to a
// fixed-distance point along the ray in that case.
func (r Ray) HitGround() (Vec3, bool) {
	if r.Dir.Y() == 0 {
		return Vec3{}, false
	}
	t := (float32(grid.BaselineOffset) - r.Origin.Y()) / r.Dir.Y()
	if t <= 0 {
		return Vec3{}, false
	}
	return r.PointAt(t), true
}

// Face classifies which face of a block a hit normal belongs to.
type Face int

const (
	FaceNone Face = iota // edge, diagonal, or bottom: placement rejected
	FaceTop
	FaceSide
)

// Side-face tolerances: the dominant horizontal component must carry nearly the
// whole unit normal and the other horizontal component must be near zero. This
// rejects near-diagonal and edge hits that would otherwise grow the scene
// diagonally.
const (
	topNormalMinY     = 0.9
	sideDominantMin   = 0.995
	sideOffAxisMax    = 0.08
)

// ClassifyFace returns the face kind for a hit normal, and for side faces the
// horizontal axis (0 = X, 2 = Z) and outward direction (+1/-1).
func ClassifyFace(n Vec3) (face Face, axis int, dir int) {
	if n.Y() > topNormalMinY {
		return FaceTop, 1, 1
	}
	ax, az := abs32(n.X()), abs32(n.Z())
	if ax >= sideDominantMin && az <= sideOffAxisMax {
		return FaceSide, 0, signOf(n.X())
	}
	if az >= sideDominantMin && ax <= sideOffAxisMax {
		return FaceSide, 2, signOf(n.Z())
	}
	return FaceNone, 0, 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func signOf(v float32) int {
	if v < 0 {
		return -1
	}
	return 1
}

package grid

import "math"

// Unit is the global grid spacing. Placement snaps to multiples of the block's
// own size rather than Unit directly, so differently sized blocks each align to
// their own grid; Unit is the fallback when no size-derived spacing applies.
const Unit = 1.0

// BaselineOffset is the fixed vertical adjustment between internal scene
// coordinates and externally persisted coordinates. It is applied exactly once
// in each direction, always through ToInternalY/ToExternalY/BaseFromExternalY
// and never inline at call sites, so repeated import/export cycles cannot drift.
const BaselineOffset = 1.0

// Snap rounds v to the nearest multiple of unit. A non-positive (or NaN) unit
// falls back to the global Unit. Snap is idempotent: Snap(Snap(v,u),u) == Snap(v,u).
func Snap(v, unit float64) float64 {
	if !(unit > 0) {
		unit = Unit
	}
	return math.Round(v/unit) * unit
}

// ToInternalY converts an external base elevation into the internal center Y of
// a block with vertical size sizeY.
func ToInternalY(baseY, sizeY float64) float64 {
	return baseY + BaselineOffset + sizeY/2
}

// ToExternalY converts an internal center Y back into the persisted Y
// (base elevation plus baseline offset) for a block with vertical size sizeY.
func ToExternalY(centerY, sizeY float64) float64 {
	return centerY - sizeY/2
}

// BaseFromExternalY strips the baseline offset from a persisted Y, giving the
// base elevation used by placement.
func BaseFromExternalY(extY float64) float64 {
	return extY - BaselineOffset
}

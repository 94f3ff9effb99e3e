// Package orient implements the orientation algebra: for each placed
// item, derive the GDS2 rotation/flip transform and the origin
// correction that puts the cell's bounding box flush against its side
// of the die.
//
// Each case is a composition of a Y-mirror then a rotation, but is
// expressed here as the twelve fixed (location, flipped) cases
// directly, rather than a general-purpose transform pipeline: these
// twelve points in the transform space are the only ones ever needed.
package orient

import "github.com/moseley-eda/padring/internal/sides"

// Orientation is the transform the GDS2/DEF/SVG encoders apply to a
// placed cell: a cardinal rotation, an optional Y-flip, and an origin
// offset (added to the item's X, Y) establishing the SREF anchor.
type Orientation struct {
	RotationDeg int
	FlipY       bool
	Dx, Dy      float64
}

// Resolve derives a placed cell's orientation. sx, sy are the cell's
// LEF footprint (width, height); flipped is the user's optional FLIP
// request, meaningless for corners.
func Resolve(loc sides.Location, flipped bool, sx, sy float64) Orientation {
	switch loc {
	case sides.LocN:
		if flipped {
			return Orientation{RotationDeg: 0, FlipY: true}
		}
		return Orientation{RotationDeg: 180, Dx: sx}
	case sides.LocS:
		if flipped {
			return Orientation{RotationDeg: 180, FlipY: true, Dx: sx}
		}
		return Orientation{RotationDeg: 0}
	case sides.LocE:
		if flipped {
			return Orientation{RotationDeg: 270, FlipY: true, Dy: sx}
		}
		return Orientation{RotationDeg: 90}
	case sides.LocW:
		if flipped {
			return Orientation{RotationDeg: 90, FlipY: true}
		}
		return Orientation{RotationDeg: 270, Dy: sx}
	case sides.LocNW:
		return Orientation{RotationDeg: 270}
	case sides.LocNE:
		return Orientation{RotationDeg: 180, Dx: sx}
	case sides.LocSE:
		return Orientation{RotationDeg: 90, Dx: sy}
	case sides.LocSW:
		return Orientation{RotationDeg: 0}
	default:
		return Orientation{}
	}
}

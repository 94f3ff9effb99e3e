package geom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Fixed-Point Arithmetic

// Unfix converts a fixed.Int26_6 value (1/64 fractional precision) to float64.
func Unfix(x fixed.Int26_6) float64 {
	const shift, mask = 6, 1<<6 - 1
	if x >= 0 {
		return float64(x>>shift) + float64(x&mask)/64
	}
	x = -x
	if x >= 0 {
		return -(float64(x>>shift) + float64(x&mask)/64)
	}
	return 0
}

// Fix converts a float64 value to fixed.Int26_6 (1/64 pixel precision).
func Fix(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}

// QuantizeGridFloor rounds v down to the nearest multiple of grid, routing
// the rounding through 1/64-unit fixed point (the same machinery the
// teacher's sub-pixel layout code uses) so results are stable regardless of
// floating-point noise accumulated upstream.
func QuantizeGridFloor(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	steps := math.Floor(Unfix(Fix(v)) / grid)
	return steps * grid
}

package datacodec

import (
	"math"
)

// addExact adds x and y, reporting overflow instead of silently wrapping. Mirrors the overflow test used by
// java.lang.Math#addExact: the sum overflowed iff both operands disagree in sign with the result.
func addExact(x, y int64) (int64, bool) {
	r := x + y
	if ((x ^ r) & (y ^ r)) < 0 {
		return 0, true
	}
	return r, false
}

// multiplyExact multiplies x and y, reporting overflow instead of silently wrapping.
func multiplyExact(x, y int64) (int64, bool) {
	switch {
	case x == 0 || y == 0 || x == 1 || y == 1:
		return x * y, false
	case x == math.MinInt64 || y == math.MinInt64:
		return 0, true
	default:
		r := x * y
		if r/y != x {
			return 0, true
		}
		return r, false
	}
}

// floorDiv divides x by y, rounding toward negative infinity rather than toward zero. Differs from x/y only when
// the exact quotient is negative and has a nonzero remainder.
func floorDiv(x, y int64) int64 {
	r := x / y
	if (x^y) < 0 && (r*y != x) {
		r--
	}
	return r
}

// floorMod returns x - floorDiv(x, y)*y: the remainder of floorDiv, sharing y's sign.
func floorMod(x, y int64) int64 {
	return x - floorDiv(x, y)*y
}

package common

import "math"

const TwoPi = 2 * math.Pi

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle returns a in [0, 2π) for any finite a.
func WrapAngle(a float64) float64 {
	r := math.Mod(a, TwoPi)
	if r < 0 {
		r += TwoPi
	}
	// r can round up to exactly 2π for tiny negative inputs.
	if r >= TwoPi {
		r = 0
	}
	return r
}

// WrapAngleOnce corrects at most one revolution of overshoot: below 0 adds 2π,
// above 2π subtracts 2π. Values further out stay out of range.
func WrapAngleOnce(a float64) float64 {
	if a < 0 {
		a += TwoPi
	}
	if a > TwoPi {
		a -= TwoPi
	}
	return a
}

// NearestTurn returns 0 or 2π, whichever is closer to an angle in [0, 2π].
// Tweening toward it takes the short way home.
func NearestTurn(a float64) float64 {
	if a > math.Pi {
		return TwoPi
	}
	return 0
}

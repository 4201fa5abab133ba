package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate.
	TPS = 60

	Gravity = 900.0

	// Epsilon is the tolerance used when deciding whether a value changed.
	Epsilon = 1e-5
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi], inclusive.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by less than Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

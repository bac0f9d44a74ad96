package math

import "github.com/chewxy/math32"

// Pi as float32.
const Pi = math32.Pi

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * (Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * (180 / Pi)
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Sin, Cos and Sqrt are float32 shorthands used across generators.
func Sin(x float32) float32  { return math32.Sin(x) }
func Cos(x float32) float32  { return math32.Cos(x) }
func Sqrt(x float32) float32 { return math32.Sqrt(x) }
func Abs(x float32) float32  { return math32.Abs(x) }

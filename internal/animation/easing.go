package animation

import "github.com/Faultbox/procmesh/pkg/math"

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// BackOut eases t in [0,1], overshooting past 1 before settling.
func BackOut(t float32) float32 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

// CosineInterpolate blends a to b along a half cosine.
func CosineInterpolate(a, b, t float32) float32 {
	f := (1 - math.Cos(t*math.Pi)) * 0.5
	return a + (b-a)*f
}

// Remap maps v linearly from [inMin,inMax] to [outMin,outMax].
// A degenerate input range maps everything to outMin.
func Remap(v, inMin, inMax, outMin, outMax float32) float32 {
	if inMin == inMax {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

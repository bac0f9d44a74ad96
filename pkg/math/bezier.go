package math

// Bezier evaluates a cubic Bézier curve at t.
// p0 and p3 are the endpoints, p1 and p2 the inner control points.
func Bezier(p0, p1, p2, p3 Vec3, t float32) Vec3 {
	t2 := t * t
	t3 := t2 * t

	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt

	return p0.Scale(mt3).
		Add(p1.Scale(3 * mt2 * t)).
		Add(p2.Scale(3 * mt * t2)).
		Add(p3.Scale(t3))
}

// BezierTangent returns the normalized tangent of a cubic Bézier curve at t.
// The result is the zero vector where the derivative vanishes.
func BezierTangent(p0, p1, p2, p3 Vec3, t float32) Vec3 {
	t2 := t * t

	mt := 1 - t
	mt2 := mt * mt

	mid := 2 * t * mt

	return p0.Scale(-mt2).
		Add(p1.Scale(mt2 - mid)).
		Add(p2.Scale(mid - t2)).
		Add(p3.Scale(t2)).
		Normalize()
}

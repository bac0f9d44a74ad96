package math

import (
	"testing"
)

func TestBezierEndpoints(t *testing.T) {
	sets := [][4]Vec3{
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		{{0.5, -0.3, 0}, {1.5, -0.3, 0}, {0.5, 0.2, 0}, {0, 0.2, 0}},
		{{-3, 7, 2}, {100, -4, 9}, {0.001, 0, -8}, {12, 12, 12}},
	}
	for _, s := range sets {
		if got := Bezier(s[0], s[1], s[2], s[3], 0); got != s[0] {
			t.Errorf("Bezier(t=0) = %v, want %v", got, s[0])
		}
		if got := Bezier(s[0], s[1], s[2], s[3], 1); got != s[3] {
			t.Errorf("Bezier(t=1) = %v, want %v", got, s[3])
		}
	}
}

func TestBezierStraightLine(t *testing.T) {
	p0 := Vec3{0, 0, 0}
	p3 := Vec3{3, 0, 0}
	p1 := Vec3{1, 0, 0}
	p2 := Vec3{2, 0, 0}

	got := Bezier(p0, p1, p2, p3, 0.5)
	if !got.ApproxEqual(Vec3{1.5, 0, 0}, 1e-6) {
		t.Errorf("Bezier midpoint = %v, want (1.5,0,0)", got)
	}

	tan := BezierTangent(p0, p1, p2, p3, 0.5)
	if !tan.ApproxEqual(Right, 1e-6) {
		t.Errorf("BezierTangent = %v, want %v", tan, Right)
	}
}

func TestBezierTangentAtEnds(t *testing.T) {
	p0 := Vec3{0, 0, 0}
	p1 := Vec3{0, 2, 0}
	p2 := Vec3{2, 2, 0}
	p3 := Vec3{2, 0, 0}

	// The tangent at each end points along its handle.
	if got := BezierTangent(p0, p1, p2, p3, 0); !got.ApproxEqual(Up, 1e-6) {
		t.Errorf("tangent at t=0 = %v, want %v", got, Up)
	}
	if got := BezierTangent(p0, p1, p2, p3, 1); !got.ApproxEqual(Up.Negate(), 1e-6) {
		t.Errorf("tangent at t=1 = %v, want %v", got, Up.Negate())
	}
}

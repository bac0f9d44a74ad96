package math

import (
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	v := Vec3{1, 2, 3}
	if got := q.Rotate(v); got != v {
		t.Errorf("identity rotation changed vector: %v", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if Abs(length-1) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatEuler(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		in      Vec3
		want    Vec3
	}{
		{"z90 right to up", 0, 0, 90, Right, Up},
		{"x90 up to forward", 90, 0, 0, Up, Forward},
		{"y90 forward to right", 0, 90, 0, Forward, Right},
		{"zero", 0, 0, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatEuler(tt.x, tt.y, tt.z).Rotate(tt.in)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("QuatEuler(%v,%v,%v).Rotate(%v) = %v, want %v", tt.x, tt.y, tt.z, tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatEulerOrder(t *testing.T) {
	// Z is applied before X: right -> up (z90) -> forward (x90).
	got := QuatEuler(90, 0, 90).Rotate(Right)
	if !got.ApproxEqual(Forward, 1e-5) {
		t.Errorf("QuatEuler(90,0,90).Rotate(right) = %v, want %v", got, Forward)
	}
}

func TestQuatLookRotation(t *testing.T) {
	dirs := []Vec3{
		{1, 0, 0},
		{0, 0, -1},
		{1, 1, 1},
		{0.3, -0.2, 2},
		{0, 1, 0},
	}
	for _, d := range dirs {
		q := QuatLookRotation(d, Up)
		got := q.Rotate(Forward)
		if !got.ApproxEqual(d.Normalize(), 1e-4) {
			t.Errorf("LookRotation(%v) forward = %v, want %v", d, got, d.Normalize())
		}
	}

	if q := QuatLookRotation(Vec3{}, Up); q != QuatIdentity() {
		t.Errorf("LookRotation of zero vector should be identity, got %v", q)
	}
}

func TestQuatLookRotationKeepsUp(t *testing.T) {
	q := QuatLookRotation(Vec3{1, 0, 0}, Up)
	if got := q.Rotate(Up); !got.ApproxEqual(Up, 1e-5) {
		t.Errorf("level look rotation should keep up, got %v", got)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Up, Pi/2)

	expected := Cos(Pi / 4)
	if Abs(q.W-expected) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expected, q.W)
	}
	if Abs(q.Y-Sin(Pi/4)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", Sin(Pi/4), q.Y)
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatEuler(30, 45, 60)
	v := Vec3{0.5, -1, 2}

	want := q.Rotate(v)
	got := q.ToMat4().TransformDirection(v)
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("ToMat4 transform = %v, Rotate = %v", got, want)
	}
}

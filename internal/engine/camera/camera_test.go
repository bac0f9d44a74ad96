package camera

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}

	for _, yaw := range []float32{0, 1, 2.5, -1} {
		c.RotationY = yaw
		d := c.Position().Distance(c.Center)
		if stdmath.Abs(float64(d-c.Distance)) > 1e-4 {
			t.Errorf("yaw %v: distance %v, want %v", yaw, d, c.Distance)
		}
	}
}

func TestPositionFront(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX, c.RotationY = 0, 0
	c.Distance = 4

	want := math.Vec3{Z: 4}
	if got := c.Position(); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch %v, want %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch %v, want %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance %v, want %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 500; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := mesh.Bounds{Min: math.Vec3{X: -1, Y: 0, Z: -1}, Max: math.Vec3{X: 1, Y: 4, Z: 1}}
	c.FitToBounds(b)

	if !c.Center.ApproxEqual(math.Vec3{Y: 2}, 1e-6) {
		t.Errorf("center %v, want (0,2,0)", c.Center)
	}
	radius := b.Size().Length() / 2
	if c.Distance <= radius {
		t.Errorf("distance %v does not clear bounding radius %v", c.Distance, radius)
	}

	// The view matrix maps the center onto the -Z axis.
	p := c.ViewMatrix().TransformPoint(c.Center)
	if stdmath.Abs(float64(p.X)) > 1e-4 || stdmath.Abs(float64(p.Y)) > 1e-4 || p.Z >= 0 {
		t.Errorf("center in view space = %v, want on -Z", p)
	}
}

// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FovY      float32 // radians
	Near, Far float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5,
		RotationX:       0.4,
		RotationY:       0.6,
		MinDistance:     0.2,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math.DegToRad(45),
		Near:            0.05,
		Far:             1000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cx, sx := math.Cos(c.RotationX), math.Sin(c.RotationX)
	cy, sy := math.Cos(c.RotationY), math.Sin(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cx * sy,
		Y: c.Distance * sx,
		Z: c.Distance * cx * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns the perspective projection for aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off until the box fits
// the vertical field of view.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	c.Center = b.Center()

	radius := b.Size().Length() / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = math.Clamp(radius/math.Sin(c.FovY/2), c.MinDistance, c.MaxDistance)
	c.Far = max(c.Far, c.Distance*4)
}

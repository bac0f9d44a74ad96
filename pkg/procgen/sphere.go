package procgen

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Sphere is a UV sphere centered on the origin. It uses half as many height
// segments as radial segments so quads are roughly square.
type Sphere struct {
	Radius         float32 `yaml:"radius"`
	RadialSegments int     `yaml:"radial_segments"`
}

// DefaultSphere returns the stock sphere parameters.
func DefaultSphere() Sphere {
	return Sphere{Radius: 0.5, RadialSegments: 10}
}

// Validate checks every field and reports the first one out of range.
func (p Sphere) Validate() error {
	var v validator
	v.nonNegative("radius", p.Radius)
	v.atLeast("radial_segments", p.RadialSegments, 2)
	return v.err
}

// Build validates p and generates a sphere mesh.
func (p Sphere) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := mesh.NewBuilder()
	heightSegments := p.RadialSegments / 2
	angleInc := math.Pi / float32(heightSegments)

	for i := 0; i <= heightSegments; i++ {
		theta := angleInc * float32(i)
		center := math.Vec3{Y: -math.Cos(theta) * p.Radius}
		radius := math.Sin(theta) * p.Radius
		v := float32(i) / float32(heightSegments)

		if err := mesh.BuildRingForSphere(b, p.RadialSegments, center, radius, v, i > 0); err != nil {
			return nil, err
		}
	}
	return finish(b.Finalize())
}

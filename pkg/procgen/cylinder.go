package procgen

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Cylinder is a straight cylinder along +Y with its base ring at the origin.
type Cylinder struct {
	Radius         float32 `yaml:"radius"`
	Height         float32 `yaml:"height"`
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
	// Caps closes both ends with flat discs.
	Caps bool `yaml:"caps"`
}

// DefaultCylinder returns the stock cylinder parameters.
func DefaultCylinder() Cylinder {
	return Cylinder{Radius: 0.5, Height: 2, RadialSegments: 10, HeightSegments: 4}
}

// Validate checks every field and reports the first one out of range.
func (p Cylinder) Validate() error {
	var v validator
	v.nonNegative("radius", p.Radius)
	v.positive("height", p.Height)
	v.atLeast("radial_segments", p.RadialSegments, 1)
	v.atLeast("height_segments", p.HeightSegments, 1)
	return v.err
}

// Build validates p and generates a cylinder mesh.
func (p Cylinder) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := mesh.NewBuilder()
	s := sweep{
		radiusStart:    p.Radius,
		radiusEnd:      p.Radius,
		height:         p.Height,
		radialSegments: p.RadialSegments,
		heightSegments: p.HeightSegments,
	}
	if _, _, err := s.build(b); err != nil {
		return nil, err
	}
	if p.Caps {
		if err := mesh.BuildCap(b, math.Vec3{}, p.Radius, p.RadialSegments, true); err != nil {
			return nil, err
		}
		if err := mesh.BuildCap(b, math.Up.Scale(p.Height), p.Radius, p.RadialSegments, false); err != nil {
			return nil, err
		}
	}
	return finish(b.Finalize())
}

// BentCylinder bends the cylinder's axis along a vertical arc whose length
// equals Height. BendAngle is in degrees; bends flatter than 1e-3 radians
// yield a straight cylinder.
type BentCylinder struct {
	Radius         float32 `yaml:"radius"`
	Height         float32 `yaml:"height"`
	BendAngle      float32 `yaml:"bend_angle"`
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// DefaultBentCylinder returns the stock bent cylinder parameters.
func DefaultBentCylinder() BentCylinder {
	return BentCylinder{Radius: 0.5, Height: 2, BendAngle: 90, RadialSegments: 10, HeightSegments: 4}
}

// Validate checks every field and reports the first one out of range.
func (p BentCylinder) Validate() error {
	var v validator
	v.nonNegative("radius", p.Radius)
	v.positive("height", p.Height)
	v.finite("bend_angle", p.BendAngle)
	v.atLeast("radial_segments", p.RadialSegments, 1)
	v.atLeast("height_segments", p.HeightSegments, 1)
	return v.err
}

// Build validates p and generates a bent cylinder mesh.
func (p BentCylinder) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return buildSweep(sweep{
		radiusStart:    p.Radius,
		radiusEnd:      p.Radius,
		height:         p.Height,
		bendAngle:      p.BendAngle,
		radialSegments: p.RadialSegments,
		heightSegments: p.HeightSegments,
	})
}

// TaperedCylinder interpolates the ring radius linearly from RadiusStart at
// the base to RadiusEnd at the top.
type TaperedCylinder struct {
	RadiusStart    float32 `yaml:"radius_start"`
	RadiusEnd      float32 `yaml:"radius_end"`
	Height         float32 `yaml:"height"`
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// DefaultTaperedCylinder returns the stock tapered cylinder parameters.
func DefaultTaperedCylinder() TaperedCylinder {
	return TaperedCylinder{RadiusStart: 0.5, RadiusEnd: 0, Height: 2, RadialSegments: 10, HeightSegments: 4}
}

// Validate checks every field and reports the first one out of range.
func (p TaperedCylinder) Validate() error {
	var v validator
	v.nonNegative("radius_start", p.RadiusStart)
	v.nonNegative("radius_end", p.RadiusEnd)
	v.positive("height", p.Height)
	v.atLeast("radial_segments", p.RadialSegments, 1)
	v.atLeast("height_segments", p.HeightSegments, 1)
	return v.err
}

// Build validates p and generates a tapered cylinder mesh.
func (p TaperedCylinder) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return buildSweep(sweep{
		radiusStart:    p.RadiusStart,
		radiusEnd:      p.RadiusEnd,
		height:         p.Height,
		radialSegments: p.RadialSegments,
		heightSegments: p.HeightSegments,
	})
}

// BentTaperedCylinder combines the bend and the taper. The taper slope is
// rotated into each ring's bent frame.
type BentTaperedCylinder struct {
	RadiusStart    float32 `yaml:"radius_start"`
	RadiusEnd      float32 `yaml:"radius_end"`
	Height         float32 `yaml:"height"`
	BendAngle      float32 `yaml:"bend_angle"`
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// DefaultBentTaperedCylinder returns the stock bent tapered cylinder parameters.
func DefaultBentTaperedCylinder() BentTaperedCylinder {
	return BentTaperedCylinder{RadiusStart: 0.5, RadiusEnd: 0, Height: 2, BendAngle: 90, RadialSegments: 10, HeightSegments: 4}
}

// Validate checks every field and reports the first one out of range.
func (p BentTaperedCylinder) Validate() error {
	var v validator
	v.nonNegative("radius_start", p.RadiusStart)
	v.nonNegative("radius_end", p.RadiusEnd)
	v.positive("height", p.Height)
	v.finite("bend_angle", p.BendAngle)
	v.atLeast("radial_segments", p.RadialSegments, 1)
	v.atLeast("height_segments", p.HeightSegments, 1)
	return v.err
}

// Build validates p and generates a bent tapered cylinder mesh.
func (p BentTaperedCylinder) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return buildSweep(sweep{
		radiusStart:    p.RadiusStart,
		radiusEnd:      p.RadiusEnd,
		height:         p.Height,
		bendAngle:      p.BendAngle,
		radialSegments: p.RadialSegments,
		heightSegments: p.HeightSegments,
	})
}

// sweep is a stack of rings along a straight or arced axis with a linearly
// interpolated radius. It backs every cylinder variant and the stems of the
// mushroom and the flower.
type sweep struct {
	radiusStart, radiusEnd float32
	height                 float32
	bendAngle              float32 // degrees
	radialSegments         int
	heightSegments         int
}

func buildSweep(s sweep) (*mesh.Mesh, error) {
	b := mesh.NewBuilder()
	if _, _, err := s.build(b); err != nil {
		return nil, err
	}
	return finish(b.Finalize())
}

// build appends the rings and returns the center and rotation of the last one.
func (s sweep) build(b *mesh.Builder) (math.Vec3, math.Quat, error) {
	slope := math.Vec2{X: s.radiusEnd - s.radiusStart, Y: s.height}.Normalize()
	n := float32(s.heightSegments)

	center := math.Vec3{}
	rotation := math.QuatIdentity()

	bendRadius, bendRadians, bent := arc(s.height, s.bendAngle)
	if !bent {
		heightInc := s.height / n
		for i := 0; i <= s.heightSegments; i++ {
			t := float32(i) / n
			center = math.Up.Scale(heightInc * float32(i))

			err := mesh.BuildRing(b, mesh.RingParams{
				Segments:       s.radialSegments,
				Center:         center,
				Radius:         math.Lerp(s.radiusStart, s.radiusEnd, t),
				V:              t,
				BuildTriangles: i > 0,
				Rotation:       rotation,
				Slope:          slope,
			})
			if err != nil {
				return center, rotation, err
			}
		}
		return center, rotation, nil
	}

	angleInc := bendRadians / n

	// Shifts the first ring (angle 0) onto the origin
	startOffset := math.Vec3{X: bendRadius}

	for i := 0; i <= s.heightSegments; i++ {
		t := float32(i) / n
		angle := angleInc * float32(i)

		center = math.Vec3{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(bendRadius).Sub(startOffset)
		rotation = math.QuatEuler(0, 0, math.RadToDeg(angle))

		err := mesh.BuildRing(b, mesh.RingParams{
			Segments:       s.radialSegments,
			Center:         center,
			Radius:         math.Lerp(s.radiusStart, s.radiusEnd, t),
			V:              t,
			BuildTriangles: i > 0,
			Rotation:       rotation,
			Slope:          slope,
		})
		if err != nil {
			return center, rotation, err
		}
	}
	return center, rotation, nil
}

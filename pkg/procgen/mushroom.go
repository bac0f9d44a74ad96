package procgen

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// MushroomCap shapes the cap as a surface of revolution around a cubic
// Bézier cross-section running from the rim to the peak.
type MushroomCap struct {
	Radius           float32 `yaml:"radius"`
	Height           float32 `yaml:"height"`
	PeakHandleLength float32 `yaml:"peak_handle_length"`
	RimHandleLength  float32 `yaml:"rim_handle_length"`
	RimHandleAngle   float32 `yaml:"rim_handle_angle"` // degrees
	Thickness        float32 `yaml:"thickness"`
	RadialSegments   int     `yaml:"radial_segments"`
}

// MushroomStem is a bent cylinder the cap sits on.
type MushroomStem struct {
	Height         float32 `yaml:"height"`
	Radius         float32 `yaml:"radius"`
	BendAngle      float32 `yaml:"bend_angle"` // degrees
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

type Mushroom struct {
	Cap  MushroomCap  `yaml:"cap"`
	Stem MushroomStem `yaml:"stem"`
}

// DefaultMushroom returns the stock mushroom parameters.
func DefaultMushroom() Mushroom {
	return Mushroom{
		Cap: MushroomCap{
			Radius:           0.5,
			Height:           0.5,
			PeakHandleLength: 0.5,
			RimHandleLength:  1,
			RimHandleAngle:   0,
			Thickness:        0.2,
			RadialSegments:   10,
		},
		Stem: MushroomStem{
			Height:         1,
			Radius:         0.3,
			BendAngle:      45,
			RadialSegments: 10,
			HeightSegments: 10,
		},
	}
}

// Validate checks every field and reports the first one out of range.
func (p Mushroom) Validate() error {
	var v validator
	v.nonNegative("cap.radius", p.Cap.Radius)
	v.finite("cap.height", p.Cap.Height)
	v.finite("cap.peak_handle_length", p.Cap.PeakHandleLength)
	v.finite("cap.rim_handle_length", p.Cap.RimHandleLength)
	v.finite("cap.rim_handle_angle", p.Cap.RimHandleAngle)
	v.nonNegative("cap.thickness", p.Cap.Thickness)
	// A quarter of the radial segments is used for the cap height.
	v.atLeast("cap.radial_segments", p.Cap.RadialSegments, 4)
	v.positive("stem.height", p.Stem.Height)
	v.nonNegative("stem.radius", p.Stem.Radius)
	v.finite("stem.bend_angle", p.Stem.BendAngle)
	v.atLeast("stem.radial_segments", p.Stem.RadialSegments, 1)
	v.atLeast("stem.height_segments", p.Stem.HeightSegments, 1)
	return v.err
}

// Build validates p and generates a mushroom mesh.
func (p Mushroom) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := mesh.NewBuilder()

	stem := sweep{
		radiusStart:    p.Stem.Radius,
		radiusEnd:      p.Stem.Radius,
		height:         p.Stem.Height,
		bendAngle:      p.Stem.BendAngle,
		radialSegments: p.Stem.RadialSegments,
		heightSegments: p.Stem.HeightSegments,
	}
	offset, rotation, err := stem.build(b)
	if err != nil {
		return nil, err
	}

	// Cross-section points in (radius, height) space
	peak := math.Vec3{Y: p.Cap.Thickness}
	rim := math.Vec3{X: p.Cap.Radius, Y: -p.Cap.Height + p.Cap.Thickness}

	peakHandle := math.Vec3{X: p.Cap.PeakHandleLength}
	rimAngle := math.DegToRad(p.Cap.RimHandleAngle)
	rimHandle := math.Vec3{X: math.Cos(rimAngle), Y: math.Sin(rimAngle)}.Scale(p.Cap.RimHandleLength)

	// Outer surface
	if err := p.buildCap(b, offset, rotation, rim, peak, rim.Add(rimHandle), peak.Add(peakHandle)); err != nil {
		return nil, err
	}

	// Gills: the peak drops by the thickness, the rim handle turns 90 degrees
	// and the curve runs peak to rim so the surface faces inward.
	peak.Y -= p.Cap.Thickness
	rimHandle = math.Vec3{X: -rimHandle.Y, Y: rimHandle.X}
	if err := p.buildCap(b, offset, rotation, peak, rim, peak.Add(peakHandle), rim.Add(rimHandle)); err != nil {
		return nil, err
	}

	return finish(b.Finalize())
}

// buildCap sweeps the Bézier (start, c1, c2, end) around the stem tip.
func (p Mushroom) buildCap(b *mesh.Builder, offset math.Vec3, rotation math.Quat, start, end, c1, c2 math.Vec3) error {
	heightSegments := p.Cap.RadialSegments / 4

	for i := 0; i <= heightSegments; i++ {
		t := float32(i) / float32(heightSegments)

		pos := math.Bezier(start, c1, c2, end, t)
		tangent := math.BezierTangent(start, c1, c2, end, t)

		err := mesh.BuildRing(b, mesh.RingParams{
			Segments:       p.Cap.RadialSegments,
			Center:         offset.Add(rotation.Rotate(math.Vec3{Y: pos.Y})),
			Radius:         pos.X,
			V:              t,
			BuildTriangles: i > 0,
			Rotation:       rotation,
			Slope:          slopeOf(tangent),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// slopeOf turns a cross-section tangent into a ring slope. A vanishing
// tangent is treated as a vertical wall.
func slopeOf(tangent math.Vec3) math.Vec2 {
	s := tangent.XY()
	if s == (math.Vec2{}) {
		return math.Vec2{Y: 1}
	}
	return s
}

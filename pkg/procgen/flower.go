package procgen

import (
	"math/rand/v2"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// CylinderPart is the flower stem.
type CylinderPart struct {
	Build          bool    `yaml:"build"`
	Radius         float32 `yaml:"radius"`
	Height         float32 `yaml:"height"`
	BendAngle      float32 `yaml:"bend_angle"` // degrees
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// SpherePart is the flower head, a sphere resting on the stem tip.
type SpherePart struct {
	Build          bool    `yaml:"build"`
	Radius         float32 `yaml:"radius"`
	VerticalScale  float32 `yaml:"vertical_scale"`
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// LeafPart is a ring of bent ribbons such as sepals or petals.
type LeafPart struct {
	Build               bool    `yaml:"build"`
	Width               float32 `yaml:"width"`
	Length              float32 `yaml:"length"`
	BendAngle           float32 `yaml:"bend_angle"`  // degrees
	StartAngle          float32 `yaml:"start_angle"` // degrees
	BendAngleVariation  float32 `yaml:"bend_angle_variation"`
	StartAngleVariation float32 `yaml:"start_angle_variation"`
	Count               int     `yaml:"count"`
	WidthSegments       int     `yaml:"width_segments"`
	LengthSegments      int     `yaml:"length_segments"`
	Backfaces           bool    `yaml:"backfaces"`
}

// Flower is a stem with a head and two leaf rings. Seed drives the random
// bend and start angle variations of the leaves.
type Flower struct {
	Stem  CylinderPart `yaml:"stem"`
	Head  SpherePart   `yaml:"head"`
	Sepal LeafPart     `yaml:"sepal"`
	Petal LeafPart     `yaml:"petal"`
	Seed  uint64       `yaml:"seed"`
}

func defaultLeafPart() LeafPart {
	return LeafPart{
		Build:              true,
		Width:              0.2,
		Length:             0.3,
		BendAngle:          90,
		BendAngleVariation: 10,
		Count:              6,
		WidthSegments:      8,
		LengthSegments:     8,
		Backfaces:          true,
	}
}

// DefaultFlower returns the stock flower parameters.
func DefaultFlower() Flower {
	return Flower{
		Stem: CylinderPart{
			Build:          true,
			Radius:         0.05,
			Height:         1,
			BendAngle:      10,
			RadialSegments: 10,
			HeightSegments: 10,
		},
		Head: SpherePart{
			Build:          true,
			Radius:         0.05,
			VerticalScale:  1,
			RadialSegments: 10,
			HeightSegments: 10,
		},
		Sepal: defaultLeafPart(),
		Petal: defaultLeafPart(),
	}
}

// Validate checks every field and reports the first one out of range.
func (p Flower) Validate() error {
	var v validator
	if p.Stem.Build {
		v.nonNegative("stem.radius", p.Stem.Radius)
		v.positive("stem.height", p.Stem.Height)
		v.finite("stem.bend_angle", p.Stem.BendAngle)
		v.atLeast("stem.radial_segments", p.Stem.RadialSegments, 1)
		v.atLeast("stem.height_segments", p.Stem.HeightSegments, 1)
	}
	if p.Head.Build {
		v.nonNegative("head.radius", p.Head.Radius)
		v.positive("head.vertical_scale", p.Head.VerticalScale)
		v.atLeast("head.radial_segments", p.Head.RadialSegments, 1)
		v.atLeast("head.height_segments", p.Head.HeightSegments, 1)
	}
	validateLeaf(&v, "sepal", p.Sepal)
	validateLeaf(&v, "petal", p.Petal)
	return v.err
}

func validateLeaf(v *validator, name string, p LeafPart) {
	if !p.Build {
		return
	}
	v.nonNegative(name+".width", p.Width)
	v.positive(name+".length", p.Length)
	v.finite(name+".bend_angle", p.BendAngle)
	v.finite(name+".start_angle", p.StartAngle)
	v.nonNegative(name+".bend_angle_variation", p.BendAngleVariation)
	v.nonNegative(name+".start_angle_variation", p.StartAngleVariation)
	v.atLeast(name+".count", p.Count, 0)
	v.atLeast(name+".width_segments", p.WidthSegments, 1)
	v.atLeast(name+".length_segments", p.LengthSegments, 1)
}

// Build validates p and generates a flower mesh.
func (p Flower) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := mesh.NewBuilder()
	rng := newRand(p.Seed)

	// The head and leaves attach to the stem tip. Without a stem they sit
	// at the origin.
	offset := math.Vec3{}
	rotation := math.QuatIdentity()
	if p.Stem.Build {
		stem := sweep{
			radiusStart:    p.Stem.Radius,
			radiusEnd:      p.Stem.Radius,
			height:         p.Stem.Height,
			bendAngle:      p.Stem.BendAngle,
			radialSegments: p.Stem.RadialSegments,
			heightSegments: p.Stem.HeightSegments,
		}
		var err error
		if offset, rotation, err = stem.build(b); err != nil {
			return nil, err
		}
	}

	if p.Head.Build {
		if err := buildHead(b, offset, rotation, p.Head); err != nil {
			return nil, err
		}
	}
	if err := buildLeafRing(b, rng, offset, rotation, p.Stem.Radius, p.Sepal); err != nil {
		return nil, err
	}
	if err := buildLeafRing(b, rng, offset, rotation, p.Stem.Radius, p.Petal); err != nil {
		return nil, err
	}
	return finish(b.Finalize())
}

// buildHead builds a vertically scaled sphere whose base sits on offset.
func buildHead(b *mesh.Builder, offset math.Vec3, rotation math.Quat, p SpherePart) error {
	angleInc := math.Pi / float32(p.HeightSegments)
	verticalRadius := p.Radius * p.VerticalScale

	for i := 0; i <= p.HeightSegments; i++ {
		theta := angleInc * float32(i)
		y := -math.Cos(theta)
		radius := math.Sin(theta)

		slope := math.Vec2{X: -y / p.VerticalScale, Y: radius}.Normalize()

		center := math.Vec3{Y: y*verticalRadius + verticalRadius}
		v := float32(i) / float32(p.HeightSegments)

		err := mesh.BuildRing(b, mesh.RingParams{
			Segments:       p.RadialSegments,
			Center:         rotation.Rotate(center).Add(offset),
			Radius:         radius * p.Radius,
			V:              v,
			BuildTriangles: i > 0,
			Rotation:       rotation,
			Slope:          slope,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// buildLeafRing places Count leaves evenly around the stem tip at the stem
// radius. Each leaf draws its bend variation then its start variation.
func buildLeafRing(b *mesh.Builder, rng *rand.Rand, offset math.Vec3, rotation math.Quat, radius float32, p LeafPart) error {
	if !p.Build {
		return nil
	}
	for i := 0; i < p.Count; i++ {
		yAngle := 360 * float32(i) / float32(p.Count)
		radial := rotation.Mul(math.QuatEuler(0, yAngle, 0))

		position := offset.Add(radial.Rotate(math.Forward).Scale(radius))

		bend := p.BendAngle + randRange(rng, -p.BendAngleVariation, p.BendAngleVariation)
		start := p.StartAngle + randRange(rng, -p.StartAngleVariation, p.StartAngleVariation)

		if err := buildLeaf(b, position, radial, p, bend, start, false); err != nil {
			return err
		}
	}
	return nil
}

// buildLeaf builds one ribbon curled around the local X axis. The width
// follows sin(v*pi) so the leaf is pointed at both ends. The back face is
// the same ribbon mirrored across X with flipped normals.
func buildLeaf(b *mesh.Builder, offset math.Vec3, rotation math.Quat, p LeafPart, bendAngle, startAngle float32, back bool) error {
	sign := float32(1)
	if back {
		sign = -1
	}

	n := float32(p.LengthSegments)
	startRadians := math.DegToRad(startAngle)

	// row returns the row center in the leaf's (y, z) plane and the bend
	// angle at that row in radians.
	var row func(i int) (math.Vec2, float32)
	if bendRadius, bendRadians, bent := arc(p.Length, bendAngle); !bent {
		// Straight ribbon along the start direction
		dir := math.Vec2{X: -math.Sin(startRadians), Y: math.Cos(startRadians)}
		step := p.Length / n
		row = func(i int) (math.Vec2, float32) {
			return dir.Scale(step * float32(i)), startRadians
		}
	} else {
		angleInc := bendRadians / n
		startOffset := math.Vec2{X: math.Cos(startRadians), Y: math.Sin(startRadians)}.Scale(bendRadius)
		row = func(i int) (math.Vec2, float32) {
			a := angleInc*float32(i) + startRadians
			return math.Vec2{X: math.Cos(a), Y: math.Sin(a)}.Scale(bendRadius).Sub(startOffset), a
		}
	}

	g := mesh.NewGrid(b, p.WidthSegments+1)
	for i := 0; i <= p.LengthSegments; i++ {
		v := float32(i) / n
		width := p.Width * math.Sin(v*math.Pi) * sign
		xOffset := -width / 2

		center, angle := row(i)
		bendRotation := math.QuatEuler(math.RadToDeg(angle), 0, 0)
		normal := rotation.Rotate(bendRotation.Rotate(math.Up)).Scale(sign)

		for j := 0; j <= p.WidthSegments; j++ {
			x := width / float32(p.WidthSegments) * float32(j)
			u := float32(j) / float32(p.WidthSegments)

			pos := offset.Add(rotation.Rotate(math.Vec3{X: x + xOffset, Y: center.X, Z: center.Y}))
			if _, err := g.Set(i, j, pos, normal, math.Vec2{X: u, Y: v}); err != nil {
				return err
			}
		}
	}

	if !back && p.Backfaces {
		return buildLeaf(b, offset, rotation, p, bendAngle, startAngle, true)
	}
	return nil
}

package procgen

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Plane is a single quad in the XZ plane with a corner at the origin.
type Plane struct {
	Width  float32 `yaml:"width"`
	Length float32 `yaml:"length"`
}

// DefaultPlane returns the stock plane parameters.
func DefaultPlane() Plane {
	return Plane{Width: 1, Length: 1}
}

// Validate checks every field and reports the first one out of range.
func (p Plane) Validate() error {
	var v validator
	v.positive("width", p.Width)
	v.positive("length", p.Length)
	return v.err
}

// Build validates p and generates a plane mesh.
func (p Plane) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := mesh.NewBuilder()
	mesh.BuildQuad(b, math.Vec3{}, math.Right.Scale(p.Width), math.Forward.Scale(p.Length))
	return finish(b.Finalize())
}

// Cube is a box with one corner at the origin, extending along +X, +Y, +Z.
type Cube struct {
	Width  float32 `yaml:"width"`
	Length float32 `yaml:"length"`
	Height float32 `yaml:"height"`
}

// DefaultCube returns the stock cube parameters.
func DefaultCube() Cube {
	return Cube{Width: 1, Length: 1, Height: 1}
}

// Validate checks every field and reports the first one out of range.
func (p Cube) Validate() error {
	var v validator
	v.positive("width", p.Width)
	v.positive("length", p.Length)
	v.positive("height", p.Height)
	return v.err
}

// Build validates p and generates a cube mesh.
func (p Cube) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	up := math.Up.Scale(p.Height)
	right := math.Right.Scale(p.Width)
	forward := math.Forward.Scale(p.Length)

	b := mesh.NewBuilder()
	buildBox(b, math.Vec3{}, up.Add(right).Add(forward), up, right, forward)
	return finish(b.Finalize())
}

// House is four walls under a gabled roof. The pivot is the center of the
// floor and the ridge runs along +Z.
type House struct {
	Width             float32 `yaml:"width"`
	Length            float32 `yaml:"length"`
	Height            float32 `yaml:"height"`
	RoofHeight        float32 `yaml:"roof_height"`
	RoofOverhangFront float32 `yaml:"roof_overhang_front"`
	RoofOverhangSide  float32 `yaml:"roof_overhang_side"`
	// RoofBias lifts the roof to avoid z-fighting with the wall tops.
	RoofBias float32 `yaml:"roof_bias"`
}

// DefaultHouse returns the stock house parameters.
func DefaultHouse() House {
	return House{
		Width:             1,
		Length:            1,
		Height:            1,
		RoofHeight:        0.3,
		RoofOverhangFront: 0.2,
		RoofOverhangSide:  0.2,
		RoofBias:          0.02,
	}
}

// Validate checks every field and reports the first one out of range.
func (p House) Validate() error {
	var v validator
	v.positive("width", p.Width)
	v.positive("length", p.Length)
	v.positive("height", p.Height)
	v.nonNegative("roof_height", p.RoofHeight)
	v.nonNegative("roof_overhang_front", p.RoofOverhangFront)
	v.nonNegative("roof_overhang_side", p.RoofOverhangSide)
	v.nonNegative("roof_bias", p.RoofBias)
	return v.err
}

// Build validates p and generates a house mesh.
func (p House) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := mesh.NewBuilder()

	up := math.Up.Scale(p.Height)
	right := math.Right.Scale(p.Width)
	forward := math.Forward.Scale(p.Length)

	pivot := right.Add(forward).Scale(0.5)
	near := pivot.Negate()
	far := up.Add(right).Add(forward).Sub(pivot)

	// Walls
	mesh.BuildQuad(b, near, right, up)
	mesh.BuildQuad(b, near, up, forward)
	mesh.BuildQuad(b, far, up.Negate(), right.Negate())
	mesh.BuildQuad(b, far, forward.Negate(), up.Negate())

	// Gables
	peak := math.Up.Scale(p.Height + p.RoofHeight).Add(right.Scale(0.5)).Sub(pivot)
	topLeft := up.Sub(pivot)
	topRight := up.Add(right).Sub(pivot)

	mesh.BuildTriangle(b, topLeft, peak, topRight)
	mesh.BuildTriangle(b, topLeft.Add(forward), topRight.Add(forward), peak.Add(forward))

	// Roof slopes, extended by the side overhang
	toLeft := topLeft.Sub(peak)
	toRight := topRight.Sub(peak)
	toLeft = toLeft.Add(toLeft.NormalizeOr(math.Vec3{}).Scale(p.RoofOverhangSide))
	toRight = toRight.Add(toRight.NormalizeOr(math.Vec3{}).Scale(p.RoofOverhangSide))

	ridgeStart := peak.Sub(math.Forward.Scale(p.RoofOverhangFront)).Add(math.Up.Scale(p.RoofBias))
	ridge := forward.Add(math.Forward.Scale(p.RoofOverhangFront * 2))

	// Outer and inner side of each slope
	mesh.BuildQuad(b, ridgeStart, ridge, toLeft)
	mesh.BuildQuad(b, ridgeStart, toRight, ridge)
	mesh.BuildQuad(b, ridgeStart, toLeft, ridge)
	mesh.BuildQuad(b, ridgeStart, ridge, toRight)

	return finish(b.Finalize())
}

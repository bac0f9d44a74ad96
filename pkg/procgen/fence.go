package procgen

import (
	"math/rand/v2"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Fence is a row of randomly tilted posts along +X joined by crosspieces
// running along the back of the posts.
type Fence struct {
	PostWidth            float32 `yaml:"post_width"`
	PostHeight           float32 `yaml:"post_height"`
	PostHeightVariation  float32 `yaml:"post_height_variation"`
	PostTiltAngle        float32 `yaml:"post_tilt_angle"` // degrees
	CrossPieceHeight     float32 `yaml:"cross_piece_height"`
	CrossPieceWidth      float32 `yaml:"cross_piece_width"`
	CrossPieceY          float32 `yaml:"cross_piece_y"`
	CrossPieceYVariation float32 `yaml:"cross_piece_y_variation"`
	SectionCount         int     `yaml:"section_count"`
	DistBetweenPosts     float32 `yaml:"dist_between_posts"`
	Seed                 uint64  `yaml:"seed"`
}

// DefaultFence returns the stock fence parameters.
func DefaultFence() Fence {
	return Fence{
		PostWidth:            0.2,
		PostHeight:           1,
		PostHeightVariation:  0.25,
		PostTiltAngle:        10,
		CrossPieceHeight:     0.2,
		CrossPieceWidth:      0.1,
		CrossPieceY:          0.5,
		CrossPieceYVariation: 0.25,
		SectionCount:         10,
		DistBetweenPosts:     1,
	}
}

// Validate checks every field and reports the first one out of range.
func (p Fence) Validate() error {
	var v validator
	v.positive("post_width", p.PostWidth)
	v.positive("post_height", p.PostHeight)
	v.nonNegative("post_height_variation", p.PostHeightVariation)
	v.nonNegative("post_tilt_angle", p.PostTiltAngle)
	v.positive("cross_piece_height", p.CrossPieceHeight)
	v.positive("cross_piece_width", p.CrossPieceWidth)
	v.finite("cross_piece_y", p.CrossPieceY)
	v.nonNegative("cross_piece_y_variation", p.CrossPieceYVariation)
	v.atLeast("section_count", p.SectionCount, 1)
	v.nonNegative("dist_between_posts", p.DistBetweenPosts)
	return v.err
}

// Build validates p and generates a fence mesh.
func (p Fence) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := mesh.NewBuilder()
	rng := newRand(p.Seed)

	var prevCross math.Vec3
	prevRotation := math.QuatIdentity()

	for i := 0; i <= p.SectionCount; i++ {
		offset := math.Right.Scale(p.DistBetweenPosts * float32(i))
		xAngle := randRange(rng, -p.PostTiltAngle, p.PostTiltAngle)
		zAngle := randRange(rng, -p.PostTiltAngle, p.PostTiltAngle)
		rotation := math.QuatEuler(xAngle, 0, zAngle)

		p.buildPost(b, rng, offset, rotation)

		// The crosspiece runs along the back face of the post
		cross := offset.Add(rotation.Rotate(math.Forward.Negate().Scale(p.PostWidth / 2)))

		yStart := randRange(rng, -p.CrossPieceYVariation, p.CrossPieceYVariation)
		yEnd := randRange(rng, -p.CrossPieceYVariation, p.CrossPieceYVariation)
		startOffset := prevRotation.Rotate(math.Up).Scale(p.CrossPieceY + yStart)
		endOffset := rotation.Rotate(math.Up).Scale(p.CrossPieceY + yEnd)

		if i != 0 {
			p.buildCrossPiece(b, prevCross.Add(startOffset), cross.Add(endOffset))
		}

		prevCross = cross
		prevRotation = rotation
	}
	return finish(b.Finalize())
}

// buildPost builds an open-bottomed box with its pivot at the base center.
func (p Fence) buildPost(b *mesh.Builder, rng *rand.Rand, position math.Vec3, rotation math.Quat) {
	height := p.PostHeight + randRange(rng, -p.PostHeightVariation, p.PostHeightVariation)

	up := rotation.Rotate(math.Up).Scale(height)
	right := rotation.Rotate(math.Right).Scale(p.PostWidth)
	forward := rotation.Rotate(math.Forward).Scale(p.PostWidth)

	pivot := right.Add(forward).Scale(0.5)
	near := position.Sub(pivot)
	far := up.Add(right).Add(forward).Add(position).Sub(pivot)

	mesh.BuildQuad(b, near, right, up)
	mesh.BuildQuad(b, near, up, forward)

	mesh.BuildQuad(b, far, right.Negate(), forward.Negate())
	mesh.BuildQuad(b, far, up.Negate(), right.Negate())
	mesh.BuildQuad(b, far, forward.Negate(), up.Negate())
}

// buildCrossPiece builds a closed box from start to end.
func (p Fence) buildCrossPiece(b *mesh.Builder, start, end math.Vec3) {
	dir := end.Sub(start)
	rotation := math.QuatLookRotation(dir, math.Up)

	up := rotation.Rotate(math.Up).Scale(p.CrossPieceHeight)
	right := rotation.Rotate(math.Right).Scale(p.CrossPieceWidth)
	forward := rotation.Rotate(math.Forward).Scale(dir.Length())

	buildBox(b, start, up.Add(right).Add(forward).Add(start), up, right, forward)
}

// buildBox builds the six faces of a box from two opposite corners and its
// three edge vectors.
func buildBox(b *mesh.Builder, near, far, up, right, forward math.Vec3) {
	mesh.BuildQuad(b, near, forward, right)
	mesh.BuildQuad(b, near, right, up)
	mesh.BuildQuad(b, near, up, forward)

	mesh.BuildQuad(b, far, right.Negate(), forward.Negate())
	mesh.BuildQuad(b, far, up.Negate(), right.Negate())
	mesh.BuildQuad(b, far, forward.Negate(), up.Negate())
}

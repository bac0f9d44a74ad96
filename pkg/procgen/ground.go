package procgen

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Ground is a SegmentCount x SegmentCount heightfield with random vertex
// heights in [0, Height). Normals are computed from the final surface.
type Ground struct {
	Width        float32 `yaml:"width"`  // per segment
	Length       float32 `yaml:"length"` // per segment
	Height       float32 `yaml:"height"`
	SegmentCount int     `yaml:"segment_count"`
	Seed         uint64  `yaml:"seed"`
}

// DefaultGround returns the stock ground parameters.
func DefaultGround() Ground {
	return Ground{Width: 1, Length: 1, Height: 1, SegmentCount: 10}
}

// Validate checks every field and reports the first one out of range.
func (p Ground) Validate() error {
	var v validator
	v.positive("width", p.Width)
	v.positive("length", p.Length)
	v.nonNegative("height", p.Height)
	v.atLeast("segment_count", p.SegmentCount, 1)
	return v.err
}

// Build validates p and generates a ground mesh.
func (p Ground) Build() (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := mesh.NewBuilder()
	g := mesh.NewGrid(b, p.SegmentCount+1)
	rng := newRand(p.Seed)
	step := 1 / float32(p.SegmentCount)

	for i := 0; i <= p.SegmentCount; i++ {
		z := p.Length * float32(i)
		v := step * float32(i)

		for j := 0; j <= p.SegmentCount; j++ {
			x := p.Width * float32(j)
			u := step * float32(j)

			pos := math.Vec3{X: x, Y: randRange(rng, 0, p.Height), Z: z}
			if _, err := g.SetPosition(i, j, pos, math.Vec2{X: u, Y: v}); err != nil {
				return nil, err
			}
		}
	}

	return finish(b.Finalize().WithRecalculatedNormals())
}

package mesh

import (
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
)

// RingParams describes one ring of a surface of revolution.
type RingParams struct {
	// Segments is the number of radial segments. The ring has Segments+1
	// vertices; the first and last coincide to close the UV seam.
	Segments int
	Center   math.Vec3
	Radius   float32
	// V is the texture V coordinate shared by the whole ring.
	V float32
	// BuildTriangles connects this ring to the previous ring built on the
	// same builder. It must be false for the first ring of a surface.
	BuildTriangles bool
	// Rotation is applied to the ring offsets and normals. The zero value
	// leaves them unrotated.
	Rotation math.Quat
	// Slope is the normalized (run, rise) of the surface profile at this
	// ring. The zero value means a vertical wall, (0, 1).
	Slope math.Vec2
}

// BuildRing appends one ring. Vertex i sits at angle 2*pi*i/Segments in the
// ring's local XZ plane, has UV (i/Segments, V) and a normal derived from
// the slope.
func BuildRing(b *Builder, p RingParams) error {
	slope := p.Slope
	if slope == (math.Vec2{}) {
		slope = math.Vec2{X: 0, Y: 1}
	}
	return buildRing(b, p, func(unit, _ math.Vec3) math.Vec3 {
		n := unit.Scale(slope.Y)
		n.Y = -slope.X
		return p.Rotation.Rotate(n)
	})
}

// BuildRingForSphere appends a horizontal ring whose normals point from the
// origin to each vertex.
func BuildRingForSphere(b *Builder, segments int, center math.Vec3, radius, v float32, buildTriangles bool) error {
	p := RingParams{
		Segments:       segments,
		Center:         center,
		Radius:         radius,
		V:              v,
		BuildTriangles: buildTriangles,
	}
	return buildRing(b, p, func(_, pos math.Vec3) math.Vec3 {
		return pos.NormalizeOr(math.Up)
	})
}

func buildRing(b *Builder, p RingParams, normalAt func(unit, pos math.Vec3) math.Vec3) error {
	if p.Segments < 1 {
		return fmt.Errorf("%w: ring needs at least 1 segment, got %d", ErrInvalidMesh, p.Segments)
	}
	cols := p.Segments + 1

	row := 0
	if p.BuildTriangles {
		if b.rings == nil || b.rings.Cols() != cols {
			return fmt.Errorf("%w: no previous ring with %d vertices", ErrMissingNeighbor, cols)
		}
		row = b.ringRow + 1
	} else {
		b.rings = NewGrid(b, cols)
	}
	b.ringRow = row

	angleInc := 2 * math.Pi / float32(p.Segments)
	for i := 0; i <= p.Segments; i++ {
		angle := angleInc * float32(i)
		unit := math.Vec3{X: math.Cos(angle), Z: math.Sin(angle)}

		pos := p.Center.Add(p.Rotation.Rotate(unit).Scale(p.Radius))
		uv := math.Vec2{X: float32(i) / float32(p.Segments), Y: p.V}

		if _, err := b.rings.Set(row, i, pos, normalAt(unit, pos), uv); err != nil {
			return err
		}
	}
	return nil
}

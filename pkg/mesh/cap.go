package mesh

import (
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
)

// BuildCap appends a flat disc fan around center in the XZ plane.
// The cap faces +Y, or -Y with reverse set (bottom caps).
func BuildCap(b *Builder, center math.Vec3, radius float32, segments int, reverse bool) error {
	if segments < 1 {
		return fmt.Errorf("%w: cap needs at least 1 segment, got %d", ErrInvalidMesh, segments)
	}

	normal := math.Up
	if reverse {
		normal = normal.Negate()
	}

	centerIdx := b.AddVertex(center, normal, math.Vec2{X: 0.5, Y: 0.5})

	angleInc := 2 * math.Pi / float32(segments)
	var prev uint32
	for i := 0; i <= segments; i++ {
		angle := angleInc * float32(i)
		unit := math.Vec3{X: math.Cos(angle), Z: math.Sin(angle)}

		uv := math.Vec2{X: (unit.X + 1) / 2, Y: (unit.Z + 1) / 2}
		idx := b.AddVertex(center.Add(unit.Scale(radius)), normal, uv)

		if i > 0 {
			if reverse {
				b.addTriangle(centerIdx, prev, idx)
			} else {
				b.addTriangle(centerIdx, idx, prev)
			}
		}
		prev = idx
	}
	return nil
}

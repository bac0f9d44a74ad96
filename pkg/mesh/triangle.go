package mesh

import "github.com/Faultbox/procmesh/pkg/math"

// BuildTriangle appends a single triangle with a flat normal
// cross(c1-c0, c2-c0), or +Y when the triangle is degenerate.
func BuildTriangle(b *Builder, c0, c1, c2 math.Vec3) {
	normal := c1.Sub(c0).Cross(c2.Sub(c0)).NormalizeOr(math.Up)

	base := b.AddVertex(c0, normal, math.Vec2{X: 0, Y: 0})
	b.AddVertex(c1, normal, math.Vec2{X: 0, Y: 1})
	b.AddVertex(c2, normal, math.Vec2{X: 1, Y: 1})

	b.addTriangle(base, base+1, base+2)
}

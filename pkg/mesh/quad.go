package mesh

import "github.com/Faultbox/procmesh/pkg/math"

// BuildQuad appends a flat quad spanned by width and length from offset.
// Corners are offset, offset+length, offset+length+width and offset+width.
// All four vertices share the normal cross(length, width), or +Y when
// the quad is degenerate.
func BuildQuad(b *Builder, offset, width, length math.Vec3) {
	normal := length.Cross(width).NormalizeOr(math.Up)

	base := b.AddVertex(offset, normal, math.Vec2{X: 0, Y: 0})
	b.AddVertex(offset.Add(length), normal, math.Vec2{X: 0, Y: 1})
	b.AddVertex(offset.Add(length).Add(width), normal, math.Vec2{X: 1, Y: 1})
	b.AddVertex(offset.Add(width), normal, math.Vec2{X: 1, Y: 0})

	b.addTriangle(base, base+1, base+2)
	b.addTriangle(base, base+2, base+3)
}

// BuildQuadXZ appends a +Y facing quad of width (along X) by length (along
// Z) with its corner at offset.
func BuildQuadXZ(b *Builder, offset math.Vec3, width, length float32) {
	BuildQuad(b, offset, math.Vec3{X: width}, math.Vec3{Z: length})
}

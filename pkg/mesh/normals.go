package mesh

import (
	"slices"

	"github.com/Faultbox/procmesh/pkg/math"
)

// WithRecalculatedNormals returns a copy of the mesh with per-vertex normals
// computed from its triangles. Face normals are weighted by triangle area and
// summed per vertex; vertices with no usable faces get +Y.
func (m *Mesh) WithRecalculatedNormals() *Mesh {
	normals := make([]math.Vec3, len(m.Vertices))

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		p0, p1, p2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		// Unnormalized cross product, its length is twice the area
		face := p1.Sub(p0).Cross(p2.Sub(p0))

		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i := range normals {
		normals[i] = normals[i].NormalizeOr(math.Up)
	}

	return &Mesh{
		Vertices: slices.Clone(m.Vertices),
		Normals:  normals,
		UVs:      slices.Clone(m.UVs),
		Indices:  slices.Clone(m.Indices),
		Bounds:   m.Bounds,
	}
}

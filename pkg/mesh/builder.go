package mesh

import (
	"fmt"
	"slices"

	"github.com/Faultbox/procmesh/pkg/math"
)

// Builder accumulates vertex attributes and triangle indices for one mesh.
// It is append-only; Finalize copies the buffers out.
type Builder struct {
	vertices []math.Vec3
	normals  []math.Vec3
	uvs      []math.Vec2
	indices  []uint32

	// ring stitching state, see BuildRing
	rings   *Grid
	ringRow int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddVertex appends a vertex with a normal and UV and returns its index.
func (b *Builder) AddVertex(pos, normal math.Vec3, uv math.Vec2) uint32 {
	b.vertices = append(b.vertices, pos)
	b.normals = append(b.normals, normal)
	b.uvs = append(b.uvs, uv)
	return uint32(len(b.vertices) - 1)
}

// AddPosition appends a vertex without a normal. Meshes built this way are
// expected to get their normals from Mesh.WithRecalculatedNormals.
func (b *Builder) AddPosition(pos math.Vec3, uv math.Vec2) uint32 {
	b.vertices = append(b.vertices, pos)
	b.uvs = append(b.uvs, uv)
	return uint32(len(b.vertices) - 1)
}

// AddTriangle appends a triangle. All three indices must refer to existing
// vertices; otherwise nothing is appended and ErrIndexOutOfRange is returned.
func (b *Builder) AddTriangle(i0, i1, i2 uint32) error {
	n := uint32(len(b.vertices))
	if i0 >= n || i1 >= n || i2 >= n {
		return fmt.Errorf("%w: triangle (%d, %d, %d) with %d vertices", ErrIndexOutOfRange, i0, i1, i2, n)
	}
	b.addTriangle(i0, i1, i2)
	return nil
}

// addTriangle appends indices the caller has just created.
func (b *Builder) addTriangle(i0, i1, i2 uint32) {
	b.indices = append(b.indices, i0, i1, i2)
}

// VertexCount returns the number of vertices appended so far.
func (b *Builder) VertexCount() int {
	return len(b.vertices)
}

// TriangleCount returns the number of triangles appended so far.
func (b *Builder) TriangleCount() int {
	return len(b.indices) / 3
}

// Vertex returns the position of vertex i.
func (b *Builder) Vertex(i uint32) math.Vec3 {
	return b.vertices[i]
}

// Finalize returns an immutable copy of the accumulated buffers with bounds.
// The builder is left untouched, so calling Finalize again yields an
// equivalent mesh.
func (b *Builder) Finalize() *Mesh {
	m := &Mesh{
		Vertices: slices.Clone(b.vertices),
		UVs:      slices.Clone(b.uvs),
		Indices:  slices.Clone(b.indices),
		Bounds:   computeBounds(b.vertices),
	}
	if len(b.normals) > 0 {
		m.Normals = slices.Clone(b.normals)
	}
	return m
}

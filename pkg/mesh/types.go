// Package mesh provides the mesh builder and the primitive assembly
// functions (quads, triangles, grids, rings) shared by every generator.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
)

var (
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	ErrMissingNeighbor = errors.New("grid neighbor vertex missing")
	ErrInvalidMesh     = errors.New("invalid mesh")
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Mesh is a finalized vertex/index buffer ready for a renderer or a file writer.
// Normals is either empty or parallel to Vertices. UVs is parallel to Vertices.
// Indices holds triangles as consecutive triples.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2
	Indices  []uint32
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// Triangle returns the indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// Validate checks the buffer invariants: parallel attribute lengths,
// whole triangles and in-range indices.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(m.Normals), n)
	}
	if len(m.UVs) != 0 && len(m.UVs) != n {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidMesh, len(m.UVs), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at position %d (vertex count %d)", ErrIndexOutOfRange, idx, i, n)
		}
	}
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d is not finite: %v", ErrInvalidMesh, i, v)
		}
	}
	return nil
}

// Interleaved packs position, normal and UV into 8 floats per vertex.
// Missing normals are written as +Y.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for i, v := range m.Vertices {
		n := math.Up
		if m.HasNormals() {
			n = m.Normals[i]
		}
		var uv math.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, v.X, v.Y, v.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	return out
}

func computeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

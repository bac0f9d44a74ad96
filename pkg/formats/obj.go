package formats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/procmesh/pkg/mesh"
)

// WriteOBJ writes m as a Wavefront OBJ object. Positions, texture
// coordinates and (when present) normals share the vertex index, so faces
// are written as "f a/a/a" with 1-based indices.
func WriteOBJ(w io.Writer, m *mesh.Mesh, name string) error {
	if err := checkMesh(m); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# procmesh: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	hasUV := len(m.UVs) == m.VertexCount()
	if hasUV {
		for _, uv := range m.UVs {
			fmt.Fprintf(bw, "vt %.6f %.6f\n", uv.X, uv.Y)
		}
	}
	if m.HasNormals() {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
		}
	}

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		bw.WriteString("f")
		for _, idx := range tri {
			writeOBJRef(bw, idx+1, hasUV, m.HasNormals())
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}

func writeOBJRef(w *bufio.Writer, idx uint32, uv, normal bool) {
	switch {
	case uv && normal:
		fmt.Fprintf(w, " %d/%d/%d", idx, idx, idx)
	case uv:
		fmt.Fprintf(w, " %d/%d", idx, idx)
	case normal:
		fmt.Fprintf(w, " %d//%d", idx, idx)
	default:
		fmt.Fprintf(w, " %d", idx)
	}
}

package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrInvalidSTLSize   = errors.New("STL size does not match triangle count")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// STLTriangle is one binary STL facet record.
type STLTriangle struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// STL is a parsed binary STL file.
type STL struct {
	Header    string
	Triangles []STLTriangle
}

// WriteSTL writes m as binary STL: an 80-byte header holding name, a
// little-endian triangle count and one 50-byte record per triangle. Facet
// normals are computed from the triangle winding.
func WriteSTL(w io.Writer, m *mesh.Mesh, name string) error {
	if err := checkMesh(m); err != nil {
		return fmt.Errorf("writing STL: %w", err)
	}

	var header [stlHeaderSize]byte
	copy(header[:], name)

	buf := new(bytes.Buffer)
	buf.Grow(stlHeaderSize + 4 + m.TriangleCount()*stlTriangleSize)
	buf.Write(header[:])
	binary.Write(buf, binary.LittleEndian, uint32(m.TriangleCount()))

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		p0, p1, p2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).NormalizeOr(math.Vec3{})

		rec := STLTriangle{
			Normal: [3]float32{n.X, n.Y, n.Z},
			Vertices: [3][3]float32{
				{p0.X, p0.Y, p0.Z},
				{p1.X, p1.Y, p1.Z},
				{p2.X, p2.Y, p2.Z},
			},
		}
		binary.Write(buf, binary.LittleEndian, rec)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing STL: %w", err)
	}
	return nil
}

// ParseSTL parses binary STL data.
func ParseSTL(data []byte) (*STL, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTLData
	}

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	want := stlHeaderSize + 4 + int(count)*stlTriangleSize
	if len(data) < want {
		return nil, fmt.Errorf("%w: %d triangles need %d bytes, have %d", ErrTruncatedSTLData, count, want, len(data))
	}
	if len(data) != want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSTLSize, want, len(data))
	}

	stl := &STL{
		Header:    strings.TrimRight(string(data[:stlHeaderSize]), "\x00 "),
		Triangles: make([]STLTriangle, count),
	}

	r := bytes.NewReader(data[stlHeaderSize+4:])
	if err := binary.Read(r, binary.LittleEndian, stl.Triangles); err != nil {
		return nil, fmt.Errorf("%w: reading triangles", ErrTruncatedSTLData)
	}
	return stl, nil
}

// ParseSTLFile reads and parses a binary STL file.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}

// Mesh converts the facets to an unindexed mesh with flat normals.
func (s *STL) Mesh() *mesh.Mesh {
	b := mesh.NewBuilder()
	for _, t := range s.Triangles {
		n := math.Vec3{X: t.Normal[0], Y: t.Normal[1], Z: t.Normal[2]}
		var idx [3]uint32
		for i, v := range t.Vertices {
			idx[i] = b.AddVertex(math.Vec3{X: v[0], Y: v[1], Z: v[2]}, n, math.Vec2{})
		}
		// Indices were just created, they are always in range.
		_ = b.AddTriangle(idx[0], idx[1], idx[2])
	}
	return b.Finalize()
}

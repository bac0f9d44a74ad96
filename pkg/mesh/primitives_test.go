package mesh

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procmesh/pkg/math"
)

func TestBuildQuad(t *testing.T) {
	b := NewBuilder()
	BuildQuad(b, math.Vec3{}, math.Vec3{X: 2}, math.Vec3{Z: 3})
	m := b.Finalize()

	wantPos := []math.Vec3{{}, {Z: 3}, {X: 2, Z: 3}, {X: 2}}
	wantUV := []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}

	require.Equal(t, 4, m.VertexCount())
	for i := range wantPos {
		assertVec3(t, wantPos[i], m.Vertices[i], "vertex %d", i)
		assertVec3(t, math.Up, m.Normals[i], "normal %d", i)
		assert.Equal(t, wantUV[i], m.UVs[i])
	}
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
}

func TestBuildQuadOffsetsIndices(t *testing.T) {
	b := NewBuilder()
	BuildQuad(b, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Z: 1})
	BuildQuad(b, math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: 1})

	m := b.Finalize()
	assert.Equal(t, []uint32{4, 5, 6, 4, 6, 7}, m.Indices[6:])
}

func TestBuildQuadXZ(t *testing.T) {
	b := NewBuilder()
	BuildQuadXZ(b, math.Vec3{Y: 1}, 2, 4)
	m := b.Finalize()

	assertVec3(t, math.Vec3{Y: 1}, m.Bounds.Min)
	assertVec3(t, math.Vec3{X: 2, Y: 1, Z: 4}, m.Bounds.Max)
	for _, n := range m.Normals {
		assertVec3(t, math.Up, n)
	}
}

func TestBuildTriangle(t *testing.T) {
	b := NewBuilder()
	BuildTriangle(b, math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1})
	m := b.Finalize()

	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, m.UVs)
	for _, n := range m.Normals {
		assertVec3(t, math.Up, n)
	}
}

func TestDegenerateFacesFallBackToUp(t *testing.T) {
	b := NewBuilder()
	// Zero length, then collinear corners
	BuildQuad(b, math.Vec3{X: 1}, math.Vec3{X: 2}, math.Vec3{})
	BuildTriangle(b, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2})
	m := b.Finalize()

	require.Len(t, m.Normals, 7)
	for i, n := range m.Normals {
		assertVec3(t, math.Up, n, "normal %d", i)
	}
}

func TestBuildRingFirstRing(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, BuildRing(b, RingParams{Segments: 4, Radius: 1, V: 0.5}))
	m := b.Finalize()

	require.Equal(t, 5, m.VertexCount())
	assert.Equal(t, 0, m.TriangleCount())

	wantPos := []math.Vec3{{X: 1}, {Z: 1}, {X: -1}, {Z: -1}, {X: 1}}
	for i, want := range wantPos {
		assertVec3(t, want, m.Vertices[i], "vertex %d", i)
		assertVec3(t, want, m.Normals[i], "normal %d", i)
		assert.InDelta(t, float32(i)/4, m.UVs[i].X, eps)
		assert.Equal(t, float32(0.5), m.UVs[i].Y)
	}
}

func TestBuildRingSeamCloses(t *testing.T) {
	for _, segments := range []int{3, 7, 16, 33} {
		b := NewBuilder()
		require.NoError(t, BuildRing(b, RingParams{Segments: segments, Center: math.Vec3{Y: 2}, Radius: 0.7}))
		first := b.Vertex(0)
		last := b.Vertex(uint32(segments))
		assert.True(t, first.ApproxEqual(last, 1e-4), "segments=%d: %v != %v", segments, first, last)
	}
}

func TestBuildRingStitching(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, BuildRing(b, RingParams{Segments: 4, Radius: 1}))
	require.NoError(t, BuildRing(b, RingParams{Segments: 4, Center: math.Vec3{Y: 1}, Radius: 1, V: 1, BuildTriangles: true}))
	m := b.Finalize()

	require.Equal(t, 8, m.TriangleCount())
	assert.Equal(t, [3]uint32{6, 1, 5}, m.Triangle(0))
	assert.Equal(t, [3]uint32{1, 0, 5}, m.Triangle(1))
	assert.Equal(t, [3]uint32{9, 4, 8}, m.Triangle(6))
	assert.Equal(t, [3]uint32{4, 3, 8}, m.Triangle(7))

	// Side faces point outward
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		p0, p1, p2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		centroid := p0.Add(p1).Add(p2).Scale(1.0 / 3)
		radial := math.Vec3{X: centroid.X, Z: centroid.Z}
		assert.Greater(t, face.Dot(radial), float32(0), "triangle %d faces inward", i)
	}
}

func TestBuildRingRequiresPreviousRing(t *testing.T) {
	b := NewBuilder()
	err := BuildRing(b, RingParams{Segments: 4, Radius: 1, BuildTriangles: true})
	assert.ErrorIs(t, err, ErrMissingNeighbor)

	require.NoError(t, BuildRing(b, RingParams{Segments: 4, Radius: 1}))
	err = BuildRing(b, RingParams{Segments: 6, Radius: 1, BuildTriangles: true})
	assert.ErrorIs(t, err, ErrMissingNeighbor)
}

func TestBuildRingIgnoresInterleavedVertices(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, BuildRing(b, RingParams{Segments: 3, Radius: 1}))
	BuildTriangle(b, math.Vec3{Y: 9}, math.Vec3{Y: 9, Z: 1}, math.Vec3{Y: 9, X: 1})
	require.NoError(t, BuildRing(b, RingParams{Segments: 3, Center: math.Vec3{Y: 1}, Radius: 1, BuildTriangles: true}))
	m := b.Finalize()
	require.NoError(t, m.Validate())

	// Second ring starts at 4 + 3 = 7; its first quad connects back to ring one.
	assert.Equal(t, [3]uint32{8, 1, 7}, m.Triangle(1))
	assert.Equal(t, [3]uint32{1, 0, 7}, m.Triangle(2))
}

func TestBuildRingSlopeNormals(t *testing.T) {
	tests := []struct {
		name  string
		slope math.Vec2
		want  math.Vec3
	}{
		{"vertical wall", math.Vec2{X: 0, Y: 1}, math.Vec3{X: 1}},
		{"flat top", math.Vec2{X: 1, Y: 0}, math.Vec3{Y: -1}},
		{"zero defaults to radial", math.Vec2{}, math.Vec3{X: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, BuildRing(b, RingParams{Segments: 4, Radius: 1, Slope: tt.slope}))
			m := b.Finalize()
			assertVec3(t, tt.want, m.Normals[0])
		})
	}
}

func TestBuildRingRotation(t *testing.T) {
	b := NewBuilder()
	rot := math.QuatEuler(0, 0, 90)
	require.NoError(t, BuildRing(b, RingParams{Segments: 4, Radius: 2, Rotation: rot}))
	m := b.Finalize()

	// +X rotated 90 degrees about Z becomes +Y
	assertVec3(t, math.Vec3{Y: 2}, m.Vertices[0])
	assertVec3(t, math.Vec3{Y: 1}, m.Normals[0])
}

func TestBuildRingForSphere(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, BuildRingForSphere(b, 8, math.Vec3{Y: 1}, 1, 0, false))
	m := b.Finalize()

	for i, v := range m.Vertices {
		assertVec3(t, v.Normalize(), m.Normals[i], "normal %d", i)
	}
}

func TestBuildRingInvalidSegments(t *testing.T) {
	err := BuildRing(NewBuilder(), RingParams{Segments: 0, Radius: 1})
	assert.ErrorIs(t, err, ErrInvalidMesh)
}

func TestBuildCap(t *testing.T) {
	tests := []struct {
		name    string
		reverse bool
		normal  math.Vec3
	}{
		{"top", false, math.Up},
		{"bottom", true, math.Up.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, BuildCap(b, math.Vec3{Y: 1}, 0.5, 6, tt.reverse))
			m := b.Finalize()

			assert.Equal(t, 8, m.VertexCount())
			assert.Equal(t, 6, m.TriangleCount())
			assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, m.UVs[0])

			for i := 0; i < m.TriangleCount(); i++ {
				tri := m.Triangle(i)
				p0, p1, p2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
				face := p1.Sub(p0).Cross(p2.Sub(p0))
				assert.Greater(t, face.Dot(tt.normal), float32(0), "triangle %d winding", i)
			}
			for _, n := range m.Normals {
				assertVec3(t, tt.normal, n)
			}
		})
	}
}

// strideTriangles reproduces stitching by insertion order for a row-major
// grid of the given size.
func strideTriangles(rows, cols int) []uint32 {
	var out []uint32
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == 0 || c == 0 {
				continue
			}
			base := uint32(r*cols + c)
			stride := uint32(cols)
			out = append(out, base, base-stride, base-1, base-stride, base-stride-1, base-1)
		}
	}
	return out
}

func TestGridMatchesInsertionOrderStitching(t *testing.T) {
	const rows, cols = 4, 5

	b := NewBuilder()
	g := NewGrid(b, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			_, err := g.Set(r, c, math.Vec3{X: float32(c), Z: float32(r)}, math.Up, math.Vec2{})
			require.NoError(t, err)
		}
	}

	assert.Equal(t, strideTriangles(rows, cols), b.Finalize().Indices)
	assert.Equal(t, rows, g.Rows())
}

func TestGridOutOfOrderConnectivity(t *testing.T) {
	const rows, cols = 3, 3

	positionsOf := func(m *Mesh) [][3]math.Vec3 {
		var out [][3]math.Vec3
		for i := 0; i < m.TriangleCount(); i++ {
			tri := m.Triangle(i)
			out = append(out, [3]math.Vec3{m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]})
		}
		return out
	}

	build := func(order [][2]int) *Mesh {
		b := NewBuilder()
		g := NewGrid(b, cols)
		for _, rc := range order {
			_, err := g.SetPosition(rc[0], rc[1], math.Vec3{X: float32(rc[1]), Z: float32(rc[0])}, math.Vec2{})
			require.NoError(t, err)
		}
		return b.Finalize()
	}

	var rowMajor [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rowMajor = append(rowMajor, [2]int{r, c})
		}
	}
	reversed := slices.Clone(rowMajor)
	slices.Reverse(reversed)

	want := positionsOf(build(rowMajor))
	got := positionsOf(build(reversed))

	assert.Len(t, got, len(want))
	assert.ElementsMatch(t, want, got)
}

func TestGridErrors(t *testing.T) {
	b := NewBuilder()
	g := NewGrid(b, 2)

	_, err := g.Set(0, 2, math.Vec3{}, math.Up, math.Vec2{})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = g.Set(0, 0, math.Vec3{}, math.Up, math.Vec2{})
	require.NoError(t, err)
	_, err = g.Set(0, 0, math.Vec3{}, math.Up, math.Vec2{})
	assert.ErrorIs(t, err, ErrInvalidMesh)

	_, ok := g.Index(1, 1)
	assert.False(t, ok)
}

func TestBuildQuadForGrid(t *testing.T) {
	const rows, cols = 3, 4

	b := NewBuilder()
	g := NewGrid(b, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			err := BuildQuadForGridNormal(g, math.Vec3{X: float32(c), Z: float32(r)}, math.Vec2{}, r > 0 && c > 0, math.Up)
			require.NoError(t, err)
		}
	}

	m := b.Finalize()
	require.NoError(t, m.Validate())
	assert.Equal(t, strideTriangles(rows, cols), m.Indices)
}

func TestBuildQuadForGridMissingNeighbor(t *testing.T) {
	b := NewBuilder()
	g := NewGrid(b, 3)

	err := BuildQuadForGrid(g, math.Vec3{}, math.Vec2{}, true)
	assert.ErrorIs(t, err, ErrMissingNeighbor)
}

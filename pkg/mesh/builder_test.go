package mesh

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procmesh/pkg/math"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got math.Vec3, msgAndArgs ...any) {
	t.Helper()
	if !want.ApproxEqual(got, eps) {
		assert.Fail(t, fmt.Sprintf("want %v, got %v", want, got), msgAndArgs...)
	}
}

func TestAddVertexReturnsIndex(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, uint32(0), b.AddVertex(math.Vec3{}, math.Up, math.Vec2{}))
	assert.Equal(t, uint32(1), b.AddVertex(math.Vec3{X: 1}, math.Up, math.Vec2{}))
	assert.Equal(t, 2, b.VertexCount())
	assert.Equal(t, 0, b.TriangleCount())
}

func TestAddTriangleOutOfRange(t *testing.T) {
	b := NewBuilder()
	b.AddVertex(math.Vec3{}, math.Up, math.Vec2{})
	b.AddVertex(math.Vec3{X: 1}, math.Up, math.Vec2{})
	b.AddVertex(math.Vec3{Z: 1}, math.Up, math.Vec2{})

	require.NoError(t, b.AddTriangle(0, 1, 2))

	err := b.AddTriangle(0, 1, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 1, b.TriangleCount(), "failed triangle must not be appended")
}

func TestFinalize(t *testing.T) {
	b := NewBuilder()
	BuildQuad(b, math.Vec3{X: -1, Y: 2}, math.Vec3{X: 2}, math.Vec3{Z: 3})

	m1 := b.Finalize()
	m2 := b.Finalize()

	assert.Equal(t, m1, m2)
	require.NoError(t, m1.Validate())

	// Independent copies
	m1.Vertices[0] = math.Vec3{X: 100}
	assert.NotEqual(t, m1.Vertices[0], m2.Vertices[0])

	assertVec3(t, math.Vec3{X: -1, Y: 2, Z: 0}, m2.Bounds.Min)
	assertVec3(t, math.Vec3{X: 1, Y: 2, Z: 3}, m2.Bounds.Max)
	assertVec3(t, math.Vec3{X: 2, Y: 0, Z: 3}, m2.Bounds.Size())
}

func TestFinalizeEmpty(t *testing.T) {
	m := NewBuilder().Finalize()
	assert.Equal(t, 0, m.VertexCount())
	assert.Equal(t, Bounds{}, m.Bounds)
	assert.False(t, m.HasNormals())
	require.NoError(t, m.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		want error
	}{
		{
			name: "normals length mismatch",
			mesh: Mesh{Vertices: make([]math.Vec3, 3), Normals: make([]math.Vec3, 2)},
			want: ErrInvalidMesh,
		},
		{
			name: "partial triangle",
			mesh: Mesh{Vertices: make([]math.Vec3, 3), Indices: []uint32{0, 1}},
			want: ErrInvalidMesh,
		},
		{
			name: "index out of range",
			mesh: Mesh{Vertices: make([]math.Vec3, 3), Indices: []uint32{0, 1, 3}},
			want: ErrIndexOutOfRange,
		},
		{
			name: "valid without normals",
			mesh: Mesh{Vertices: make([]math.Vec3, 3), UVs: make([]math.Vec2, 3), Indices: []uint32{0, 1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInterleaved(t *testing.T) {
	b := NewBuilder()
	b.AddPosition(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec2{X: 0.25, Y: 0.75})
	m := b.Finalize()

	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.25, 0.75}, m.Interleaved())
}

func TestWithRecalculatedNormals(t *testing.T) {
	b := NewBuilder()
	g := NewGrid(b, 3)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			_, err := g.SetPosition(row, col, math.Vec3{X: float32(col), Z: float32(row)}, math.Vec2{})
			require.NoError(t, err)
		}
	}
	// Isolated vertex with no faces
	b.AddPosition(math.Vec3{Y: 5}, math.Vec2{})

	m := b.Finalize()
	require.False(t, m.HasNormals())

	n := m.WithRecalculatedNormals()
	require.NoError(t, n.Validate())
	require.Len(t, n.Normals, m.VertexCount())

	for i, normal := range n.Normals {
		assertVec3(t, math.Up, normal, "vertex %d", i)
	}
	assert.Nil(t, m.Normals, "source mesh must be untouched")
}

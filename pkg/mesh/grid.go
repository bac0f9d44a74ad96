package mesh

import (
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
)

// Grid addresses builder vertices by explicit (row, col) coordinates and
// stitches a quad (two triangles) for every cell whose four corners exist.
//
// For a cell whose highest corner is (r, c) the triangles are
//
//	(r,c) (r-1,c) (r,c-1)
//	(r-1,c) (r-1,c-1) (r,c-1)
//
// which matches the winding produced by appending a row-major grid and
// connecting each vertex to its left, upper and upper-left neighbors.
type Grid struct {
	b    *Builder
	cols int

	index   [][]uint32
	present [][]bool
	done    [][]bool

	// cursor for row-major appends
	row, col int
}

// NewGrid creates a grid of vertsPerRow columns over b. Rows grow on demand.
func NewGrid(b *Builder, vertsPerRow int) *Grid {
	return &Grid{b: b, cols: vertsPerRow}
}

// Cols returns the number of vertices per row.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows touched so far.
func (g *Grid) Rows() int {
	return len(g.index)
}

// Index returns the builder index stored at (row, col).
func (g *Grid) Index(row, col int) (uint32, bool) {
	if row < 0 || row >= len(g.index) || col < 0 || col >= g.cols {
		return 0, false
	}
	if !g.present[row][col] {
		return 0, false
	}
	return g.index[row][col], true
}

// Set appends a vertex with a normal at (row, col) and stitches every cell
// the vertex completes.
func (g *Grid) Set(row, col int, pos, normal math.Vec3, uv math.Vec2) (uint32, error) {
	if err := g.check(row, col); err != nil {
		return 0, err
	}
	idx := g.b.AddVertex(pos, normal, uv)
	g.place(row, col, idx)
	g.stitchAround(row, col)
	return idx, nil
}

// SetPosition is Set without a normal.
func (g *Grid) SetPosition(row, col int, pos math.Vec3, uv math.Vec2) (uint32, error) {
	if err := g.check(row, col); err != nil {
		return 0, err
	}
	idx := g.b.AddPosition(pos, uv)
	g.place(row, col, idx)
	g.stitchAround(row, col)
	return idx, nil
}

func (g *Grid) check(row, col int) error {
	if row < 0 || col < 0 || col >= g.cols {
		return fmt.Errorf("%w: grid cell (%d, %d) with %d columns", ErrIndexOutOfRange, row, col, g.cols)
	}
	if row < len(g.present) && g.present[row][col] {
		return fmt.Errorf("%w: grid cell (%d, %d) already set", ErrInvalidMesh, row, col)
	}
	return nil
}

func (g *Grid) place(row, col int, idx uint32) {
	for len(g.index) <= row {
		g.index = append(g.index, make([]uint32, g.cols))
		g.present = append(g.present, make([]bool, g.cols))
		g.done = append(g.done, make([]bool, g.cols))
	}
	g.index[row][col] = idx
	g.present[row][col] = true
}

// stitchAround emits every cell (r, c) that has (row, col) as a corner.
func (g *Grid) stitchAround(row, col int) {
	for r := row; r <= row+1; r++ {
		for c := col; c <= col+1; c++ {
			g.stitchCell(r, c)
		}
	}
}

// stitchCell emits the cell whose highest corner is (r, c) if all of its
// corners are present and it has not been emitted yet.
func (g *Grid) stitchCell(r, c int) bool {
	if r < 1 || c < 1 || r >= len(g.index) || c >= g.cols || g.done[r][c] {
		return false
	}
	cur, ok0 := g.Index(r, c)
	left, ok1 := g.Index(r, c-1)
	up, ok2 := g.Index(r-1, c)
	upLeft, ok3 := g.Index(r-1, c-1)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return false
	}
	g.b.addTriangle(cur, up, left)
	g.b.addTriangle(up, upLeft, left)
	g.done[r][c] = true
	return true
}

// appendAt places a vertex at the cursor and advances it in row-major order.
// With buildTriangles only the cell ending at the new vertex is stitched and
// it must be complete.
func (g *Grid) appendAt(buildTriangles bool, add func() uint32) error {
	if g.cols <= 0 {
		return fmt.Errorf("%w: grid has %d columns", ErrInvalidMesh, g.cols)
	}
	row, col := g.row, g.col
	g.place(row, col, add())
	g.col++
	if g.col == g.cols {
		g.col = 0
		g.row++
	}
	if !buildTriangles {
		return nil
	}
	if !g.stitchCell(row, col) {
		return fmt.Errorf("%w: cannot stitch vertex at (%d, %d)", ErrMissingNeighbor, row, col)
	}
	return nil
}

// BuildQuadForGrid appends a vertex at the grid's next row-major position.
// When buildTriangles is set the vertex is connected to its left, upper and
// upper-left neighbors, which must already exist.
func BuildQuadForGrid(g *Grid, pos math.Vec3, uv math.Vec2, buildTriangles bool) error {
	return g.appendAt(buildTriangles, func() uint32 {
		return g.b.AddPosition(pos, uv)
	})
}

// BuildQuadForGridNormal is BuildQuadForGrid with an explicit normal.
func BuildQuadForGridNormal(g *Grid, pos math.Vec3, uv math.Vec2, buildTriangles bool, normal math.Vec3) error {
	return g.appendAt(buildTriangles, func() uint32 {
		return g.b.AddVertex(pos, normal, uv)
	})
}

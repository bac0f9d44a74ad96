// Package formats provides writers (and an STL reader) for interchange mesh
// file formats.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/procmesh/pkg/mesh"
)

var (
	ErrEmptyMesh     = errors.New("mesh has no triangles")
	ErrUnknownFormat = errors.New("unknown mesh file format")
)

// Format identifies a mesh file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
)

// String returns the conventional file extension without the dot.
func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatSTL:
		return "stl"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, nil
	case ".stl":
		return FormatSTL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// SaveFile writes m to path in the format implied by its extension.
// name is stored as the OBJ object name or the STL header.
func SaveFile(path string, m *mesh.Mesh, name string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mesh file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing mesh file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	switch format {
	case FormatOBJ:
		err = WriteOBJ(w, m, name)
	case FormatSTL:
		err = WriteSTL(w, m, name)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

func checkMesh(m *mesh.Mesh) error {
	if m == nil || m.TriangleCount() == 0 {
		return ErrEmptyMesh
	}
	return m.Validate()
}

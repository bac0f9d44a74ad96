package shader

import (
	"maps"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/procmesh/internal/animation"
)

// Material holds uniform values for one draw and uploads them to its
// program on Apply.
type Material struct {
	program *Program
	ints    map[string]int32
	floats  map[string]float32
}

var _ animation.Material = (*Material)(nil)

// NewMaterial creates an empty material bound to program.
func NewMaterial(program *Program) *Material {
	return &Material{
		program: program,
		ints:    make(map[string]int32),
		floats:  make(map[string]float32),
	}
}

func (m *Material) SetInt(name string, v int32) {
	m.ints[name] = v
}

func (m *Material) SetFloat(name string, v float32) {
	m.floats[name] = v
}

// Clone copies the values. The copy shares the program.
func (m *Material) Clone() animation.Material {
	return &Material{
		program: m.program,
		ints:    maps.Clone(m.ints),
		floats:  maps.Clone(m.floats),
	}
}

// Apply uploads every value. The program must be in use.
func (m *Material) Apply() {
	for name, v := range m.ints {
		gl.Uniform1i(m.program.Uniform(name), v)
	}
	for name, v := range m.floats {
		gl.Uniform1f(m.program.Uniform(name), v)
	}
}

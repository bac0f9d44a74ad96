package animation

import "maps"

// Shader uniform names written by the driver.
const (
	UniformMeshIndex   = "uMeshIndex"
	UniformTotalMeshes = "uTotalMeshes"
	UniformTimeScale   = "uTimeScale"
	UniformRadiusScale = "uRadiusScale"
)

// Material receives per-instance shader parameters.
type Material interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	// Clone returns an independent copy for one instance.
	Clone() Material
}

// ParamMaterial is an in-memory Material. Renderers read it back when
// uploading uniforms, and tests inspect it directly.
type ParamMaterial struct {
	Ints   map[string]int32
	Floats map[string]float32
}

// NewParamMaterial creates an empty parameter set.
func NewParamMaterial() *ParamMaterial {
	return &ParamMaterial{
		Ints:   make(map[string]int32),
		Floats: make(map[string]float32),
	}
}

func (m *ParamMaterial) SetInt(name string, v int32) {
	m.Ints[name] = v
}

func (m *ParamMaterial) SetFloat(name string, v float32) {
	m.Floats[name] = v
}

func (m *ParamMaterial) Clone() Material {
	return &ParamMaterial{
		Ints:   maps.Clone(m.Ints),
		Floats: maps.Clone(m.Floats),
	}
}

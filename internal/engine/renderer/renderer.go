// Package renderer draws procedural meshes with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/engine/lighting"
	"github.com/Faultbox/procmesh/internal/engine/shader"
	"github.com/Faultbox/procmesh/internal/logger"
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// floatsPerVertex matches mesh.Mesh.Interleaved: position, normal, uv.
const floatsPerVertex = 8

var ErrNoMesh = errors.New("no mesh uploaded")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Wireframe  bool
	ClearColor [3]float32
	Sun        lighting.Sun
}

// Instance is one draw of the uploaded mesh.
type Instance struct {
	Model    math.Mat4
	Material *shader.Material
}

// Renderer owns the mesh program and the GPU copy of the current mesh.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	vao, vbo, ebo uint32
	indexCount    int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, vertexSrc, fragmentSrc string) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	r.SetWireframe(cfg.Wireframe)
	return r, nil
}

// Program returns the mesh program, for creating materials.
func (r *Renderer) Program() *shader.Program {
	return r.program
}

// Upload replaces the GPU mesh with m.
func (r *Renderer) Upload(m *mesh.Mesh) error {
	if m == nil || m.TriangleCount() == 0 {
		return fmt.Errorf("uploading mesh: %w", ErrNoMesh)
	}
	r.releaseMesh()

	vertices := m.Interleaved()
	stride := int32(floatsPerVertex * 4)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	r.indexCount = int32(len(m.Indices))
	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int("vertices", m.VertexCount()),
		zap.Int32("indices", r.indexCount),
	)
	return nil
}

func (r *Renderer) releaseMesh() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.indexCount = 0
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	r.releaseMesh()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe toggles line rendering. Culling is off in wireframe so
// back edges stay visible.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		gl.Enable(gl.CULL_FACE)
	}
}

// Wireframe reports whether line rendering is on.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every instance of the uploaded mesh.
func (r *Renderer) Draw(view, projection math.Mat4, time float32, instances []Instance) {
	if r.indexCount == 0 {
		return
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.program.Uniform("uProjection"), 1, false, projection.Ptr())
	gl.Uniform1f(r.program.Uniform("uTime"), time)

	light := r.config.Sun.Direction()
	gl.Uniform3f(r.program.Uniform("uLightDir"), light.X, light.Y, light.Z)
	gl.Uniform1f(r.program.Uniform("uAmbient"), r.config.Sun.Ambient)

	gl.BindVertexArray(r.vao)
	for i := range instances {
		inst := &instances[i]
		gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, inst.Model.Ptr())
		if inst.Material != nil {
			inst.Material.Apply()
		}
		gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

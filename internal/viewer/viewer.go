// Package viewer implements the interactive mesh viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/animation"
	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/internal/engine/camera"
	"github.com/Faultbox/procmesh/internal/engine/debug"
	"github.com/Faultbox/procmesh/internal/engine/input"
	"github.com/Faultbox/procmesh/internal/engine/renderer"
	"github.com/Faultbox/procmesh/internal/engine/shader"
	"github.com/Faultbox/procmesh/internal/engine/window"
	"github.com/Faultbox/procmesh/internal/logger"
	"github.com/Faultbox/procmesh/internal/viewer/shaders"
	"github.com/Faultbox/procmesh/pkg/formats"
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
	"github.com/Faultbox/procmesh/pkg/procgen"
)

// Viewer shows the configured generator as a grid of animated instances.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	camera      *camera.OrbitCamera
	screenshots *debug.ScreenshotCapture
	watcher     *config.Watcher

	template  *shader.Material
	driver    *animation.Driver
	mesh      *mesh.Mesh
	positions []math.Vec3
	draws     []renderer.Instance
	wantShot  bool
}

// New opens the window and builds the first mesh.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title(cfg.Generator),
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Wireframe:  cfg.Viewer.Wireframe,
		ClearColor: [3]float32{0.08, 0.09, 0.12},
		Sun:        cfg.Viewer.Sun,
	}, shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New(cfg.Viewer.Width, cfg.Viewer.Height)
	v.camera = camera.NewOrbitCamera()
	v.screenshots = debug.NewScreenshotCapture(cfg.Viewer.ScreenshotDir, "procmesh")
	if err := v.screenshots.SetFormat(cfg.Viewer.ScreenshotFormat); err != nil {
		v.log.Warn("using png screenshots", zap.Error(err))
	}
	v.template = shader.NewMaterial(v.renderer.Program())

	if err := v.rebuild(); err != nil {
		v.Close()
		return nil, err
	}

	if cfg.Viewer.WatchConfig && cfg.Source != "" {
		v.watcher, err = config.Watch(cfg.Source)
		if err != nil {
			v.log.Warn("config hot reload disabled", zap.Error(err))
		} else {
			v.log.Info("watching config", zap.String("path", cfg.Source))
		}
	}

	return v, nil
}

func title(generator string) string {
	return "procmesh - " + generator
}

// rebuild regenerates the mesh and respawns the instances from cfg.
func (v *Viewer) rebuild() error {
	start := time.Now()
	m, err := procgen.Generate(v.cfg.Generator, v.cfg.GeneratorParams())
	if err != nil {
		return err
	}
	v.log.Info("mesh generated", logger.MeshFields(v.cfg.Generator, m, time.Since(start))...)

	driver, err := animation.New(v.cfg.Animation, v.template)
	if err != nil {
		return err
	}
	if err := v.renderer.Upload(m); err != nil {
		return err
	}
	v.mesh = m
	v.driver = driver
	instances := v.driver.Spawn()

	// Keep neighbours apart by the mesh footprint as well as the spacing.
	size := m.Bounds.Size()
	spacing := v.cfg.Viewer.Spacing * max(size.X, size.Z, 1)
	v.positions = animation.GridLayout(len(instances), spacing)

	v.draws = make([]renderer.Instance, len(instances))
	for i, inst := range instances {
		v.draws[i].Material = inst.Material.(*shader.Material)
	}

	v.fitCamera(spacing)
	v.window.SetTitle(title(v.cfg.Generator))
	return nil
}

func (v *Viewer) fitCamera(spacing float32) {
	b := v.mesh.Bounds
	if n := len(v.positions); n > 0 {
		first, last := v.positions[0], v.positions[n-1]
		b.Min = b.Min.Add(first.Min(last)).Sub(math.Vec3{X: spacing / 2, Z: spacing / 2})
		b.Max = b.Max.Add(first.Max(last)).Add(math.Vec3{X: spacing / 2, Z: spacing / 2})
	}
	v.camera.FitToBounds(b)
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	var frameBudget time.Duration
	if v.cfg.Viewer.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Viewer.FPSLimit)
	}

	v.log.Debug("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()
		v.pollReload()

		v.update(dt)
		v.render(float32(now.Sub(start).Seconds()))
		if v.wantShot {
			v.screenshot()
			v.wantShot = false
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Viewer.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("%s (%d fps)", title(v.cfg.Generator), frameCount))
			}
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (v *Viewer) handleInput() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.Size()
			v.renderer.Resize(width, height)
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}

	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(dx, dy)
	}
	if w := v.input.Wheel(); w != 0 {
		v.camera.HandleZoom(w)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_TAB:
		v.cycleGenerator()
	case sdl.SCANCODE_R:
		v.cfg.Seed++
		v.log.Info("reseeding", zap.Uint64("seed", v.cfg.Seed))
		v.tryRebuild()
	case sdl.SCANCODE_W:
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	case sdl.SCANCODE_F:
		v.window.ToggleFullscreen()
	case sdl.SCANCODE_UP:
		v.setTimeScale(v.driver.TimeScale() + 1)
	case sdl.SCANCODE_DOWN:
		v.setTimeScale(v.driver.TimeScale() - 1)
	case sdl.SCANCODE_E:
		v.export()
	case sdl.SCANCODE_F12:
		// Captured after the next render, before the swap.
		v.wantShot = true
	}
}

// setTimeScale changes the running driver and the config it is rebuilt
// from, so the speed survives a rebuild.
func (v *Viewer) setTimeScale(scale float32) {
	v.driver.SetTimeScale(scale)
	v.cfg.Animation = v.driver.Config()
}

func (v *Viewer) cycleGenerator() {
	names := procgen.Names()
	next := (slices.Index(names, v.cfg.Generator) + 1) % len(names)
	v.cfg.Generator = names[next]
	v.tryRebuild()
}

// tryRebuild keeps the current mesh when the new one cannot be built.
func (v *Viewer) tryRebuild() {
	if err := v.rebuild(); err != nil {
		v.log.Error("rebuild failed", zap.String("generator", v.cfg.Generator), zap.Error(err))
	}
}

func (v *Viewer) pollReload() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg := <-v.watcher.Reloads():
		if err := cfg.Validate(); err != nil {
			v.log.Warn("ignoring invalid config", zap.Error(err))
			return
		}
		v.log.Info("config changed, regenerating")
		cfg.Viewer = v.cfg.Viewer
		v.cfg = cfg
		v.tryRebuild()
	case err := <-v.watcher.Errors():
		v.log.Warn("config reload failed", zap.Error(err))
	default:
	}
}

func (v *Viewer) update(dt float32) {
	v.driver.Update(dt, v.input.Pointer())

	yaw, pitch := v.driver.Rotation()
	rot := math.QuatEuler(pitch, yaw, 0).ToMat4()
	for i := range v.draws {
		v.draws[i].Model = math.Translate(v.positions[i]).Mul(rot)
	}
}

func (v *Viewer) render(t float32) {
	v.renderer.Begin()
	v.renderer.Draw(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()), t, v.draws)
}

func (v *Viewer) export() {
	path := filepath.Join(v.cfg.Export.Dir, v.cfg.Generator+"."+v.cfg.Export.Format)
	if err := formats.SaveFile(path, v.mesh, v.cfg.Generator); err != nil {
		v.log.Error("export failed", zap.String("path", path), zap.Error(err))
		return
	}
	v.log.Info("mesh exported", zap.String("path", path))
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	name, err := v.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", name))
}

// Close releases the watcher, renderer and window.
func (v *Viewer) Close() {
	v.log.Debug("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

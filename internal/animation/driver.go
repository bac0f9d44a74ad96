// Package animation drives instanced meshes through shader parameters:
// per-instance indices, a shared time scale and an eased radius pulse.
package animation

import (
	"errors"
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
)

const (
	MinTimeScale = 1
	MaxTimeScale = 25
)

var ErrInvalidConfig = errors.New("invalid animation config")

// Config holds the spawner and animation settings.
type Config struct {
	// Count is the number of instances to spawn.
	Count     int     `yaml:"count"`
	TimeScale float32 `yaml:"time_scale"`
	// Duration is the length of one radius pulse in seconds.
	Duration  float32 `yaml:"duration"`
	RadiusMin float32 `yaml:"radius_min"`
	RadiusMax float32 `yaml:"radius_max"`
	// LookRange is the maximum yaw and pitch in degrees.
	LookRange float32 `yaml:"look_range"`
}

// DefaultConfig returns the stock spawner settings.
func DefaultConfig() Config {
	return Config{
		Count:     16,
		TimeScale: 5,
		Duration:  1.5,
		RadiusMin: 0.5,
		RadiusMax: 1,
		LookRange: 20,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidConfig, c.Count)
	case !(c.Duration > 0):
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	case !math.IsFinite(c.TimeScale) || !math.IsFinite(c.RadiusMin) || !math.IsFinite(c.RadiusMax) || !math.IsFinite(c.LookRange):
		return fmt.Errorf("%w: non-finite value", ErrInvalidConfig)
	}
	return nil
}

// Pointer is the pointer state for one frame. X and Y are normalized to
// [0,1] across the viewport.
type Pointer struct {
	X, Y    float32
	Clicked bool
}

// Instance is one spawned mesh.
type Instance struct {
	Index    int
	Material Material
}

// Driver owns the spawned instances and the animation timer.
type Driver struct {
	cfg       Config
	template  Material
	instances []Instance

	timer       float32
	radiusScale float32
	yaw, pitch  float32
}

// New creates a driver that clones template for every instance.
func New(cfg Config, template Material) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: nil material template", ErrInvalidConfig)
	}
	cfg.TimeScale = math.Clamp(cfg.TimeScale, MinTimeScale, MaxTimeScale)
	return &Driver{
		cfg:         cfg,
		template:    template,
		radiusScale: cfg.RadiusMin,
	}, nil
}

// Spawn creates Count instances, replacing any previous ones. Each gets its
// own material carrying its index and the total count.
func (d *Driver) Spawn() []Instance {
	d.instances = make([]Instance, d.cfg.Count)
	for i := range d.instances {
		mat := d.template.Clone()
		mat.SetInt(UniformMeshIndex, int32(i))
		mat.SetInt(UniformTotalMeshes, int32(d.cfg.Count))
		d.instances[i] = Instance{Index: i, Material: mat}
	}
	return d.instances
}

// Instances returns the spawned instances.
func (d *Driver) Instances() []Instance {
	return d.instances
}

// SetTimeScale changes the shared time scale, clamped to [1,25].
func (d *Driver) SetTimeScale(s float32) {
	d.cfg.TimeScale = math.Clamp(s, MinTimeScale, MaxTimeScale)
}

func (d *Driver) TimeScale() float32 {
	return d.cfg.TimeScale
}

// Config returns the driver's settings, including time scale changes.
func (d *Driver) Config() Config {
	return d.cfg
}

// RadiusScale returns the value written on the last Update.
func (d *Driver) RadiusScale() float32 {
	return d.radiusScale
}

// Progress returns the normalized pulse time in [0,1].
func (d *Driver) Progress() float32 {
	return math.Clamp(d.timer/d.cfg.Duration, 0, 1)
}

// Update advances the animation by dt seconds and writes the shared
// parameters to every instance. A click restarts the pulse.
func (d *Driver) Update(dt float32, p Pointer) {
	if p.Clicked {
		d.timer = 0
	} else {
		d.timer = min(d.timer+dt, d.cfg.Duration)
	}

	d.radiusScale = CosineInterpolate(d.cfg.RadiusMin, d.cfg.RadiusMax, BackOut(d.Progress()))

	px := math.Clamp(p.X, 0, 1)
	py := math.Clamp(p.Y, 0, 1)
	d.yaw = Remap(px, 0, 1, -d.cfg.LookRange, d.cfg.LookRange)
	d.pitch = Remap(py, 0, 1, -d.cfg.LookRange, d.cfg.LookRange)

	for _, inst := range d.instances {
		inst.Material.SetFloat(UniformTimeScale, d.cfg.TimeScale)
		inst.Material.SetFloat(UniformRadiusScale, d.radiusScale)
	}
}

// Rotation returns the look-around yaw and pitch in degrees.
func (d *Driver) Rotation() (yaw, pitch float32) {
	return d.yaw, d.pitch
}

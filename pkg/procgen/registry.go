package procgen

import (
	"fmt"
	"slices"

	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Generator builds one mesh from its own parameters.
type Generator interface {
	Validate() error
	Build() (*mesh.Mesh, error)
}

// Params holds one parameter set per generator, keyed in YAML by the
// generator name.
type Params struct {
	Cylinder            Cylinder            `yaml:"cylinder"`
	BentCylinder        BentCylinder        `yaml:"bent_cylinder"`
	TaperedCylinder     TaperedCylinder     `yaml:"tapered_cylinder"`
	BentTaperedCylinder BentTaperedCylinder `yaml:"bent_tapered_cylinder"`
	Sphere              Sphere              `yaml:"sphere"`
	Mushroom            Mushroom            `yaml:"mushroom"`
	Flower              Flower              `yaml:"flower"`
	Fence               Fence               `yaml:"fence"`
	House               House               `yaml:"house"`
	Ground              Ground              `yaml:"ground"`
	Cube                Cube                `yaml:"cube"`
	Plane               Plane               `yaml:"plane"`
}

// DefaultParams returns the stock parameters of every generator.
func DefaultParams() Params {
	return Params{
		Cylinder:            DefaultCylinder(),
		BentCylinder:        DefaultBentCylinder(),
		TaperedCylinder:     DefaultTaperedCylinder(),
		BentTaperedCylinder: DefaultBentTaperedCylinder(),
		Sphere:              DefaultSphere(),
		Mushroom:            DefaultMushroom(),
		Flower:              DefaultFlower(),
		Fence:               DefaultFence(),
		House:               DefaultHouse(),
		Ground:              DefaultGround(),
		Cube:                DefaultCube(),
		Plane:               DefaultPlane(),
	}
}

var generators = map[string]func(p *Params) Generator{
	"cylinder":              func(p *Params) Generator { return p.Cylinder },
	"bent_cylinder":         func(p *Params) Generator { return p.BentCylinder },
	"tapered_cylinder":      func(p *Params) Generator { return p.TaperedCylinder },
	"bent_tapered_cylinder": func(p *Params) Generator { return p.BentTaperedCylinder },
	"sphere":                func(p *Params) Generator { return p.Sphere },
	"mushroom":              func(p *Params) Generator { return p.Mushroom },
	"flower":                func(p *Params) Generator { return p.Flower },
	"fence":                 func(p *Params) Generator { return p.Fence },
	"house":                 func(p *Params) Generator { return p.House },
	"ground":                func(p *Params) Generator { return p.Ground },
	"cube":                  func(p *Params) Generator { return p.Cube },
	"plane":                 func(p *Params) Generator { return p.Plane },
}

// Names returns the registered generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the generator registered under name, configured from p.
func Lookup(name string, p Params) (Generator, error) {
	ctor, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return ctor(&p), nil
}

// Generate builds the named generator's mesh from p.
func Generate(name string, p Params) (*mesh.Mesh, error) {
	g, err := Lookup(name, p)
	if err != nil {
		return nil, err
	}
	m, err := g.Build()
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	return m, nil
}

// SetSeed sets the seed of every randomized generator.
func (p *Params) SetSeed(seed uint64) {
	p.Flower.Seed = seed
	p.Fence.Seed = seed
	p.Ground.Seed = seed
}

// Package procgen implements the parametric mesh generators: cylinders
// (straight, bent, tapered), spheres, mushrooms, flowers, fences, houses,
// ground planes and boxes.
//
// Every generator validates its parameters before building and returns a
// finalized mesh or an error wrapping ErrInvalidParameter. No partial mesh
// is ever returned.
package procgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

var (
	ErrInvalidParameter = errors.New("invalid generator parameter")
	ErrUnknownGenerator = errors.New("unknown generator")
)

// validator collects the first parameter error.
type validator struct {
	err error
}

func (v *validator) fail(name, format string, args ...any) {
	if v.err == nil {
		v.err = fmt.Errorf("%w: %s %s", ErrInvalidParameter, name, fmt.Sprintf(format, args...))
	}
}

func (v *validator) finite(name string, x float32) bool {
	if !math.IsFinite(x) {
		v.fail(name, "must be finite, got %v", x)
		return false
	}
	return true
}

func (v *validator) positive(name string, x float32) {
	if v.finite(name, x) && x <= 0 {
		v.fail(name, "must be > 0, got %v", x)
	}
}

func (v *validator) nonNegative(name string, x float32) {
	if v.finite(name, x) && x < 0 {
		v.fail(name, "must be >= 0, got %v", x)
	}
}

func (v *validator) atLeast(name string, n, min int) {
	if n < min {
		v.fail(name, "must be >= %d, got %d", min, n)
	}
}

// finish validates a finalized mesh. Parameters that pass validation can
// still drive the geometry out of float32 range.
func finish(m *mesh.Mesh) (*mesh.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return m, nil
}

// minBendRadians is the flattest bend swept along an arc. Flatter bends
// are built straight; their arc radius loses float32 precision.
const minBendRadians = 1e-3

// arc returns the radius of the arc that sweeps length through bendAngle
// degrees. ok is false when the bend should be built straight.
func arc(length, bendAngle float32) (radius, radians float32, ok bool) {
	radians = math.DegToRad(bendAngle)
	if !math.IsFinite(radians) || math.Abs(radians) < minBendRadians {
		return 0, radians, false
	}
	radius = length / radians
	return radius, radians, math.IsFinite(radius)
}

// newRand returns the generator's random source for a seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randRange returns a uniform value in [lo, hi). Every call consumes one
// draw, so a zero-width range keeps later draws aligned.
func randRange(r *rand.Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

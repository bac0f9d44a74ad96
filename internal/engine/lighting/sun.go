// Package lighting provides the directional light used by the viewer.
package lighting

import "github.com/Faultbox/procmesh/pkg/math"

// Sun is a directional light given by compass angles in degrees.
type Sun struct {
	// Azimuth rotates around +Y, 0 points the light down +Z.
	Azimuth float32 `yaml:"azimuth"`
	// Elevation is the angle above the horizon.
	Elevation float32 `yaml:"elevation"`
	Ambient   float32 `yaml:"ambient"`
}

// DefaultSun returns a light from the upper front right.
func DefaultSun() Sun {
	return Sun{Azimuth: 35, Elevation: 55, Ambient: 0.25}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	lon := math.DegToRad(s.Azimuth)
	lat := math.DegToRad(s.Elevation)
	return math.Vec3{
		X: math.Cos(lat) * math.Sin(lon),
		Y: math.Sin(lat),
		Z: math.Cos(lat) * math.Cos(lon),
	}
}

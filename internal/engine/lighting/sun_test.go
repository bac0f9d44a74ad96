package lighting

import (
	"testing"

	"github.com/Faultbox/procmesh/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want math.Vec3
	}{
		{"horizon front", Sun{Azimuth: 0, Elevation: 0}, math.Vec3{Z: 1}},
		{"horizon right", Sun{Azimuth: 90, Elevation: 0}, math.Vec3{X: 1}},
		{"zenith", Sun{Azimuth: 123, Elevation: 90}, math.Vec3{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sun.Direction(); !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultSunIsUnit(t *testing.T) {
	d := DefaultSun().Direction()
	if l := d.Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("length %v, want 1", l)
	}
	if d.Y <= 0 {
		t.Errorf("default sun below the horizon: %v", d)
	}
}

package animation

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/procmesh/pkg/math"
)

// GridLayout places count instances on a square grid in the XZ plane,
// centered on the origin, spacing units apart. Rows fill along +X.
func GridLayout(count int, spacing float32) []math.Vec3 {
	if count <= 0 {
		return nil
	}
	cols := int(math32.Ceil(math32.Sqrt(float32(count))))
	rows := (count + cols - 1) / cols

	offsetX := float32(cols-1) * spacing / 2
	offsetZ := float32(rows-1) * spacing / 2

	out := make([]math.Vec3, count)
	for i := range out {
		out[i] = math.Vec3{
			X: float32(i%cols)*spacing - offsetX,
			Z: float32(i/cols)*spacing - offsetZ,
		}
	}
	return out
}

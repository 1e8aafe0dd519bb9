package component

import "math"

// Transform is the world-space position of an entity. Rotation is the
// heading in radians, counter-clockwise from +X.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

// DistanceTo returns the Euclidean distance to another transform.
func (t Transform) DistanceTo(o Transform) float64 {
	return math.Hypot(o.X-t.X, o.Y-t.Y)
}

var TransformComponent = NewComponent[Transform]()

package scene

import (
	"math"

	"github.com/pthm-cable/tanksim/components"
)

// PathLength is the total length of a polyline.
func PathLength(path []components.Point) float32 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += segLen(path[i-1], path[i])
	}
	return float32(total)
}

// PointAlong returns the point at distance d from the start of the
// polyline. d is clamped to the path.
func PointAlong(path []components.Point, d float32) components.Point {
	if len(path) == 0 {
		return components.Point{}
	}
	if d <= 0 {
		return path[0]
	}
	remaining := float64(d)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		l := segLen(a, b)
		if remaining <= l && l > 0 {
			t := float32(remaining / l)
			return components.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		remaining -= l
	}
	return path[len(path)-1]
}

// Midpoint is the point halfway along the polyline.
func Midpoint(path []components.Point) components.Point {
	return PointAlong(path, PathLength(path)/2)
}

func segLen(a, b components.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

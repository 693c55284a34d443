package physics

import (
	"github.com/lixenwraith/vi-platformer/core"
	"github.com/lixenwraith/vi-platformer/vmath"
)

// Slope is a ramp surface between two endpoints
type Slope struct {
	A, B core.Point
}

// ordered returns the endpoints sorted by X
func (s Slope) ordered() (core.Point, core.Point) {
	if s.A.X <= s.B.X {
		return s.A, s.B
	}
	return s.B, s.A
}

// SurfaceY interpolates the surface height at x; false outside the span
func (s Slope) SurfaceY(x int) (int, bool) {
	l, r := s.ordered()
	if x < l.X || x > r.X {
		return 0, false
	}
	dx := r.X - l.X
	if dx == 0 {
		return min(l.Y, r.Y), true
	}
	return l.Y + (r.Y-l.Y)*(x-l.X)/dx, true
}

// Overlaps reports whether the segment's extent touches view
func (s Slope) Overlaps(view core.AABB) bool {
	minX, maxX := min(s.A.X, s.B.X), max(s.A.X, s.B.X)
	minY, maxY := min(s.A.Y, s.B.Y), max(s.A.Y, s.B.Y)
	return maxX >= view.Min.X && minX < view.Max.X && maxY >= view.Min.Y && minY < view.Max.Y
}

// Nudge is the rise/run ratio rounded to whole pixels
func (s Slope) Nudge() int {
	dx := s.B.X - s.A.X
	if dx == 0 {
		return 0
	}
	return vmath.ToRoundedInt(vmath.Div(s.B.Y-s.A.Y, dx))
}

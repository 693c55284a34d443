package core

// Point is a position or offset in world pixel units
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// AABB is an axis-aligned box stored as min/max corners, max exclusive
type AABB struct {
	Min, Max Point
}

// Box builds an AABB from a top-left corner and size
func Box(x, y, w, h int) AABB {
	return AABB{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

func (a AABB) Width() int  { return a.Max.X - a.Min.X }
func (a AABB) Height() int { return a.Max.Y - a.Min.Y }

// Center returns the integer midpoint
func (a AABB) Center() Point {
	return Point{X: (a.Min.X + a.Max.X) >> 1, Y: (a.Min.Y + a.Max.Y) >> 1}
}

// Translate offsets both corners by p
func (a AABB) Translate(p Point) AABB {
	return AABB{Min: a.Min.Add(p), Max: a.Max.Add(p)}
}

// Intersects is strict: touching edges do not overlap
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Contains reports whether p lies inside the half-open box
func (a AABB) Contains(p Point) bool {
	return p.X >= a.Min.X && p.X < a.Max.X && p.Y >= a.Min.Y && p.Y < a.Max.Y
}

// Expand grows the box by margin on every side
func (a AABB) Expand(margin int) AABB {
	return AABB{
		Min: Point{X: a.Min.X - margin, Y: a.Min.Y - margin},
		Max: Point{X: a.Max.X + margin, Y: a.Max.Y + margin},
	}
}

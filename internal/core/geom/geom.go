// Package geom holds the small amount of 2D math the simulation needs:
// world positions, polygons and straight-line interpolation.
package geom

import "math"

// boundaryEpsilon is the tolerance for treating a point as lying on a polygon edge.
const boundaryEpsilon = 1e-9

// Point represents a position in world (virtual) units
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Polygon is a closed polygon; the last vertex connects back to the first.
type Polygon []Point

// Contains reports whether p lies inside the polygon or on its boundary.
func (poly Polygon) Contains(p Point) bool {
	return PointInPolygon(p, poly)
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
// Points on an edge or vertex count as inside.
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if onSegment(point, polygon[j], polygon[i]) {
			return true
		}

		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// onSegment reports whether p lies on the segment a-b.
func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-boundaryEpsilon &&
		p.X <= math.Max(a.X, b.X)+boundaryEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-boundaryEpsilon &&
		p.Y <= math.Max(a.Y, b.Y)+boundaryEpsilon
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Lerp interpolates between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

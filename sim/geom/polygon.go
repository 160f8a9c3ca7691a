package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// parallelEps bounds |cross(d, e)| below which a ray and a segment are treated as parallel.
const parallelEps = 1e-12

// Segment is a closed line segment.
type Segment struct {
	Begin r2.Vec
	End   r2.Vec
}

// RayDistance returns the distance along the unit direction dir from origin
// to the first point of the segment, and whether the ray hits it at all.
// Collinear overlaps are reported as misses.
func (s Segment) RayDistance(origin, dir r2.Vec) (float64, bool) {
	edge := r2.Sub(s.End, s.Begin)
	denom := r2.Cross(dir, edge)
	if math.Abs(denom) < parallelEps {
		return 0, false
	}
	rel := r2.Sub(s.Begin, origin)
	t := r2.Cross(rel, edge) / denom
	u := r2.Cross(rel, dir) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min r2.Vec
	Max r2.Vec
}

// Contains reports whether pt lies inside or on the box.
func (b BoundingBox) Contains(pt r2.Vec) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X && pt.Y >= b.Min.Y && pt.Y <= b.Max.Y
}

// Polygon is a simple polygon without an explicit closing vertex:
// the triangle ABC is stored as [A, B, C], not [A, B, C, A].
type Polygon []r2.Vec

// BoundingBox returns the smallest axis-aligned box containing the polygon.
func (p Polygon) BoundingBox() BoundingBox {
	box := BoundingBox{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, v := range p {
		box.Min.X = math.Min(box.Min.X, v.X)
		box.Min.Y = math.Min(box.Min.Y, v.Y)
		box.Max.X = math.Max(box.Max.X, v.X)
		box.Max.Y = math.Max(box.Max.Y, v.Y)
	}
	return box
}

// Segments returns the polygon edges, including the closing edge.
func (p Polygon) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p))
	for i := range p {
		segs = append(segs, Segment{Begin: p[i], End: p[(i+1)%len(p)]})
	}
	return segs
}

// Contains reports whether pt is inside the polygon (even-odd rule).
// Points exactly on an edge may fall on either side.
func (p Polygon) Contains(pt r2.Vec) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		vi, vj := p[i], p[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// Package geometry provides the polygon primitives used by the constraint
// engine: point classification, segment intersection, containment and
// overlap tests. Polygons are model.Outline values with implicit closure.
// None of the tests assume convexity.
package geometry

import (
	"math"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// Epsilon is the numeric tolerance for boundary classification, in mm.
const Epsilon = 1e-6

// Location classifies a point against a polygon.
type Location int

const (
	Outside Location = iota
	OnBoundary
	Inside
)

func (l Location) String() string {
	switch l {
	case Inside:
		return "Inside"
	case OnBoundary:
		return "OnBoundary"
	default:
		return "Outside"
	}
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c model.Point2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// distPointSegment returns the distance from p to segment ab.
func distPointSegment(p, a, b model.Point2D) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	l2 := abx*abx + aby*aby
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*abx), p.Y-(a.Y+t*aby))
}

// PointInPolygon classifies pt against poly with Epsilon tolerance on the
// boundary, using a crossing-number test for the interior.
func PointInPolygon(pt model.Point2D, poly model.Outline) Location {
	n := len(poly)
	if n < 3 {
		return Outside
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if distPointSegment(pt, poly[i], poly[j]) <= Epsilon {
			return OnBoundary
		}
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y
		if (yi > pt.Y) != (yj > pt.Y) &&
			pt.X < (xj-xi)*(pt.Y-yi)/(yj-yi+1e-12)+xi {
			inside = !inside
		}
		j = i
	}
	if inside {
		return Inside
	}
	return Outside
}

// SegmentsIntersect reports whether segments a1a2 and b1b2 properly cross.
// Touching at an endpoint or sliding along a shared line is not a crossing;
// the orientation signs must flip on both segments beyond Epsilon.
func SegmentsIntersect(a1, a2, b1, b2 model.Point2D) bool {
	d1 := cross(a1, a2, b1)
	d2 := cross(a1, a2, b2)
	d3 := cross(b1, b2, a1)
	d4 := cross(b1, b2, a2)
	return ((d1 > Epsilon && d2 < -Epsilon) || (d1 < -Epsilon && d2 > Epsilon)) &&
		((d3 > Epsilon && d4 < -Epsilon) || (d3 < -Epsilon && d4 > Epsilon))
}

// edgesCross reports whether any edge of p properly crosses any edge of q.
func edgesCross(p, q model.Outline) bool {
	pn, qn := len(p), len(q)
	for i := 0; i < pn; i++ {
		a1 := p[i]
		a2 := p[(i+1)%pn]
		for j := 0; j < qn; j++ {
			if SegmentsIntersect(a1, a2, q[j], q[(j+1)%qn]) {
				return true
			}
		}
	}
	return false
}

// PolygonContainsPolygon reports whether inner lies entirely within outer:
// every inner vertex is Inside or OnBoundary, and no inner edge crosses an
// outer edge. The edge test matters for non-convex outers, where a polygon
// can dip outside between two contained vertices.
func PolygonContainsPolygon(outer, inner model.Outline) bool {
	if len(outer) < 3 || len(inner) < 3 {
		return false
	}
	for _, v := range inner {
		if PointInPolygon(v, outer) == Outside {
			return false
		}
	}
	return !edgesCross(outer, inner)
}

// PolygonsOverlap reports whether p and q share interior area. Boundary
// contact alone (a shared vertex or a flush edge) is not overlap, so a
// piece may sit exactly against a neighbour.
func PolygonsOverlap(p, q model.Outline) bool {
	if len(p) < 3 || len(q) < 3 {
		return false
	}
	if edgesCross(p, q) {
		return true
	}
	for _, v := range p {
		if PointInPolygon(v, q) == Inside {
			return true
		}
	}
	for _, v := range q {
		if PointInPolygon(v, p) == Inside {
			return true
		}
	}
	// No crossings and no interior vertices: the remaining overlap case is
	// one polygon enclosing the other with all vertices on the boundary
	// (identical outlines included).
	return allOnOrInside(p, q) || allOnOrInside(q, p)
}

func allOnOrInside(inner, outer model.Outline) bool {
	for _, v := range inner {
		if PointInPolygon(v, outer) == Outside {
			return false
		}
	}
	return true
}

// Package geometry provides the 2D primitives shared by the analysis engine:
// distances, line and segment intersection, parallelism and bounding boxes.
//
// Every proximity test takes an explicit tolerance. Degenerate input such as
// a zero-length segment yields a well-defined degenerate answer (zero
// distance, no intersection, not parallel) instead of an error.
package geometry

import (
	"math"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// parallelEpsilon is the relative cross product below which two directions
// have no unique intersection.
const parallelEpsilon = 1e-12

// Distance returns the Euclidean distance between two points.
func Distance(p, q model.Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance3D returns the Euclidean distance between two 3D points.
func Distance3D(p, q model.Point3D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Length returns the length of a segment.
func Length(s model.Segment) float64 {
	return Distance(s.Start, s.End)
}

func cross(a, b model.Point2D) float64 {
	return a.X*b.Y - a.Y*b.X
}

func dot(a, b model.Point2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

func norm(a model.Point2D) float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// lineParams solves a.Start + t*r = b.Start + u*s for t and u.
func lineParams(a, b model.Segment) (t, u float64, ok bool) {
	r := a.Vector()
	s := b.Vector()
	lr, ls := norm(r), norm(s)
	if lr == 0 || ls == 0 {
		return 0, 0, false
	}
	denom := cross(r, s)
	if math.Abs(denom) <= parallelEpsilon*lr*ls {
		return 0, 0, false
	}
	qp := b.Start.Sub(a.Start)
	return cross(qp, s) / denom, cross(qp, r) / denom, true
}

// IntersectLines intersects the infinite lines through a and b. It reports
// false for parallel lines and for zero-length segments. Collinear segments
// have no unique intersection even when they overlap.
func IntersectLines(a, b model.Segment) (model.Point2D, bool) {
	t, _, ok := lineParams(a, b)
	if !ok {
		return model.Point2D{}, false
	}
	return a.Start.Add(a.Vector().Scale(t)), true
}

// IntersectSegments intersects two bounded segments. A crossing within tol
// of either segment's ends still counts. Collinear overlaps are not point
// intersections and report false. The result is evaluated on a, so points
// on an axis-aligned a keep that axis coordinate exactly.
func IntersectSegments(a, b model.Segment, tol float64) (model.Point2D, bool) {
	t, u, ok := lineParams(a, b)
	if !ok {
		return model.Point2D{}, false
	}
	ta := tol / Length(a)
	tb := tol / Length(b)
	if t < -ta || t > 1+ta || u < -tb || u > 1+tb {
		return model.Point2D{}, false
	}
	return a.Start.Add(a.Vector().Scale(t)), true
}

// IsParallel reports whether two segments are parallel or anti-parallel
// within angleTol radians. Zero-length segments have no direction and are
// never parallel.
func IsParallel(a, b model.Segment, angleTol float64) bool {
	r := a.Vector()
	s := b.Vector()
	lr, ls := norm(r), norm(s)
	if lr == 0 || ls == 0 {
		return false
	}
	sin := math.Abs(cross(r, s)) / (lr * ls)
	return sin <= math.Sin(angleTol)
}

// ClosestPoint returns the point of the segment closest to p.
func ClosestPoint(p model.Point2D, s model.Segment) model.Point2D {
	r := s.Vector()
	l2 := dot(r, r)
	if l2 == 0 {
		return s.Start
	}
	t := dot(p.Sub(s.Start), r) / l2
	t = math.Max(0, math.Min(1, t))
	return s.Start.Add(r.Scale(t))
}

// DistanceToSegment returns the distance from p to the closest point of s.
func DistanceToSegment(p model.Point2D, s model.Segment) float64 {
	return Distance(p, ClosestPoint(p, s))
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through s, or the distance to s.Start when s has zero length.
func DistanceToLine(p model.Point2D, s model.Segment) float64 {
	r := s.Vector()
	l := norm(r)
	if l == 0 {
		return Distance(p, s.Start)
	}
	return math.Abs(cross(r, p.Sub(s.Start))) / l
}

// PointOnSegment reports whether p lies within tol of the segment.
func PointOnSegment(p model.Point2D, s model.Segment, tol float64) bool {
	return DistanceToSegment(p, s) <= tol
}

// Parameter returns t such that s.Start + t*(s.End-s.Start) is the
// projection of p onto the line through s. Zero-length segments give 0.
func Parameter(p model.Point2D, s model.Segment) float64 {
	r := s.Vector()
	l2 := dot(r, r)
	if l2 == 0 {
		return 0
	}
	return dot(p.Sub(s.Start), r) / l2
}

// NearestEndpoint returns the endpoint of s closest to p and its distance.
// Ties go to the start.
func NearestEndpoint(p model.Point2D, s model.Segment) (model.Point2D, float64) {
	ds := Distance(p, s.Start)
	de := Distance(p, s.End)
	if de < ds {
		return s.End, de
	}
	return s.Start, ds
}

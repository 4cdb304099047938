package geometry

import (
	"math"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// DefaultArcSegments is the number of straight pieces an arc is split into.
const DefaultArcSegments = 32

// DefaultCircleSegments is the number of sides of an approximated circle.
const DefaultCircleSegments = 64

// BulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
// The result starts at p1 and ends at p2.
func BulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) []model.Point2D {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 || math.Abs(bulge) < 1e-9 {
		return []model.Point2D{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Center lies on the chord bisector, on the side away from the bulge
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]model.Point2D, 0, numSegments+1)
	pts = append(pts, p1)
	for i := 1; i < numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Point2D{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return append(pts, p2)
}

// PolylinePoints expands polyline vertices with per-vertex bulges into a
// plain vertex list. For closed polylines the bulge of the last vertex
// applies to the closing edge, whose end vertex is not repeated.
func PolylinePoints(vertices []model.Point2D, bulges []float64, closed bool, numSegments int) []model.Point2D {
	n := len(vertices)
	if n == 0 {
		return nil
	}
	var pts []model.Point2D
	for i := 0; i < n; i++ {
		current := vertices[i]
		last := i == n-1
		if last && !closed {
			pts = append(pts, current)
			break
		}
		bulge := 0.0
		if i < len(bulges) {
			bulge = bulges[i]
		}
		if math.Abs(bulge) <= 1e-9 {
			pts = append(pts, current)
			continue
		}
		next := vertices[(i+1)%n]
		arc := BulgeArcPoints(current, next, bulge, numSegments)
		pts = append(pts, arc[:len(arc)-1]...)
	}
	return pts
}

// CirclePoints approximates a circle as a regular polygon.
func CirclePoints(center model.Point2D, r float64, numSegments int) []model.Point2D {
	pts := make([]model.Point2D, numSegments)
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		pts[i] = model.Point2D{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}
	}
	return pts
}

// ArcPoints converts a counter-clockwise arc given in degrees into points.
func ArcPoints(center model.Point2D, r, startDeg, endDeg float64, numSegments int) []model.Point2D {
	startRad := startDeg * math.Pi / 180
	endRad := endDeg * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point2D, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point2D{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}
	}
	return pts
}

// PointsToSegments converts a point sequence to connected segments.
func PointsToSegments(pts []model.Point2D) []model.Segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]model.Segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, model.Segment{Start: pts[i], End: pts[i+1]})
	}
	return segs
}

package geometry

import (
	"github.com/jbeda/geom"
	"github.com/piwi3910/PlanTidy/internal/model"
)

func fromRect(r geom.Rect) model.BoundingBox {
	return model.BoundingBox{
		Min: model.Point2D{X: r.Min.X, Y: r.Min.Y},
		Max: model.Point2D{X: r.Max.X, Y: r.Max.Y},
	}
}

func pointRect(p model.Point2D) geom.Rect {
	c := geom.Coord{X: p.X, Y: p.Y}
	return geom.Rect{Min: c, Max: c}
}

// Bounds returns the bounding box of a point collection. An empty collection
// has a zero box.
func Bounds(points []model.Point2D) model.BoundingBox {
	if len(points) == 0 {
		return model.BoundingBox{}
	}
	r := pointRect(points[0])
	for _, p := range points[1:] {
		r.ExpandToContainRect(pointRect(p))
	}
	return fromRect(r)
}

// SegmentBounds returns the bounding box of a segment.
func SegmentBounds(s model.Segment) model.BoundingBox {
	return Bounds([]model.Point2D{s.Start, s.End})
}

// CornerDistances returns the distances between corresponding corners of
// two boxes.
func CornerDistances(a, b model.BoundingBox) [4]float64 {
	ca, cb := a.Corners(), b.Corners()
	var d [4]float64
	for i := range ca {
		d[i] = Distance(ca[i], cb[i])
	}
	return d
}

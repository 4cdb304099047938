package model

import "fmt"

// Point2D represents a 2D coordinate in drawing units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both coordinates by f.
func (p Point2D) Scale(f float64) Point2D {
	return Point2D{X: p.X * f, Y: p.Y * f}
}

// Point3D is a 3D coordinate. Anchor points carry a Z so that signatures stay
// comparable with hosts that keep elevation on block geometry.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// XY drops the Z coordinate.
func (p Point3D) XY() Point2D {
	return Point2D{X: p.X, Y: p.Y}
}

// Outline is a sequence of 2D points forming a polyline.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// CurveEnd addresses one end of a segment or open curve.
type CurveEnd int

const (
	EndStart CurveEnd = iota
	EndEnd
)

func (e CurveEnd) String() string {
	if e == EndEnd {
		return "end"
	}
	return "start"
}

// Segment is an ordered pair of points. Start and End are distinguishable.
type Segment struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

// Point returns the coordinate of the given end.
func (s Segment) Point(end CurveEnd) Point2D {
	if end == EndEnd {
		return s.End
	}
	return s.Start
}

// WithPoint returns a copy of s with the given end moved to p.
func (s Segment) WithPoint(end CurveEnd, p Point2D) Segment {
	if end == EndEnd {
		s.End = p
	} else {
		s.Start = p
	}
	return s
}

// Vector returns End - Start.
func (s Segment) Vector() Point2D {
	return s.End.Sub(s.Start)
}

// BoundingBox is an axis-aligned box given by its min and max corners.
type BoundingBox struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// Width returns the x extent.
func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the y extent.
func (b BoundingBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// IsDegenerate reports whether the box has zero extent in x or y.
func (b BoundingBox) IsDegenerate() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Corners returns the four corners counter-clockwise from Min.
func (b BoundingBox) Corners() [4]Point2D {
	return [4]Point2D{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point2D {
	return Point2D{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Expand grows the box by d on every side.
func (b BoundingBox) Expand(d float64) BoundingBox {
	return BoundingBox{
		Min: Point2D{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point2D{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Intersects checks if two boxes overlap or touch.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return !(b.Max.X < o.Min.X ||
		b.Min.X > o.Max.X ||
		b.Max.Y < o.Min.Y ||
		b.Min.Y > o.Max.Y)
}

// RGB is an 8-bit per channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

package model

import "math"

// Transform is a 2D affine transform:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// NewInsertTransform builds the transform of a block instance inserted at
// p, scaled by sx, sy and rotated by angle radians about the insertion point.
func NewInsertTransform(p Point2D, sx, sy, angle float64) Transform {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Transform{
		A: cos * sx, B: -sin * sy, C: p.X,
		D: sin * sx, E: cos * sy, F: p.Y,
	}
}

// Apply transforms a point.
func (t Transform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Then returns the transform that applies t first and u second.
func (t Transform) Then(u Transform) Transform {
	return Transform{
		A: u.A*t.A + u.B*t.D,
		B: u.A*t.B + u.B*t.E,
		C: u.A*t.C + u.B*t.F + u.C,
		D: u.D*t.A + u.E*t.D,
		E: u.D*t.B + u.E*t.E,
		F: u.D*t.C + u.E*t.F + u.F,
	}
}

// IsMirrored reports whether the transform flips orientation.
func (t Transform) IsMirrored() bool {
	return t.A*t.E-t.B*t.D < 0
}

// BlockDefinition is a named, reusable geometry template.
// Bounds covers every object of the definition; when zero it is derived
// from the curves.
type BlockDefinition struct {
	Name   string      `json:"name"`
	Curves []Curve     `json:"curves"`
	Bounds BoundingBox `json:"bounds"`
}

// CurveBounds returns Bounds, or the bounds of all curve vertices when
// Bounds was never set. A definition without curves has a zero box.
func (d BlockDefinition) CurveBounds() BoundingBox {
	if d.Bounds != (BoundingBox{}) {
		return d.Bounds
	}
	var pts Outline
	for _, c := range d.Curves {
		pts = append(pts, c.Points...)
	}
	min, max := pts.BoundingBox()
	return BoundingBox{Min: min, Max: max}
}

// AnchorSet is the grid-intersection shape signature of a block definition.
type AnchorSet []Point3D

// SimilarityGroup maps a representative block definition to the definitions
// judged similar to it.
type SimilarityGroup struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"`
}

// SimilarityPartition lists groups in the order representatives were
// established. Every clustered definition appears exactly once.
type SimilarityPartition []SimilarityGroup

// Names returns every definition in the partition, representatives first
// within each group.
func (p SimilarityPartition) Names() []string {
	var names []string
	for _, g := range p {
		names = append(names, g.Representative)
		names = append(names, g.Members...)
	}
	return names
}

// GroupOf returns the representative whose group contains name.
func (p SimilarityPartition) GroupOf(name string) (string, bool) {
	for _, g := range p {
		if g.Representative == name {
			return g.Representative, true
		}
		for _, m := range g.Members {
			if m == name {
				return g.Representative, true
			}
		}
	}
	return "", false
}

package model

// CurveKind classifies host curve geometry.
type CurveKind int

const (
	CurveLine     CurveKind = iota // Single straight segment
	CurvePolyline                  // Open or closed polyline
	CurveArc                       // Arc, stored polygon-approximated
	CurveCircle                    // Circle, stored polygon-approximated and closed
)

func (k CurveKind) String() string {
	switch k {
	case CurvePolyline:
		return "Polyline"
	case CurveArc:
		return "Arc"
	case CurveCircle:
		return "Circle"
	default:
		return "Line"
	}
}

// Linetype names used by the host.
const (
	LinetypeContinuous = "Continuous"
	LinetypeDashed     = "Dashed"
)

// Curve is a piece of linework in a drawing. Non-line kinds are already
// approximated by their vertices in Points.
type Curve struct {
	ID       string    `json:"id"`
	Layer    string    `json:"layer"`
	Kind     CurveKind `json:"kind"`
	Points   Outline   `json:"points"`
	Closed   bool      `json:"closed,omitempty"`
	Linetype string    `json:"linetype,omitempty"` // empty means Continuous
}

// IsLine reports whether the curve is a single straight segment.
func (c Curve) IsLine() bool {
	return c.Kind == CurveLine && len(c.Points) == 2
}

// Start returns the first vertex.
func (c Curve) Start() Point2D {
	if len(c.Points) == 0 {
		return Point2D{}
	}
	return c.Points[0]
}

// End returns the last vertex, or the first one for closed curves.
func (c Curve) End() Point2D {
	if len(c.Points) == 0 {
		return Point2D{}
	}
	if c.Closed {
		return c.Points[0]
	}
	return c.Points[len(c.Points)-1]
}

// Segments returns the straight pieces of the curve in order.
func (c Curve) Segments() []Segment {
	n := len(c.Points)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n)
	for i := 0; i < n-1; i++ {
		segs = append(segs, Segment{Start: c.Points[i], End: c.Points[i+1]})
	}
	if c.Closed && n > 2 {
		segs = append(segs, Segment{Start: c.Points[n-1], End: c.Points[0]})
	}
	return segs
}

// Bounds returns the bounding box of the curve's vertices.
func (c Curve) Bounds() BoundingBox {
	min, max := c.Points.BoundingBox()
	return BoundingBox{Min: min, Max: max}
}

// IdentifiedSegment is a straight segment carrying the identifier of the host
// object it came from.
type IdentifiedSegment struct {
	ID      string  `json:"id"`
	Segment Segment `json:"segment"`
}

// WeightedSegment is a segment tagged with the print width of its layer.
// ReferenceOnly segments can mark others as redundant but are never marked.
type WeightedSegment struct {
	ID            string  `json:"id"`
	Segment       Segment `json:"segment"`
	Weight        float64 `json:"weight"`
	ReferenceOnly bool    `json:"reference_only,omitempty"`
}

// TargetKind says what a curve end should be extended to.
type TargetKind int

const (
	TargetNone  TargetKind = iota
	TargetPoint            // An intersection point
	TargetCurve            // Another curve, met by extending along the direction
)

// ExtensionTarget is the chosen extension goal of one curve end.
type ExtensionTarget struct {
	Kind    TargetKind `json:"kind"`
	Point   Point2D    `json:"point,omitempty"`
	CurveID string     `json:"curve_id,omitempty"`
}

// CurveExtensionRecord collects the best extension target for both ends of a
// curve while candidates are compared.
type CurveExtensionRecord struct {
	CurveID      string          `json:"curve_id"`
	StartTarget  ExtensionTarget `json:"start_target"`
	EndTarget    ExtensionTarget `json:"end_target"`
	MinDistStart float64         `json:"min_dist_start"`
	MinDistEnd   float64         `json:"min_dist_end"`
}

// Target returns the target and best cost recorded for the given end.
func (r CurveExtensionRecord) Target(end CurveEnd) (ExtensionTarget, float64) {
	if end == EndEnd {
		return r.EndTarget, r.MinDistEnd
	}
	return r.StartTarget, r.MinDistStart
}

// Extension is one endpoint move produced by applying extension records.
type Extension struct {
	CurveID string   `json:"curve_id"`
	End     CurveEnd `json:"end"`
	From    Point2D  `json:"from"`
	To      Point2D  `json:"to"`
}

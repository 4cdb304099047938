package model

import (
	"math"
	"testing"
)

func TestOutlineBoundingBox(t *testing.T) {
	o := Outline{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 1, Y: 1}}
	min, max := o.BoundingBox()
	if min != (Point2D{X: -2, Y: -1}) || max != (Point2D{X: 3, Y: 4}) {
		t.Errorf("expected (-2,-1)-(3,4), got %v-%v", min, max)
	}

	min, max = Outline{}.BoundingBox()
	if min != (Point2D{}) || max != (Point2D{}) {
		t.Errorf("empty outline should give zero box, got %v-%v", min, max)
	}
}

func TestSegmentEnds(t *testing.T) {
	s := Segment{Start: Point2D{X: 0, Y: 0}, End: Point2D{X: 4, Y: 2}}

	if s.Point(EndStart) != s.Start || s.Point(EndEnd) != s.End {
		t.Error("Point should address start and end")
	}
	moved := s.WithPoint(EndEnd, Point2D{X: 5, Y: 5})
	if moved.End != (Point2D{X: 5, Y: 5}) || moved.Start != s.Start {
		t.Errorf("WithPoint moved the wrong end: %+v", moved)
	}
	if s.End != (Point2D{X: 4, Y: 2}) {
		t.Error("WithPoint must not modify the receiver")
	}
	if v := s.Vector(); v != (Point2D{X: 4, Y: 2}) {
		t.Errorf("expected vector (4,2), got %v", v)
	}
	if EndStart.String() != "start" || EndEnd.String() != "end" {
		t.Errorf("unexpected CurveEnd names %q %q", EndStart, EndEnd)
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox{Min: Point2D{X: 0, Y: 0}, Max: Point2D{X: 10, Y: 4}}

	if b.Width() != 10 || b.Height() != 4 {
		t.Errorf("expected 10x4, got %gx%g", b.Width(), b.Height())
	}
	if b.Center() != (Point2D{X: 5, Y: 2}) {
		t.Errorf("expected center (5,2), got %v", b.Center())
	}
	if b.IsDegenerate() {
		t.Error("10x4 box is not degenerate")
	}
	flat := BoundingBox{Min: Point2D{X: 0, Y: 1}, Max: Point2D{X: 5, Y: 1}}
	if !flat.IsDegenerate() {
		t.Error("zero-height box should be degenerate")
	}

	c := b.Corners()
	if c[1] != (Point2D{X: 10, Y: 0}) || c[3] != (Point2D{X: 0, Y: 4}) {
		t.Errorf("unexpected corners %v", c)
	}

	grown := b.Expand(1)
	if grown.Min != (Point2D{X: -1, Y: -1}) || grown.Max != (Point2D{X: 11, Y: 5}) {
		t.Errorf("unexpected expanded box %+v", grown)
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	a := BoundingBox{Min: Point2D{X: 0, Y: 0}, Max: Point2D{X: 2, Y: 2}}

	tests := []struct {
		name string
		b    BoundingBox
		want bool
	}{
		{"overlapping", BoundingBox{Min: Point2D{X: 1, Y: 1}, Max: Point2D{X: 3, Y: 3}}, true},
		{"touching", BoundingBox{Min: Point2D{X: 2, Y: 0}, Max: Point2D{X: 4, Y: 2}}, true},
		{"apart", BoundingBox{Min: Point2D{X: 3, Y: 0}, Max: Point2D{X: 4, Y: 2}}, false},
		{"above", BoundingBox{Min: Point2D{X: 0, Y: 5}, Max: Point2D{X: 2, Y: 6}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{R: 125, G: 189, B: 206}).Hex(); got != "#7DBDCE" {
		t.Errorf("expected #7DBDCE, got %s", got)
	}
	if got := (RGB{}).Hex(); got != "#000000" {
		t.Errorf("expected #000000, got %s", got)
	}
}

func TestLayerSpecPrintWidth(t *testing.T) {
	std := DefaultLayerStandards()

	heavy, ok := std.Find(CategoryLinework, "4")
	if !ok {
		t.Fatal("linework layer 4 missing")
	}
	if got, want := heavy.PrintWidthMM(), PtToMM(0.35); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g mm, got %g", want, got)
	}

	dashed, _ := std.Find(CategoryLinework, LineworkDashed)
	if dashed.PrintWidthMM() != NoPrint {
		t.Errorf("dashed layer should not print, got %g", dashed.PrintWidthMM())
	}

	office, _ := std.Find(CategoryColor, "Office")
	if office.PrintWidthMM() != 0 {
		t.Errorf("color layers print at default width, got %g", office.PrintWidthMM())
	}

	if _, ok := std.Find(CategoryLegend, "Office"); ok {
		t.Error("Office is not a legend layer")
	}
	if got := heavy.FullName("Plan", CategoryLinework); got != "Plan::Linework_4" {
		t.Errorf("expected Plan::Linework_4, got %s", got)
	}
}

func TestDefaultHatchSequenceCoversColors(t *testing.T) {
	std := DefaultLayerStandards()
	if len(std.HatchSequence) != len(std.Colors) {
		t.Fatalf("expected %d hatch entries, got %d", len(std.Colors), len(std.HatchSequence))
	}
	for _, name := range std.HatchSequence {
		if _, ok := std.Find(CategoryColor, name); !ok {
			t.Errorf("hatch sequence entry %q is not a color layer", name)
		}
	}
}

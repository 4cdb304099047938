package engine

import (
	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// GridLines returns the division+1 horizontal and division+1 vertical lines
// that split box into division x division cells. The last line of each
// family sits exactly on the max edge.
func GridLines(box model.BoundingBox, division int) []model.Segment {
	if division < 1 {
		return nil
	}
	stepX := box.Width() / float64(division)
	stepY := box.Height() / float64(division)

	lines := make([]model.Segment, 0, 2*(division+1))
	for i := 0; i <= division; i++ {
		y := box.Min.Y + stepY*float64(i)
		if i == division {
			y = box.Max.Y
		}
		lines = append(lines, model.Segment{
			Start: model.Point2D{X: box.Min.X, Y: y},
			End:   model.Point2D{X: box.Max.X, Y: y},
		})
	}
	for i := 0; i <= division; i++ {
		x := box.Min.X + stepX*float64(i)
		if i == division {
			x = box.Max.X
		}
		lines = append(lines, model.Segment{
			Start: model.Point2D{X: x, Y: box.Min.Y},
			End:   model.Point2D{X: x, Y: box.Max.Y},
		})
	}
	return lines
}

// FindBlockAnchors samples a block definition's curves on a grid laid over
// its bounding box and returns every point where a grid line crosses a curve.
// Curves running along a grid line contribute only where other grid lines
// cross them. Definitions that are flat in x or y have no anchors.
func FindBlockAnchors(def model.BlockDefinition, division int, tol float64) model.AnchorSet {
	box := def.CurveBounds()
	if division < 1 || box.IsDegenerate() {
		return nil
	}

	var segs []model.Segment
	for _, c := range def.Curves {
		segs = append(segs, c.Segments()...)
	}
	if len(segs) == 0 {
		return nil
	}

	seen := make(map[model.Point3D]struct{})
	var anchors model.AnchorSet
	for _, line := range GridLines(box, division) {
		for _, s := range segs {
			p, ok := geometry.IntersectSegments(line, s, tol)
			if !ok {
				continue
			}
			a := model.Point3D{X: p.X, Y: p.Y}
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			anchors = append(anchors, a)
		}
	}
	return anchors
}

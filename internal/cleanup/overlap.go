package cleanup

import (
	"context"
	"fmt"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/engine"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// SelectOverlappingLines selects lines lying on top of a line or polyline of
// equal or heavier print width. Polylines are compared piece by piece but
// are never selected themselves. Other curves are ignored. With no IDs every
// curve is examined. It returns nil when nothing overlaps.
func (s *Session) SelectOverlappingLines(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = s.Doc.ObjectIDs(drawing.KindCurve)
	}

	var segs []model.WeightedSegment
	for _, id := range ids {
		o, ok := s.Doc.Object(id)
		if !ok || o.Curve == nil {
			continue
		}
		weight, err := s.Doc.LayerPrintWidth(o.Layer)
		if err != nil {
			return nil, err
		}
		c, err := s.Doc.Curve(id)
		if err != nil {
			return nil, err
		}
		switch {
		case c.IsLine():
			segs = append(segs, model.WeightedSegment{
				ID:      id,
				Segment: model.Segment{Start: c.Points[0], End: c.Points[1]},
				Weight:  weight,
			})
		case c.Kind == model.CurvePolyline:
			for _, piece := range engine.FlattenCurves([]model.Curve{c}) {
				segs = append(segs, model.WeightedSegment{
					ID:            piece.ID,
					Segment:       piece.Segment,
					Weight:        weight,
					ReferenceOnly: true,
				})
			}
		}
	}

	log := s.Logger.WithOp("overlaps")
	if len(segs) == 0 {
		log.LogOverlaps(ctx, 0, 0)
		return nil, nil
	}
	flagged, err := engine.NewOverlapDetector(s.Config.Settings).Detect(segs)
	if err != nil {
		return nil, fmt.Errorf("detect overlaps: %w", err)
	}
	log.LogOverlaps(ctx, len(segs), len(flagged))
	if len(flagged) == 0 {
		return nil, nil
	}
	s.Doc.Select(flagged)
	return flagged, nil
}

package cleanup

import (
	"context"
	"fmt"

	"github.com/piwi3910/PlanTidy/internal/engine"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// ExtendResult describes one extend-to-closest run.
type ExtendResult struct {
	GroupID  string            `json:"group_id"`
	Segments []string          `json:"segments"`
	Moves    []model.Extension `json:"moves"`
}

// ExtendToClosest extends each curve end to whatever it is closest to.
// Non-line curves are first replaced by their straight pieces. All resulting
// segments and the untouched non-curve objects are grouped together.
func (s *Session) ExtendToClosest(ctx context.Context, ids []string) (ExtendResult, error) {
	var res ExtendResult
	if len(ids) == 0 {
		return res, nil
	}

	var others []string
	for _, id := range ids {
		o, ok := s.Doc.Object(id)
		if !ok {
			continue
		}
		if o.Curve == nil {
			others = append(others, id)
			continue
		}
		pieces, err := s.Doc.FlattenToSegments(id)
		if err != nil {
			return res, err
		}
		if len(pieces) == 0 {
			others = append(others, id)
			continue
		}
		res.Segments = append(res.Segments, pieces...)
	}

	if len(res.Segments) > 0 {
		segs := make([]model.IdentifiedSegment, 0, len(res.Segments))
		for _, id := range res.Segments {
			seg, err := s.Doc.CurveEndpoints(id)
			if err != nil {
				return res, err
			}
			segs = append(segs, model.IdentifiedSegment{ID: id, Segment: seg})
		}

		planner := engine.NewExtensionPlanner(s.Config.Settings)
		records, err := planner.Plan(segs)
		if err != nil {
			return res, fmt.Errorf("plan extensions: %w", err)
		}
		_, moves, err := planner.Apply(segs, records)
		if err != nil {
			return res, fmt.Errorf("apply extensions: %w", err)
		}
		for _, m := range moves {
			if err := s.Doc.ExtendSegment(m.CurveID, m.End, m.To); err != nil {
				return res, err
			}
		}
		res.Moves = moves
	}

	res.GroupID = s.Doc.Group(append(append([]string(nil), res.Segments...), others...))
	s.Logger.WithOp("extend").LogExtend(ctx, len(res.Segments), len(res.Moves), 1)
	return res, nil
}

// ExtendToClosestGroups runs ExtendToClosest once per group that any of the
// given objects belongs to.
func (s *Session) ExtendToClosestGroups(ctx context.Context, ids []string) ([]ExtendResult, error) {
	seen := make(map[string]bool)
	var groups []string
	for _, id := range ids {
		for _, g := range s.Doc.ObjectGroups(id) {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}

	var results []ExtendResult
	for _, g := range groups {
		res, err := s.ExtendToClosest(ctx, s.Doc.GroupMembers(g))
		if err != nil {
			return results, fmt.Errorf("group %s: %w", g, err)
		}
		results = append(results, res)
	}
	return results, nil
}

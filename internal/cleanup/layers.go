package cleanup

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// SetLayers creates the standard layers of a category below the drawing
// layer and applies their print settings. It returns the full layer names.
func (s *Session) SetLayers(category model.LayerCategory) []string {
	s.Doc.AddLayer(s.Config.DrawingName, model.RGB{})
	var names []string
	for _, spec := range s.Config.Standards.Table(category) {
		full := spec.FullName(s.Config.DrawingName, category)
		s.Doc.AddLayer(full, spec.DisplayColor)
		s.applyPrint(full, spec)
		names = append(names, full)
	}
	return names
}

func (s *Session) applyPrint(layer string, spec model.LayerSpec) {
	l, ok := s.Doc.Layer(layer)
	if !ok {
		return
	}
	if spec.PrintColor != nil {
		l.PrintColor = *spec.PrintColor
	}
	l.PrintWidth = spec.PrintWidthMM()
}

// MoveLabelsToLayer moves texts sitting on top-level layers to the label
// layer. With no IDs every text in the document is considered. It returns
// the moved IDs.
func (s *Session) MoveLabelsToLayer(ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = s.Doc.ObjectIDs(drawing.KindText)
	}
	var move []string
	for _, id := range ids {
		o, ok := s.Doc.Object(id)
		if ok && o.Kind == drawing.KindText && s.isTopLevel(o) {
			move = append(move, id)
		}
	}
	if len(move) == 0 {
		return nil, nil
	}
	return move, s.Doc.SetLayer(move, s.layer(model.CategoryLinework, model.LineworkLabel))
}

// MoveToLayers applies the layer keyword rules in order: every object on a
// top-level layer whose name contains a rule keyword moves to the rule's
// linework layer. A layer emptied by an earlier rule has nothing left for
// later ones.
func (s *Session) MoveToLayers() (int, error) {
	var topLevel []string
	for _, name := range s.Doc.LayerNames() {
		if drawing.ParentName(name) == "" {
			topLevel = append(topLevel, name)
		}
	}
	moved := 0
	for _, rule := range s.Config.LayerRules {
		target := s.layer(model.CategoryLinework, rule.Target)
		for _, kw := range rule.Keywords {
			for _, name := range topLevel {
				if !containsFold(name, kw) {
					continue
				}
				objs := s.Doc.ObjectsByLayer(name)
				if len(objs) == 0 {
					continue
				}
				if err := s.Doc.SetLayer(objs, target); err != nil {
					return moved, err
				}
				moved += len(objs)
			}
		}
	}
	return moved, nil
}

// SetDashLines moves non-continuous curves on the drawing's direct
// sub-layers to the hidden furniture layer when they come from a furniture
// layer, and to the dashed layer otherwise. With no IDs every curve is
// considered.
func (s *Session) SetDashLines(ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = s.Doc.ObjectIDs(drawing.KindCurve)
	}
	hidden := s.layer(model.CategoryLinework, model.LineworkFurnitureHidden)
	dashed := s.layer(model.CategoryLinework, model.LineworkDashed)

	var toHidden, toDashed []string
	for _, id := range ids {
		o, ok := s.Doc.Object(id)
		if !ok || o.Curve == nil || drawing.ParentName(o.Layer) != s.Config.DrawingName {
			continue
		}
		if s.linetype(o) == model.LinetypeContinuous {
			continue
		}
		if strings.Contains(o.Layer, model.LineworkFurniture) {
			toHidden = append(toHidden, id)
		} else {
			toDashed = append(toDashed, id)
		}
	}
	if len(toHidden) > 0 {
		if err := s.Doc.SetLayer(toHidden, hidden); err != nil {
			return nil, err
		}
	}
	if len(toDashed) > 0 {
		if err := s.Doc.SetLayer(toDashed, dashed); err != nil {
			return nil, err
		}
	}
	return append(toHidden, toDashed...), nil
}

func (s *Session) linetype(o *drawing.Object) string {
	if o.Curve.Linetype != "" {
		return o.Curve.Linetype
	}
	if l, ok := s.Doc.Layer(o.Layer); ok && l.Linetype != "" {
		return l.Linetype
	}
	return model.LinetypeContinuous
}

// SortColorHatches moves hatches on top-level layers whose own color matches
// a standard color layer onto that layer. Hatches of other colors stay. With
// no IDs every hatch is considered.
func (s *Session) SortColorHatches(ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = s.Doc.ObjectIDs(drawing.KindHatch)
	}
	candidates := make(map[string]bool)
	for _, id := range ids {
		if o, ok := s.Doc.Object(id); ok && o.Kind == drawing.KindHatch && s.isTopLevel(o) {
			candidates[id] = true
		}
	}
	var moved []string
	for _, spec := range s.Config.Standards.Colors {
		var hatches []string
		for _, id := range s.Doc.ObjectsByColor(spec.DisplayColor) {
			if candidates[id] {
				hatches = append(hatches, id)
				delete(candidates, id)
			}
		}
		if len(hatches) == 0 {
			continue
		}
		if err := s.Doc.SetLayer(hatches, spec.FullName(s.Config.DrawingName, model.CategoryColor)); err != nil {
			return moved, err
		}
		moved = append(moved, hatches...)
	}
	return moved, nil
}

// OrganizeReport counts what OrganizeLayers changed.
type OrganizeReport struct {
	Labels  int `json:"labels"`
	ByRule  int `json:"by_rule"`
	Hatches int `json:"hatches"`
	Dashed  int `json:"dashed"`
}

// OrganizeLayers creates the standard linework and color layers, then moves
// labels, keyword-matched layers, colored hatches and dashed curves onto
// them. Finally every object takes its display and print attributes from
// its layer.
func (s *Session) OrganizeLayers(ctx context.Context) (OrganizeReport, error) {
	var rep OrganizeReport
	s.SetLayers(model.CategoryLinework)
	s.SetLayers(model.CategoryColor)

	labels, err := s.MoveLabelsToLayer(nil)
	if err != nil {
		return rep, err
	}
	rep.Labels = len(labels)

	if rep.ByRule, err = s.MoveToLayers(); err != nil {
		return rep, err
	}
	hatches, err := s.SortColorHatches(nil)
	if err != nil {
		return rep, err
	}
	rep.Hatches = len(hatches)

	dashed, err := s.SetDashLines(nil)
	if err != nil {
		return rep, err
	}
	rep.Dashed = len(dashed)

	s.Doc.ResetColorSources(s.Doc.ObjectIDs())
	s.Logger.WithOp("organize").InfoContext(ctx, "layers organized",
		"labels", rep.Labels,
		"by_rule", rep.ByRule,
		"hatches", rep.Hatches,
		"dashed", rep.Dashed,
	)
	return rep, nil
}

// PurgeEmptyLayers purges unused blocks, then deletes layers without objects
// or children, walking up to parents emptied by the deletion. The drawing
// layer is kept. It returns the deleted layer names.
func (s *Session) PurgeEmptyLayers(ctx context.Context) ([]string, error) {
	s.PurgeUnusedBlocks(ctx)

	var deleted []string
	tryDelete := func(name string) (string, bool, error) {
		if name == s.Config.DrawingName || len(s.Doc.LayerChildren(name)) > 0 {
			return "", false, nil
		}
		parent := drawing.ParentName(name)
		err := s.Doc.DeleteLayer(name)
		if errors.Is(err, drawing.ErrLayerNotEmpty) || errors.Is(err, drawing.ErrNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		deleted = append(deleted, name)
		return parent, true, nil
	}

	pending := make(map[string]bool)
	for _, name := range s.Doc.LayerNames() {
		parent, ok, err := tryDelete(name)
		if err != nil {
			return deleted, err
		}
		if ok && parent != "" {
			pending[parent] = true
		}
	}
	for len(pending) > 0 {
		names := make([]string, 0, len(pending))
		for n := range pending {
			names = append(names, n)
		}
		sort.Strings(names)
		name := names[0]
		delete(pending, name)

		parent, ok, err := tryDelete(name)
		if err != nil {
			return deleted, err
		}
		if ok && parent != "" {
			pending[parent] = true
		}
	}
	s.Logger.WithOp("purge_layers").InfoContext(ctx, "empty layers purged", "layers", len(deleted))
	return deleted, nil
}

// AssignStandardPrint reapplies the standard print color and width to the
// standard layers found below drawingLayer. An empty drawingLayer means the
// configured drawing. It returns the number of layers updated.
func (s *Session) AssignStandardPrint(drawingLayer string) int {
	if drawingLayer == "" {
		drawingLayer = s.Config.DrawingName
	}
	updated := 0
	for _, layer := range s.Doc.LayerChildren(drawingLayer) {
		for _, cat := range []model.LayerCategory{model.CategoryLinework, model.CategoryLegend, model.CategoryColor} {
			for _, spec := range s.Config.Standards.Table(cat) {
				if spec.FullName(drawingLayer, cat) != layer {
					continue
				}
				if cat == model.CategoryColor && spec.PrintColor != nil {
					spec.PrintWidth = nil
				}
				s.applyPrint(layer, spec)
				updated++
			}
		}
	}
	return updated
}

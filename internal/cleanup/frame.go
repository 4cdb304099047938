package cleanup

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// Frame is a print frame placed around a drawing.
type Frame struct {
	ID     string        `json:"id"`
	TextID string        `json:"text_id"`
	Corner model.Point2D `json:"corner"` // bottom left
	Scale  float64       `json:"scale"`  // drawing units per paper unit
}

// FitScale returns the first configured scale at which a box of the given
// size fits inside the frame margins.
func (s *Session) FitScale(width, height float64) (float64, bool) {
	cfg := s.Config
	for _, scale := range cfg.ScaleCandidates {
		if (cfg.FrameWidth-2*cfg.FrameMargin)*scale >= width &&
			(cfg.FrameHeight-2*cfg.FrameMargin)*scale >= height {
			return scale, true
		}
	}
	return 0, false
}

// PrintFrame draws a frame of the configured paper size, at the given scale,
// centred on the objects, and labels it with the scale. A zero scale picks
// the first candidate scale that fits; ok is false when none does.
func (s *Session) PrintFrame(ctx context.Context, ids []string, scale float64) (frame Frame, ok bool, err error) {
	box, err := s.Doc.BoundingBox(ids)
	if err != nil {
		return Frame{}, false, err
	}
	if scale == 0 {
		if scale, ok = s.FitScale(box.Width(), box.Height()); !ok {
			s.Logger.WithOp("frame").WarnContext(ctx, "no scale fits the drawing",
				"width", box.Width(),
				"height", box.Height(),
			)
			return Frame{}, false, nil
		}
	}
	if scale < 0 {
		return Frame{}, false, fmt.Errorf("print frame: scale %g must be positive", scale)
	}

	center := box.Center()
	hx := scale * s.Config.FrameWidth / 2
	hy := scale * s.Config.FrameHeight / 2
	pts := []model.Point2D{
		center.Add(model.Point2D{X: -hx, Y: -hy}),
		center.Add(model.Point2D{X: hx, Y: -hy}),
		center.Add(model.Point2D{X: hx, Y: hy}),
		center.Add(model.Point2D{X: -hx, Y: hy}),
	}

	layer := s.layer(model.CategoryLegend, model.LegendPrintFrame)
	color := model.RGB{}
	if spec, found := s.Config.Standards.Find(model.CategoryLegend, model.LegendPrintFrame); found {
		color = spec.DisplayColor
	}
	s.Doc.AddLayer(layer, color)

	frame = Frame{
		ID:     s.Doc.AddPolyline(layer, pts, true),
		TextID: s.Doc.AddText(layer, "1/"+formatScale(scale), pts[3], scale*0.5),
		Corner: pts[0],
		Scale:  scale,
	}
	s.Logger.WithOp("frame").InfoContext(ctx, "print frame added", "scale", scale)
	return frame, true, nil
}

func formatScale(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AddLegends draws a north arrow, a scale bar with its labels and one
// swatch per color layer of the drawing, starting from the bottom left
// corner of a print frame. Swatches follow the hatch sequence from the top;
// programs outside the sequence come last. It returns the created IDs.
func (s *Session) AddLegends(ctx context.Context, scale float64, corner model.Point2D) ([]string, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("add legends: scale %g must be positive", scale)
	}
	s.SetLayers(model.CategoryLegend)
	legend := func(name string) string { return s.layer(model.CategoryLegend, name) }
	at := func(base model.Point2D, x, y float64) model.Point2D {
		return base.Add(model.Point2D{X: x, Y: y})
	}

	var created []string
	m := scale

	// North arrow
	rad := m / 8
	center := at(corner, m/2, m/2)
	created = append(created,
		s.Doc.AddCircle(legend(model.LegendNorthArrowBold), center, rad),
		s.Doc.AddLine(legend(model.LegendNorthArrowBold), center, at(center, 0, rad)),
	)
	for _, d := range []model.Point2D{{X: -rad}, {Y: -rad}, {X: rad}} {
		created = append(created, s.Doc.AddLine(legend(model.LegendNorthArrowLight), center, center.Add(d)))
	}

	// Scale bar
	v := model.Point2D{Y: m / 32}
	h := model.Point2D{X: m / 4}
	start := at(center, m/4, 0)
	bar := []model.Point2D{start}
	pt := start
	for _, mv := range []model.Point2D{v, h, v.Scale(-1), h, v, h.Scale(2), v.Scale(-1)} {
		pt = pt.Add(mv)
		bar = append(bar, pt)
	}
	created = append(created, s.Doc.AddPolyline(legend(model.LegendScaleLines), bar, false))

	numbers := legend(model.LegendScaleNumbers)
	scaleText := fmt.Sprintf("1/%d\" = 1' - 0\"", int(m))
	created = append(created, s.Doc.AddText(numbers, scaleText, at(start, 0, m/8).Add(v), m/16))
	label := at(start, -m/32, -m/32)
	for _, txt := range []string{"0'", strconv.Itoa(int(m/2)) + "'", strconv.Itoa(int(m)) + "'"} {
		created = append(created, s.Doc.AddText(numbers, txt, label, m/32))
		label = at(label, m/2, 0)
	}

	// Color swatches
	frameWidth := m * 3 / 32
	textHeight := m / 16
	step := model.Point2D{Y: m * 3 / 16}
	textOffset := model.Point2D{X: m/16 + frameWidth, Y: (frameWidth-textHeight)/2 + textHeight}
	pt = at(center, -frameWidth/2, rad*3)

	entries := s.legendEntries()
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		square := []model.Point2D{pt, at(pt, frameWidth, 0), at(pt, frameWidth, frameWidth), at(pt, 0, frameWidth)}
		created = append(created,
			s.Doc.AddPolyline(legend(model.LegendFrames), square, true),
			s.Doc.AddHatch(legend(model.LegendHatches), square, "Solid", e.color),
			s.Doc.AddText(legend(model.LegendTexts), e.program, pt.Add(textOffset), textHeight),
		)
		pt = pt.Add(step)
	}

	s.Logger.WithOp("legends").InfoContext(ctx, "legends added",
		"scale", scale,
		"swatches", len(entries),
	)
	return created, nil
}

type legendEntry struct {
	program string
	color   model.RGB
}

// legendEntries lists the color layers below the drawing layer, ordered by
// the hatch sequence with unknown programs appended by name.
func (s *Session) legendEntries() []legendEntry {
	prefix := string(model.CategoryColor) + "_"
	byProgram := make(map[string]model.RGB)
	for _, name := range s.Doc.LayerChildren(s.Config.DrawingName) {
		l, _ := s.Doc.Layer(name)
		short := l.ShortName()
		if !strings.HasPrefix(short, prefix) {
			continue
		}
		byProgram[strings.TrimPrefix(short, prefix)] = l.Color
	}

	var entries []legendEntry
	for _, program := range s.Config.Standards.HatchSequence {
		if c, ok := byProgram[program]; ok {
			entries = append(entries, legendEntry{program: program, color: c})
			delete(byProgram, program)
		}
	}
	custom := make([]string, 0, len(byProgram))
	for program := range byProgram {
		custom = append(custom, program)
	}
	sort.Strings(custom)
	for _, program := range custom {
		entries = append(entries, legendEntry{program: program, color: byProgram[program]})
	}
	return entries
}

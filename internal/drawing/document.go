// Package drawing holds an in-memory CAD document: hierarchical layers,
// curves, texts, hatches, block definitions and instances, groups and a
// selection. Cleanup operations read and modify a Document through the
// source and sink interfaces declared in sources.go.
package drawing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrLayerNotEmpty = errors.New("layer not empty")
	ErrNotCurve      = errors.New("not a line curve")
	ErrExists        = errors.New("already exists")
)

// ObjectKind classifies document objects.
type ObjectKind int

const (
	KindCurve ObjectKind = iota
	KindText
	KindHatch
	KindInstance
)

func (k ObjectKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindHatch:
		return "Hatch"
	case KindInstance:
		return "Instance"
	default:
		return "Curve"
	}
}

// ColorSource says where an object takes a display or print attribute from.
type ColorSource int

const (
	FromLayer ColorSource = iota
	FromObject
)

// Text is a single-line annotation.
type Text struct {
	Value    string        `json:"value"`
	Position model.Point2D `json:"position"`
	Height   float64       `json:"height"`
}

// Hatch is a filled region.
type Hatch struct {
	Boundary model.Outline `json:"boundary"`
	Pattern  string        `json:"pattern"`
}

// Instance is a placed block definition.
type Instance struct {
	Block     string          `json:"block"`
	Transform model.Transform `json:"transform"`
}

// Object is one entity of the document. Exactly one of Curve, Text, Hatch or
// Instance is set, matching Kind.
type Object struct {
	ID       string       `json:"id"`
	Kind     ObjectKind   `json:"kind"`
	Layer    string       `json:"layer"`
	Curve    *model.Curve `json:"curve,omitempty"`
	Text     *Text        `json:"text,omitempty"`
	Hatch    *Hatch       `json:"hatch,omitempty"`
	Instance *Instance    `json:"instance,omitempty"`

	Color            model.RGB   `json:"color"`
	ColorSource      ColorSource `json:"color_source"`
	PrintColorSource ColorSource `json:"print_color_source"`
	PrintWidthSource ColorSource `json:"print_width_source"`
}

func (o *Object) clone() *Object {
	c := *o
	if o.Curve != nil {
		cv := *o.Curve
		cv.Points = append(model.Outline(nil), o.Curve.Points...)
		c.Curve = &cv
	}
	if o.Text != nil {
		t := *o.Text
		c.Text = &t
	}
	if o.Hatch != nil {
		h := *o.Hatch
		h.Boundary = append(model.Outline(nil), o.Hatch.Boundary...)
		c.Hatch = &h
	}
	if o.Instance != nil {
		in := *o.Instance
		c.Instance = &in
	}
	return &c
}

// transform applies xf to the object's geometry in place.
func (o *Object) transform(xf model.Transform) {
	switch {
	case o.Curve != nil:
		for i, p := range o.Curve.Points {
			o.Curve.Points[i] = xf.Apply(p)
		}
	case o.Text != nil:
		o.Text.Position = xf.Apply(o.Text.Position)
	case o.Hatch != nil:
		for i, p := range o.Hatch.Boundary {
			o.Hatch.Boundary[i] = xf.Apply(p)
		}
	case o.Instance != nil:
		o.Instance.Transform = o.Instance.Transform.Then(xf)
	}
}

// points returns the object's geometry vertices, used for bounding boxes.
func (o *Object) points() []model.Point2D {
	switch {
	case o.Curve != nil:
		return o.Curve.Points
	case o.Text != nil:
		return []model.Point2D{o.Text.Position}
	case o.Hatch != nil:
		return o.Hatch.Boundary
	}
	return nil
}

// Document is an in-memory drawing. It is not safe for concurrent use.
type Document struct {
	layers     map[string]*Layer
	layerOrder []string

	objects map[string]*Object
	order   []string

	blocks     map[string]*BlockDef
	blockOrder []string

	groups     map[string]*group
	groupOrder []string

	selection []string
}

// New creates an empty document.
func New() *Document {
	return &Document{
		layers:  make(map[string]*Layer),
		objects: make(map[string]*Object),
		blocks:  make(map[string]*BlockDef),
		groups:  make(map[string]*group),
	}
}

func newID() string {
	return uuid.NewString()
}

func (d *Document) add(o *Object) string {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Layer == "" {
		o.Layer = DefaultLayer
	}
	d.ensureLayer(o.Layer)
	if o.Curve != nil {
		o.Curve.ID = o.ID
		o.Curve.Layer = o.Layer
	}
	d.objects[o.ID] = o
	d.order = append(d.order, o.ID)
	return o.ID
}

// AddCurve adds a curve on the given layer and returns its ID. The curve's own
// ID and Layer fields are overwritten.
func (d *Document) AddCurve(layer string, c model.Curve) string {
	c.Points = append(model.Outline(nil), c.Points...)
	return d.add(&Object{Kind: KindCurve, Layer: layer, Curve: &c})
}

// AddLine adds a straight line.
func (d *Document) AddLine(layer string, a, b model.Point2D) string {
	return d.AddCurve(layer, model.Curve{Kind: model.CurveLine, Points: model.Outline{a, b}})
}

// AddPolyline adds an open or closed polyline.
func (d *Document) AddPolyline(layer string, pts []model.Point2D, closed bool) string {
	return d.AddCurve(layer, model.Curve{Kind: model.CurvePolyline, Points: pts, Closed: closed})
}

// AddCircle adds a circle approximated by DefaultCircleSegments sides.
func (d *Document) AddCircle(layer string, center model.Point2D, r float64) string {
	pts := geometry.CirclePoints(center, r, geometry.DefaultCircleSegments)
	return d.AddCurve(layer, model.Curve{Kind: model.CurveCircle, Points: pts, Closed: true})
}

// AddText adds a text annotation.
func (d *Document) AddText(layer, value string, pos model.Point2D, height float64) string {
	return d.add(&Object{Kind: KindText, Layer: layer, Text: &Text{Value: value, Position: pos, Height: height}})
}

// AddHatch adds a hatch whose display color is set on the object.
func (d *Document) AddHatch(layer string, boundary []model.Point2D, pattern string, color model.RGB) string {
	return d.add(&Object{
		Kind:        KindHatch,
		Layer:       layer,
		Hatch:       &Hatch{Boundary: append(model.Outline(nil), boundary...), Pattern: pattern},
		Color:       color,
		ColorSource: FromObject,
	})
}

// InsertBlock places an instance of the named block definition.
func (d *Document) InsertBlock(layer, block string, xf model.Transform) (string, error) {
	if _, ok := d.blocks[block]; !ok {
		return "", fmt.Errorf("block %q: %w", block, ErrNotFound)
	}
	return d.add(&Object{Kind: KindInstance, Layer: layer, Instance: &Instance{Block: block, Transform: xf}}), nil
}

// Object returns the object with the given ID.
func (d *Document) Object(id string) (*Object, bool) {
	o, ok := d.objects[id]
	return o, ok
}

func (d *Document) object(id string) (*Object, error) {
	o, ok := d.objects[id]
	if !ok {
		return nil, fmt.Errorf("object %q: %w", id, ErrNotFound)
	}
	return o, nil
}

// Objects returns all objects in insertion order.
func (d *Document) Objects() []*Object {
	out := make([]*Object, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.objects[id])
	}
	return out
}

// ObjectIDs returns the IDs of all objects of the given kinds in insertion
// order. No kinds means every object.
func (d *Document) ObjectIDs(kinds ...ObjectKind) []string {
	var out []string
	for _, id := range d.order {
		o := d.objects[id]
		if len(kinds) == 0 || hasKind(kinds, o.Kind) {
			out = append(out, id)
		}
	}
	return out
}

func hasKind(kinds []ObjectKind, k ObjectKind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// ObjectsByLayer returns the IDs of objects on exactly the given layer.
func (d *Document) ObjectsByLayer(layer string) []string {
	var out []string
	for _, id := range d.order {
		if d.objects[id].Layer == layer {
			out = append(out, id)
		}
	}
	return out
}

// Curve returns a copy of a curve object.
func (d *Document) Curve(id string) (model.Curve, error) {
	o, err := d.object(id)
	if err != nil {
		return model.Curve{}, err
	}
	if o.Curve == nil {
		return model.Curve{}, fmt.Errorf("object %q is a %s: %w", id, o.Kind, ErrNotCurve)
	}
	c := *o.Curve
	c.Points = append(model.Outline(nil), o.Curve.Points...)
	return c, nil
}

// Delete removes objects from the document, their groups and the selection.
// Unknown IDs are ignored.
func (d *Document) Delete(ids ...string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := d.objects[id]; ok {
			drop[id] = true
			delete(d.objects, id)
		}
	}
	if len(drop) == 0 {
		return
	}
	d.order = filterIDs(d.order, drop)
	d.selection = filterIDs(d.selection, drop)
	for _, g := range d.groups {
		g.members = filterIDs(g.members, drop)
	}
}

func filterIDs(ids []string, drop map[string]bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

// BoundingBox returns the box around the geometry of the given objects.
// Instances contribute their exploded geometry.
func (d *Document) BoundingBox(ids []string) (model.BoundingBox, error) {
	var pts []model.Point2D
	for _, id := range ids {
		o, err := d.object(id)
		if err != nil {
			return model.BoundingBox{}, err
		}
		if o.Instance != nil {
			pts = append(pts, d.instancePoints(o.Instance, 0)...)
			continue
		}
		pts = append(pts, o.points()...)
	}
	return geometry.Bounds(pts), nil
}

// ResetColorSources makes the objects take display color, print color and
// print width from their layer.
func (d *Document) ResetColorSources(ids []string) {
	for _, id := range ids {
		if o, ok := d.objects[id]; ok {
			o.ColorSource = FromLayer
			o.PrintColorSource = FromLayer
			o.PrintWidthSource = FromLayer
		}
	}
}

// ObjectsByColor returns objects whose own display color matches c.
func (d *Document) ObjectsByColor(c model.RGB) []string {
	var out []string
	for _, id := range d.order {
		o := d.objects[id]
		if o.ColorSource == FromObject && o.Color == c {
			out = append(out, id)
		}
	}
	return out
}

// DisplayColor returns the color an object is drawn with.
func (d *Document) DisplayColor(id string) (model.RGB, error) {
	o, err := d.object(id)
	if err != nil {
		return model.RGB{}, err
	}
	if o.ColorSource == FromObject {
		return o.Color, nil
	}
	if l, ok := d.layers[o.Layer]; ok {
		return l.Color, nil
	}
	return model.RGB{}, nil
}

// ExtendSegment moves one end of a line curve to target.
func (d *Document) ExtendSegment(id string, end model.CurveEnd, target model.Point2D) error {
	o, err := d.object(id)
	if err != nil {
		return err
	}
	if o.Curve == nil || !o.Curve.IsLine() {
		return fmt.Errorf("extend %q: %w", id, ErrNotCurve)
	}
	if end == model.EndEnd {
		o.Curve.Points[1] = target
	} else {
		o.Curve.Points[0] = target
	}
	return nil
}

// SetLayer moves objects to a layer, creating it when missing.
func (d *Document) SetLayer(ids []string, layer string) error {
	for _, id := range ids {
		if _, err := d.object(id); err != nil {
			return err
		}
	}
	d.ensureLayer(layer)
	for _, id := range ids {
		o := d.objects[id]
		o.Layer = layer
		if o.Curve != nil {
			o.Curve.Layer = layer
		}
	}
	return nil
}

// Stats summarises the document for reports.
type Stats struct {
	Layers    int            `json:"layers"`
	Blocks    int            `json:"blocks"`
	Groups    int            `json:"groups"`
	Objects   int            `json:"objects"`
	ByKind    map[string]int `json:"by_kind"`
	Selection int            `json:"selection"`
}

// Stats counts the document's contents.
func (d *Document) Stats() Stats {
	s := Stats{
		Layers:    len(d.layers),
		Blocks:    len(d.blocks),
		Groups:    len(d.groups),
		Objects:   len(d.objects),
		ByKind:    make(map[string]int),
		Selection: len(d.selection),
	}
	for _, o := range d.objects {
		s.ByKind[strings.ToLower(o.Kind.String())]++
	}
	return s
}

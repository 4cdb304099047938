package drawing

import (
	"fmt"

	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// maxNesting bounds instance expansion when computing geometry of nested
// blocks. Exploding uses an explicit visited guard instead.
const maxNesting = 32

// BlockDef is a named block definition. Its objects are in definition space.
type BlockDef struct {
	Name    string    `json:"name"`
	Objects []*Object `json:"objects"`
}

// AddBlock registers a block definition. Object IDs inside the definition
// are assigned when empty.
func (d *Document) AddBlock(name string, objects []*Object) error {
	if _, ok := d.blocks[name]; ok {
		return fmt.Errorf("block %q: %w", name, ErrExists)
	}
	def := &BlockDef{Name: name}
	for _, o := range objects {
		c := o.clone()
		if c.ID == "" {
			c.ID = newID()
		}
		if c.Curve != nil {
			c.Curve.ID = c.ID
			c.Curve.Layer = c.Layer
		}
		def.Objects = append(def.Objects, c)
	}
	d.blocks[name] = def
	d.blockOrder = append(d.blockOrder, name)
	return nil
}

// Block returns a block definition.
func (d *Document) Block(name string) (*BlockDef, bool) {
	b, ok := d.blocks[name]
	return b, ok
}

// ListBlockDefinitions returns block names in definition order.
func (d *Document) ListBlockDefinitions() []string {
	return append([]string(nil), d.blockOrder...)
}

// DeleteBlock removes a block definition and all of its top-level instances.
func (d *Document) DeleteBlock(name string) error {
	if _, ok := d.blocks[name]; !ok {
		return fmt.Errorf("block %q: %w", name, ErrNotFound)
	}
	d.Delete(d.BlockInstances(name)...)
	delete(d.blocks, name)
	for i, n := range d.blockOrder {
		if n == name {
			d.blockOrder = append(d.blockOrder[:i], d.blockOrder[i+1:]...)
			break
		}
	}
	return nil
}

// BlockInstances returns the IDs of top-level instances of a block.
func (d *Document) BlockInstances(name string) []string {
	var out []string
	for _, id := range d.order {
		o := d.objects[id]
		if o.Instance != nil && o.Instance.Block == name {
			out = append(out, id)
		}
	}
	return out
}

// BlockInstanceCount counts top-level instances plus instances nested in
// other block definitions.
func (d *Document) BlockInstanceCount(name string) int {
	n := len(d.BlockInstances(name))
	for _, b := range d.blocks {
		for _, o := range b.Objects {
			if o.Instance != nil && o.Instance.Block == name {
				n++
			}
		}
	}
	return n
}

// BlockDefinitionCurves returns the curves placed directly in a definition.
func (d *Document) BlockDefinitionCurves(name string) ([]model.Curve, error) {
	b, ok := d.blocks[name]
	if !ok {
		return nil, fmt.Errorf("block %q: %w", name, ErrNotFound)
	}
	var out []model.Curve
	for _, o := range b.Objects {
		if o.Curve != nil {
			c := *o.Curve
			c.Points = append(model.Outline(nil), o.Curve.Points...)
			out = append(out, c)
		}
	}
	return out, nil
}

// BlockDefinitionBounds returns the bounding box of a definition's geometry,
// nested instances included.
func (d *Document) BlockDefinitionBounds(name string) (model.BoundingBox, error) {
	b, ok := d.blocks[name]
	if !ok {
		return model.BoundingBox{}, fmt.Errorf("block %q: %w", name, ErrNotFound)
	}
	return geometry.Bounds(d.definitionPoints(b, model.Identity(), 0)), nil
}

// BlockDefinition returns the clustering view of a block definition.
func (d *Document) BlockDefinition(name string) (model.BlockDefinition, error) {
	curves, err := d.BlockDefinitionCurves(name)
	if err != nil {
		return model.BlockDefinition{}, err
	}
	bounds, err := d.BlockDefinitionBounds(name)
	if err != nil {
		return model.BlockDefinition{}, err
	}
	return model.BlockDefinition{Name: name, Curves: curves, Bounds: bounds}, nil
}

// InstanceTransform returns the insertion transform of an instance.
func (d *Document) InstanceTransform(id string) (model.Transform, error) {
	o, err := d.object(id)
	if err != nil {
		return model.Transform{}, err
	}
	if o.Instance == nil {
		return model.Transform{}, fmt.Errorf("object %q is a %s, not an instance: %w", id, o.Kind, ErrNotFound)
	}
	return o.Instance.Transform, nil
}

func (d *Document) definitionPoints(b *BlockDef, xf model.Transform, depth int) []model.Point2D {
	if depth > maxNesting {
		return nil
	}
	var pts []model.Point2D
	for _, o := range b.Objects {
		if o.Instance != nil {
			if nested, ok := d.blocks[o.Instance.Block]; ok {
				pts = append(pts, d.definitionPoints(nested, o.Instance.Transform.Then(xf), depth+1)...)
			}
			continue
		}
		for _, p := range o.points() {
			pts = append(pts, xf.Apply(p))
		}
	}
	return pts
}

func (d *Document) instancePoints(in *Instance, depth int) []model.Point2D {
	b, ok := d.blocks[in.Block]
	if !ok {
		return nil
	}
	return d.definitionPoints(b, in.Transform, depth)
}

// ExplodeInstance replaces an instance with transformed copies of its
// definition's objects and returns their IDs in definition order. Nested
// instances become top-level instances. Objects without a layer land on
// the instance's layer.
func (d *Document) ExplodeInstance(id string) ([]string, error) {
	o, err := d.object(id)
	if err != nil {
		return nil, err
	}
	if o.Instance == nil {
		return nil, fmt.Errorf("explode %q: not an instance: %w", id, ErrNotFound)
	}
	b, ok := d.blocks[o.Instance.Block]
	if !ok {
		return nil, fmt.Errorf("block %q: %w", o.Instance.Block, ErrNotFound)
	}

	xf := o.Instance.Transform
	layer := o.Layer
	var out []string
	for _, src := range b.Objects {
		c := src.clone()
		c.ID = ""
		c.transform(xf)
		if c.Layer == "" {
			c.Layer = layer
		}
		out = append(out, d.add(c))
	}
	d.Delete(id)
	return out, nil
}

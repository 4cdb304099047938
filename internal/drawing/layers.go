package drawing

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// DefaultLayer receives objects added without a layer.
const DefaultLayer = "Default"

// Layer is a document layer. Name is the full path, e.g. "Plan::Linework_Wall".
type Layer struct {
	Name       string    `json:"name"`
	Color      model.RGB `json:"color"`
	PrintColor model.RGB `json:"print_color"`
	PrintWidth float64   `json:"print_width"` // mm; NoPrint hides, 0 is default
	Linetype   string    `json:"linetype,omitempty"`
	Locked     bool      `json:"locked,omitempty"`
	Hidden     bool      `json:"hidden,omitempty"`
}

// Parent returns the full name of the parent layer, or "" for top-level layers.
func (l *Layer) Parent() string {
	return ParentName(l.Name)
}

// ShortName returns the last path component.
func (l *Layer) ShortName() string {
	i := strings.LastIndex(l.Name, model.LayerSeparator)
	if i < 0 {
		return l.Name
	}
	return l.Name[i+len(model.LayerSeparator):]
}

// ParentName returns the parent path of a full layer name.
func ParentName(name string) string {
	i := strings.LastIndex(name, model.LayerSeparator)
	if i < 0 {
		return ""
	}
	return name[:i]
}

func (d *Document) ensureLayer(name string) *Layer {
	if l, ok := d.layers[name]; ok {
		return l
	}
	if parent := ParentName(name); parent != "" {
		d.ensureLayer(parent)
	}
	l := &Layer{Name: name}
	d.layers[name] = l
	d.layerOrder = append(d.layerOrder, name)
	return l
}

// AddLayer creates a layer and any missing parents. An existing layer keeps
// its properties and is returned unchanged.
func (d *Document) AddLayer(name string, color model.RGB) *Layer {
	if l, ok := d.layers[name]; ok {
		return l
	}
	l := d.ensureLayer(name)
	l.Color = color
	return l
}

// Layer returns the named layer.
func (d *Document) Layer(name string) (*Layer, bool) {
	l, ok := d.layers[name]
	return l, ok
}

// LayerNames returns every layer name in creation order.
func (d *Document) LayerNames() []string {
	return append([]string(nil), d.layerOrder...)
}

// LayerChildren returns the direct children of a layer in creation order.
func (d *Document) LayerChildren(name string) []string {
	var out []string
	for _, n := range d.layerOrder {
		if ParentName(n) == name {
			out = append(out, n)
		}
	}
	return out
}

// LayerOf returns the layer of an object.
func (d *Document) LayerOf(id string) (string, error) {
	o, err := d.object(id)
	if err != nil {
		return "", err
	}
	return o.Layer, nil
}

// LayerPrintWidth returns the print width of a layer in mm.
func (d *Document) LayerPrintWidth(name string) (float64, error) {
	l, ok := d.layers[name]
	if !ok {
		return 0, fmt.Errorf("layer %q: %w", name, ErrNotFound)
	}
	return l.PrintWidth, nil
}

// SetLayerPrint sets the print color and width of a layer.
func (d *Document) SetLayerPrint(name string, color model.RGB, widthMM float64) error {
	l, ok := d.layers[name]
	if !ok {
		return fmt.Errorf("layer %q: %w", name, ErrNotFound)
	}
	l.PrintColor = color
	l.PrintWidth = widthMM
	return nil
}

// DeleteLayer removes a layer that has no objects and no children.
func (d *Document) DeleteLayer(name string) error {
	if _, ok := d.layers[name]; !ok {
		return fmt.Errorf("layer %q: %w", name, ErrNotFound)
	}
	if len(d.LayerChildren(name)) > 0 || len(d.ObjectsByLayer(name)) > 0 {
		return fmt.Errorf("layer %q: %w", name, ErrLayerNotEmpty)
	}
	for _, b := range d.blocks {
		for _, o := range b.Objects {
			if o.Layer == name {
				return fmt.Errorf("layer %q used by block %q: %w", name, b.Name, ErrLayerNotEmpty)
			}
		}
	}
	delete(d.layers, name)
	for i, n := range d.layerOrder {
		if n == name {
			d.layerOrder = append(d.layerOrder[:i], d.layerOrder[i+1:]...)
			break
		}
	}
	return nil
}

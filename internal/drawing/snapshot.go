package drawing

// GroupSnapshot is the serialised form of a group.
type GroupSnapshot struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Members []string `json:"members"`
}

// Snapshot is a self-contained copy of a document, suitable for JSON.
type Snapshot struct {
	Layers    []Layer         `json:"layers"`
	Objects   []Object        `json:"objects"`
	Blocks    []BlockDef      `json:"blocks"`
	Groups    []GroupSnapshot `json:"groups"`
	Selection []string        `json:"selection,omitempty"`
}

// Snapshot copies the document's state.
func (d *Document) Snapshot() Snapshot {
	var s Snapshot
	for _, name := range d.layerOrder {
		s.Layers = append(s.Layers, *d.layers[name])
	}
	for _, id := range d.order {
		s.Objects = append(s.Objects, *d.objects[id].clone())
	}
	for _, name := range d.blockOrder {
		b := d.blocks[name]
		def := BlockDef{Name: b.Name}
		for _, o := range b.Objects {
			def.Objects = append(def.Objects, o.clone())
		}
		s.Blocks = append(s.Blocks, def)
	}
	for _, gid := range d.Groups() {
		g := d.groups[gid]
		s.Groups = append(s.Groups, GroupSnapshot{ID: gid, Name: g.name, Members: append([]string(nil), g.members...)})
	}
	s.Selection = d.Selected()
	return s
}

// FromSnapshot rebuilds a document. IDs are preserved.
func FromSnapshot(s Snapshot) *Document {
	d := New()
	for _, l := range s.Layers {
		layer := l
		if _, ok := d.layers[layer.Name]; ok {
			*d.layers[layer.Name] = layer
			continue
		}
		d.layers[layer.Name] = &layer
		d.layerOrder = append(d.layerOrder, layer.Name)
	}
	for _, b := range s.Blocks {
		def := &BlockDef{Name: b.Name}
		for _, o := range b.Objects {
			def.Objects = append(def.Objects, o.clone())
		}
		d.blocks[b.Name] = def
		d.blockOrder = append(d.blockOrder, b.Name)
	}
	for i := range s.Objects {
		d.add(s.Objects[i].clone())
	}
	for _, g := range s.Groups {
		d.groups[g.ID] = &group{name: g.Name, members: append([]string(nil), g.Members...)}
		d.groupOrder = append(d.groupOrder, g.ID)
	}
	d.Select(s.Selection)
	return d
}

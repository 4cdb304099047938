package drawing

type group struct {
	name    string
	members []string
}

// Group creates an unnamed group of the given objects and returns its ID.
// Unknown IDs are skipped.
func (d *Document) Group(ids []string) string {
	return d.NamedGroup("", ids)
}

// NamedGroup creates a group with a display name. Names need not be unique.
func (d *Document) NamedGroup(name string, ids []string) string {
	gid := newID()
	g := &group{name: name}
	for _, id := range ids {
		if _, ok := d.objects[id]; ok {
			g.members = append(g.members, id)
		}
	}
	d.groups[gid] = g
	d.groupOrder = append(d.groupOrder, gid)
	return gid
}

// AddToGroup appends objects to an existing group.
func (d *Document) AddToGroup(gid string, ids ...string) bool {
	g, ok := d.groups[gid]
	if !ok {
		return false
	}
	for _, id := range ids {
		if _, ok := d.objects[id]; ok {
			g.members = append(g.members, id)
		}
	}
	return true
}

// Groups returns all group IDs in creation order.
func (d *Document) Groups() []string {
	out := make([]string, 0, len(d.groupOrder))
	for _, gid := range d.groupOrder {
		if _, ok := d.groups[gid]; ok {
			out = append(out, gid)
		}
	}
	return out
}

// GroupName returns the display name of a group.
func (d *Document) GroupName(gid string) string {
	if g, ok := d.groups[gid]; ok {
		return g.name
	}
	return ""
}

// GroupMembers returns the objects of a group.
func (d *Document) GroupMembers(gid string) []string {
	g, ok := d.groups[gid]
	if !ok {
		return nil
	}
	return append([]string(nil), g.members...)
}

// ObjectGroups returns the groups an object belongs to, in creation order.
func (d *Document) ObjectGroups(id string) []string {
	var out []string
	for _, gid := range d.groupOrder {
		g, ok := d.groups[gid]
		if !ok {
			continue
		}
		for _, m := range g.members {
			if m == id {
				out = append(out, gid)
				break
			}
		}
	}
	return out
}

// Select replaces the selection.
func (d *Document) Select(ids []string) {
	d.selection = d.selection[:0]
	for _, id := range ids {
		if _, ok := d.objects[id]; ok {
			d.selection = append(d.selection, id)
		}
	}
}

// UnselectAll clears the selection.
func (d *Document) UnselectAll() {
	d.selection = nil
}

// Selected returns the current selection.
func (d *Document) Selected() []string {
	return append([]string(nil), d.selection...)
}

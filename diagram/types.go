// Package diagram holds the in-memory schematic model the router reads and the undo log mutates.
package diagram

import (
	"errors"
	"fmt"
	"sort"

	"wireroute/core"
)

var (
	ErrNoSuchWire         = errors.New("no such wire")
	ErrWireExists         = errors.New("wire already exists")
	ErrNoSuchComponent    = errors.New("no such component")
	ErrComponentExists    = errors.New("component already exists")
	ErrInvalidWire        = errors.New("wire is not axis-parallel or has zero length")
	ErrCannotInsertHandle = errors.New("cannot insert handle")
	ErrCannotDeleteHandle = errors.New("cannot delete handle")
)

// Pin is a connection point on a component, relative to its top-left corner.
// Dir is the direction a wire leaves the pin.
type Pin struct {
	Offset core.Location
	Dir    core.Direction
}

// Component is a box with pins on its outline.
type Component struct {
	ID     string
	Loc    core.Location // top-left corner
	Width  int
	Height int
	Pins   []Pin
}

// Bounds returns the component outline. Max is exclusive.
func (c Component) Bounds() core.Bounds {
	return core.Bounds{Min: c.Loc, Max: c.Loc.Add(c.Width, c.Height)}
}

// Occupies reports whether loc lies on or inside the component outline.
func (c Component) Occupies(loc core.Location) bool {
	return loc.X >= c.Loc.X && loc.X <= c.Loc.X+c.Width &&
		loc.Y >= c.Loc.Y && loc.Y <= c.Loc.Y+c.Height
}

// PinLocations returns the absolute location of every pin, in pin order.
func (c Component) PinLocations() []core.Location {
	locs := make([]core.Location, len(c.Pins))
	for i, p := range c.Pins {
		locs[i] = c.Loc.Add(p.Offset.X, p.Offset.Y)
	}
	return locs
}

// HasPinAt reports whether one of the component's pins sits at loc.
func (c Component) HasPinAt(loc core.Location) bool {
	for _, p := range c.PinLocations() {
		if p == loc {
			return true
		}
	}
	return false
}

func (c Component) clone() *Component {
	cp := c
	cp.Pins = append([]Pin(nil), c.Pins...)
	return &cp
}

// Diagram is a mutable set of wires and components. It is single-writer: callers
// confine mutation to one goroutine and hand Snapshots to other goroutines.
type Diagram struct {
	wires      map[core.Wire]struct{}
	components map[string]*Component
	revision   uint64
}

// New creates an empty diagram.
func New() *Diagram {
	return &Diagram{
		wires:      make(map[core.Wire]struct{}),
		components: make(map[string]*Component),
	}
}

// Revision increases on every successful mutation.
func (d *Diagram) Revision() uint64 {
	return d.revision
}

// AddWire inserts a wire.
func (d *Diagram) AddWire(w core.Wire) error {
	w = core.NewWire(w.E0, w.E1)
	if !w.IsAxisParallel() || w.Length() == 0 {
		return fmt.Errorf("add %v: %w", w, ErrInvalidWire)
	}
	if _, ok := d.wires[w]; ok {
		return fmt.Errorf("add %v: %w", w, ErrWireExists)
	}
	d.wires[w] = struct{}{}
	d.revision++
	return nil
}

// RemoveWire deletes a wire.
func (d *Diagram) RemoveWire(w core.Wire) error {
	w = core.NewWire(w.E0, w.E1)
	if _, ok := d.wires[w]; !ok {
		return fmt.Errorf("remove %v: %w", w, ErrNoSuchWire)
	}
	delete(d.wires, w)
	d.revision++
	return nil
}

// HasWire reports whether the exact wire is present.
func (d *Diagram) HasWire(w core.Wire) bool {
	_, ok := d.wires[core.NewWire(w.E0, w.E1)]
	return ok
}

// Wires returns all wires in canonical order.
func (d *Diagram) Wires() []core.Wire {
	ws := make([]core.Wire, 0, len(d.wires))
	for w := range d.wires {
		ws = append(ws, w)
	}
	sortWires(ws)
	return ws
}

// WiresAt returns the wires that touch loc, either ending there or passing through.
func (d *Diagram) WiresAt(loc core.Location) []core.Wire {
	var ws []core.Wire
	for w := range d.wires {
		if w.Contains(loc) {
			ws = append(ws, w)
		}
	}
	sortWires(ws)
	return ws
}

// WiresEndingAt returns the wires with an end at loc.
func (d *Diagram) WiresEndingAt(loc core.Location) []core.Wire {
	var ws []core.Wire
	for w := range d.wires {
		if w.EndsAt(loc) {
			ws = append(ws, w)
		}
	}
	sortWires(ws)
	return ws
}

// IsConnected reports whether a wire leaves loc heading in dir.
func (d *Diagram) IsConnected(loc core.Location, dir core.Direction) bool {
	next := loc.Translate(dir, 1)
	for w := range d.wires {
		if w.Contains(loc) && w.Contains(next) {
			return true
		}
	}
	return false
}

// AddComponent inserts a component. The diagram keeps its own copy.
func (d *Diagram) AddComponent(c Component) error {
	if _, ok := d.components[c.ID]; ok {
		return fmt.Errorf("add component %s: %w", c.ID, ErrComponentExists)
	}
	d.components[c.ID] = c.clone()
	d.revision++
	return nil
}

// RemoveComponent deletes a component.
func (d *Diagram) RemoveComponent(id string) error {
	if _, ok := d.components[id]; !ok {
		return fmt.Errorf("remove component %s: %w", id, ErrNoSuchComponent)
	}
	delete(d.components, id)
	d.revision++
	return nil
}

// Component returns a copy of the component with the given ID.
func (d *Diagram) Component(id string) (Component, bool) {
	c, ok := d.components[id]
	if !ok {
		return Component{}, false
	}
	return *c.clone(), true
}

// Components returns copies of all components ordered by ID.
func (d *Diagram) Components() []Component {
	cs := make([]Component, 0, len(d.components))
	for _, c := range d.components {
		cs = append(cs, *c.clone())
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	return cs
}

// ComponentAt returns the component whose outline contains loc.
func (d *Diagram) ComponentAt(loc core.Location) (Component, bool) {
	for _, c := range d.Components() {
		if c.Occupies(loc) {
			return c, true
		}
	}
	return Component{}, false
}

// PinsAt returns the IDs of components that have a pin at loc.
func (d *Diagram) PinsAt(loc core.Location) []string {
	var ids []string
	for id, c := range d.components {
		if c.HasPinAt(loc) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// TranslateComponents moves every listed component by (dx, dy). Either all move or none.
func (d *Diagram) TranslateComponents(ids []string, dx, dy int) error {
	for _, id := range ids {
		if _, ok := d.components[id]; !ok {
			return fmt.Errorf("translate %s: %w", id, ErrNoSuchComponent)
		}
	}
	for _, id := range ids {
		c := d.components[id]
		c.Loc = c.Loc.Add(dx, dy)
	}
	d.revision++
	return nil
}

// Replace applies a replacement map atomically: removals must exist, additions must not.
func (d *Diagram) Replace(m *ReplacementMap) error {
	if m == nil || m.IsEmpty() {
		return nil
	}
	removals := m.Removals()
	additions := m.Additions()
	gone := make(map[core.Wire]bool, len(removals))
	for _, w := range removals {
		if _, ok := d.wires[w]; !ok {
			return fmt.Errorf("replace: remove %v: %w", w, ErrNoSuchWire)
		}
		gone[w] = true
	}
	for _, w := range additions {
		if !w.IsAxisParallel() || w.Length() == 0 {
			return fmt.Errorf("replace: add %v: %w", w, ErrInvalidWire)
		}
		if _, ok := d.wires[w]; ok && !gone[w] {
			return fmt.Errorf("replace: add %v: %w", w, ErrWireExists)
		}
	}
	for _, w := range removals {
		delete(d.wires, w)
	}
	for _, w := range additions {
		d.wires[w] = struct{}{}
	}
	d.revision++
	return nil
}

// Clone creates a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	clone := &Diagram{
		wires:      make(map[core.Wire]struct{}, len(d.wires)),
		components: make(map[string]*Component, len(d.components)),
		revision:   d.revision,
	}
	for w := range d.wires {
		clone.wires[w] = struct{}{}
	}
	for id, c := range d.components {
		clone.components[id] = c.clone()
	}
	return clone
}

// Equal reports whether both diagrams hold the same wires and components.
// Revisions are ignored.
func (d *Diagram) Equal(o *Diagram) bool {
	if len(d.wires) != len(o.wires) || len(d.components) != len(o.components) {
		return false
	}
	for w := range d.wires {
		if _, ok := o.wires[w]; !ok {
			return false
		}
	}
	for id, c := range d.components {
		oc, ok := o.components[id]
		if !ok || c.Loc != oc.Loc || c.Width != oc.Width || c.Height != oc.Height ||
			len(c.Pins) != len(oc.Pins) {
			return false
		}
		for i := range c.Pins {
			if c.Pins[i] != oc.Pins[i] {
				return false
			}
		}
	}
	return true
}

func sortWires(ws []core.Wire) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].E0 != ws[j].E0 {
			return ws[i].E0.Less(ws[j].E0)
		}
		return ws[i].E1.Less(ws[j].E1)
	})
}

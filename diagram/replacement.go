package diagram

import (
	"fmt"
	"io"

	"wireroute/core"
)

// ReplacementMap describes a batch of wire removals and additions, recording which new
// wires replace which old ones. Wires both removed and added cancel out.
type ReplacementMap struct {
	replacing map[core.Wire][]core.Wire
	removed   map[core.Wire]struct{}
	added     map[core.Wire]struct{}
}

// NewReplacementMap creates an empty map.
func NewReplacementMap() *ReplacementMap {
	return &ReplacementMap{
		replacing: make(map[core.Wire][]core.Wire),
		removed:   make(map[core.Wire]struct{}),
		added:     make(map[core.Wire]struct{}),
	}
}

// Put records that old is replaced by the given wires.
func (m *ReplacementMap) Put(old core.Wire, by ...core.Wire) {
	old = core.NewWire(old.E0, old.E1)
	m.removed[old] = struct{}{}
	for _, w := range by {
		w = core.NewWire(w.E0, w.E1)
		m.replacing[old] = append(m.replacing[old], w)
		m.added[w] = struct{}{}
	}
}

// Add records plain additions.
func (m *ReplacementMap) Add(ws ...core.Wire) {
	for _, w := range ws {
		m.added[core.NewWire(w.E0, w.E1)] = struct{}{}
	}
}

// Remove records plain removals.
func (m *ReplacementMap) Remove(ws ...core.Wire) {
	for _, w := range ws {
		m.removed[core.NewWire(w.E0, w.E1)] = struct{}{}
	}
}

// Merge folds every entry of o into m.
func (m *ReplacementMap) Merge(o *ReplacementMap) {
	if o == nil {
		return
	}
	for old, by := range o.replacing {
		m.Put(old, by...)
	}
	for w := range o.removed {
		m.removed[w] = struct{}{}
	}
	for w := range o.added {
		m.added[w] = struct{}{}
	}
}

// Additions returns the net wires added, in canonical order.
func (m *ReplacementMap) Additions() []core.Wire {
	var ws []core.Wire
	for w := range m.added {
		if _, gone := m.removed[w]; !gone {
			ws = append(ws, w)
		}
	}
	sortWires(ws)
	return ws
}

// Removals returns the net wires removed, in canonical order.
func (m *ReplacementMap) Removals() []core.Wire {
	var ws []core.Wire
	for w := range m.removed {
		if _, back := m.added[w]; !back {
			ws = append(ws, w)
		}
	}
	sortWires(ws)
	return ws
}

// Replaced returns the wires that have recorded replacements.
func (m *ReplacementMap) Replaced() []core.Wire {
	ws := make([]core.Wire, 0, len(m.replacing))
	for w := range m.replacing {
		ws = append(ws, w)
	}
	sortWires(ws)
	return ws
}

// ReplacedBy returns the wires replacing old.
func (m *ReplacementMap) ReplacedBy(old core.Wire) []core.Wire {
	by := append([]core.Wire(nil), m.replacing[core.NewWire(old.E0, old.E1)]...)
	sortWires(by)
	return by
}

// IsEmpty reports whether applying the map changes nothing.
func (m *ReplacementMap) IsEmpty() bool {
	return len(m.Additions()) == 0 && len(m.Removals()) == 0
}

// Inverse returns the map that undoes m.
func (m *ReplacementMap) Inverse() *ReplacementMap {
	inv := NewReplacementMap()
	for old, by := range m.replacing {
		for _, w := range by {
			inv.Put(w, old)
		}
	}
	for w := range m.removed {
		inv.added[w] = struct{}{}
	}
	for w := range m.added {
		inv.removed[w] = struct{}{}
	}
	return inv
}

// Clone returns an independent copy.
func (m *ReplacementMap) Clone() *ReplacementMap {
	cp := NewReplacementMap()
	cp.Merge(m)
	return cp
}

// Print writes a human readable listing of the map.
func (m *ReplacementMap) Print(out io.Writer) {
	printed := false
	for _, w := range m.Additions() {
		printed = true
		fmt.Fprintf(out, "add %v\n", w)
	}
	for _, w := range m.Removals() {
		printed = true
		fmt.Fprintf(out, "del %v\n", w)
	}
	for _, w := range m.Replaced() {
		printed = true
		fmt.Fprintf(out, "repl %v by", w)
		for _, by := range m.ReplacedBy(w) {
			fmt.Fprintf(out, " %v", by)
		}
		fmt.Fprintln(out)
	}
	if !printed {
		fmt.Fprintln(out, "no replacements")
	}
}

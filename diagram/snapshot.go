package diagram

import "wireroute/core"

// Snapshot is a read-only copy of a diagram that may be handed to other goroutines.
type Snapshot struct {
	d *Diagram
}

// Snapshot captures the current contents of the diagram.
func (d *Diagram) Snapshot() *Snapshot {
	return &Snapshot{d: d.Clone()}
}

// Revision is the diagram revision the snapshot was taken at.
func (s *Snapshot) Revision() uint64 { return s.d.Revision() }

func (s *Snapshot) Wires() []core.Wire                    { return s.d.Wires() }
func (s *Snapshot) WiresAt(loc core.Location) []core.Wire { return s.d.WiresAt(loc) }
func (s *Snapshot) HasWire(w core.Wire) bool              { return s.d.HasWire(w) }
func (s *Snapshot) Components() []Component               { return s.d.Components() }
func (s *Snapshot) Component(id string) (Component, bool) { return s.d.Component(id) }
func (s *Snapshot) PinsAt(loc core.Location) []string     { return s.d.PinsAt(loc) }
func (s *Snapshot) WiresEndingAt(loc core.Location) []core.Wire {
	return s.d.WiresEndingAt(loc)
}

// IsConnected reports whether a wire leaves loc heading in dir.
func (s *Snapshot) IsConnected(loc core.Location, dir core.Direction) bool {
	return s.d.IsConnected(loc, dir)
}

// Diagram returns a mutable copy of the snapshot.
func (s *Snapshot) Diagram() *Diagram {
	return s.d.Clone()
}

package diagram

import (
	"fmt"

	"wireroute/core"
)

// Handle identifies a draggable wire end.
type Handle struct {
	Wire core.Wire
	At   core.Location
}

func (h Handle) String() string {
	return fmt.Sprintf("%v@%v", h.Wire, h.At)
}

// MoveHandle drags one end of a wire by (dx, dy) and returns the handle at its new position.
// The wire must stay axis-parallel with non-zero length.
func (d *Diagram) MoveHandle(h Handle, dx, dy int) (Handle, error) {
	w := core.NewWire(h.Wire.E0, h.Wire.E1)
	if _, ok := d.wires[w]; !ok {
		return h, fmt.Errorf("move handle %v: %w", h, ErrNoSuchWire)
	}
	if !w.EndsAt(h.At) {
		return h, fmt.Errorf("move handle %v: not an end of the wire: %w", h, ErrNoSuchWire)
	}
	moved := h.At.Add(dx, dy)
	nw := core.NewWire(w.OtherEnd(h.At), moved)
	if !nw.IsAxisParallel() || nw.Length() == 0 {
		return h, fmt.Errorf("move handle %v by (%d,%d): %w", h, dx, dy, ErrInvalidWire)
	}
	if nw == w {
		return h, nil
	}
	if _, ok := d.wires[nw]; ok {
		return h, fmt.Errorf("move handle %v: %w", h, ErrWireExists)
	}
	delete(d.wires, w)
	d.wires[nw] = struct{}{}
	d.revision++
	return Handle{Wire: nw, At: moved}, nil
}

// CanInsertHandle reports whether w can be split at a grid point strictly inside it.
func (d *Diagram) CanInsertHandle(w core.Wire, at core.Location) bool {
	w = core.NewWire(w.E0, w.E1)
	if _, ok := d.wires[w]; !ok {
		return false
	}
	if !w.Contains(at) || w.EndsAt(at) || !at.OnGrid(core.GridPitch) {
		return false
	}
	_, dupA := d.wires[core.NewWire(w.E0, at)]
	_, dupB := d.wires[core.NewWire(at, w.E1)]
	return !dupA && !dupB
}

// InsertHandle splits w into two collinear wires meeting at at.
func (d *Diagram) InsertHandle(w core.Wire, at core.Location) error {
	if !d.CanInsertHandle(w, at) {
		return fmt.Errorf("insert handle %v on %v: %w", at, w, ErrCannotInsertHandle)
	}
	w = core.NewWire(w.E0, w.E1)
	delete(d.wires, w)
	d.wires[core.NewWire(w.E0, at)] = struct{}{}
	d.wires[core.NewWire(at, w.E1)] = struct{}{}
	d.revision++
	return nil
}

// RejoinWire reverses InsertHandle: the two halves of w split at at are replaced by w.
// Unlike DeleteHandle it ignores other wires and pins touching at.
func (d *Diagram) RejoinWire(w core.Wire, at core.Location) error {
	w = core.NewWire(w.E0, w.E1)
	a, b := core.NewWire(w.E0, at), core.NewWire(at, w.E1)
	_, okA := d.wires[a]
	_, okB := d.wires[b]
	if !okA || !okB || !w.Contains(at) || w.EndsAt(at) {
		return fmt.Errorf("rejoin %v at %v: %w", w, at, ErrNoSuchWire)
	}
	if _, ok := d.wires[w]; ok {
		return fmt.Errorf("rejoin %v at %v: %w", w, at, ErrWireExists)
	}
	delete(d.wires, a)
	delete(d.wires, b)
	d.wires[w] = struct{}{}
	d.revision++
	return nil
}

// CanDeleteHandle reports whether exactly two collinear wires meet at at with nothing
// else attached there, so they can be joined into one.
func (d *Diagram) CanDeleteHandle(at core.Location) bool {
	_, _, ok := d.joinable(at)
	return ok
}

// DeleteHandle joins the two collinear wires meeting at at and returns the joined wire.
func (d *Diagram) DeleteHandle(at core.Location) (core.Wire, error) {
	a, b, ok := d.joinable(at)
	if !ok {
		return core.Wire{}, fmt.Errorf("delete handle %v: %w", at, ErrCannotDeleteHandle)
	}
	joined := core.NewWire(a.OtherEnd(at), b.OtherEnd(at))
	delete(d.wires, a)
	delete(d.wires, b)
	d.wires[joined] = struct{}{}
	d.revision++
	return joined, nil
}

func (d *Diagram) joinable(at core.Location) (core.Wire, core.Wire, bool) {
	touching := d.WiresAt(at)
	if len(touching) != 2 || len(d.PinsAt(at)) > 0 {
		return core.Wire{}, core.Wire{}, false
	}
	a, b := touching[0], touching[1]
	if !a.EndsAt(at) || !b.EndsAt(at) || !a.IsParallel(b) {
		return core.Wire{}, core.Wire{}, false
	}
	if a.DirectionFrom(at) == b.DirectionFrom(at) {
		return core.Wire{}, core.Wire{}, false
	}
	if _, ok := d.wires[core.NewWire(a.OtherEnd(at), b.OtherEnd(at))]; ok {
		return core.Wire{}, core.Wire{}, false
	}
	return a, b, true
}

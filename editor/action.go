package editor

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"wireroute/core"
	"wireroute/diagram"
)

// Action is one reversible edit of a diagram. The set of kinds is closed: MoveHandle,
// InsertHandle, DeleteHandle, TranslateComponents, Replace and Union.
type Action interface {
	Name() string
	IsModification() bool
	Do(d *diagram.Diagram) error
	Undo(d *diagram.Diagram) error

	sealed()
}

// MoveHandle drags one end of a wire.
type MoveHandle struct {
	Handle diagram.Handle
	Dx, Dy int

	moved diagram.Handle
}

// NewMoveHandle creates the action. Do must run before Undo.
func NewMoveHandle(h diagram.Handle, dx, dy int) *MoveHandle {
	return &MoveHandle{Handle: h, Dx: dx, Dy: dy, moved: movedHandle(h, dx, dy)}
}

func movedHandle(h diagram.Handle, dx, dy int) diagram.Handle {
	at := h.At.Add(dx, dy)
	return diagram.Handle{Wire: core.NewWire(h.Wire.OtherEnd(h.At), at), At: at}
}

func (a *MoveHandle) Name() string         { return "Move wire end" }
func (a *MoveHandle) IsModification() bool { return a.Dx != 0 || a.Dy != 0 }
func (a *MoveHandle) sealed()              {}

func (a *MoveHandle) Do(d *diagram.Diagram) error {
	moved, err := d.MoveHandle(a.Handle, a.Dx, a.Dy)
	if err != nil {
		return err
	}
	a.moved = moved
	return nil
}

func (a *MoveHandle) Undo(d *diagram.Diagram) error {
	_, err := d.MoveHandle(a.moved, -a.Dx, -a.Dy)
	return err
}

// InsertHandle splits a wire in two at a point.
type InsertHandle struct {
	Wire core.Wire
	At   core.Location
}

func (a *InsertHandle) Name() string         { return "Add wire handle" }
func (a *InsertHandle) IsModification() bool { return true }
func (a *InsertHandle) sealed()              {}

func (a *InsertHandle) Do(d *diagram.Diagram) error {
	return d.InsertHandle(a.Wire, a.At)
}

func (a *InsertHandle) Undo(d *diagram.Diagram) error {
	if err := d.RejoinWire(a.Wire, a.At); err != nil {
		return fmt.Errorf("undo insert handle: %w", err)
	}
	return nil
}

// DeleteHandle joins the two collinear wires meeting at a point.
type DeleteHandle struct {
	At core.Location

	joined core.Wire
}

func (a *DeleteHandle) Name() string         { return "Remove wire handle" }
func (a *DeleteHandle) IsModification() bool { return true }
func (a *DeleteHandle) sealed()              {}

func (a *DeleteHandle) Do(d *diagram.Diagram) error {
	joined, err := d.DeleteHandle(a.At)
	if err != nil {
		return err
	}
	a.joined = joined
	return nil
}

func (a *DeleteHandle) Undo(d *diagram.Diagram) error {
	if !d.CanInsertHandle(a.joined, a.At) {
		return fmt.Errorf("undo delete handle %v: %w", a.At, diagram.ErrCannotInsertHandle)
	}
	return d.InsertHandle(a.joined, a.At)
}

// TranslateComponents moves a set of components rigidly.
type TranslateComponents struct {
	IDs    []string
	Dx, Dy int
}

// NewTranslateComponents creates the action with a sorted copy of ids.
func NewTranslateComponents(ids []string, dx, dy int) *TranslateComponents {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return &TranslateComponents{IDs: sorted, Dx: dx, Dy: dy}
}

func (a *TranslateComponents) Name() string {
	if len(a.IDs) == 1 {
		return "Move " + a.IDs[0]
	}
	return fmt.Sprintf("Move %d components", len(a.IDs))
}

func (a *TranslateComponents) IsModification() bool { return a.Dx != 0 || a.Dy != 0 }
func (a *TranslateComponents) sealed()              {}

func (a *TranslateComponents) Do(d *diagram.Diagram) error {
	return d.TranslateComponents(a.IDs, a.Dx, a.Dy)
}

func (a *TranslateComponents) Undo(d *diagram.Diagram) error {
	return d.TranslateComponents(a.IDs, -a.Dx, -a.Dy)
}

// Replace applies a batch of wire removals and additions.
type Replace struct {
	Map *diagram.ReplacementMap
}

func (a *Replace) Name() string         { return "Reroute wires" }
func (a *Replace) IsModification() bool { return a.Map != nil && !a.Map.IsEmpty() }
func (a *Replace) sealed()              {}

func (a *Replace) Do(d *diagram.Diagram) error {
	return d.Replace(a.Map)
}

func (a *Replace) Undo(d *diagram.Diagram) error {
	if a.Map == nil {
		return nil
	}
	return d.Replace(a.Map.Inverse())
}

// Union runs its parts as one action: in order on Do, in reverse order on Undo.
// A failing part rolls back the parts already applied.
type Union struct {
	Label string
	Parts []Action
}

// NewUnion joins actions into one undo entry.
func NewUnion(label string, parts ...Action) *Union {
	return &Union{Label: label, Parts: parts}
}

func (a *Union) Name() string {
	if a.Label != "" || len(a.Parts) == 0 {
		return a.Label
	}
	return a.Parts[0].Name()
}

func (a *Union) IsModification() bool {
	return slices.ContainsFunc(a.Parts, Action.IsModification)
}

func (a *Union) sealed() {}

func (a *Union) Do(d *diagram.Diagram) error {
	for i, p := range a.Parts {
		if err := p.Do(d); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = a.Parts[j].Undo(d)
			}
			return fmt.Errorf("%s: %w", a.Name(), err)
		}
	}
	return nil
}

func (a *Union) Undo(d *diagram.Diagram) error {
	for i := len(a.Parts) - 1; i >= 0; i-- {
		if err := a.Parts[i].Undo(d); err != nil {
			for j := i + 1; j < len(a.Parts); j++ {
				_ = a.Parts[j].Do(d)
			}
			return fmt.Errorf("undo %s: %w", a.Name(), err)
		}
	}
	return nil
}

// tryMerge combines next into prev when both target the same thing. A merged result of
// nil means the two actions cancel out.
func tryMerge(prev, next Action) (Action, bool) {
	switch p := prev.(type) {
	case *MoveHandle:
		n, ok := next.(*MoveHandle)
		if !ok || n.Handle != p.moved {
			return nil, false
		}
		dx, dy := p.Dx+n.Dx, p.Dy+n.Dy
		if dx == 0 && dy == 0 {
			return nil, true
		}
		return &MoveHandle{Handle: p.Handle, Dx: dx, Dy: dy, moved: n.moved}, true

	case *TranslateComponents:
		n, ok := next.(*TranslateComponents)
		if !ok || !sameIDs(p.IDs, n.IDs) {
			return nil, false
		}
		dx, dy := p.Dx+n.Dx, p.Dy+n.Dy
		if dx == 0 && dy == 0 {
			return nil, true
		}
		return &TranslateComponents{IDs: p.IDs, Dx: dx, Dy: dy}, true
	}
	return nil, false
}

func sameIDs(a, b []string) bool {
	a = slices.Clone(a)
	slices.Sort(a)
	b = slices.Clone(b)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// describe renders an action for logs.
func describe(a Action) string {
	switch v := a.(type) {
	case *MoveHandle:
		return fmt.Sprintf("%s %v by (%d,%d)", v.Name(), v.Handle, v.Dx, v.Dy)
	case *TranslateComponents:
		return fmt.Sprintf("%s by (%d,%d)", v.Name(), v.Dx, v.Dy)
	case *Union:
		parts := make([]string, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = describe(p)
		}
		return v.Name() + "[" + strings.Join(parts, "; ") + "]"
	default:
		return a.Name()
	}
}

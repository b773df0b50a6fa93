// Package validation checks that a diagram satisfies the routing grid rules.
package validation

import (
	"errors"
	"fmt"

	"wireroute/core"
	"wireroute/diagram"
)

// Validator validates that diagrams follow the wire grid rules.
type Validator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	pitch      int  // Grid pitch endpoints and pins must snap to
	strictMode bool // Also report dangling wire ends and wires crossing components
}

// ValidationError represents a validation error with location information.
type ValidationError struct {
	At      core.Location
	Subject string
	Message string
}

// NewValidator creates a new validator with default settings.
func NewValidator() *Validator {
	return &Validator{pitch: core.GridPitch}
}

// SetStrictMode enables or disables strict validation.
func (v *Validator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// SetPitch changes the grid pitch checked against.
func (v *Validator) SetPitch(pitch int) {
	if pitch > 0 {
		v.pitch = pitch
	}
}

// Validate checks a diagram and returns every violation found, wires first.
func (v *Validator) Validate(d *diagram.Diagram) []ValidationError {
	v.errors = nil

	wires := d.Wires()
	for _, w := range wires {
		v.checkWire(w)
	}
	v.checkOverlaps(wires)
	for _, c := range d.Components() {
		v.checkComponent(c)
	}
	if v.strictMode {
		v.checkDangling(d, wires)
		v.checkCrossings(d, wires)
	}
	return v.errors
}

// Check returns the violations joined into one error, or nil.
func (v *Validator) Check(d *diagram.Diagram) error {
	var errs []error
	for _, e := range v.Validate(d) {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

func (v *Validator) checkWire(w core.Wire) {
	subject := w.String()
	if !w.IsAxisParallel() {
		v.addError(w.E0, subject, "Wire is not horizontal or vertical")
	}
	if w.Length() == 0 {
		v.addError(w.E0, subject, "Wire has zero length")
	}
	for _, end := range []core.Location{w.E0, w.E1} {
		if !end.OnGrid(v.pitch) {
			v.addError(end, subject, "Wire end is off the %d grid", v.pitch)
		}
		if end.X < 0 || end.Y < 0 {
			v.addError(end, subject, "Wire end has a negative coordinate")
		}
	}
}

// checkOverlaps reports collinear wires sharing more than an end point.
func (v *Validator) checkOverlaps(wires []core.Wire) {
	for i, a := range wires {
		for _, b := range wires[i+1:] {
			if !a.IsParallel(b) {
				continue
			}
			if a.IsVertical() && a.E0.X != b.E0.X || !a.IsVertical() && a.E0.Y != b.E0.Y {
				continue
			}
			var lo, hi int
			if a.IsVertical() {
				lo, hi = max(a.E0.Y, b.E0.Y), min(a.E1.Y, b.E1.Y)
			} else {
				lo, hi = max(a.E0.X, b.E0.X), min(a.E1.X, b.E1.X)
			}
			if lo < hi {
				v.addError(b.E0, a.String(), "Wire overlaps %v", b)
			}
		}
	}
}

func (v *Validator) checkComponent(c diagram.Component) {
	if c.Loc.X < 0 || c.Loc.Y < 0 {
		v.addError(c.Loc, c.ID, "Component has a negative coordinate")
	}
	for _, p := range c.PinLocations() {
		if !p.OnGrid(v.pitch) {
			v.addError(p, c.ID, "Pin is off the %d grid", v.pitch)
		}
	}
}

// checkDangling reports wire ends touching neither a pin nor another wire.
func (v *Validator) checkDangling(d *diagram.Diagram, wires []core.Wire) {
	for _, w := range wires {
		for _, end := range []core.Location{w.E0, w.E1} {
			if len(d.PinsAt(end)) == 0 && len(d.WiresAt(end)) < 2 {
				v.addError(end, w.String(), "Wire end is not connected")
			}
		}
	}
}

// checkCrossings reports wires running through a component body other than at a pin.
func (v *Validator) checkCrossings(d *diagram.Diagram, wires []core.Wire) {
	for _, c := range d.Components() {
		for _, w := range wires {
			for _, p := range w.Points(v.pitch) {
				if c.Occupies(p) && !c.HasPinAt(p) {
					v.addError(p, w.String(), "Wire crosses component %s", c.ID)
					break
				}
			}
		}
	}
}

// addError adds a validation error.
func (v *Validator) addError(at core.Location, subject, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		At:      at,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("%v [%s]: %s", e.At, e.Subject, e.Message)
}

func (e ValidationError) Error() string {
	return e.String()
}

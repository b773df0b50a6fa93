package validation

import (
	"strings"
	"testing"

	"wireroute/core"
	"wireroute/diagram"
)

func buildDiagram(t *testing.T, wires []core.Wire, comps ...diagram.Component) *diagram.Diagram {
	t.Helper()
	d := diagram.New()
	for _, w := range wires {
		if err := d.AddWire(w); err != nil {
			t.Fatalf("AddWire(%v): %v", w, err)
		}
	}
	for _, c := range comps {
		if err := d.AddComponent(c); err != nil {
			t.Fatalf("AddComponent(%s): %v", c.ID, err)
		}
	}
	return d
}

func TestValidator_Basic(t *testing.T) {
	tests := []struct {
		name    string
		wires   []core.Wire
		comps   []diagram.Component
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid wires",
			wires: []core.Wire{core.NewWire(core.Loc(0, 0), core.Loc(50, 0)), core.NewWire(core.Loc(50, 0), core.Loc(50, 30))},
		},
		{
			name:    "off grid end",
			wires:   []core.Wire{core.NewWire(core.Loc(0, 0), core.Loc(15, 0))},
			wantErr: true,
			errMsg:  "off the 10 grid",
		},
		{
			name:    "negative coordinate",
			wires:   []core.Wire{core.NewWire(core.Loc(-10, 0), core.Loc(10, 0))},
			wantErr: true,
			errMsg:  "negative coordinate",
		},
		{
			name: "overlapping collinear wires",
			wires: []core.Wire{
				core.NewWire(core.Loc(0, 0), core.Loc(40, 0)),
				core.NewWire(core.Loc(20, 0), core.Loc(60, 0)),
			},
			wantErr: true,
			errMsg:  "overlaps",
		},
		{
			name: "touching collinear wires",
			wires: []core.Wire{
				core.NewWire(core.Loc(0, 0), core.Loc(20, 0)),
				core.NewWire(core.Loc(20, 0), core.Loc(60, 0)),
			},
		},
		{
			name: "pin off grid",
			comps: []diagram.Component{{ID: "U1", Loc: core.Loc(0, 0), Width: 20, Height: 20,
				Pins: []diagram.Pin{{Offset: core.Loc(0, 5), Dir: core.West}}}},
			wantErr: true,
			errMsg:  "Pin is off",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			errors := v.Validate(buildDiagram(t, tt.wires, tt.comps...))

			if tt.wantErr && len(errors) == 0 {
				t.Errorf("expected errors but got none")
			}
			if !tt.wantErr && len(errors) > 0 {
				t.Errorf("unexpected errors: %v", errors)
			}
			if tt.wantErr && tt.errMsg != "" {
				found := false
				for _, err := range errors {
					if strings.Contains(err.Message, tt.errMsg) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, errors)
				}
			}
		})
	}
}

func TestValidator_StrictMode(t *testing.T) {
	u1 := diagram.Component{ID: "U1", Loc: core.Loc(20, 0), Width: 20, Height: 20,
		Pins: []diagram.Pin{{Offset: core.Loc(0, 10), Dir: core.West}}}
	d := buildDiagram(t, []core.Wire{
		core.NewWire(core.Loc(0, 10), core.Loc(20, 10)),
		core.NewWire(core.Loc(30, 0), core.Loc(30, 40)),
	}, u1)

	v := NewValidator()
	if errs := v.Validate(d); len(errs) != 0 {
		t.Errorf("Default mode should not report connectivity: %v", errs)
	}

	v.SetStrictMode(true)
	errs := v.Validate(d)
	var dangling, crossing int
	for _, e := range errs {
		switch {
		case strings.Contains(e.Message, "not connected"):
			dangling++
		case strings.Contains(e.Message, "crosses component U1"):
			crossing++
		}
	}
	if dangling != 3 {
		t.Errorf("Expected 3 dangling ends, got %d: %v", dangling, errs)
	}
	if crossing != 1 {
		t.Errorf("Expected 1 crossing, got %d: %v", crossing, errs)
	}
}

func TestValidator_Check(t *testing.T) {
	d := buildDiagram(t, []core.Wire{core.NewWire(core.Loc(0, 0), core.Loc(15, 0))})
	err := NewValidator().Check(d)
	if err == nil || !strings.Contains(err.Error(), "w(0,0)-(15,0)") {
		t.Errorf("Check() = %v", err)
	}
	if err := NewValidator().Check(diagram.New()); err != nil {
		t.Errorf("Empty diagram: %v", err)
	}
}

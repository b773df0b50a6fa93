package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"wireroute/core"
	"wireroute/diagram"
)

const example = `
# amplifier stage
component U1 at (100,100) size (30,20)
  pin (0,10) west
  pin (30,10) east
component R1 at (200,100) size (20,20)
  pin (0,10) west
wire (0,110) (100,110)
wire (130,110) (200,110)
`

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader(example))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	u1, ok := d.Component("U1")
	if !ok {
		t.Fatal("U1 missing")
	}
	if u1.Loc != core.Loc(100, 100) || u1.Width != 30 || u1.Height != 20 {
		t.Errorf("Unexpected U1 %+v", u1)
	}
	wantPins := []diagram.Pin{
		{Offset: core.Loc(0, 10), Dir: core.West},
		{Offset: core.Loc(30, 10), Dir: core.East},
	}
	if len(u1.Pins) != 2 || u1.Pins[0] != wantPins[0] || u1.Pins[1] != wantPins[1] {
		t.Errorf("Pins = %v, want %v", u1.Pins, wantPins)
	}
	if !d.HasWire(core.NewWire(core.Loc(0, 110), core.Loc(100, 110))) {
		t.Errorf("Missing wire, got %v", d.Wires())
	}
	if ids := d.PinsAt(core.Loc(200, 110)); len(ids) != 1 || ids[0] != "R1" {
		t.Errorf("PinsAt(200,110) = %v", ids)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	d, err := Parse(strings.NewReader(example))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Format(&buf, d); err != nil {
		t.Fatalf("Format: %v", err)
	}
	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse formatted output: %v\n%s", err, buf.String())
	}
	if !d.Equal(again) {
		t.Errorf("Round trip changed the diagram")
	}
}

func TestFormatCanonical(t *testing.T) {
	d := diagram.New()
	d.AddWire(core.NewWire(core.Loc(20, 0), core.Loc(0, 0)))
	d.AddComponent(diagram.Component{ID: "A", Loc: core.Loc(10, 10), Width: 10, Height: 10,
		Pins: []diagram.Pin{{Offset: core.Loc(0, 0), Dir: core.North}}})

	var buf bytes.Buffer
	Format(&buf, d)
	want := "component A at (10,10) size (10,10)\n  pin (0,0) north\nwire (0,0) (20,0)\n"
	if buf.String() != want {
		t.Errorf("Format =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "syntax error",
			input:   "component U1 at (0,0)\n",
			wantMsg: "parse error",
		},
		{
			name:    "diagonal wire",
			input:   "wire (0,0) (10,10)\n",
			wantErr: diagram.ErrInvalidWire,
			wantMsg: "1:1",
		},
		{
			name:    "duplicate wire",
			input:   "wire (0,0) (10,0)\nwire (10,0) (0,0)\n",
			wantErr: diagram.ErrWireExists,
			wantMsg: "2:1",
		},
		{
			name:    "duplicate component",
			input:   "component A at (0,0) size (10,10)\ncomponent A at (50,0) size (10,10)\n",
			wantErr: diagram.ErrComponentExists,
		},
		{
			name:    "unknown direction",
			input:   "component A at (0,0) size (10,10)\n  pin (0,0) up\n",
			wantMsg: "unknown direction",
		},
		{
			name:    "empty component",
			input:   "component A at (0,0) size (0,10)\n",
			wantMsg: "empty size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Error %v is not %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseDirectionNamedComponents(t *testing.T) {
	input := "component north at (0,0) size (20,20)\n  pin (0,10) west\n" +
		"component west at (50,0) size (20,20)\n  pin (20,10) east\n"
	d, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, id := range []string{"north", "west"} {
		if _, ok := d.Component(id); !ok {
			t.Errorf("Component %s missing", id)
		}
	}
	if ids := d.PinsAt(core.Loc(0, 10)); len(ids) != 1 || ids[0] != "north" {
		t.Errorf("PinsAt(0,10) = %v", ids)
	}
}

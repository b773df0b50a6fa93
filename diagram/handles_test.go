package diagram

import (
	"errors"
	"testing"

	"wireroute/core"
)

func TestMoveHandleRoundTrip(t *testing.T) {
	d := New()
	w := core.NewWire(core.Loc(0, 0), core.Loc(50, 0))
	if err := d.AddWire(w); err != nil {
		t.Fatal(err)
	}
	before := d.Clone()

	h, err := d.MoveHandle(Handle{Wire: w, At: core.Loc(50, 0)}, 20, 0)
	if err != nil {
		t.Fatalf("MoveHandle failed: %v", err)
	}
	if h.At != core.Loc(70, 0) || h.Wire != core.NewWire(core.Loc(0, 0), core.Loc(70, 0)) {
		t.Errorf("Unexpected handle after move: %v", h)
	}
	if _, err := d.MoveHandle(h, -20, 0); err != nil {
		t.Fatalf("Reverse move failed: %v", err)
	}
	if !d.Equal(before) {
		t.Error("Reverse move did not restore the wire")
	}
}

func TestMoveHandleRejectsDiagonal(t *testing.T) {
	d := New()
	w := core.NewWire(core.Loc(0, 0), core.Loc(50, 0))
	_ = d.AddWire(w)
	_, err := d.MoveHandle(Handle{Wire: w, At: core.Loc(50, 0)}, 0, 10)
	if !errors.Is(err, ErrInvalidWire) {
		t.Errorf("Expected ErrInvalidWire, got %v", err)
	}
}

func TestInsertDeleteHandle(t *testing.T) {
	d := New()
	w := core.NewWire(core.Loc(0, 0), core.Loc(50, 0))
	_ = d.AddWire(w)
	before := d.Clone()

	tests := []struct {
		at   core.Location
		want bool
	}{
		{core.Loc(20, 0), true},
		{core.Loc(0, 0), false},  // end
		{core.Loc(25, 0), false}, // off grid
		{core.Loc(20, 10), false},
	}
	for _, tt := range tests {
		if got := d.CanInsertHandle(w, tt.at); got != tt.want {
			t.Errorf("CanInsertHandle(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if err := d.InsertHandle(w, core.Loc(20, 0)); err != nil {
		t.Fatalf("InsertHandle failed: %v", err)
	}
	if len(d.Wires()) != 2 {
		t.Fatalf("Expected 2 wires after split, got %d", len(d.Wires()))
	}
	if !d.CanDeleteHandle(core.Loc(20, 0)) {
		t.Fatal("Expected handle to be deletable")
	}
	joined, err := d.DeleteHandle(core.Loc(20, 0))
	if err != nil {
		t.Fatalf("DeleteHandle failed: %v", err)
	}
	if joined != w {
		t.Errorf("Expected joined wire %v, got %v", w, joined)
	}
	if !d.Equal(before) {
		t.Error("Insert then delete did not restore the diagram")
	}
}

func TestCannotDeleteHandleAtJunction(t *testing.T) {
	d := New()
	_ = d.AddWire(core.NewWire(core.Loc(0, 0), core.Loc(20, 0)))
	_ = d.AddWire(core.NewWire(core.Loc(20, 0), core.Loc(40, 0)))
	_ = d.AddWire(core.NewWire(core.Loc(20, 0), core.Loc(20, 30)))
	if d.CanDeleteHandle(core.Loc(20, 0)) {
		t.Error("Three wires meet at (20,0); handle must not be deletable")
	}
	if _, err := d.DeleteHandle(core.Loc(20, 0)); !errors.Is(err, ErrCannotDeleteHandle) {
		t.Errorf("Expected ErrCannotDeleteHandle, got %v", err)
	}
}

func TestRejoinWire(t *testing.T) {
	d := New()
	w := core.NewWire(core.Loc(0, 0), core.Loc(40, 0))
	tee := core.NewWire(core.Loc(20, 0), core.Loc(20, 30))
	_ = d.AddWire(w)
	_ = d.AddWire(tee)
	before := d.Clone()

	if err := d.InsertHandle(w, core.Loc(20, 0)); err != nil {
		t.Fatalf("InsertHandle failed: %v", err)
	}
	if d.CanDeleteHandle(core.Loc(20, 0)) {
		t.Error("Three wires meet at the tee; DeleteHandle must refuse")
	}
	if err := d.RejoinWire(w, core.Loc(30, 0)); !errors.Is(err, ErrNoSuchWire) {
		t.Errorf("Rejoin at wrong point: %v", err)
	}
	if err := d.RejoinWire(w, core.Loc(20, 0)); err != nil {
		t.Fatalf("RejoinWire failed: %v", err)
	}
	if !d.Equal(before) {
		t.Errorf("RejoinWire did not restore the wires: %v", d.Wires())
	}
}

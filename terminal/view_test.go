package terminal

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"wireroute/core"
	"wireroute/diagram"
	"wireroute/editor"
	"wireroute/scene"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDiagram(t *testing.T) *diagram.Diagram {
	t.Helper()
	d := diagram.New()
	u1 := diagram.Component{
		ID: "U1", Loc: core.Loc(20, 0), Width: 20, Height: 20,
		Pins: []diagram.Pin{{Offset: core.Loc(0, 10), Dir: core.West}},
	}
	u2 := diagram.Component{ID: "U2", Loc: core.Loc(80, 40), Width: 20, Height: 20}
	for _, c := range []diagram.Component{u1, u2} {
		if err := d.AddComponent(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.AddWire(core.NewWire(core.Loc(0, 10), core.Loc(20, 10))); err != nil {
		t.Fatal(err)
	}
	return d
}

func newTestView(t *testing.T, d *diagram.Diagram, path string) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 12)
	t.Cleanup(screen.Fini)

	s := editor.NewSession(context.Background(), d, editor.SessionOptions{Logger: testLogger()})
	t.Cleanup(s.Close)
	return NewView(screen, s, path, testLogger()), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func statusLine(screen tcell.Screen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(runeAt(screen, x, h-1))
	}
	return sb.String()
}

// settle feeds worker deliveries to the view until it leaves ModeRouting.
func settle(t *testing.T, v *View) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for v.Mode() == ModeRouting {
		select {
		case req := <-v.s.Routed():
			v.HandleRouted(req)
		case <-deadline:
			t.Fatal("Timed out waiting for route")
		}
	}
}

func TestMode_String(t *testing.T) {
	tests := map[Mode]string{
		ModeSelect:  "SELECT",
		ModeMove:    "MOVE",
		ModeRouting: "ROUTING",
		Mode(42):    "UNKNOWN",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}

func TestView_Draw(t *testing.T) {
	v, screen := newTestView(t, newTestDiagram(t), "")
	v.Draw()

	// origin is (-10,-10), so U1 at (20,0) starts in cell (3,1)
	checks := []struct {
		x, y int
		want rune
	}{
		{3, 1, '┌'},
		{5, 3, '┘'},
		{4, 2, 'U'},
		{3, 2, 'o'},
		{1, 2, '─'},
		{2, 2, '─'},
	}
	for _, c := range checks {
		if got := runeAt(screen, c.x, c.y); got != c.want {
			t.Errorf("Cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if status := statusLine(screen); !strings.Contains(status, "SELECT") || !strings.Contains(status, "U1") {
		t.Errorf("Unexpected status line %q", status)
	}
}

func TestView_CycleSelection(t *testing.T) {
	v, _ := newTestView(t, newTestDiagram(t), "")
	if v.Selected() != "U1" {
		t.Fatalf("Expected U1 selected, got %q", v.Selected())
	}
	v.HandleKey(key(tcell.KeyTab))
	if v.Selected() != "U2" {
		t.Errorf("Tab: expected U2, got %q", v.Selected())
	}
	v.HandleKey(key(tcell.KeyTab))
	if v.Selected() != "U1" {
		t.Errorf("Tab should wrap to U1, got %q", v.Selected())
	}
	v.HandleKey(key(tcell.KeyBacktab))
	if v.Selected() != "U2" {
		t.Errorf("Backtab: expected U2, got %q", v.Selected())
	}
}

func TestView_MoveAndUndo(t *testing.T) {
	d := newTestDiagram(t)
	v, screen := newTestView(t, d, "")

	v.HandleKey(key(tcell.KeyEnter))
	if v.Mode() != ModeMove {
		t.Fatalf("Expected ModeMove, got %v", v.Mode())
	}
	for i := 0; i < 3; i++ {
		v.HandleKey(key(tcell.KeyRight))
	}
	if dx, dy := v.s.Displacement(); dx != 30 || dy != 0 {
		t.Fatalf("Displacement = (%d,%d), want (30,0)", dx, dy)
	}
	v.Draw()
	if got := runeAt(screen, 6, 1); got != '┌' {
		t.Errorf("Moving component not drawn at its new position, got %q", got)
	}

	v.HandleKey(key(tcell.KeyEnter))
	settle(t, v)
	if v.Mode() != ModeSelect {
		t.Fatalf("Expected ModeSelect after drop, got %v", v.Mode())
	}
	if c, _ := d.Component("U1"); c.Loc != core.Loc(50, 0) {
		t.Errorf("U1 at %v, want (50,0)", c.Loc)
	}
	if !d.HasWire(core.NewWire(core.Loc(0, 10), core.Loc(50, 10))) {
		t.Errorf("Expected stretched wire, got %v", d.Wires())
	}

	v.HandleKey(runeKey('u'))
	if c, _ := d.Component("U1"); c.Loc != core.Loc(20, 0) {
		t.Errorf("Undo left U1 at %v", c.Loc)
	}
	v.HandleKey(runeKey('r'))
	if c, _ := d.Component("U1"); c.Loc != core.Loc(50, 0) {
		t.Errorf("Redo left U1 at %v", c.Loc)
	}
}

func TestView_EscapeCancels(t *testing.T) {
	d := newTestDiagram(t)
	before := d.Clone()
	v, _ := newTestView(t, d, "")

	v.HandleKey(key(tcell.KeyEnter))
	v.HandleKey(key(tcell.KeyDown))
	v.HandleKey(key(tcell.KeyEscape))
	if v.Mode() != ModeSelect || v.s.Moving() {
		t.Errorf("Escape should end the move, mode %v", v.Mode())
	}
	if !d.Equal(before) {
		t.Error("Cancelled move changed the diagram")
	}
	if v.s.Log().CanUndo() {
		t.Error("Cancelled move was logged")
	}
}

func TestView_SaveAndQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.wr")
	d := newTestDiagram(t)
	v, _ := newTestView(t, d, path)

	v.HandleKey(key(tcell.KeyEnter))
	v.HandleKey(key(tcell.KeyDown))
	v.HandleKey(key(tcell.KeyEnter))
	settle(t, v)
	if !v.s.Log().IsModified() {
		t.Fatal("Expected modified diagram after move")
	}

	if v.HandleKey(runeKey('q')) {
		t.Fatal("Quit with unsaved changes should ask first")
	}
	if !strings.Contains(v.Message(), "Unsaved") {
		t.Errorf("Expected unsaved warning, got %q", v.Message())
	}

	v.HandleKey(runeKey('s'))
	if v.s.Log().IsModified() {
		t.Error("Save should clear the modified state")
	}
	saved, err := scene.ParseFile(path)
	if err != nil {
		t.Fatalf("Saved scene does not parse: %v", err)
	}
	if !saved.Equal(d) {
		t.Errorf("Saved scene differs from diagram")
	}
	if !v.HandleKey(runeKey('q')) {
		t.Error("Expected quit after save")
	}
}

func TestView_Run(t *testing.T) {
	v, screen := newTestView(t, newTestDiagram(t), "")
	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

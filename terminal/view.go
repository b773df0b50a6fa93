// Package terminal is a tcell front end for an editing session.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"wireroute/canvas"
	"wireroute/core"
	"wireroute/editor"
	"wireroute/routing"
	"wireroute/scene"
)

var layerStyles = map[canvas.Layer]tcell.Style{
	canvas.LayerWire:        tcell.StyleDefault.Foreground(tcell.ColorGreen),
	canvas.LayerPreview:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
	canvas.LayerComponent:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
	canvas.LayerSelected:    tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	canvas.LayerUnconnected: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

var styleStatus = tcell.StyleDefault.Reverse(true)

// View draws a session on a screen and turns key presses into edits.
// Every method runs on the goroutine that calls Run.
type View struct {
	screen tcell.Screen
	s      *editor.Session
	path   string
	logger *slog.Logger

	mode        Mode
	selected    string
	renderer    *canvas.SceneRenderer
	message     string
	confirmQuit bool
}

// NewView creates a view over s. Saving writes the scene to path; an empty path
// disables saving.
func NewView(screen tcell.Screen, s *editor.Session, path string, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	v := &View{
		screen: screen,
		s:      s,
		path:   path,
		logger: logger.With(slog.String("component", "view")),
	}
	if cs := s.Diagram().Components(); len(cs) > 0 {
		v.selected = cs[0].ID
	}
	v.renderer = canvas.NewSceneRenderer(s.Diagram())
	return v
}

// Mode returns the interaction mode.
func (v *View) Mode() Mode { return v.mode }

// Selected returns the ID of the selected component.
func (v *View) Selected() string { return v.selected }

// Message returns the status message.
func (v *View) Message() string { return v.message }

// Run draws and handles events until the user quits or ctx ends.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		v.Draw()
		v.screen.Show()

		select {
		case <-ctx.Done():
			return nil
		case req := <-v.s.Routed():
			v.HandleRouted(req)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventKey:
				if v.HandleKey(ev) {
					return nil
				}
			}
		}
	}
}

// HandleRouted passes a worker delivery to the session.
func (v *View) HandleRouted(req routing.Request) {
	committed, err := v.s.HandleRouted(req)
	if err != nil {
		v.fail(err)
		return
	}
	if committed {
		v.committed()
	}
}

// HandleKey processes one key press. It returns true when the view should close.
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	switch v.mode {
	case ModeSelect:
		return v.handleSelectKey(ev)
	case ModeMove:
		v.handleMoveKey(ev)
	case ModeRouting:
		if ev.Key() == tcell.KeyEscape {
			v.s.CancelMove()
			v.mode = ModeSelect
			v.message = "Move cancelled"
		}
	}
	return false
}

func (v *View) handleSelectKey(ev *tcell.EventKey) bool {
	quitting := v.confirmQuit
	v.confirmQuit = false

	switch ev.Key() {
	case tcell.KeyTab:
		v.cycle(1)
		return false
	case tcell.KeyBacktab:
		v.cycle(-1)
		return false
	case tcell.KeyEnter:
		v.beginMove()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'm':
		v.beginMove()
	case 'u':
		if err := v.s.Undo(); err != nil {
			v.fail(err)
		} else {
			v.message = ""
		}
	case 'r':
		if err := v.s.Redo(); err != nil {
			v.fail(err)
		} else {
			v.message = ""
		}
	case 's':
		v.save()
	case 'q':
		if v.s.Log().IsModified() && !quitting {
			v.confirmQuit = true
			v.message = "Unsaved changes, press q again to quit"
			return false
		}
		return true
	}
	return false
}

func (v *View) handleMoveKey(ev *tcell.EventKey) {
	dx, dy := v.s.Displacement()
	switch ev.Key() {
	case tcell.KeyLeft:
		dx -= core.GridPitch
	case tcell.KeyRight:
		dx += core.GridPitch
	case tcell.KeyUp:
		dy -= core.GridPitch
	case tcell.KeyDown:
		dy += core.GridPitch
	case tcell.KeyEnter:
		v.drop(dx, dy)
		return
	case tcell.KeyEscape:
		v.s.CancelMove()
		v.mode = ModeSelect
		v.message = "Move cancelled"
		return
	default:
		return
	}
	if err := v.s.Drag(dx, dy); err != nil {
		v.fail(err)
	}
}

func (v *View) beginMove() {
	if v.selected == "" {
		v.message = "Nothing to move"
		return
	}
	if err := v.s.BeginMove(v.selected); err != nil {
		v.fail(err)
		return
	}
	v.mode = ModeMove
	v.message = ""
}

func (v *View) drop(dx, dy int) {
	committed, err := v.s.Drop(dx, dy)
	switch {
	case err != nil:
		v.mode = ModeSelect
		v.fail(err)
	case committed:
		v.committed()
	case v.s.Moving():
		v.mode = ModeRouting
	default:
		v.mode = ModeSelect
	}
}

func (v *View) committed() {
	v.mode = ModeSelect
	v.message = fmt.Sprintf("%s done", v.s.Log().UndoName())
}

func (v *View) cycle(step int) {
	cs := v.s.Diagram().Components()
	if len(cs) == 0 {
		return
	}
	i := 0
	for j, c := range cs {
		if c.ID == v.selected {
			i = j
			break
		}
	}
	i = (i + step + len(cs)) % len(cs)
	v.selected = cs[i].ID
}

func (v *View) save() {
	if v.path == "" {
		v.message = "No file to save to"
		return
	}
	f, err := os.Create(v.path)
	if err != nil {
		v.fail(err)
		return
	}
	if err := scene.Format(f, v.s.Diagram()); err != nil {
		f.Close()
		v.fail(err)
		return
	}
	if err := f.Close(); err != nil {
		v.fail(err)
		return
	}
	v.s.Log().ClearModified()
	v.message = "Saved " + v.path
}

func (v *View) fail(err error) {
	v.logger.Error("Edit failed", slog.Any("error", err))
	v.message = err.Error()
}

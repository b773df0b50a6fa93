package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"wireroute/canvas"
)

// Draw renders the diagram, any move preview and the status line.
func (v *View) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if c := canvas.NewMatrixCanvas(w, h-1); c != nil {
		v.drawScene(c)
		for y := 0; y < h-1; y++ {
			for x := 0; x < w; x++ {
				style, ok := layerStyles[c.LayerAt(x, y)]
				if !ok {
					style = tcell.StyleDefault
				}
				v.screen.SetContent(x, y, c.Get(x, y), nil, style)
			}
		}
	}
	v.drawStatus()
}

func (v *View) drawScene(c *canvas.MatrixCanvas) {
	d := v.s.Diagram()
	wires := d.Wires()
	ov := canvas.Overlay{Selected: v.selected}

	if g := v.s.Gesture(); g != nil {
		ov.Moved = g.Moved()
		ov.Dx, ov.Dy = v.s.Displacement()
		if res := v.s.Preview(); res != nil {
			preview := d.Clone()
			if err := preview.Replace(res.Replacements()); err == nil {
				wires = preview.Wires()
				ov.Added = res.WiresToAdd()
				ov.Unconnected = res.UnconnectedLocations()
			}
		}
	}
	v.renderer.Draw(c, wires, d.Components(), ov)
}

func (v *View) drawStatus() {
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	status := fmt.Sprintf(" %s  %s", v.mode, v.selected)
	if v.s.Moving() {
		dx, dy := v.s.Displacement()
		status += fmt.Sprintf("  (%d,%d)", dx, dy)
	}
	if name := v.s.Log().UndoName(); name != "" {
		status += "  undo: " + name
	}
	if v.s.Log().IsModified() {
		status += " [+]"
	}
	if v.message != "" {
		status += "  " + v.message
	}

	runes := []rune(status)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, h-1, r, nil, styleStatus)
	}
}

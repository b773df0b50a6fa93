package canvas

import (
	"slices"

	"github.com/mattn/go-runewidth"

	"wireroute/core"
	"wireroute/diagram"
)

// Overlay is the transient editing state drawn over a diagram.
type Overlay struct {
	Selected    string
	Moved       []string // drawn displaced by Dx, Dy
	Dx, Dy      int
	Added       []core.Wire
	Unconnected []core.Location
}

// SceneRenderer draws wires and components. One cell is one grid pitch; Origin is
// the location shown in the top-left cell.
type SceneRenderer struct {
	Origin core.Location
	Pitch  int
}

// NewSceneRenderer places the origin one cell left of and above everything in d.
func NewSceneRenderer(d *diagram.Diagram) *SceneRenderer {
	minX, minY := 0, 0
	for _, c := range d.Components() {
		minX, minY = min(minX, c.Loc.X), min(minY, c.Loc.Y)
	}
	for _, w := range d.Wires() {
		minX, minY = min(minX, w.E0.X), min(minY, w.E0.Y)
	}
	return &SceneRenderer{
		Origin: core.Loc(minX-core.GridPitch, minY-core.GridPitch),
		Pitch:  core.GridPitch,
	}
}

// Cell maps a diagram location to canvas coordinates.
func (r *SceneRenderer) Cell(loc core.Location) (x, y int) {
	return (loc.X - r.Origin.X) / r.Pitch, (loc.Y - r.Origin.Y) / r.Pitch
}

// Extent is the canvas size that shows all of d with a one cell margin.
func (r *SceneRenderer) Extent(d *diagram.Diagram) (width, height int) {
	grow := func(loc core.Location) {
		x, y := r.Cell(loc)
		width, height = max(width, x+2), max(height, y+2)
	}
	for _, c := range d.Components() {
		grow(c.Loc.Add(c.Width, c.Height))
	}
	for _, w := range d.Wires() {
		grow(w.E1)
	}
	return max(width, 1), max(height, 1)
}

// Draw renders wires, then components, then the overlay markers onto c.
// Cells outside the canvas are skipped.
func (r *SceneRenderer) Draw(c *MatrixCanvas, wires []core.Wire, comps []diagram.Component, ov Overlay) {
	for _, w := range wires {
		layer := LayerWire
		if slices.Contains(ov.Added, w) {
			layer = LayerPreview
		}
		r.drawWire(c, w, layer)
	}
	for _, comp := range comps {
		if slices.Contains(ov.Moved, comp.ID) {
			comp.Loc = comp.Loc.Add(ov.Dx, ov.Dy)
		}
		layer := LayerComponent
		if comp.ID == ov.Selected {
			layer = LayerSelected
		}
		r.drawComponent(c, comp, layer)
	}
	for _, loc := range ov.Unconnected {
		x, y := r.Cell(loc)
		_ = c.Put(x, y, 'x', LayerUnconnected)
	}
}

// drawWire sets each point to the glyph for the directions the wire leaves it in, so
// bends and junctions with other wires merge into corners and tees.
func (r *SceneRenderer) drawWire(c *MatrixCanvas, w core.Wire, layer Layer) {
	back, fwd := maskWest, maskEast
	if w.IsVertical() {
		back, fwd = maskNorth, maskSouth
	}
	for _, p := range w.Points(r.Pitch) {
		var m dirMask
		if p != w.E0 {
			m |= back
		}
		if p != w.E1 {
			m |= fwd
		}
		if m == 0 {
			continue
		}
		x, y := r.Cell(p)
		_ = c.Set(x, y, junctionGlyph(m), layer)
	}
}

func (r *SceneRenderer) drawComponent(c *MatrixCanvas, comp diagram.Component, layer Layer) {
	x0, y0 := r.Cell(comp.Loc)
	x1, y1 := r.Cell(comp.Loc.Add(comp.Width, comp.Height))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := ' '
			switch {
			case (x == x0 || x == x1) && (y == y0 || y == y1):
				ch = junctionGlyph(cornerMask(x == x0, y == y0))
			case y == y0 || y == y1:
				ch = '─'
			case x == x0 || x == x1:
				ch = '│'
			}
			_ = c.Put(x, y, ch, layer)
		}
	}

	if x1-x0 > 1 && y1-y0 > 1 {
		label := runewidth.Truncate(comp.ID, x1-x0-1, "")
		x := x0 + 1
		for _, ch := range label {
			_ = c.Put(x, y0+1, ch, layer)
			x += runewidth.RuneWidth(ch)
		}
	}
	for _, p := range comp.PinLocations() {
		x, y := r.Cell(p)
		_ = c.Put(x, y, 'o', layer)
	}
}

func cornerMask(left, top bool) dirMask {
	m := maskWest
	if left {
		m = maskEast
	}
	if top {
		return m | maskSouth
	}
	return m | maskNorth
}

// Render draws d on a canvas just large enough to hold it.
func Render(d *diagram.Diagram, ov Overlay) *MatrixCanvas {
	r := NewSceneRenderer(d)
	w, h := r.Extent(d)
	c := NewMatrixCanvas(w, h)
	r.Draw(c, d.Wires(), d.Components(), ov)
	return c
}

package scene

import (
	"bufio"
	"fmt"
	"io"

	"wireroute/diagram"
)

// Format writes d in canonical scene form: components by ID, then wires in order.
func Format(out io.Writer, d *diagram.Diagram) error {
	w := bufio.NewWriter(out)
	for _, c := range d.Components() {
		fmt.Fprintf(w, "component %s at (%d,%d) size (%d,%d)\n", c.ID, c.Loc.X, c.Loc.Y, c.Width, c.Height)
		for _, p := range c.Pins {
			fmt.Fprintf(w, "  pin (%d,%d) %s\n", p.Offset.X, p.Offset.Y, p.Dir)
		}
	}
	for _, wire := range d.Wires() {
		fmt.Fprintf(w, "wire (%d,%d) (%d,%d)\n", wire.E0.X, wire.E0.Y, wire.E1.X, wire.E1.Y)
	}
	return w.Flush()
}

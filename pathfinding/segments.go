package pathfinding

import "wireroute/core"

// Path is an ordered list of grid locations from a wire path start to a destination.
type Path struct {
	Points []core.Location
	Cost   int
}

// Length returns the number of points in the path.
func (p Path) Length() int {
	return len(p.Points)
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Wires merges runs of same-direction steps into the minimal set of wire segments.
func (p Path) Wires() []core.Wire {
	if len(p.Points) < 2 {
		return nil
	}
	var wires []core.Wire
	runStart := p.Points[0]
	runDir := core.DirectionBetween(p.Points[0], p.Points[1])
	for i := 1; i < len(p.Points)-1; i++ {
		dir := core.DirectionBetween(p.Points[i], p.Points[i+1])
		if dir != runDir {
			wires = append(wires, core.NewWire(runStart, p.Points[i]))
			runStart = p.Points[i]
			runDir = dir
		}
	}
	return append(wires, core.NewWire(runStart, p.Points[len(p.Points)-1]))
}

// Turns counts direction changes along the path.
func (p Path) Turns() int {
	if n := len(p.Wires()); n > 0 {
		return n - 1
	}
	return 0
}

// Package core contains the fundamental value types shared by the router and the editor.
package core

import "fmt"

// GridPitch is the spacing of the wire grid. Wire endpoints and pins snap to it.
const GridPitch = 10

// Location represents a coordinate on the schematic grid.
type Location struct {
	X, Y int
}

// Loc is shorthand for Location{X: x, Y: y}.
func Loc(x, y int) Location {
	return Location{X: x, Y: y}
}

// Add returns the location displaced by (dx, dy).
func (l Location) Add(dx, dy int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// Translate returns the location moved dist units in direction d.
func (l Location) Translate(d Direction, dist int) Location {
	switch d {
	case North:
		return Location{X: l.X, Y: l.Y - dist}
	case East:
		return Location{X: l.X + dist, Y: l.Y}
	case South:
		return Location{X: l.X, Y: l.Y + dist}
	case West:
		return Location{X: l.X - dist, Y: l.Y}
	default:
		return l
	}
}

// Less orders locations by X, then by Y.
func (l Location) Less(o Location) bool {
	if l.X != o.X {
		return l.X < o.X
	}
	return l.Y < o.Y
}

// OnGrid reports whether both coordinates are multiples of pitch.
func (l Location) OnGrid(pitch int) bool {
	return l.X%pitch == 0 && l.Y%pitch == 0
}

// ManhattanDistance returns |dx| + |dy| between two locations.
func (l Location) ManhattanDistance(o Location) int {
	return Abs(l.X-o.X) + Abs(l.Y-o.Y)
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Direction represents a cardinal direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	None
)

// Directions lists the four cardinal directions in search order.
var Directions = [4]Direction{North, East, South, West}

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "none"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// IsHorizontal reports whether d is East or West.
func (d Direction) IsHorizontal() bool {
	return d == East || d == West
}

// IsVertical reports whether d is North or South.
func (d Direction) IsVertical() bool {
	return d == North || d == South
}

// ParseDirection converts a direction name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown direction %q", s)
}

// DirectionBetween returns the direction from a to b. Locations that are equal or
// not axis-aligned yield None.
func DirectionBetween(a, b Location) Direction {
	if a.X == b.X {
		if a.Y < b.Y {
			return South
		} else if a.Y > b.Y {
			return North
		}
	} else if a.Y == b.Y {
		if a.X < b.X {
			return East
		}
		return West
	}
	return None
}

// Wire is an axis-parallel wire segment. E0 always precedes E1 in Location order.
type Wire struct {
	E0, E1 Location
}

// NewWire creates a normalised wire between two locations.
func NewWire(a, b Location) Wire {
	if b.Less(a) {
		a, b = b, a
	}
	return Wire{E0: a, E1: b}
}

// IsVertical reports whether the wire runs north-south.
func (w Wire) IsVertical() bool {
	return w.E0.X == w.E1.X
}

// IsAxisParallel reports whether the wire is horizontal or vertical.
func (w Wire) IsAxisParallel() bool {
	return w.E0.X == w.E1.X || w.E0.Y == w.E1.Y
}

// Length returns the wire length in coordinate units.
func (w Wire) Length() int {
	return w.E0.ManhattanDistance(w.E1)
}

// Contains reports whether loc lies on the wire, ends included.
func (w Wire) Contains(loc Location) bool {
	if w.IsVertical() {
		return loc.X == w.E0.X && loc.Y >= w.E0.Y && loc.Y <= w.E1.Y
	}
	return loc.Y == w.E0.Y && loc.X >= w.E0.X && loc.X <= w.E1.X
}

// EndsAt reports whether loc is one of the wire's ends.
func (w Wire) EndsAt(loc Location) bool {
	return w.E0 == loc || w.E1 == loc
}

// OtherEnd returns the end that is not loc.
func (w Wire) OtherEnd(loc Location) Location {
	if w.E0 == loc {
		return w.E1
	}
	return w.E0
}

// IsParallel reports whether both wires share an orientation.
func (w Wire) IsParallel(o Wire) bool {
	return w.IsVertical() == o.IsVertical()
}

// DirectionFrom returns the direction the wire leaves end loc.
func (w Wire) DirectionFrom(loc Location) Direction {
	return DirectionBetween(loc, w.OtherEnd(loc))
}

// Points returns every grid point on the wire from E0 to E1 at the given pitch.
func (w Wire) Points(pitch int) []Location {
	dir := DirectionBetween(w.E0, w.E1)
	if dir == None {
		return []Location{w.E0}
	}
	pts := make([]Location, 0, w.Length()/pitch+1)
	for p := w.E0; ; p = p.Translate(dir, pitch) {
		pts = append(pts, p)
		if p == w.E1 || len(pts) > w.Length()/pitch {
			break
		}
	}
	return pts
}

// Translate returns the wire moved by (dx, dy).
func (w Wire) Translate(dx, dy int) Wire {
	return NewWire(w.E0.Add(dx, dy), w.E1.Add(dx, dy))
}

func (w Wire) String() string {
	return fmt.Sprintf("w%s-%s", w.E0, w.E1)
}

// Bounds represents a rectangular area. Max is exclusive.
type Bounds struct {
	Min, Max Location
}

// Width returns the width of the bounds.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y
}

// Contains checks if a location is within the bounds.
func (b Bounds) Contains(p Location) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Interior reports whether p lies strictly inside the bounds, off every edge.
func (b Bounds) Interior(p Location) bool {
	return p.X > b.Min.X && p.X < b.Max.X &&
		p.Y > b.Min.Y && p.Y < b.Max.Y
}

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

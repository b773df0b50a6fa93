package pathfinding

import (
	"wireroute/core"
	"wireroute/diagram"
)

// Avoidance says which moves through a grid location are allowed.
type Avoidance uint8

const (
	AllowAll        Avoidance = iota // free cell
	AllowHorizontal                  // a vertical wire passes; east-west moves cross it
	AllowVertical                    // a horizontal wire passes; north-south moves cross it
	AllowNeither                     // component body, pin, wire end or wire crossing
)

// AvoidanceMap records what routing must avoid. Cells not present are free.
type AvoidanceMap struct {
	pitch int
	cells map[core.Location]Avoidance
	hash  uint64
}

// NewAvoidanceMap creates an empty map for the given grid pitch.
func NewAvoidanceMap(pitch int) *AvoidanceMap {
	if pitch <= 0 {
		pitch = core.GridPitch
	}
	return &AvoidanceMap{pitch: pitch, cells: make(map[core.Location]Avoidance)}
}

// Get returns the avoidance state of loc.
func (a *AvoidanceMap) Get(loc core.Location) Avoidance {
	return a.cells[loc]
}

// Hash summarises the contents of the map independent of marking order.
func (a *AvoidanceMap) Hash() uint64 {
	return a.hash
}

// Len returns the number of non-free cells.
func (a *AvoidanceMap) Len() int {
	return len(a.cells)
}

func (a *AvoidanceMap) set(loc core.Location, v Avoidance) {
	old, ok := a.cells[loc]
	if ok {
		a.hash ^= cellHash(loc, old)
	}
	if v == AllowAll {
		delete(a.cells, loc)
		return
	}
	a.cells[loc] = v
	a.hash ^= cellHash(loc, v)
}

// MarkBlocked forbids every move into loc.
func (a *AvoidanceMap) MarkBlocked(loc core.Location) {
	a.set(loc, AllowNeither)
}

// MarkWire records a wire: its ends are blocked and its interior only allows crossings.
func (a *AvoidanceMap) MarkWire(w core.Wire) {
	cross := AllowVertical
	if w.IsVertical() {
		cross = AllowHorizontal
	}
	for _, p := range w.Points(a.pitch) {
		if w.EndsAt(p) {
			a.set(p, AllowNeither)
			continue
		}
		switch a.cells[p] {
		case AllowAll:
			a.set(p, cross)
		case cross:
		default:
			a.set(p, AllowNeither)
		}
	}
}

// MarkComponent blocks the component outline except for its pins.
func (a *AvoidanceMap) MarkComponent(c diagram.Component) {
	pins := make(map[core.Location]bool, len(c.Pins))
	for _, p := range c.PinLocations() {
		pins[p] = true
		a.set(p, AllowNeither)
	}
	b := c.Bounds()
	for x := floorTo(b.Min.X, a.pitch); x <= b.Max.X; x += a.pitch {
		for y := floorTo(b.Min.Y, a.pitch); y <= b.Max.Y; y += a.pitch {
			loc := core.Loc(x, y)
			if !pins[loc] && c.Occupies(loc) {
				a.set(loc, AllowNeither)
			}
		}
	}
}

// Clone returns an independent copy.
func (a *AvoidanceMap) Clone() *AvoidanceMap {
	cp := &AvoidanceMap{pitch: a.pitch, cells: make(map[core.Location]Avoidance, len(a.cells)), hash: a.hash}
	for k, v := range a.cells {
		cp.cells[k] = v
	}
	return cp
}

// step reports whether moving in dir into next is allowed and whether it crosses a wire.
func (a *AvoidanceMap) step(next core.Location, dir core.Direction, dest core.Location) (ok, crossing bool) {
	if next == dest {
		return true, false
	}
	switch a.cells[next] {
	case AllowAll:
		return true, false
	case AllowHorizontal:
		return dir.IsHorizontal(), true
	case AllowVertical:
		return dir.IsVertical(), true
	default:
		return false, false
	}
}

func floorTo(v, pitch int) int {
	r := v % pitch
	if r < 0 {
		r += pitch
	}
	return v - r
}

func cellHash(loc core.Location, v Avoidance) uint64 {
	x := uint64(uint32(loc.X))<<32 | uint64(uint32(loc.Y))
	x ^= uint64(v) << 61
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

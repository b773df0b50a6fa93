// Package pathfinding routes a single wire connection across the schematic grid.
package pathfinding

import (
	"wireroute/core"
)

// PathCost defines the cost model for wire routing.
type PathCost struct {
	GridPitch       int // Length of one move
	StepCost        int // Base cost of one move
	ExtendCost      int // Cost of one move continuing an existing wire
	TurnPenalty     int // Added when the direction changes
	CrossingPenalty int // Added when crossing another wire
	MaxNodes        int // Expansion cap before the search gives up
	AbortInterval   int // Expansions between cancellation polls
}

// DefaultPathCost is the cost model of the schematic editor.
var DefaultPathCost = PathCost{
	GridPitch:       core.GridPitch,
	StepCost:        10,
	ExtendCost:      9,
	TurnPenalty:     50,
	CrossingPenalty: 20,
	MaxNodes:        20000,
	AbortInterval:   64,
}

// withDefaults fills zero fields from DefaultPathCost. The zero PathCost selects
// DefaultPathCost entirely, penalties included; otherwise zero penalties are kept.
func (c PathCost) withDefaults() PathCost {
	if c == (PathCost{}) {
		return DefaultPathCost
	}
	if c.GridPitch <= 0 {
		c.GridPitch = DefaultPathCost.GridPitch
	}
	if c.StepCost <= 0 {
		c.StepCost = DefaultPathCost.StepCost
	}
	if c.ExtendCost <= 0 {
		c.ExtendCost = DefaultPathCost.ExtendCost
	}
	if c.MaxNodes <= 0 {
		c.MaxNodes = DefaultPathCost.MaxNodes
	}
	if c.AbortInterval <= 0 {
		c.AbortInterval = DefaultPathCost.AbortInterval
	}
	return c
}

// StepDistance is the cost of moving one pitch in dir from a node heading prevDir.
// extends is true when the move continues the wire the connection started on.
func (c PathCost) StepDistance(dir, prevDir core.Direction, extends, crossing bool) int {
	cost := c.StepCost
	if extends {
		cost = c.ExtendCost
	}
	if crossing {
		cost += c.CrossingPenalty
	}
	if dir != prevDir {
		cost += c.TurnPenalty
	}
	return cost
}

// Heuristic estimates the remaining cost from loc, heading dir, to dest.
//
// Moves along an extended wire toward the target are discounted at ExtendCost, so the
// estimate can locally exceed the true remaining cost. Routing trades strict
// admissibility for speed here.
func (c PathCost) Heuristic(loc core.Location, dir core.Direction, dest core.Location, extends bool) int {
	dx := (dest.X - loc.X) / c.GridPitch
	dy := (dest.Y - loc.Y) / c.GridPitch

	h := -1
	if extends {
		switch dir {
		case core.East:
			if dx > 0 {
				h = dx*c.ExtendCost + core.Abs(dy)*c.StepCost
			}
		case core.West:
			if dx < 0 {
				h = -dx*c.ExtendCost + core.Abs(dy)*c.StepCost
			}
		case core.South:
			if dy > 0 {
				h = core.Abs(dx)*c.StepCost + dy*c.ExtendCost
			}
		case core.North:
			if dy < 0 {
				h = core.Abs(dx)*c.StepCost - dy*c.ExtendCost
			}
		}
	}
	if h < 0 {
		h = (core.Abs(dx) + core.Abs(dy)) * c.StepCost
	}

	backwards := false
	switch dir {
	case core.East:
		backwards = dx < 0
	case core.West:
		backwards = dx > 0
	case core.North:
		backwards = dy > 0
	case core.South:
		backwards = dy < 0
	default:
		if dx != 0 || dy != 0 {
			h += c.TurnPenalty
		}
	}
	if backwards {
		h += 2 * c.TurnPenalty
	} else if dx != 0 && dy != 0 {
		h += c.TurnPenalty
	}
	return h
}

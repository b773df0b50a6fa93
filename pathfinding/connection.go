package pathfinding

import (
	"fmt"

	"wireroute/core"
)

// ConnectionData is an endpoint the router must reach after a move: a pin location, the
// chain of wires currently leading to it, where that chain starts and which way it leaves
// its start (None when there is no chain to extend).
type ConnectionData struct {
	loc       core.Location
	dir       core.Direction
	wirePath  []core.Wire
	pathStart core.Location
}

// NewConnectionData builds a connection. The wire path is copied.
func NewConnectionData(loc core.Location, dir core.Direction, wirePath []core.Wire, pathStart core.Location) ConnectionData {
	return ConnectionData{
		loc:       loc,
		dir:       dir,
		wirePath:  append([]core.Wire(nil), wirePath...),
		pathStart: pathStart,
	}
}

// Location is the endpoint the wire path currently reaches.
func (c ConnectionData) Location() core.Location { return c.loc }

// Direction is the direction the wire path leaves its start.
func (c ConnectionData) Direction() core.Direction { return c.dir }

// WirePathStart is the fixed end of the wire path.
func (c ConnectionData) WirePathStart() core.Location { return c.pathStart }

// WirePath returns a copy of the wires between the path start and the endpoint.
func (c ConnectionData) WirePath() []core.Wire {
	return append([]core.Wire(nil), c.wirePath...)
}

func (c ConnectionData) String() string {
	return fmt.Sprintf("conn%s<-%s/%v[%d]", c.loc, c.pathStart, c.dir, len(c.wirePath))
}

package routing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"wireroute/core"
	"wireroute/diagram"
	"wireroute/pathfinding"
)

// ErrAborted is returned by ComputeRoute when the abort callback or the context ends
// the computation early.
var ErrAborted = errors.New("route computation aborted")

// DefaultCacheSize bounds the per-gesture path cache.
const DefaultCacheSize = 256

type displacement struct {
	dx, dy int
}

// MoveGesture is one drag of a set of components. It captures the diagram when the drag
// starts and computes routes against that capture for any displacement.
type MoveGesture struct {
	id    uuid.UUID
	snap  *diagram.Snapshot
	moved []string
	costs pathfinding.PathCost

	conns      []pathfinding.ConnectionData
	translated []core.Wire
	base       *pathfinding.AvoidanceMap

	searchMu sync.Mutex
	searcher *pathfinding.CachedSearcher

	mu       sync.Mutex
	results  map[displacement]*Result
	listener func(Request, *Result)
}

// NewMoveGesture starts a gesture moving the components with the given IDs.
func NewMoveGesture(snap *diagram.Snapshot, costs pathfinding.PathCost, ids ...string) (*MoveGesture, error) {
	moved := append([]string(nil), ids...)
	sort.Strings(moved)
	for _, id := range moved {
		if _, ok := snap.Component(id); !ok {
			return nil, fmt.Errorf("move %s: %w", id, diagram.ErrNoSuchComponent)
		}
	}
	g := &MoveGesture{
		id:       uuid.New(),
		snap:     snap,
		moved:    moved,
		searcher: pathfinding.NewCachedSearcher(costs, DefaultCacheSize),
		results:  make(map[displacement]*Result),
	}
	g.costs = g.searcher.Costs()
	g.computeConnections()
	return g, nil
}

// ID identifies the gesture in logs and traces.
func (g *MoveGesture) ID() uuid.UUID { return g.id }

// Moved returns the IDs of the moved components.
func (g *MoveGesture) Moved() []string { return append([]string(nil), g.moved...) }

// Snapshot returns the diagram the gesture routes against.
func (g *MoveGesture) Snapshot() *diagram.Snapshot { return g.snap }

// Connections returns the connections that are rerouted for every displacement.
func (g *MoveGesture) Connections() []pathfinding.ConnectionData {
	return append([]pathfinding.ConnectionData(nil), g.conns...)
}

// Translated returns the wires that run between two moved pins and move rigidly.
func (g *MoveGesture) Translated() []core.Wire {
	return append([]core.Wire(nil), g.translated...)
}

// SetListener registers fn to receive every computed result.
func (g *MoveGesture) SetListener(fn func(Request, *Result)) {
	g.mu.Lock()
	g.listener = fn
	g.mu.Unlock()
}

// FindResult returns the result already computed for a displacement.
func (g *MoveGesture) FindResult(dx, dy int) (*Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, ok := g.results[displacement{dx, dy}]
	return res, ok
}

// CacheStats describes the gesture's path cache.
func (g *MoveGesture) CacheStats() string {
	return g.searcher.CacheStats()
}

// RouteComputed stores the result and forwards it to the listener.
func (g *MoveGesture) RouteComputed(req Request, res *Result) {
	g.mu.Lock()
	g.results[displacement{req.Dx, req.Dy}] = res
	fn := g.listener
	g.mu.Unlock()
	if fn != nil {
		fn(req, res)
	}
}

// ComputeRoute reroutes every connection for the request's displacement. Connections
// are tried nearest first and then farthest first; the result with fewer unsatisfied
// connections, then lower cost, wins.
func (g *MoveGesture) ComputeRoute(ctx context.Context, req Request, abort func() bool) (*Result, error) {
	if res, ok := g.FindResult(req.Dx, req.Dy); ok {
		return res, nil
	}
	if req.Dx == 0 && req.Dy == 0 {
		return NewResult(nil, nil, 0), nil
	}
	stop := func() bool {
		return ctx.Err() != nil || (abort != nil && abort())
	}
	if stop() {
		return nil, ErrAborted
	}

	g.searchMu.Lock()
	defer g.searchMu.Unlock()

	avoid := g.avoidanceFor(req.Dx, req.Dy)
	order := g.connectionOrder(req.Dx, req.Dy)
	var best *Result
	for pass := 0; pass < 2; pass++ {
		res, err := g.route(order, req.Dx, req.Dy, avoid.Clone(), stop)
		if err != nil {
			return nil, err
		}
		if res.better(best) {
			best = res
		}
		if len(order) < 2 {
			break
		}
		order = reversed(order)
	}
	return best, nil
}

func (g *MoveGesture) route(order []int, dx, dy int, avoid *pathfinding.AvoidanceMap, stop func() bool) (*Result, error) {
	repl := diagram.NewReplacementMap()
	for _, w := range g.translated {
		repl.Put(w, w.Translate(dx, dy))
	}
	var unsatisfied []pathfinding.ConnectionData
	total := 0
	for _, i := range order {
		conn := g.conns[i]
		dest := conn.Location().Add(dx, dy)
		path, outcome := g.searcher.Search(conn, dest, avoid, stop)
		switch outcome {
		case pathfinding.Found:
			wires := path.Wires()
			for _, old := range conn.WirePath() {
				repl.Put(old, wires...)
			}
			for _, w := range wires {
				avoid.MarkWire(w)
			}
			total += path.Cost
		case pathfinding.Aborted:
			return nil, ErrAborted
		default:
			repl.Remove(conn.WirePath()...)
			unsatisfied = append(unsatisfied, pathfinding.NewConnectionData(
				dest, conn.Direction(), conn.WirePath(), conn.WirePathStart()))
		}
	}
	return NewResult(repl, unsatisfied, total), nil
}

// connectionOrder sorts connections by the distance each must span.
func (g *MoveGesture) connectionOrder(dx, dy int) []int {
	order := make([]int, len(g.conns))
	for i := range order {
		order[i] = i
	}
	span := func(i int) int {
		c := g.conns[i]
		return c.WirePathStart().ManhattanDistance(c.Location().Add(dx, dy))
	}
	sort.SliceStable(order, func(a, b int) bool { return span(order[a]) < span(order[b]) })
	return order
}

func reversed(order []int) []int {
	out := make([]int, len(order))
	for i, v := range order {
		out[len(order)-1-i] = v
	}
	return out
}

// avoidanceFor adds the moved components and rigid wires at their displaced position
// to the static avoidance map.
func (g *MoveGesture) avoidanceFor(dx, dy int) *pathfinding.AvoidanceMap {
	avoid := g.base.Clone()
	for _, id := range g.moved {
		c, _ := g.snap.Component(id)
		c.Loc = c.Loc.Add(dx, dy)
		avoid.MarkComponent(c)
	}
	for _, w := range g.translated {
		avoid.MarkWire(w.Translate(dx, dy))
	}
	return avoid
}

// computeConnections walks the wire chain from each moved pin to its first junction,
// pin or dead end. Chains reaching another moved pin are translated instead of routed.
// The static avoidance map holds everything else.
func (g *MoveGesture) computeConnections() {
	movedSet := make(map[string]bool, len(g.moved))
	for _, id := range g.moved {
		movedSet[id] = true
	}
	claimed := make(map[core.Wire]bool)

	for _, id := range g.moved {
		c, _ := g.snap.Component(id)
		for _, pin := range c.PinLocations() {
			for _, w := range g.snap.WiresEndingAt(pin) {
				if claimed[w] {
					continue
				}
				chain, end := g.walkChain(pin, w, claimed)
				for _, cw := range chain {
					claimed[cw] = true
				}
				if g.endsAtMovedPin(end, movedSet) {
					g.translated = append(g.translated, chain...)
					continue
				}
				dir := chain[len(chain)-1].DirectionFrom(end)
				g.conns = append(g.conns, pathfinding.NewConnectionData(pin, dir, chain, end))
			}
		}
	}

	g.base = pathfinding.NewAvoidanceMap(g.costs.GridPitch)
	for _, w := range g.snap.Wires() {
		if !claimed[w] {
			g.base.MarkWire(w)
		}
	}
	for _, c := range g.snap.Components() {
		if !movedSet[c.ID] {
			g.base.MarkComponent(c)
		}
	}
}

func (g *MoveGesture) walkChain(from core.Location, first core.Wire, claimed map[core.Wire]bool) ([]core.Wire, core.Location) {
	chain := []core.Wire{first}
	seen := map[core.Wire]bool{first: true}
	cur, prev := first.OtherEnd(from), first
	for {
		if len(g.snap.PinsAt(cur)) > 0 {
			return chain, cur
		}
		at := g.snap.WiresAt(cur)
		if len(at) != 2 {
			return chain, cur
		}
		next := at[0]
		if next == prev {
			next = at[1]
		}
		if !next.EndsAt(cur) || seen[next] || claimed[next] {
			return chain, cur
		}
		chain = append(chain, next)
		seen[next] = true
		cur, prev = next.OtherEnd(cur), next
	}
}

func (g *MoveGesture) endsAtMovedPin(loc core.Location, moved map[string]bool) bool {
	for _, id := range g.snap.PinsAt(loc) {
		if moved[id] {
			return true
		}
	}
	return false
}

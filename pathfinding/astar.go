package pathfinding

import (
	"container/heap"
	"fmt"

	"wireroute/core"
)

// Outcome reports how a search ended.
type Outcome int

const (
	Found       Outcome = iota // destination reached
	NoPath                     // frontier exhausted
	CapExceeded                // MaxNodes expansions without reaching the destination
	Aborted                    // abort callback requested an early exit
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NoPath:
		return "no path"
	case CapExceeded:
		return "node cap exceeded"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// searchNode is one state of the frontier. prev indexes the arena; -1 marks the start.
type searchNode struct {
	loc     core.Location
	dir     core.Direction
	dest    core.Location
	dist    int
	heur    int // dist + heuristic
	extends bool
	hash    uint32
	prev    int32
}

func nodeHash(loc core.Location, dir core.Direction, dest core.Location) uint32 {
	locHash := uint32(loc.X)*31 + uint32(loc.Y)
	destHash := uint32(dest.X)*31 + uint32(dest.Y)
	dirHash := uint32(0)
	if dir != core.None {
		dirHash = uint32(dir) + 1
	}
	return ((locHash*31)+dirHash)*31 + destHash
}

// nodeArena owns every node created during one search. Reset discards them all at once.
type nodeArena struct {
	nodes      []searchNode
	generation uint64
}

func (a *nodeArena) reset() {
	a.nodes = a.nodes[:0]
	a.generation++
}

func (a *nodeArena) alloc(n searchNode) int32 {
	a.nodes = append(a.nodes, n)
	return int32(len(a.nodes) - 1)
}

// frontier is a priority queue of arena indices.
type frontier struct {
	arena *nodeArena
	items []int32
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	a, b := &f.arena.nodes[f.items[i]], &f.arena.nodes[f.items[j]]
	if a.heur != b.heur {
		return a.heur < b.heur
	}
	return a.hash < b.hash
}

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(int32)) }

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	idx := old[n-1]
	f.items = old[:n-1]
	return idx
}

type nodeKey struct {
	loc core.Location
	dir core.Direction
}

// Searcher runs A* searches for wire connections. It reuses its buffers between
// searches and is not safe for concurrent use.
type Searcher struct {
	costs    PathCost
	arena    nodeArena
	open     frontier
	visited  map[nodeKey]struct{}
	expanded int
}

// NewSearcher creates a searcher with the given cost model.
func NewSearcher(costs PathCost) *Searcher {
	s := &Searcher{
		costs:   costs.withDefaults(),
		visited: make(map[nodeKey]struct{}),
	}
	s.open.arena = &s.arena
	return s
}

// Costs returns the cost model in use.
func (s *Searcher) Costs() PathCost { return s.costs }

// Expanded returns the number of nodes expanded by the last search.
func (s *Searcher) Expanded() int { return s.expanded }

// Generation counts the searches this searcher has run.
func (s *Searcher) Generation() uint64 { return s.arena.generation }

// Search finds a low-cost wire path from the connection's wire path start to dest.
// abort is polled every AbortInterval expansions; a true result ends the search with
// Aborted. The returned path is empty unless the outcome is Found.
func (s *Searcher) Search(conn ConnectionData, dest core.Location, avoid *AvoidanceMap, abort func() bool) (Path, Outcome) {
	s.arena.reset()
	s.open.items = s.open.items[:0]
	clear(s.visited)
	s.expanded = 0

	if avoid == nil {
		avoid = NewAvoidanceMap(s.costs.GridPitch)
	}
	pitch := s.costs.GridPitch
	start := conn.WirePathStart()
	if (dest.X-start.X)%pitch != 0 || (dest.Y-start.Y)%pitch != 0 || dest.X < 0 || dest.Y < 0 {
		return Path{}, NoPath
	}

	connDir := conn.Direction()
	root := s.arena.alloc(s.newNode(start, connDir, dest, 0, connDir != core.None, -1))
	heap.Push(&s.open, root)

	for s.open.Len() > 0 {
		if abort != nil && s.expanded%s.costs.AbortInterval == 0 && abort() {
			return Path{}, Aborted
		}
		if s.expanded >= s.costs.MaxNodes {
			return Path{}, CapExceeded
		}

		idx := heap.Pop(&s.open).(int32)
		n := s.arena.nodes[idx]
		if n.loc == dest {
			return s.reconstruct(idx), Found
		}
		key := nodeKey{n.loc, n.dir}
		if _, seen := s.visited[key]; seen {
			continue
		}
		s.visited[key] = struct{}{}
		s.expanded++

		for _, dir := range core.Directions {
			if n.prev >= 0 && dir == n.dir.Opposite() {
				continue
			}
			next := n.loc.Translate(dir, pitch)
			if next.X < 0 || next.Y < 0 {
				continue
			}
			if _, seen := s.visited[nodeKey{next, dir}]; seen {
				continue
			}
			ok, crossing := avoid.step(next, dir, dest)
			if !ok {
				continue
			}
			extends := n.extends && dir == connDir
			dist := n.dist + s.costs.StepDistance(dir, n.dir, extends, crossing)
			child := s.arena.alloc(s.newNode(next, dir, dest, dist, extends, idx))
			heap.Push(&s.open, child)
		}
	}
	return Path{}, NoPath
}

func (s *Searcher) newNode(loc core.Location, dir core.Direction, dest core.Location, dist int, extends bool, prev int32) searchNode {
	return searchNode{
		loc:     loc,
		dir:     dir,
		dest:    dest,
		dist:    dist,
		heur:    dist + s.costs.Heuristic(loc, dir, dest, extends),
		extends: extends,
		hash:    nodeHash(loc, dir, dest),
		prev:    prev,
	}
}

// reconstruct walks the back-pointers from the goal to the start.
func (s *Searcher) reconstruct(goal int32) Path {
	var points []core.Location
	for i := goal; i >= 0; i = s.arena.nodes[i].prev {
		points = append(points, s.arena.nodes[i].loc)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return Path{Points: points, Cost: s.arena.nodes[goal].dist}
}

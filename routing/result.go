package routing

import (
	"fmt"
	"io"

	"wireroute/core"
	"wireroute/diagram"
	"wireroute/pathfinding"
)

// Result is the outcome of one route computation: the wire edits to apply and the
// connections the search could not satisfy.
type Result struct {
	replacements *diagram.ReplacementMap
	unsatisfied  []pathfinding.ConnectionData
	unconnected  []core.Location
	totalCost    int
}

// NewResult builds a result. Unsatisfied connections are reported as unconnected at
// their location.
func NewResult(repl *diagram.ReplacementMap, unsatisfied []pathfinding.ConnectionData, totalCost int) *Result {
	if repl == nil {
		repl = diagram.NewReplacementMap()
	}
	r := &Result{replacements: repl, totalCost: totalCost}
	r.AddUnsatisfied(unsatisfied...)
	return r
}

// AddUnsatisfied records more connections that could not be routed.
func (r *Result) AddUnsatisfied(conns ...pathfinding.ConnectionData) {
	for _, c := range conns {
		r.unsatisfied = append(r.unsatisfied, c)
		r.unconnected = append(r.unconnected, c.Location())
	}
}

// Replacements returns a copy of the wire edits.
func (r *Result) Replacements() *diagram.ReplacementMap {
	return r.replacements.Clone()
}

// WiresToAdd returns the wires the result adds.
func (r *Result) WiresToAdd() []core.Wire {
	return r.replacements.Additions()
}

// WiresToRemove returns the wires the result removes.
func (r *Result) WiresToRemove() []core.Wire {
	return r.replacements.Removals()
}

// Unsatisfied returns the connections that could not be routed.
func (r *Result) Unsatisfied() []pathfinding.ConnectionData {
	return append([]pathfinding.ConnectionData(nil), r.unsatisfied...)
}

// UnconnectedLocations returns where the unsatisfied connections were left dangling.
func (r *Result) UnconnectedLocations() []core.Location {
	return append([]core.Location(nil), r.unconnected...)
}

// TotalCost is the summed search cost of every routed connection.
func (r *Result) TotalCost() int {
	return r.totalCost
}

// better reports whether r should be preferred over o.
func (r *Result) better(o *Result) bool {
	if o == nil {
		return true
	}
	if len(r.unsatisfied) != len(o.unsatisfied) {
		return len(r.unsatisfied) < len(o.unsatisfied)
	}
	return r.totalCost < o.totalCost
}

// Print writes the wire edits and unsatisfied connections in a readable form.
func (r *Result) Print(out io.Writer) {
	r.replacements.Print(out)
	for _, c := range r.unsatisfied {
		fmt.Fprintf(out, "unsatisfied %v\n", c)
	}
	fmt.Fprintf(out, "cost %d\n", r.totalCost)
}

// Package routing computes wire routes for moved components off the interactive
// goroutine and delivers the results back to their gesture.
package routing

import (
	"context"
	"fmt"
)

// Target is the owner of a route request. ComputeRoute runs on the worker goroutine
// and must poll abort; RouteComputed is called with every successful result.
type Target interface {
	ComputeRoute(ctx context.Context, req Request, abort func() bool) (*Result, error)
	RouteComputed(req Request, res *Result)
}

// Request asks for the route of Target displaced by (Dx, Dy). Requests are compared
// with ==, so Target must be a comparable value such as a pointer.
type Request struct {
	Target Target
	Dx, Dy int
}

func (r Request) String() string {
	if g, ok := r.Target.(*MoveGesture); ok {
		return fmt.Sprintf("route[%s %+d,%+d]", g.ID(), r.Dx, r.Dy)
	}
	return fmt.Sprintf("route[%+d,%+d]", r.Dx, r.Dy)
}

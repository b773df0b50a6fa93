package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wireroute/diagram"
	"wireroute/pathfinding"
	"wireroute/routing"
)

// ErrNoGesture is returned by gesture operations when no move is in progress.
var ErrNoGesture = errors.New("no move in progress")

// SessionOptions configures a Session. Zero values select defaults; the zero Costs
// selects pathfinding.DefaultPathCost.
type SessionOptions struct {
	Costs    pathfinding.PathCost
	Capacity int
	Logger   *slog.Logger
	Metrics  *routing.Metrics
}

// Session is one editing session: the diagram, its action log and the route worker.
// All methods except the worker's deliveries run on the interactive goroutine.
type Session struct {
	d      *diagram.Diagram
	log    *ActionLog
	worker *routing.Worker
	costs  pathfinding.PathCost
	logger *slog.Logger

	gesture *routing.MoveGesture
	dx, dy  int
	dropped bool
	preview *routing.Result
	routed  chan routing.Request

	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a session over d and starts its route worker.
func NewSession(ctx context.Context, d *diagram.Diagram, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	costs := opts.Costs
	if costs == (pathfinding.PathCost{}) {
		costs = pathfinding.DefaultPathCost
	}
	s := &Session{
		d:      d,
		log:    NewActionLog(d, opts.Capacity, logger),
		worker: routing.NewWorker(logger, opts.Metrics),
		costs:  costs,
		logger: logger.With(slog.String("component", "session")),
		routed: make(chan routing.Request, 16),
		done:   make(chan struct{}),
	}
	s.worker.Start(ctx)
	return s
}

// Diagram returns the live diagram. Only the interactive goroutine may use it.
func (s *Session) Diagram() *diagram.Diagram { return s.d }

// Log returns the session's action log.
func (s *Session) Log() *ActionLog { return s.log }

// Worker returns the session's route worker.
func (s *Session) Worker() *routing.Worker { return s.worker }

// Routed delivers a request each time the worker finishes one of this session's
// routes. Pass it to HandleRouted on the interactive goroutine. Deliveries are never
// dropped: the worker waits for the reader until the session is closed.
func (s *Session) Routed() <-chan routing.Request { return s.routed }

// Moving reports whether a move gesture is in progress.
func (s *Session) Moving() bool { return s.gesture != nil }

// Gesture returns the current move gesture, or nil.
func (s *Session) Gesture() *routing.MoveGesture { return s.gesture }

// Displacement is the current offset of the move gesture.
func (s *Session) Displacement() (dx, dy int) { return s.dx, s.dy }

// Preview is the route for the current displacement, when it is known.
func (s *Session) Preview() *routing.Result { return s.preview }

// Do applies an action through the log.
func (s *Session) Do(a Action) error { return s.log.DoAction(a) }

// Undo reverses the newest action.
func (s *Session) Undo() error { return s.log.UndoAction() }

// Redo re-applies the newest undone action.
func (s *Session) Redo() error { return s.log.RedoAction() }

// BeginMove starts dragging the given components. Any previous gesture is abandoned.
func (s *Session) BeginMove(ids ...string) error {
	g, err := routing.NewMoveGesture(s.d.Snapshot(), s.costs, ids...)
	if err != nil {
		return err
	}
	g.SetListener(func(req routing.Request, _ *routing.Result) {
		select {
		case s.routed <- req:
		case <-s.done:
		}
	})
	s.gesture, s.dx, s.dy, s.dropped, s.preview = g, 0, 0, false, nil
	s.logger.Debug("Move started", slog.String("gesture", g.ID().String()),
		slog.Any("components", ids), slog.Int("connections", len(g.Connections())))
	return nil
}

// Drag updates the displacement and asks for its route in the background.
func (s *Session) Drag(dx, dy int) error {
	if s.gesture == nil {
		return ErrNoGesture
	}
	s.dx, s.dy = dx, dy
	if res, ok := s.gesture.FindResult(dx, dy); ok {
		s.preview = res
		return nil
	}
	s.preview = nil
	s.worker.Submit(routing.Request{Target: s.gesture, Dx: dx, Dy: dy}, false)
	return nil
}

// Drop ends the drag at (dx, dy). The move is committed immediately when its route is
// already known; otherwise the route is requested with priority and committed by
// HandleRouted.
func (s *Session) Drop(dx, dy int) (committed bool, err error) {
	if s.gesture == nil {
		return false, ErrNoGesture
	}
	s.dx, s.dy, s.dropped = dx, dy, true
	if dx == 0 && dy == 0 {
		s.CancelMove()
		return false, nil
	}
	if res, ok := s.gesture.FindResult(dx, dy); ok {
		return true, s.commit(res)
	}
	s.worker.Submit(routing.Request{Target: s.gesture, Dx: dx, Dy: dy}, true)
	return false, nil
}

// CancelMove abandons the current gesture. Late deliveries for it are ignored.
func (s *Session) CancelMove() {
	s.gesture, s.preview, s.dropped = nil, nil, false
}

// HandleRouted processes a delivery from Routed. Deliveries for another gesture are
// discarded; a delivery for the dropped displacement commits the move.
func (s *Session) HandleRouted(req routing.Request) (committed bool, err error) {
	if s.gesture == nil || req.Target != routing.Target(s.gesture) {
		s.logger.Debug("Discarding stale route", slog.String("request", req.String()))
		return false, nil
	}
	res, ok := s.gesture.FindResult(s.dx, s.dy)
	if !ok {
		return false, nil
	}
	s.preview = res
	if !s.dropped {
		return false, nil
	}
	return true, s.commit(res)
}

func (s *Session) commit(res *routing.Result) error {
	g := s.gesture
	s.CancelMove()
	move := NewUnion("Move",
		NewTranslateComponents(g.Moved(), s.dx, s.dy),
		&Replace{Map: res.Replacements()},
	)
	if err := s.log.DoAction(move); err != nil {
		return fmt.Errorf("commit move: %w", err)
	}
	if n := len(res.Unsatisfied()); n > 0 {
		s.logger.Warn("Move left connections unrouted",
			slog.String("gesture", g.ID().String()),
			slog.Any("unconnected", res.UnconnectedLocations()))
	}
	return nil
}

// Close stops the route worker. Pending deliveries are abandoned.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.worker.Stop()
}

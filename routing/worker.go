package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Worker runs route computations one at a time on its own goroutine. It holds at most
// one pending request; a newer submission replaces it.
type Worker struct {
	logger  *slog.Logger
	metrics *Metrics

	mu      sync.Mutex
	idle    *sync.Cond
	pending *Request
	current *Request
	cancel  context.CancelFunc
	done    chan struct{}

	override atomic.Bool
	wake     chan struct{}
}

// NewWorker creates a stopped worker. A nil logger uses slog.Default(); nil metrics are
// created unregistered.
func NewWorker(logger *slog.Logger, metrics *Metrics) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	w := &Worker{
		logger:  logger.With(slog.String("component", "route_worker")),
		metrics: metrics,
		wake:    make(chan struct{}, 1),
	}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// Start launches the worker goroutine. It runs until ctx ends or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, w.done)
}

// Stop aborts the running computation and waits for the goroutine to exit.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()
	if done == nil {
		return
	}
	cancel()
	w.override.Store(true)
	<-done
}

// Submit queues req. It returns false, doing nothing, when req equals the executing or
// pending request. With priority the executing computation is asked to abort.
// Submit never blocks.
func (w *Worker) Submit(req Request, priority bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.metrics.Submitted.Inc()

	if w.current != nil && *w.current == req {
		w.metrics.Duplicate.Inc()
		return false
	}
	if w.pending != nil {
		if *w.pending == req {
			w.metrics.Duplicate.Inc()
			if priority {
				w.override.Store(true)
			}
			return false
		}
		w.metrics.Superseded.Inc()
		w.logger.Debug("Superseding pending route request",
			slog.String("pending", w.pending.String()),
			slog.String("request", req.String()))
	}
	w.pending = &req
	if priority {
		w.override.Store(true)
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

// OverrideRequested reports whether the executing computation should stop early.
func (w *Worker) OverrideRequested() bool {
	return w.override.Load()
}

// Idle reports whether nothing is pending or executing.
func (w *Worker) Idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending == nil && w.current == nil
}

// WaitIdle blocks until the worker is idle or ctx ends.
func (w *Worker) WaitIdle(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		w.mu.Lock()
		w.idle.Broadcast()
		w.mu.Unlock()
	})
	defer stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for w.pending != nil || w.current != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.idle.Wait()
	}
	return nil
}

func (w *Worker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer w.finish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}
		for ctx.Err() == nil {
			req, ok := w.next()
			if !ok {
				break
			}
			w.process(ctx, req)
		}
	}
}

// next moves the pending request to executing.
func (w *Worker) next() (Request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		w.current = nil
		w.idle.Broadcast()
		return Request{}, false
	}
	req := *w.pending
	w.pending = nil
	w.current = &req
	w.override.Store(false)
	return req, true
}

func (w *Worker) finish() {
	w.mu.Lock()
	w.pending = nil
	w.current = nil
	w.idle.Broadcast()
	w.mu.Unlock()
}

func (w *Worker) process(ctx context.Context, req Request) {
	logger := w.logger.With(slog.String("request", req.String()))
	defer func() {
		if r := recover(); r != nil {
			w.metrics.Failed.Inc()
			logger.Error("Route computation panicked",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	attrs := []attribute.KeyValue{attribute.Int("dx", req.Dx), attribute.Int("dy", req.Dy)}
	if g, ok := req.Target.(*MoveGesture); ok {
		attrs = append(attrs, attribute.String("gesture", g.ID().String()))
	}
	ctx, span := otel.Tracer("wireroute/routing").Start(ctx, "routing.ComputeRoute",
		trace.WithAttributes(attrs...))
	defer span.End()

	timer := prometheus.NewTimer(w.metrics.SearchDuration)
	res, err := req.Target.ComputeRoute(ctx, req, w.OverrideRequested)
	timer.ObserveDuration()

	switch {
	case errors.Is(err, ErrAborted):
		w.metrics.Aborted.Inc()
		span.SetAttributes(attribute.Bool("aborted", true))
		logger.Debug("Route computation aborted")
		return
	case err != nil:
		w.metrics.Failed.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("Route computation failed", slog.String("error", err.Error()))
		return
	case res == nil:
		return
	}

	span.SetAttributes(
		attribute.Int("unsatisfied", len(res.unsatisfied)),
		attribute.Int("cost", res.totalCost))
	w.metrics.Delivered.Inc()
	req.Target.RouteComputed(req, res)
}

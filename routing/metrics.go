package routing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the worker does with route requests.
type Metrics struct {
	Submitted      prometheus.Counter
	Duplicate      prometheus.Counter
	Superseded     prometheus.Counter
	Aborted        prometheus.Counter
	Failed         prometheus.Counter
	Delivered      prometheus.Counter
	SearchDuration prometheus.Histogram
}

// NewMetrics creates the worker metrics and registers them with reg. A nil reg leaves
// them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{
			Namespace: "wireroute",
			Subsystem: "routing",
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		Submitted:  counter("requests_submitted_total", "Route requests passed to Submit."),
		Duplicate:  counter("requests_duplicate_total", "Requests ignored because they equal the executing or pending request."),
		Superseded: counter("requests_superseded_total", "Pending requests replaced before they started."),
		Aborted:    counter("computations_aborted_total", "Computations ended by an override."),
		Failed:     counter("computations_failed_total", "Computations that returned an error or panicked."),
		Delivered:  counter("results_delivered_total", "Results handed to their target."),
		SearchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wireroute",
			Subsystem: "routing",
			Name:      "compute_duration_seconds",
			Help:      "Time spent in ComputeRoute.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
}

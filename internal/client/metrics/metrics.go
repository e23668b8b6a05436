// Package metrics defines the Prometheus collectors of the terminal client.
//
// Collectors are registered on an explicit Registerer so tests and embedding
// programs can use a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "assocportal_client"

// Recorder counts gateway outcomes and session clears.
type Recorder struct {
	// Requests counts requests by method and outcome ("ok", "unauthorized",
	// "request_failed").
	Requests *prometheus.CounterVec
	// Duration measures request round trips by outcome.
	Duration *prometheus.HistogramVec
	// SessionClears counts sessions discarded after an authorization failure.
	SessionClears prometheus.Counter
	// Navigations counts redirects to the entry route.
	Navigations prometheus.Counter
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API requests sent through the gateway.",
			},
			[]string{"method", "outcome"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Round trip duration of API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		SessionClears: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_clears_total",
			Help:      "Total number of sessions cleared after an authorization failure.",
		}),
		Navigations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entry_navigations_total",
			Help:      "Total number of redirects to the unauthenticated entry route.",
		}),
	}
}

// ObserveRequest records one completed request.
func (r *Recorder) ObserveRequest(method, outcome string, elapsed time.Duration) {
	r.Requests.WithLabelValues(method, outcome).Inc()
	r.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveSessionCleared records a forced sign-out and the navigation that
// follows it.
func (r *Recorder) ObserveSessionCleared() {
	r.SessionClears.Inc()
	r.Navigations.Inc()
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

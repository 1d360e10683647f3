package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CitizensSynced    prometheus.Counter
	SOSCreated        prometheus.Counter
	SOSTransitions    *prometheus.CounterVec
	AttemptsSubmitted prometheus.Counter
	SOSPendingStale   prometheus.Gauge
	HTTPRequests      *prometheus.HistogramVec
}

// New creates and registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CitizensSynced: f.NewCounter(prometheus.CounterOpts{
			Name: "alertwise_citizens_synced_total",
			Help: "Total number of identity sync calls that succeeded",
		}),
		SOSCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "alertwise_sos_created_total",
			Help: "Total number of SOS requests created",
		}),
		SOSTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "alertwise_sos_transitions_total",
			Help: "Total number of SOS moderation transitions by resulting status",
		}, []string{"status"}),
		AttemptsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "alertwise_quiz_attempts_total",
			Help: "Total number of quiz attempts recorded",
		}),
		SOSPendingStale: f.NewGauge(prometheus.GaugeOpts{
			Name: "alertwise_sos_pending_stale",
			Help: "Pending SOS requests older than the backlog threshold at the last check",
		}),
		HTTPRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alertwise_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) IncCitizensSynced() {
	if m != nil {
		m.CitizensSynced.Inc()
	}
}

func (m *Metrics) IncSOSCreated() {
	if m != nil {
		m.SOSCreated.Inc()
	}
}

func (m *Metrics) IncSOSTransition(status string) {
	if m != nil {
		m.SOSTransitions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncAttemptsSubmitted() {
	if m != nil {
		m.AttemptsSubmitted.Inc()
	}
}

func (m *Metrics) SetSOSPendingStale(n int) {
	if m != nil {
		m.SOSPendingStale.Set(float64(n))
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, status).Observe(seconds)
	}
}

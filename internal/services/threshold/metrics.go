package threshold

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors of the threshold handler.
type Metrics struct {
	Requests     *prometheus.CounterVec
	StoreLatency prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg (if not nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "threshold_requests_total",
			Help: "Threshold update invocations by terminal outcome",
		}, []string{"outcome"}),
		StoreLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "threshold_store_latency_seconds",
			Help:    "Duration of the key-value store update",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.StoreLatency)
	}
	return m
}

func (m *Metrics) observeOutcome(o Outcome) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(o.String()).Inc()
}

func (m *Metrics) observeStore(seconds float64) {
	if m == nil {
		return
	}
	m.StoreLatency.Observe(seconds)
}

package bikestress

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a set of batch routing collectors
type Metrics struct {
	routesTotal   *prometheus.CounterVec
	routeDuration *prometheus.HistogramVec
	batchPairs    prometheus.Histogram
}

// NewMetrics creates collectors and registers them with reg. Nil reg leaves them unregistered
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// routesTotal counts routed pairs by outcome: "ok" or error kind
		routesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bikestress_routes_total",
			Help: "Total routed origin/destination pairs by weight and outcome",
		}, []string{"weight", "outcome"}),
		routeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikestress_route_duration_seconds",
			Help:    "Single route search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}, []string{"weight"}),
		batchPairs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bikestress_batch_pairs",
			Help:    "Number of origin/destination pairs per batch",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
	}
}

func (m *Metrics) observeRoute(w Weight, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.routesTotal.WithLabelValues(w.String(), outcome).Inc()
	m.routeDuration.WithLabelValues(w.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) observeBatch(pairs int) {
	if m == nil {
		return
	}
	m.batchPairs.Observe(float64(pairs))
}

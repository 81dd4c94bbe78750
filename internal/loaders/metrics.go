package loaders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts batch dispatches per loader kind.
type Metrics struct {
	Batches   *prometheus.CounterVec
	BatchKeys *prometheus.HistogramVec
}

// NewMetrics registers the loader metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Batches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gateway",
			Name:      "loader_batches_total",
			Help:      "Number of batch fetches issued, by loader.",
		}, []string{"loader"}),
		BatchKeys: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gateway",
			Name:      "loader_batch_keys",
			Help:      "Number of keys per batch fetch, by loader.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"loader"}),
	}
}

func (m *Metrics) observe(kind string, keys int) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(kind).Inc()
	m.BatchKeys.WithLabelValues(kind).Observe(float64(keys))
}

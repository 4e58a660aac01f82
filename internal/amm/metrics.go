package amm

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus metrics for the pool manager.
type Metrics struct {
	opsTotal    *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec
	poolsActive prometheus.Gauge
}

// NewMetrics creates and registers the manager metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amm_operations_total",
			Help: "Total number of pool manager operations, labeled by operation and result.",
		}, []string{"op", "result"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amm_operation_duration_seconds",
			Help:    "Time taken to execute a pool manager operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		poolsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amm_pools_active",
			Help: "Number of pools currently held by the store.",
		}),
	}
	reg.MustRegister(m.opsTotal, m.opDuration, m.poolsActive)
	return m
}

func (m *Metrics) observe(op string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.opsTotal.WithLabelValues(op, result).Inc()
	m.opDuration.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) setPools(n int) {
	if m == nil {
		return
	}
	m.poolsActive.Set(float64(n))
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "eos_pingdemo"

	pingSubsystem = "ping"
)

// PingMetrics collects ping widget metrics.
type PingMetrics struct {
	attempts *prometheus.CounterVec
	skipped  prometheus.Counter
	status   prometheus.Gauge
}

// NewPingMetrics creates and registers ping metrics together with
// the application version.
//
// Panics if any metric has already been registered in reg.
func NewPingMetrics(reg prometheus.Registerer, version string) *PingMetrics {
	m := &PingMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: pingSubsystem,
			Name:      "attempts_total",
			Help:      "Number of settled ping calls by result",
		}, []string{"result"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: pingSubsystem,
			Name:      "skipped_total",
			Help:      "Number of ping triggers ignored because of the call in flight",
		}),
		status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: pingSubsystem,
			Name:      "status",
			Help:      "Current ping status: 0 idle, 1 loading, 2 success, 3 failure",
		}),
	}

	reg.MustRegister(m.attempts, m.skipped, m.status)
	registerVersionMetric(reg, version)

	return m
}

// SetPingStatus updates status metric.
func (m *PingMetrics) SetPingStatus(s uint8) {
	m.status.Set(float64(s))
}

// AddPingAttempt counts settled ping.
func (m *PingMetrics) AddPingAttempt(success bool) {
	res := "failure"
	if success {
		res = "success"
	}

	m.attempts.WithLabelValues(res).Inc()
}

// IncSkippedPing counts ignored trigger.
func (m *PingMetrics) IncSkippedPing() {
	m.skipped.Inc()
}

package hooks

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics is the default MetricsCollector: three vectors
// covering evaluation, config load, and rollback, grouped by container
// and (for evaluation) flag and decision kind.
type PrometheusMetrics struct {
	evaluations     *prometheus.CounterVec
	evaluationNanos *prometheus.HistogramVec
	configLoads     *prometheus.CounterVec
	rollbacks       *prometheus.CounterVec
}

// NewPrometheusMetrics builds and registers its vectors against reg. Pass
// prometheus.DefaultRegisterer for the global registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konditional_evaluations_total",
			Help: "Total flag evaluations, by container, flag, and decision kind.",
		}, []string{"container", "flag", "decision"}),
		evaluationNanos: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "konditional_evaluation_duration_seconds",
			Help:    "Flag evaluation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"container", "flag"}),
		configLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konditional_config_loads_total",
			Help: "Total registry snapshot loads, by container and outcome.",
		}, []string{"container", "success"}),
		rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konditional_config_rollbacks_total",
			Help: "Total registry rollbacks, by container and outcome.",
		}, []string{"container", "success"}),
	}
	reg.MustRegister(m.evaluations, m.evaluationNanos, m.configLoads, m.rollbacks)
	return m
}

func (m *PrometheusMetrics) RecordEvaluation(e EvaluationEvent) {
	m.evaluations.WithLabelValues(e.ContainerID, e.FlagID, e.DecisionKind).Inc()
	m.evaluationNanos.WithLabelValues(e.ContainerID, e.FlagID).Observe(float64(e.DurationNS) / 1e9)
}

func (m *PrometheusMetrics) RecordConfigLoad(e ConfigLoadEvent) {
	m.configLoads.WithLabelValues(e.ContainerID, successLabel(e.Success)).Inc()
}

func (m *PrometheusMetrics) RecordConfigRollback(e ConfigRollbackEvent) {
	m.rollbacks.WithLabelValues(e.ContainerID, successLabel(e.Success)).Inc()
}

func successLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}

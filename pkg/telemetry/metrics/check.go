package metrics

import (
	"time"

	"mercator-hq/idfcheck/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckMetrics tracks assembly check runs.
//
// Metrics:
//   - idfcheck_check_runs_total: Check runs by outcome and error type
//   - idfcheck_check_duration_seconds: Check run duration
//   - idfcheck_reference_checks_total: Reference checks by check and result
//   - idfcheck_missing_references_total: Unresolved names found per check
//   - idfcheck_history_pruned_total: History records removed by retention
type CheckMetrics struct {
	runsTotal        *prometheus.CounterVec
	duration         prometheus.Histogram
	referenceChecks  *prometheus.CounterVec
	missingReference *prometheus.CounterVec
	prunedTotal      prometheus.Counter
}

// NewCheckMetrics creates and registers check metrics with the provided registry.
func NewCheckMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CheckMetrics {
	cm := &CheckMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "check_runs_total",
				Help:      "Total number of assembly check runs",
			},
			[]string{"outcome", "error_type"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "check_duration_seconds",
				Help:      "Duration of assembly check runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
			},
		),

		referenceChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reference_checks_total",
				Help:      "Total number of cross-document reference checks",
			},
			[]string{"check", "result"},
		),

		missingReference: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "missing_references_total",
				Help:      "Total number of unresolved package or board references",
			},
			[]string{"check"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of check history records removed by retention",
			},
		),
	}

	registry.MustRegister(
		cm.runsTotal,
		cm.duration,
		cm.referenceChecks,
		cm.missingReference,
		cm.prunedTotal,
	)

	return cm
}

// RecordRun records a finished check run. An empty errType means it passed.
func (cm *CheckMetrics) RecordRun(errType string, duration time.Duration) {
	outcome := "pass"
	if errType != "" {
		outcome = "fail"
	}
	cm.runsTotal.WithLabelValues(outcome, errType).Inc()
	cm.duration.Observe(duration.Seconds())
}

// RecordReferenceCheck records one reference check and its unresolved names.
func (cm *CheckMetrics) RecordReferenceCheck(check string, missing int) {
	result := "ok"
	if missing > 0 {
		result = "missing"
		cm.missingReference.WithLabelValues(check).Add(float64(missing))
	}
	cm.referenceChecks.WithLabelValues(check, result).Inc()
}

// RecordPruned adds n pruned history records.
func (cm *CheckMetrics) RecordPruned(n int64) {
	if n > 0 {
		cm.prunedTotal.Add(float64(n))
	}
}

package metrics

import (
	"time"

	"mercator-hq/idfcheck/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks document parsing.
//
// Metrics:
//   - idfcheck_documents_parsed_total: Documents parsed by kind and outcome
//   - idfcheck_parse_duration_seconds: Parse duration by kind
//   - idfcheck_parse_errors_total: Parse failures by kind and error type
//   - idfcheck_records_parsed_total: Records parsed by section keyword
type ParseMetrics struct {
	documentsTotal *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec
	recordsTotal   *prometheus.CounterVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_parsed_total",
				Help:      "Total number of IDF documents parsed",
			},
			[]string{"kind", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of document parsing in seconds",
				Buckets:   cfg.ParseDurationBuckets,
			},
			[]string{"kind"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_errors_total",
				Help:      "Total number of document parse failures",
			},
			[]string{"kind", "error_type"},
		),

		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_parsed_total",
				Help:      "Total number of records parsed per section",
			},
			[]string{"section"},
		),
	}

	registry.MustRegister(
		pm.documentsTotal,
		pm.duration,
		pm.errorsTotal,
		pm.recordsTotal,
	)

	return pm
}

// RecordParse records a parse outcome. An empty errType means success.
func (pm *ParseMetrics) RecordParse(kind, errType string, duration time.Duration) {
	outcome := "success"
	if errType != "" {
		outcome = "error"
		pm.errorsTotal.WithLabelValues(kind, errType).Inc()
	}
	pm.documentsTotal.WithLabelValues(kind, outcome).Inc()
	pm.duration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordRecords adds n records parsed from section.
func (pm *ParseMetrics) RecordRecords(section string, n int) {
	pm.recordsTotal.WithLabelValues(section).Add(float64(n))
}

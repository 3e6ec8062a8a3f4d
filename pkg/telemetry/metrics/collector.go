package metrics

import (
	"time"

	"mercator-hq/idfcheck/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric idfcheck exports. It registers the
// parse and check metric groups on its registry and gates every update on
// config.Enabled, so callers can record unconditionally.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Document parse metrics
	parseMetrics *ParseMetrics

	// Assembly check and history metrics
	checkMetrics *CheckMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "idfcheck",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		cfg.ParseDurationBuckets = append([]float64(nil), config.DefaultParseDurationBuckets...)
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.checkMetrics = NewCheckMetrics(cfg, registry)

	return c
}

// RecordParse records one document parse.
//
// Parameters:
//   - kind: document kind ("board", "panel", "library")
//   - errType: error type on failure, "" on success
//   - duration: time spent parsing
//   - counts: per-section record counts of the parsed document, nil on failure
//
// Example:
//
//	collector.RecordParse("board", "", 3*time.Millisecond, board.Summary())
func (c *Collector) RecordParse(kind, errType string, duration time.Duration, counts map[string]int) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordParse(kind, errType, duration)
	for section, n := range counts {
		c.parseMetrics.RecordRecords(section, n)
	}
}

// RecordReferenceCheck records one cross-document reference check.
//
// Parameters:
//   - check: "library" (placements against the library) or "panel"
//     (panel placements against the boards)
//   - missing: number of unresolved names found
func (c *Collector) RecordReferenceCheck(check string, missing int) {
	if !c.config.Enabled {
		return
	}

	c.checkMetrics.RecordReferenceCheck(check, missing)
}

// RecordCheckRun records a completed assembly check run.
//
// Parameters:
//   - errType: error type of the first failure, "" when the run passed
//   - duration: wall time of the run
func (c *Collector) RecordCheckRun(errType string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.checkMetrics.RecordRun(errType, duration)
}

// RecordHistoryPruned records history rows removed by retention.
func (c *Collector) RecordHistoryPruned(n int64) {
	if !c.config.Enabled {
		return
	}

	c.checkMetrics.RecordPruned(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Enabled reports whether metrics are being recorded.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// Package metrics provides Prometheus metrics collection for idfcheck.
//
// # Metrics Categories
//
//   - Parse Metrics: documents parsed, parse duration, parse errors by
//     error type, records parsed per section
//   - Check Metrics: assembly check runs, run duration, reference checks,
//     unresolved references, pruned history records
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordParse("board", "", elapsed, board.Summary())
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Every Record method is a no-op when metrics are disabled.
package metrics

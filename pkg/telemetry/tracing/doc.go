// Package tracing provides OpenTelemetry tracing for idfcheck.
//
// When telemetry.tracing is enabled, spans are exported over OTLP gRPC to
// the configured collector endpoint. Check runs open an "idf.check" span and
// each document parse an "idf.parse" child span carrying the document path,
// kind and per-section record counts.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// A disabled configuration yields a noop tracer, so callers never branch on
// whether tracing is on.
package tracing

// Package telemetry groups the observability packages used by idfcheck.
//
// # Components
//
//   - logging: structured slog logging with run and document context fields
//   - metrics: Prometheus collectors for parses, reference checks and runs
//   - tracing: OpenTelemetry spans for check runs and document parses
//   - health: liveness and readiness checks served during watch
//
// # Usage
//
//	cfg := config.MustGetConfig()
//
//	logger, _ := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
//	checker := assembly.NewChecker(
//	    assembly.WithLogger(logger.Slog()),
//	    assembly.WithMetrics(collector),
//	    assembly.WithTracer(tracer),
//	)
//
// Metrics and tracing are no-ops when disabled in configuration, so callers
// never need to branch on them.
package telemetry

// Package logging provides structured logging on top of log/slog.
//
// # Overview
//
// The package builds a slog handler from the telemetry.logging section of
// the configuration (level, format, source locations) and carries run-scoped
// fields (run_id, document, trace_id) through context.Context.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "assembly check passed", "boards", 2)
//
// Logs are written to stderr by default so command output on stdout can be
// piped.
package logging

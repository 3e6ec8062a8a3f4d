// Package server runs the HTTP endpoints exposed during watch mode: the
// Prometheus scrape endpoint and the liveness, readiness and version probes.
//
//	srv := server.New(cfg, collector, checker, version)
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        slog.Error("telemetry server failed", "error", err)
//	    }
//	}()
//
// Start blocks until ctx is cancelled and then shuts the server down
// gracefully.
package server

// Package health serves liveness and readiness probes for watch mode.
//
// Liveness only reports that the process is up. Readiness runs registered
// checks: watch mode registers one for the outcome of the latest assembly
// check and, when history is enabled, one that queries the history store.
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("history", health.StoreCheck(store))
//	health.Register(mux, checker, &cfg.Telemetry.Health, version)
package health

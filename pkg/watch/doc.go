// Package watch keeps an assembly checked while its files are edited.
//
// A Runner checks the assembly once, then watches the library, panel and
// board files with fsnotify. Bursts of events are debounced
// (watch.debounce) into a single re-check. Every run is logged, counted in
// the metrics and, when history is enabled, recorded and pruned on the
// retention schedule.
//
// With watch.listen_address set the runner also serves /metrics and the
// health probes. Readiness fails while the latest check has problems.
package watch

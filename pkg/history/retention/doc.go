// Package retention prunes the check-run history.
//
// A Pruner removes runs older than history.retention.days and, when
// history.retention.max_records is set, the oldest runs beyond that count.
// It runs on demand (the history prune command) or on a robfig/cron
// schedule while watch mode is active.
package retention

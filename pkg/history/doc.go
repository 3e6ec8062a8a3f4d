// Package history keeps a record of assembly check runs.
//
// Every check (from the check, lint or watch commands) can be stored as a
// Run: its run ID, start and finish time, the documents involved, and the
// first failure if there was one. The storage subpackage provides a SQLite
// backend, selectable between the pure-Go modernc.org/sqlite driver
// ("sqlite") and the cgo github.com/mattn/go-sqlite3 driver ("sqlite3"), and
// an in-memory backend for tests. The retention subpackage prunes old runs
// by age and count, on demand or on a cron schedule.
//
//	store, err := storage.Open(ctx, storage.FromConfig(&cfg.History))
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	runs, err := store.Query(ctx, &history.Query{Outcome: history.OutcomeFail, Limit: 20})
package history

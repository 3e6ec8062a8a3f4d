// Package storage provides history.Storage backends.
//
// SQLiteStorage persists runs in a single SQLite file through either the
// pure-Go "sqlite" driver (modernc.org/sqlite) or the cgo "sqlite3" driver
// (github.com/mattn/go-sqlite3). MemoryStorage keeps runs in a map and is
// meant for tests.
package storage

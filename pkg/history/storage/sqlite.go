package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // "sqlite3" driver (cgo)
	_ "modernc.org/sqlite"          // "sqlite" driver (pure Go)

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/history"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"
	DriverCGO     = "sqlite3"
)

// runColumns lists the runs table columns in scan order.
const runColumns = `id, trigger, started_at, finished_at, library, panel, boards,
	placements, components, outcome, error_type, error, subject`

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver selects the database/sql driver: "sqlite" or "sqlite3".
	// Default: "sqlite"
	Driver string

	// Path is the database file path. ":memory:" opens a private
	// in-memory database.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:       DriverModernc,
		Path:         config.DefaultHistoryPath,
		MaxOpenConns: config.DefaultHistoryMaxOpenConns,
		WALMode:      true,
		BusyTimeout:  config.DefaultHistoryBusyTimeout,
	}
}

// FromConfig converts the history section of the application configuration.
func FromConfig(cfg *config.HistoryConfig) *SQLiteConfig {
	return &SQLiteConfig{
		Driver:       cfg.Driver,
		Path:         cfg.Path,
		MaxOpenConns: cfg.MaxOpenConns,
		WALMode:      true,
		BusyTimeout:  cfg.BusyTimeout,
	}
}

// SQLiteStorage implements history.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// Open creates a SQLite storage backend. It creates the parent directory of
// the database file, initializes the schema and enables WAL mode if
// configured.
func Open(ctx context.Context, cfg *SQLiteConfig) (*SQLiteStorage, error) {
	if cfg == nil {
		cfg = DefaultSQLiteConfig()
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.Driver != DriverModernc && cfg.Driver != DriverCGO {
		return nil, history.NewStorageError(cfg.Driver, "open", fmt.Errorf("unsupported driver %q", cfg.Driver))
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 1
	}

	logger := slog.Default().With("component", "history.storage.sqlite")

	memory := cfg.Path == ":memory:"
	if !memory {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, history.NewStorageError(cfg.Driver, "mkdir", err)
			}
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, history.NewStorageError(cfg.Driver, "open", err)
	}

	// Each connection to ":memory:" is a separate database
	if memory {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(ctx, memory); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite history storage initialized",
		"driver", cfg.Driver,
		"path", cfg.Path,
		"wal_mode", cfg.WALMode && !memory,
	)

	return s, nil
}

// initialize sets pragmas and creates the schema.
func (s *SQLiteStorage) initialize(ctx context.Context, memory bool) error {
	if s.config.WALMode && !memory {
		if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
			return s.storageError("enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return s.storageError("set_busy_timeout", err)
	}

	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return s.storageError("create_schema", err)
	}

	if _, err := s.db.ExecContext(ctx, InsertSchemaVersion, SchemaVersion); err != nil {
		return s.storageError("insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return s.storageError("get_schema_version", err)
	}
	if version != SchemaVersion {
		return s.storageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a run.
func (s *SQLiteStorage) Store(ctx context.Context, run *history.Run) error {
	boards, err := json.Marshal(run.Boards)
	if err != nil {
		return s.storageError("store", err)
	}

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		run.ID, run.Trigger,
		run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(),
		run.Library, nullString(run.Panel), string(boards),
		run.Placements, run.Components,
		run.Outcome, nullString(run.ErrorType), nullString(run.Error), nullString(run.Subject),
	)
	if err != nil {
		return s.storageError("store", err)
	}
	return nil
}

// Query retrieves runs matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Run, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + runColumns + " FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	order := "DESC"
	if query.Ascending {
		order = "ASC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY started_at %s, id %s", order, order)

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, s.storageError("query", err)
	}
	defer rows.Close()

	runs := []*history.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, s.storageError("scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, s.storageError("query", err)
	}

	return runs, nil
}

// Count returns the number of runs matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, s.storageError("count", err)
	}
	return count, nil
}

// Delete removes runs matching the query filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, s.storageError("delete", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, s.storageError("delete", err)
	}
	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return s.storageError("close", err)
	}
	s.logger.Debug("SQLite history storage closed")
	return nil
}

func (s *SQLiteStorage) storageError(operation string, err error) error {
	return history.NewStorageError(s.config.Driver, operation, err)
}

// buildWhereClause builds a SQL WHERE clause (without the keyword) and its
// arguments from query filters.
func buildWhereClause(query *history.Query) (string, []any) {
	var conditions []string
	var args []any

	if query.Since != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Until != nil {
		conditions = append(conditions, "started_at <= ?")
		args = append(args, query.Until.UnixNano())
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, query.Outcome)
	}
	if query.ErrorType != "" {
		conditions = append(conditions, "error_type = ?")
		args = append(args, query.ErrorType)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRun scans a database row into a Run.
func scanRun(rows *sql.Rows) (*history.Run, error) {
	var run history.Run
	var started, finished int64
	var boards string
	var panel, errorType, errorVal, subject sql.NullString

	err := rows.Scan(
		&run.ID, &run.Trigger,
		&started, &finished,
		&run.Library, &panel, &boards,
		&run.Placements, &run.Components,
		&run.Outcome, &errorType, &errorVal, &subject,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt = time.Unix(0, started).UTC()
	run.FinishedAt = time.Unix(0, finished).UTC()
	run.Panel = panel.String
	run.ErrorType = errorType.String
	run.Error = errorVal.String
	run.Subject = subject.String

	if err := json.Unmarshal([]byte(boards), &run.Boards); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}

	return &run, nil
}

// nullString converts empty strings to NULL for optional columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

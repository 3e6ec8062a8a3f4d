package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history database schema.
// Timestamps are stored as Unix nanoseconds so both drivers agree on them.
const Schema = `
-- Check runs table
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    trigger TEXT NOT NULL,

    -- Timestamps
    started_at INTEGER NOT NULL,
    finished_at INTEGER NOT NULL,

    -- Inputs
    library TEXT NOT NULL,
    panel TEXT,
    boards TEXT NOT NULL,

    -- Document totals
    placements INTEGER NOT NULL DEFAULT 0,
    components INTEGER NOT NULL DEFAULT 0,

    -- Outcome
    outcome TEXT NOT NULL,
    error_type TEXT,
    error TEXT,
    subject TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
CREATE INDEX IF NOT EXISTS idx_runs_error_type ON runs(error_type);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

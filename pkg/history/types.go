package history

import (
	"context"
	"time"
)

// Run outcomes.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// Run records one assembly check: which documents were checked, when, and
// how it ended.
type Run struct {
	// Identity
	ID      string `json:"id" yaml:"id"`           // UUID v4
	Trigger string `json:"trigger" yaml:"trigger"` // "check", "lint" or "watch"

	// Timestamps
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Inputs
	Library string   `json:"library" yaml:"library"`
	Panel   string   `json:"panel,omitempty" yaml:"panel,omitempty"`
	Boards  []string `json:"boards" yaml:"boards"`

	// Document totals, zero when parsing failed
	Placements int `json:"placements" yaml:"placements"`
	Components int `json:"components" yaml:"components"`

	// Outcome
	Outcome   string `json:"outcome" yaml:"outcome"`                           // OutcomePass or OutcomeFail
	ErrorType string `json:"error_type,omitempty" yaml:"error_type,omitempty"` // IDF error type of the first failure
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`           // Message of the first failure
	Subject   string `json:"subject,omitempty" yaml:"subject,omitempty"`       // Unresolved name, for reference failures
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Passed reports whether the run found no problems.
func (r *Run) Passed() bool {
	return r.Outcome == OutcomePass
}

// Query defines filter parameters for querying runs.
type Query struct {
	// Time range on StartedAt
	Since *time.Time `json:"since,omitempty"` // Inclusive start time
	Until *time.Time `json:"until,omitempty"` // Inclusive end time

	// Filters
	Outcome   string `json:"outcome,omitempty"`    // "pass" or "fail"
	ErrorType string `json:"error_type,omitempty"` // IDF error type

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return (default 100)
	Offset int `json:"offset,omitempty"` // Skip N records

	// Oldest first instead of newest first
	Ascending bool `json:"ascending,omitempty"`
}

// Storage defines the interface for run history backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a run.
	Store(ctx context.Context, run *Run) error

	// Query retrieves runs matching the query filters, newest first unless
	// Ascending is set. Returns an empty slice if no runs match.
	Query(ctx context.Context, query *Query) ([]*Run, error)

	// Count returns the number of runs matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes runs matching the query filters and returns how many
	// were deleted. Pagination fields are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}

package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/history"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain runs.
	// 0 means keep runs forever.
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string

	// MaxRecords is the maximum number of runs to keep.
	// 0 means unlimited.
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: config.DefaultHistoryRetentionDays,
		PruneSchedule: config.DefaultHistoryRetentionPrune,
		MaxRecords:    config.DefaultHistoryMaxRecords,
	}
}

// FromConfig converts the history.retention section of the configuration.
func FromConfig(cfg *config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: cfg.Days,
		PruneSchedule: cfg.PruneSchedule,
		MaxRecords:    cfg.MaxRecords,
	}
}

// Pruner enforces retention policies on stored runs.
type Pruner struct {
	storage   history.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
	onPrune   func(deleted int64)
}

// NewPruner creates a new retention pruner.
func NewPruner(storage history.Storage, cfg *Config) *Pruner {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	pruner := &Pruner{
		storage: storage,
		config:  cfg,
		logger:  slog.Default().With("component", "history.retention"),
		now:     time.Now,
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// OnPrune registers a callback invoked with the number of runs removed by
// each successful Prune. It is used to feed metrics.
func (p *Pruner) OnPrune(fn func(deleted int64)) {
	p.onPrune = fn
}

// Prune deletes runs older than the retention period or beyond the
// maximum record count.
//
// Pruning happens in two phases:
// 1. Age-based: Delete runs older than RetentionDays
// 2. Count-based: If total runs > MaxRecords, delete the oldest
//
// Returns the total number of runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	// Phase 1: Prune by retention period
	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
	}

	// Phase 2: Prune by max record count
	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted == 0 {
		p.logger.Debug("no runs pruned",
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Info("history pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	if p.onPrune != nil {
		p.onPrune(totalDeleted)
	}

	return totalDeleted, nil
}

// pruneByAge deletes runs started before the retention cutoff.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"retention_days", p.config.RetentionDays,
	)

	deleted, err := p.storage.Delete(ctx, &history.Query{Until: &cutoff})
	if err != nil {
		return 0, history.NewRetentionError(p.config.RetentionDays, err)
	}
	return deleted, nil
}

// pruneByCount deletes the oldest runs if the total exceeds MaxRecords.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	toDelete := count - p.config.MaxRecords

	p.logger.Info("run count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", toDelete,
	)

	// The newest of the runs to delete gives the cutoff
	oldest, err := p.storage.Query(ctx, &history.Query{Ascending: true, Limit: int(toDelete)})
	if err != nil {
		return 0, fmt.Errorf("failed to query runs: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}
	cutoff := oldest[len(oldest)-1].StartedAt

	deleted, err := p.storage.Delete(ctx, &history.Query{Until: &cutoff})
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}
	return deleted, nil
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}

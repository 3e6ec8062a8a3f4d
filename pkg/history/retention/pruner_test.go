package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/history/storage"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, store history.Storage, ages ...time.Duration) {
	t.Helper()
	for i, age := range ages {
		run := &history.Run{
			ID:         fmt.Sprintf("run-%d", i),
			Trigger:    "check",
			StartedAt:  now.Add(-age),
			FinishedAt: now.Add(-age).Add(time.Millisecond),
			Library:    "library.emp",
			Boards:     []string{"board.emn"},
			Outcome:    history.OutcomePass,
		}
		if err := store.Store(context.Background(), run); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}
}

func newPruner(store history.Storage, cfg *Config) *Pruner {
	p := NewPruner(store, cfg)
	p.now = func() time.Time { return now }
	return p
}

func TestPruner_ByAge(t *testing.T) {
	store := storage.NewMemoryStorage()
	day := 24 * time.Hour
	seed(t, store, 1*day, 5*day, 10*day, 40*day, 90*day)

	p := newPruner(store, &Config{RetentionDays: 30})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	remaining, _ := store.Count(context.Background(), &history.Query{})
	if remaining != 3 {
		t.Errorf("expected 3 remaining, got %d", remaining)
	}
}

func TestPruner_ByCount(t *testing.T) {
	store := storage.NewMemoryStorage()
	seed(t, store, time.Hour, 2*time.Hour, 3*time.Hour, 4*time.Hour, 5*time.Hour)

	p := newPruner(store, &Config{MaxRecords: 2})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}

	runs, _ := store.Query(context.Background(), &history.Query{})
	if len(runs) != 2 || runs[0].ID != "run-0" || runs[1].ID != "run-1" {
		t.Errorf("expected the two newest runs to survive, got %v", runs)
	}
}

func TestPruner_Unlimited(t *testing.T) {
	store := storage.NewMemoryStorage()
	seed(t, store, 1000*24*time.Hour)

	p := newPruner(store, &Config{})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected nothing deleted, got %d", deleted)
	}
}

func TestPruner_OnPrune(t *testing.T) {
	store := storage.NewMemoryStorage()
	seed(t, store, 100*24*time.Hour)

	var reported int64 = -1
	p := newPruner(store, &Config{RetentionDays: 1})
	p.OnPrune(func(n int64) { reported = n })

	if _, err := p.Prune(context.Background()); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if reported != 1 {
		t.Errorf("expected callback with 1, got %d", reported)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(&config.RetentionConfig{Days: 7, MaxRecords: 10, PruneSchedule: "@daily"})
	if cfg.RetentionDays != 7 || cfg.MaxRecords != 10 || cfg.PruneSchedule != "@daily" {
		t.Errorf("unexpected conversion %+v", cfg)
	}
}

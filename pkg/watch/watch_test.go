package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/history/retention"
	"mercator-hq/idfcheck/pkg/history/storage"
	"mercator-hq/idfcheck/pkg/idf/assembly"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// copyFixtures copies the parser fixtures into a temp dir.
func copyFixtures(t *testing.T) assembly.Sources {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"library.emp", "board.emn", "panel.emn"} {
		data, err := os.ReadFile(filepath.Join("../idf/parser/testdata", name))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return assembly.Sources{
		Library: filepath.Join(dir, "library.emp"),
		Panel:   filepath.Join(dir, "panel.emn"),
		Boards:  []string{filepath.Join(dir, "board.emn")},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRunner_RechecksOnChange(t *testing.T) {
	sources := copyFixtures(t)

	cfg := config.Default()
	cfg.Watch.Debounce = 20 * time.Millisecond

	store := storage.NewMemoryStorage()
	checker := assembly.NewChecker(assembly.WithRecorder(store), assembly.WithTrigger("watch"))

	var failures atomic.Int32
	runner := NewRunner(cfg, checker, sources,
		WithHistory(store, retention.NewPruner(store, &retention.Config{RetentionDays: 30})),
		OnResult(func(r *assembly.Result) {
			if !r.Passed() {
				failures.Add(1)
			}
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	waitFor(t, func() bool { return runner.Runs() == 1 })
	if ran, err := runner.Last(); !ran || err != nil {
		t.Fatalf("initial run: ran=%v err=%v", ran, err)
	}

	// Break the board: place a package the library lacks.
	time.Sleep(50 * time.Millisecond)
	data, _ := os.ReadFile(sources.Boards[0])
	broken := strings.Replace(string(data), "dip_14w pn-hs346-dip U4", "so8 pn-hs346-dip U4", 1)
	if err := os.WriteFile(sources.Boards[0], []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return runner.Runs() >= 2 })
	_, err := runner.Last()
	if !idfErrors.IsType(err, idfErrors.ErrorTypeReference) {
		t.Errorf("expected reference error after edit, got %v", err)
	}
	if failures.Load() == 0 {
		t.Error("OnResult did not see the failing run")
	}

	status := runner.Health().CheckReadiness(context.Background())
	if status.Checks["last_run"].Status != "unhealthy" || status.Checks["history"].Status != "ok" {
		t.Errorf("unexpected readiness %+v", status.Checks)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}

	n, _ := store.Count(context.Background(), &history.Query{Outcome: history.OutcomeFail})
	if n == 0 {
		t.Error("expected the failing run in history")
	}
}

func TestRunner_InvalidSources(t *testing.T) {
	runner := NewRunner(config.Default(), assembly.NewChecker(), assembly.Sources{Library: "lib.emp"})
	if err := runner.Run(context.Background()); !idfErrors.IsType(err, idfErrors.ErrorTypeMultiplicity) {
		t.Errorf("expected multiplicity error, got %v", err)
	}
}
